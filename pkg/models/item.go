package models

// AuthorUnknown is the display fallback for poems with no recorded author.
const AuthorUnknown = "作者不明"

// Item represents one poem of the quiz corpus
type Item struct {
	ID     int    `json:"id" db:"id"`         // position within the corpus, join key for ledger rows
	Kami   string `json:"kami" db:"kami"`     // upper verse, shown as the prompt; may embed ruby annotations
	Shimo  string `json:"shimo" db:"shimo"`   // lower verse, the correct completion
	Author string `json:"author" db:"author"` // defaults to AuthorUnknown when the source has no value
	Yaku   string `json:"yaku" db:"yaku"`     // modern-language translation, may be empty
}

package models

// LedgerEntry tracks one player's mastery of one corpus item
type LedgerEntry struct {
	PlayerID     string `json:"player_id" db:"player_id"`
	ItemID       int    `json:"item_id" db:"item_id"`
	MasteryLevel int    `json:"mastery_level" db:"mastery_level"`
}

package corpus

import "unicode"

// RubySegment is a run of verse text with an optional reading. Renderers
// turn annotated segments into ruby text; this package only parses.
type RubySegment struct {
	Text    string
	Reading string // empty when the run carries no annotation
}

// ParseRuby splits a verse into segments. An annotation is a parenthesized
// reading directly after a run of kanji, e.g. 久方(ひさかた)の光(ひかり).
// Both ASCII and full-width parentheses are accepted. Parentheses that do
// not follow kanji are kept as literal text.
func ParseRuby(verse string) []RubySegment {
	runes := []rune(verse)
	var segments []RubySegment
	var plain []rune

	flush := func() {
		if len(plain) > 0 {
			segments = append(segments, RubySegment{Text: string(plain)})
			plain = nil
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '(' && r != '（' {
			plain = append(plain, r)
			continue
		}

		close := matchingClose(runes, i)
		base := kanjiRun(plain)
		if close == -1 || base == 0 {
			plain = append(plain, r)
			continue
		}

		run := string(plain[len(plain)-base:])
		plain = plain[:len(plain)-base]
		flush()
		segments = append(segments, RubySegment{
			Text:    run,
			Reading: string(runes[i+1 : close]),
		})
		i = close
	}
	flush()
	return segments
}

// matchingClose finds the closing parenthesis for the opener at open, or -1.
func matchingClose(runes []rune, open int) int {
	for i := open + 1; i < len(runes); i++ {
		switch runes[i] {
		case ')', '）':
			return i
		case '(', '（':
			return -1
		}
	}
	return -1
}

// kanjiRun reports how many trailing runes of plain are kanji.
func kanjiRun(plain []rune) int {
	n := 0
	for i := len(plain) - 1; i >= 0; i-- {
		if !unicode.Is(unicode.Han, plain[i]) {
			break
		}
		n++
	}
	return n
}

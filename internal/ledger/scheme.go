package ledger

import (
	"fmt"
	"strings"
)

// Scheme is the scoring policy for mastery levels. Binary flips an item
// to learned on the first correct answer and never goes back; graduated
// walks a 0..3 scale up on correct and down on incorrect answers.
type Scheme string

const (
	SchemeBinary    Scheme = "binary"
	SchemeGraduated Scheme = "graduated"
)

// ParseScheme validates a configured scheme name.
func ParseScheme(name string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(name))) {
	case SchemeBinary:
		return SchemeBinary, nil
	case SchemeGraduated, "":
		return SchemeGraduated, nil
	default:
		return "", fmt.Errorf("unknown scoring scheme: %q", name)
	}
}

// Threshold is the level at which an item counts as mastered.
func (s Scheme) Threshold() int {
	if s == SchemeBinary {
		return 1
	}
	return 3
}

// Apply returns the level after one answer. Binary never decreases;
// graduated clamps to [0, 3].
func (s Scheme) Apply(level int, correct bool) int {
	if s == SchemeBinary {
		if correct {
			return 1
		}
		return level
	}
	if correct {
		if level+1 > 3 {
			return 3
		}
		return level + 1
	}
	if level-1 < 0 {
		return 0
	}
	return level - 1
}

// Clamp bounds a persisted level into the scheme's valid range.
func (s Scheme) Clamp(level int) int {
	if level < 0 {
		return 0
	}
	if level > s.Threshold() {
		return s.Threshold()
	}
	return level
}

// Stars renders a level as filled and empty stars up to the threshold,
// e.g. ★★☆ for level 2 under the graduated scheme.
func (s Scheme) Stars(level int) string {
	level = s.Clamp(level)
	return strings.Repeat("★", level) + strings.Repeat("☆", s.Threshold()-level)
}

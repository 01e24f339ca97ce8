package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheme(t *testing.T) {
	for input, want := range map[string]Scheme{
		"binary":    SchemeBinary,
		"graduated": SchemeGraduated,
		"GRADUATED": SchemeGraduated,
		"":          SchemeGraduated,
	} {
		got, err := ParseScheme(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseScheme("sm2")
	assert.Error(t, err)
}

func TestGraduatedTransitions(t *testing.T) {
	for level := 0; level <= 3; level++ {
		wantUp := level + 1
		if wantUp > 3 {
			wantUp = 3
		}
		wantDown := level - 1
		if wantDown < 0 {
			wantDown = 0
		}
		assert.Equal(t, wantUp, SchemeGraduated.Apply(level, true), "correct at %d", level)
		assert.Equal(t, wantDown, SchemeGraduated.Apply(level, false), "incorrect at %d", level)
	}
}

func TestBinaryTransitions(t *testing.T) {
	assert.Equal(t, 1, SchemeBinary.Apply(0, true))
	assert.Equal(t, 1, SchemeBinary.Apply(1, true))
	// binary never decreases
	assert.Equal(t, 0, SchemeBinary.Apply(0, false))
	assert.Equal(t, 1, SchemeBinary.Apply(1, false))
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 1, SchemeBinary.Threshold())
	assert.Equal(t, 3, SchemeGraduated.Threshold())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, SchemeGraduated.Clamp(-2))
	assert.Equal(t, 2, SchemeGraduated.Clamp(2))
	assert.Equal(t, 3, SchemeGraduated.Clamp(9))
	assert.Equal(t, 1, SchemeBinary.Clamp(9))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "☆☆☆", SchemeGraduated.Stars(0))
	assert.Equal(t, "★★☆", SchemeGraduated.Stars(2))
	assert.Equal(t, "★★★", SchemeGraduated.Stars(3))
	assert.Equal(t, "★", SchemeBinary.Stars(1))
}

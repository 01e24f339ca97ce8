package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "sqlite", cfg.StoreType)
	assert.Equal(t, "corpus", cfg.CorpusSource)
	assert.Equal(t, "progress", cfg.LedgerSource)
	assert.Equal(t, "graduated", cfg.Scheme)
	assert.Empty(t, cfg.Players)
	assert.Equal(t, 3, cfg.Distractors)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_TYPE", "excel")
	t.Setenv("QUIZ_SCHEME", "binary")
	t.Setenv("QUIZ_PLAYERS", "はな, たろう ,")
	t.Setenv("QUIZ_DISTRACTORS", "5")

	cfg := Load()
	assert.Equal(t, "excel", cfg.StoreType)
	assert.Equal(t, "binary", cfg.Scheme)
	assert.Equal(t, []string{"はな", "たろう"}, cfg.Players)
	assert.Equal(t, 5, cfg.Distractors)
}

func TestBadDistractorCountFallsBack(t *testing.T) {
	t.Setenv("QUIZ_DISTRACTORS", "-1")
	assert.Equal(t, 3, Load().Distractors)

	t.Setenv("QUIZ_DISTRACTORS", "lots")
	assert.Equal(t, 3, Load().Distractors)
}

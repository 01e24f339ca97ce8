package session

import (
	"fmt"
	"testing"

	"github.com/example/utaquiz/internal/ledger"
	"github.com/example/utaquiz/internal/quiz"
	"github.com/example/utaquiz/internal/storage"
	"github.com/example/utaquiz/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(n int) []models.Item {
	items := make([]models.Item, n)
	for i := range items {
		items[i] = models.Item{
			ID:     i,
			Kami:   fmt.Sprintf("上(かみ)の句%d", i),
			Shimo:  fmt.Sprintf("下の句%d", i),
			Author: models.AuthorUnknown,
			Yaku:   fmt.Sprintf("訳%d", i),
		}
	}
	return items
}

func newOrchestrator(t *testing.T, n int, players ...string) (*Orchestrator, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	items := testItems(n)
	led := ledger.Load(store, "progress", items, ledger.SchemeGraduated, players)
	return New(items, led, quiz.DefaultDistractors), store
}

func TestPlayerSelection(t *testing.T) {
	orch, _ := newOrchestrator(t, 4, "はな")

	assert.Equal(t, []string{"はな"}, orch.ListPlayers())
	assert.Error(t, orch.SelectPlayer("たろう"))
	require.NoError(t, orch.SelectPlayer("はな"))

	_, err := orch.CurrentQuestion()
	assert.NoError(t, err)
}

func TestRegisterPlayer(t *testing.T) {
	orch, _ := newOrchestrator(t, 4)

	require.NoError(t, orch.RegisterPlayer("たろう"))
	assert.Equal(t, []string{"たろう"}, orch.ListPlayers())

	// Registration selects the player: questions flow immediately.
	q, err := orch.CurrentQuestion()
	require.NoError(t, err)
	require.NotNil(t, q)

	err = orch.RegisterPlayer("たろう")
	assert.ErrorIs(t, err, ledger.ErrPlayerExists)
	assert.Equal(t, []string{"たろう"}, orch.ListPlayers())
}

func TestQuestionFlow(t *testing.T) {
	orch, _ := newOrchestrator(t, 5, "はな")
	require.NoError(t, orch.SelectPlayer("はな"))

	q, err := orch.CurrentQuestion()
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, "☆☆☆", q.Stars)
	assert.NotEmpty(t, q.PromptSegments)

	// CurrentQuestion is stable until the question is advanced.
	again, err := orch.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, q.Prompt, again.Prompt)
	assert.Equal(t, q.Options, again.Options)

	correct := -1
	for i, opt := range q.Options {
		for _, item := range testItems(5) {
			if opt == item.Shimo && q.Prompt == item.Kami {
				correct = i
			}
		}
	}
	require.GreaterOrEqual(t, correct, 0)

	result, err := orch.Answer(correct)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 0, result.ScoreBefore)
	assert.Equal(t, 1, result.ScoreAfter)
	assert.Equal(t, "★☆☆", result.Stars)
	assert.NotEmpty(t, result.Yaku)

	// Answering the same question again is a guarded no-op.
	result, err = orch.Answer(correct)
	require.NoError(t, err)
	assert.True(t, result.AlreadyAnswered)

	next, err := orch.NextQuestion()
	require.NoError(t, err)
	assert.NotNil(t, next)
}

func TestAnswerValidation(t *testing.T) {
	orch, _ := newOrchestrator(t, 4, "はな")
	require.NoError(t, orch.SelectPlayer("はな"))

	_, err := orch.Answer(0)
	assert.Error(t, err, "no question drawn yet")

	q, err := orch.CurrentQuestion()
	require.NoError(t, err)
	_, err = orch.Answer(len(q.Options))
	assert.Error(t, err)
	_, err = orch.Answer(-1)
	assert.Error(t, err)
}

func TestCompletionAndEndSession(t *testing.T) {
	orch, _ := newOrchestrator(t, 2, "はな")
	require.NoError(t, orch.SelectPlayer("はな"))

	// Answer correctly until every poem is mastered.
	for i := 0; i < 20 && !orch.Completed(); i++ {
		q, err := orch.CurrentQuestion()
		require.NoError(t, err)
		if q == nil {
			break
		}

		items := testItems(2)
		for idx, opt := range q.Options {
			for _, item := range items {
				if opt == item.Shimo && q.Prompt == item.Kami {
					_, err = orch.Answer(idx)
					require.NoError(t, err)
				}
			}
		}
		_, err = orch.NextQuestion()
		require.NoError(t, err)
	}

	assert.True(t, orch.Completed())
	q, err := orch.CurrentQuestion()
	require.NoError(t, err)
	assert.Nil(t, q, "completion is a state, not a fault")

	mastered, err := orch.EndSession()
	require.NoError(t, err)
	assert.Equal(t, 2, mastered)

	_, err = orch.CurrentQuestion()
	assert.Error(t, err, "session over, no player selected")
}

func TestNoPlayerSelected(t *testing.T) {
	orch, _ := newOrchestrator(t, 3, "はな")

	_, err := orch.CurrentQuestion()
	assert.Error(t, err)
	_, err = orch.EndSession()
	assert.Error(t, err)
}

func TestWarningSurfacesDegradedLoad(t *testing.T) {
	items := testItems(3)
	led := ledger.Load(failingStore{}, "progress", items, ledger.SchemeGraduated, []string{"はな"})
	orch := New(items, led, quiz.DefaultDistractors)

	assert.Error(t, orch.Warning())
	require.NoError(t, orch.SelectPlayer("はな"))
	_, err := orch.CurrentQuestion()
	assert.NoError(t, err, "degraded store must not block questions")
}

type failingStore struct{}

func (failingStore) FetchTable(string) ([]string, [][]string, error) {
	return nil, nil, fmt.Errorf("unreachable")
}

func (failingStore) WriteTable(string, []string, [][]string) error {
	return fmt.Errorf("unreachable")
}

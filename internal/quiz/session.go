package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/utaquiz/internal/ledger"
	"github.com/example/utaquiz/pkg/models"
)

// ErrExhausted means the player has mastered every item. Callers map it
// to a completion state, not a fault.
var ErrExhausted = errors.New("no unmastered items remain")

// DefaultDistractors is how many wrong options a question carries when
// the corpus is large enough.
const DefaultDistractors = 3

// State is one in-flight question. It is unanswered when built and flips
// to answered exactly once; a new question needs a new Begin.
type State struct {
	PlayerID    string
	Target      models.Item
	Options     []string // shuffled, contains the correct answer exactly once
	ScoreBefore int      // mastery level snapshot taken before the answer
	Answered    bool
}

// Outcome reports one scored answer. When AlreadyAnswered is set nothing
// was mutated and the other fields repeat the first submission's levels.
type Outcome struct {
	AlreadyAnswered bool
	Correct         bool
	ScoreBefore     int
	ScoreAfter      int
	NewlyMastered   bool  // this answer pushed the item over the threshold
	SaveErr         error // reported, never fatal: memory is already current
}

// Session draws questions from the corpus and scores answers against the
// ledger.
type Session struct {
	items       []models.Item
	ledger      *ledger.Ledger
	distractors int
	rnd         *rand.Rand
}

// New creates a session over a loaded corpus and ledger. distractors is
// clamped per question to what the corpus can supply.
func New(items []models.Item, led *ledger.Ledger, distractors int) *Session {
	if distractors <= 0 {
		distractors = DefaultDistractors
	}
	return &Session{
		items:       items,
		ledger:      led,
		distractors: distractors,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Begin draws one unmastered item uniformly at random and builds its
// option set. Distractors are sampled without replacement from the whole
// corpus, mastered items included, so they stay plausible; only the
// target's exact answer string is excluded, which also guards corpora
// holding duplicate answers. Returns ErrExhausted when nothing is left.
func (s *Session) Begin(playerID string) (*State, error) {
	unmastered, err := s.ledger.UnmasteredIndices(playerID)
	if err != nil {
		return nil, err
	}
	if len(unmastered) == 0 {
		return nil, ErrExhausted
	}

	target := s.items[unmastered[s.rnd.Intn(len(unmastered))]]

	// Distinct answer strings from all other items.
	seen := map[string]bool{target.Shimo: true}
	var pool []string
	for _, item := range s.items {
		if item.ID == target.ID || seen[item.Shimo] {
			continue
		}
		seen[item.Shimo] = true
		pool = append(pool, item.Shimo)
	}
	s.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	count := s.distractors
	if count > len(pool) {
		count = len(pool)
	}

	options := append([]string{target.Shimo}, pool[:count]...)
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	before, err := s.ledger.Level(playerID, target.ID)
	if err != nil {
		return nil, err
	}

	return &State{
		PlayerID:    playerID,
		Target:      target,
		Options:     options,
		ScoreBefore: before,
	}, nil
}

// Submit scores a chosen option against the state's target. The first
// call latches the state as answered, mutates the ledger and flushes it;
// every later call is a no-op reporting AlreadyAnswered.
func (s *Session) Submit(state *State, chosen string) (Outcome, error) {
	if state == nil {
		return Outcome{}, fmt.Errorf("no active question")
	}

	current, err := s.ledger.Level(state.PlayerID, state.Target.ID)
	if err != nil {
		return Outcome{}, err
	}
	if state.Answered {
		return Outcome{
			AlreadyAnswered: true,
			ScoreBefore:     state.ScoreBefore,
			ScoreAfter:      current,
		}, nil
	}
	state.Answered = true

	correct := chosen == state.Target.Shimo
	after, err := s.ledger.ScoreAnswer(state.PlayerID, state.Target.ID, correct)
	if err != nil {
		return Outcome{}, err
	}

	threshold := s.ledger.Scheme().Threshold()
	return Outcome{
		Correct:       correct,
		ScoreBefore:   state.ScoreBefore,
		ScoreAfter:    after,
		NewlyMastered: correct && after >= threshold && state.ScoreBefore < threshold,
		SaveErr:       s.ledger.Save(),
	}, nil
}

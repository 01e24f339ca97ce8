package session

import (
	"errors"
	"fmt"

	"github.com/example/utaquiz/internal/corpus"
	"github.com/example/utaquiz/internal/ledger"
	"github.com/example/utaquiz/internal/quiz"
	"github.com/example/utaquiz/pkg/models"
)

// Question is the presentable view of the current quiz state. Prompt
// segments come pre-parsed so renderers can emit ruby text without
// touching quiz internals.
type Question struct {
	Prompt         string
	PromptSegments []corpus.RubySegment
	Author         string
	Stars          string // mastery progress before this question
	Options        []string
}

// Result is one scored answer plus the reveal data the player sees.
type Result struct {
	quiz.Outcome
	CorrectAnswer string
	Author        string
	Yaku          string
	Stars         string // mastery progress after this answer
}

// Orchestrator drives one player's quiz flow: player selection, question
// lifecycle and completion. All state is owned here and passed into the
// quiz session explicitly; nothing is process-global.
type Orchestrator struct {
	items     []models.Item
	ledger    *ledger.Ledger
	quiz      *quiz.Session
	player    string
	state     *quiz.State
	completed bool
}

// New builds the surface over a loaded corpus and ledger.
func New(items []models.Item, led *ledger.Ledger, distractors int) *Orchestrator {
	return &Orchestrator{
		items:  items,
		ledger: led,
		quiz:   quiz.New(items, led, distractors),
	}
}

// Warning exposes the ledger's degraded-load warning, if any.
func (o *Orchestrator) Warning() error {
	return o.ledger.Warning()
}

// ListPlayers lists registered player names.
func (o *Orchestrator) ListPlayers() []string {
	return o.ledger.Players()
}

// SelectPlayer switches the session to an existing player and discards
// any in-flight question.
func (o *Orchestrator) SelectPlayer(name string) error {
	if !o.ledger.HasPlayer(name) {
		return fmt.Errorf("unknown player: %q", name)
	}
	o.player = name
	o.state = nil
	o.completed = false
	return nil
}

// RegisterPlayer adds a freshly seeded player and selects it. Duplicate
// names report ledger.ErrPlayerExists and change nothing. A persist
// failure still registers the player in memory; the error is surfaced for
// the caller to report.
func (o *Orchestrator) RegisterPlayer(name string) error {
	err := o.ledger.AddPlayer(name)
	if errors.Is(err, ledger.ErrPlayerExists) {
		return err
	}
	if selectErr := o.SelectPlayer(name); selectErr != nil {
		return selectErr
	}
	return err
}

// Completed reports whether the selected player has mastered every item.
func (o *Orchestrator) Completed() bool {
	return o.completed
}

// CurrentQuestion returns the in-flight question, drawing a new one when
// needed. When the player has mastered everything it returns nil and
// flips Completed instead of failing.
func (o *Orchestrator) CurrentQuestion() (*Question, error) {
	if o.player == "" {
		return nil, fmt.Errorf("no player selected")
	}
	if o.completed {
		return nil, nil
	}
	if o.state == nil {
		state, err := o.quiz.Begin(o.player)
		if errors.Is(err, quiz.ErrExhausted) {
			o.completed = true
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		o.state = state
	}
	return o.question(), nil
}

func (o *Orchestrator) question() *Question {
	return &Question{
		Prompt:         o.state.Target.Kami,
		PromptSegments: corpus.ParseRuby(o.state.Target.Kami),
		Author:         o.state.Target.Author,
		Stars:          o.ledger.Scheme().Stars(o.state.ScoreBefore),
		Options:        append([]string(nil), o.state.Options...),
	}
}

// Answer scores the option at optionIndex against the current question.
// Submitting twice on the same question is a no-op with AlreadyAnswered
// set, which keeps duplicate UI events from double-scoring.
func (o *Orchestrator) Answer(optionIndex int) (*Result, error) {
	if o.state == nil {
		return nil, fmt.Errorf("no active question")
	}
	if optionIndex < 0 || optionIndex >= len(o.state.Options) {
		return nil, fmt.Errorf("option index out of range: %d", optionIndex)
	}

	outcome, err := o.quiz.Submit(o.state, o.state.Options[optionIndex])
	if err != nil {
		return nil, err
	}
	return &Result{
		Outcome:       outcome,
		CorrectAnswer: o.state.Target.Shimo,
		Author:        o.state.Target.Author,
		Yaku:          o.state.Target.Yaku,
		Stars:         o.ledger.Scheme().Stars(outcome.ScoreAfter),
	}, nil
}

// NextQuestion discards the current question and draws a new one. There
// is no retry path: an unanswered question is simply abandoned.
func (o *Orchestrator) NextQuestion() (*Question, error) {
	o.state = nil
	return o.CurrentQuestion()
}

// EndSession closes the session and returns how many items the player
// has mastered.
func (o *Orchestrator) EndSession() (int, error) {
	if o.player == "" {
		return 0, fmt.Errorf("no player selected")
	}
	count, err := o.ledger.MasteredCount(o.player)
	o.state = nil
	o.player = ""
	o.completed = false
	return count, err
}

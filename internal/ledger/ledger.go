package ledger

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/example/utaquiz/internal/storage"
	"github.com/example/utaquiz/pkg/models"
)

// ErrPlayerExists is returned by AddPlayer for duplicate names.
var ErrPlayerExists = errors.New("player already exists")

// itemColumn heads the first column of the persisted table; the remaining
// columns are one per player, cells holding levels as decimal strings.
const itemColumn = "item_id"

// Ledger is the per-player mastery table. It is loaded wholesale, mutated
// in place through ScoreAnswer, and flushed wholesale through Save; the
// backing store always receives a full-table overwrite.
type Ledger struct {
	store    storage.TableStore
	sourceID string
	scheme   Scheme
	items    []models.Item
	players  []string
	entries  map[string][]models.LedgerEntry // one entry per item, in corpus order
	warning  error
}

// Load fetches the persisted table and joins it against the corpus. It
// never fails: an unreachable store or a malformed table produces a
// default ledger seeded at level 0, with the cause kept as Warning.
// An empty-but-reachable store is a fresh ledger and carries no warning.
func Load(store storage.TableStore, sourceID string, items []models.Item, scheme Scheme, initialPlayers []string) *Ledger {
	l := &Ledger{
		store:    store,
		sourceID: sourceID,
		scheme:   scheme,
		items:    items,
		entries:  make(map[string][]models.LedgerEntry),
	}

	header, rows, err := store.FetchTable(sourceID)
	if err != nil {
		l.warning = fmt.Errorf("ledger load degraded to defaults: %w", err)
		header, rows = nil, nil
	}

	var players []string
	if len(header) > 1 {
		players = header[1:]
	} else {
		players = initialPlayers
	}
	for _, name := range players {
		l.seedPlayer(name)
	}

	// Overlay persisted levels. Rows join on the item id in column 0,
	// defaulting to the row position when the cell doesn't parse.
	for rowIdx, row := range rows {
		itemID := rowIdx
		if len(row) > 0 {
			if parsed, err := strconv.Atoi(row[0]); err == nil {
				itemID = parsed
			}
		}
		if itemID < 0 || itemID >= len(items) {
			continue
		}
		for col, name := range players {
			cell := col + 1
			if cell >= len(row) {
				continue
			}
			if level, err := strconv.Atoi(row[cell]); err == nil {
				l.entries[name][itemID].MasteryLevel = scheme.Clamp(level)
			}
		}
	}

	return l
}

func (l *Ledger) seedPlayer(name string) {
	if _, ok := l.entries[name]; ok {
		return
	}
	rows := make([]models.LedgerEntry, len(l.items))
	for i := range l.items {
		rows[i] = models.LedgerEntry{PlayerID: name, ItemID: i}
	}
	l.players = append(l.players, name)
	l.entries[name] = rows
}

// Warning reports why the last load fell back to defaults, or nil. A
// non-nil warning means a later Save may overwrite progress that still
// exists in the store, so callers should surface it.
func (l *Ledger) Warning() error {
	return l.warning
}

// Scheme returns the scoring scheme the ledger was loaded with.
func (l *Ledger) Scheme() Scheme {
	return l.scheme
}

// Players lists player names in column order.
func (l *Ledger) Players() []string {
	return append([]string(nil), l.players...)
}

// HasPlayer reports whether name is registered.
func (l *Ledger) HasPlayer(name string) bool {
	_, ok := l.entries[name]
	return ok
}

// Level returns a player's mastery level for one item.
func (l *Ledger) Level(playerID string, itemID int) (int, error) {
	rows, ok := l.entries[playerID]
	if !ok {
		return 0, fmt.Errorf("unknown player: %q", playerID)
	}
	if itemID < 0 || itemID >= len(rows) {
		return 0, fmt.Errorf("item id out of range: %d", itemID)
	}
	return rows[itemID].MasteryLevel, nil
}

// ScoreAnswer applies the scheme's transition for one answer and returns
// the new level. This is the only mutation path for mastery levels.
func (l *Ledger) ScoreAnswer(playerID string, itemID int, correct bool) (int, error) {
	rows, ok := l.entries[playerID]
	if !ok {
		return 0, fmt.Errorf("unknown player: %q", playerID)
	}
	if itemID < 0 || itemID >= len(rows) {
		return 0, fmt.Errorf("item id out of range: %d", itemID)
	}
	rows[itemID].MasteryLevel = l.scheme.Apply(rows[itemID].MasteryLevel, correct)
	return rows[itemID].MasteryLevel, nil
}

// UnmasteredIndices returns the ids of items still below the scheme's
// mastery threshold, in corpus order.
func (l *Ledger) UnmasteredIndices(playerID string) ([]int, error) {
	rows, ok := l.entries[playerID]
	if !ok {
		return nil, fmt.Errorf("unknown player: %q", playerID)
	}
	var ids []int
	for i, entry := range rows {
		if entry.MasteryLevel < l.scheme.Threshold() {
			ids = append(ids, i)
		}
	}
	return ids, nil
}

// MasteredCount returns how many items the player has at or above the
// threshold.
func (l *Ledger) MasteredCount(playerID string) (int, error) {
	unmastered, err := l.UnmasteredIndices(playerID)
	if err != nil {
		return 0, err
	}
	return len(l.items) - len(unmastered), nil
}

// AddPlayer registers a new player seeded at level 0 for every item and
// persists the table. Duplicate names are rejected with ErrPlayerExists
// and leave existing entries untouched. A save failure is returned but
// the in-memory registration stands; the next save retries implicitly.
func (l *Ledger) AddPlayer(name string) error {
	if name == "" {
		return fmt.Errorf("player name must not be empty")
	}
	if l.HasPlayer(name) {
		return fmt.Errorf("%w: %q", ErrPlayerExists, name)
	}
	l.seedPlayer(name)
	return l.Save()
}

// Save overwrites the whole persisted table. Failures are reported, not
// retried; in-memory state is already current and the next Save after an
// answer retries implicitly.
func (l *Ledger) Save() error {
	header := append([]string{itemColumn}, l.players...)
	rows := make([][]string, len(l.items))
	for i := range l.items {
		row := make([]string, 0, len(l.players)+1)
		row = append(row, strconv.Itoa(i))
		for _, name := range l.players {
			row = append(row, strconv.Itoa(l.entries[name][i].MasteryLevel))
		}
		rows[i] = row
	}
	return l.store.WriteTable(l.sourceID, header, rows)
}

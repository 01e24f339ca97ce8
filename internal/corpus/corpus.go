package corpus

import (
	"fmt"
	"strings"

	"github.com/example/utaquiz/internal/storage"
	"github.com/example/utaquiz/pkg/models"
)

// Column names recognized in the corpus source. kami and shimo are
// required, the rest are optional.
const (
	ColumnKami   = "kami"
	ColumnShimo  = "shimo"
	ColumnAuthor = "author"
	ColumnYaku   = "yaku"
)

// LoadError means the corpus source is unreadable or malformed. No quiz
// can run without a corpus, so callers treat this as fatal.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("corpus: load %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads all items from a table source. Item IDs are row positions:
// the ledger joins on them, so the source must stay append-only between
// runs. Rows with an empty kami or shimo are skipped; a missing author
// falls back to models.AuthorUnknown.
func Load(store storage.TableStore, sourceID string) ([]models.Item, error) {
	header, rows, err := store.FetchTable(sourceID)
	if err != nil {
		return nil, &LoadError{Source: sourceID, Err: err}
	}
	if len(header) == 0 {
		return nil, &LoadError{Source: sourceID, Err: fmt.Errorf("source is empty")}
	}

	columns := make(map[string]int)
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{ColumnKami, ColumnShimo} {
		if _, ok := columns[required]; !ok {
			return nil, &LoadError{Source: sourceID, Err: fmt.Errorf("missing required column %q", required)}
		}
	}

	cell := func(row []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []models.Item
	for _, row := range rows {
		kami := cell(row, ColumnKami)
		shimo := cell(row, ColumnShimo)
		if kami == "" || shimo == "" {
			continue
		}

		author := cell(row, ColumnAuthor)
		if author == "" {
			author = models.AuthorUnknown
		}

		items = append(items, models.Item{
			ID:     len(items),
			Kami:   kami,
			Shimo:  shimo,
			Author: author,
			Yaku:   cell(row, ColumnYaku),
		})
	}

	if len(items) == 0 {
		return nil, &LoadError{Source: sourceID, Err: fmt.Errorf("source has no usable rows")}
	}
	return items, nil
}

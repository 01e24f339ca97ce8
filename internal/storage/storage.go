package storage

import "fmt"

// TableStore is the persistence boundary for tabular data. A table is a
// header row plus data rows, every cell a string; WriteTable always
// replaces the whole table, there are no append or patch semantics.
//
// A missing table is not an error: FetchTable returns an empty header and
// no rows so callers can tell "new" apart from "unreachable".
type TableStore interface {
	FetchTable(sourceID string) (header []string, rows [][]string, err error)
	WriteTable(sourceID string, header []string, rows [][]string) error
}

// StorageError wraps a backend failure so callers never see raw driver errors.
type StorageError struct {
	Op     string // "fetch" or "write"
	Source string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Source, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore keeps each table as rows of JSON-encoded cells, one record per
// table row. Row 0 is the header. Works against SQLite or PostgreSQL.
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQL connects to the database and creates the schema if needed.
// dbType is "sqlite" or "postgres"; for sqlite the dsn is a file path
// whose directory is created on demand.
func OpenSQL(dbType, dsn string) (*SQLStore, error) {
	var driver string
	switch dbType {
	case "sqlite", "":
		driver = "sqlite3"
		if dsn == "" {
			dsn = filepath.Join("data", "utaquiz.db")
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &SQLStore{db: db}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sheet_rows (
			source_id TEXT NOT NULL,
			row_idx INTEGER NOT NULL,
			cells TEXT NOT NULL,
			PRIMARY KEY (source_id, row_idx)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sheet_rows table: %v", err)
	}
	return nil
}

// FetchTable returns the stored table, or an empty one if it was never written.
func (s *SQLStore) FetchTable(sourceID string) ([]string, [][]string, error) {
	query := s.db.Rebind("SELECT cells FROM sheet_rows WHERE source_id = ? ORDER BY row_idx")

	var encoded []string
	if err := s.db.Select(&encoded, query, sourceID); err != nil {
		return nil, nil, &StorageError{Op: "fetch", Source: sourceID, Err: err}
	}
	if len(encoded) == 0 {
		return nil, nil, nil
	}

	table := make([][]string, 0, len(encoded))
	for i, cells := range encoded {
		var row []string
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return nil, nil, &StorageError{Op: "fetch", Source: sourceID, Err: fmt.Errorf("row %d: %v", i, err)}
		}
		table = append(table, row)
	}
	return table[0], table[1:], nil
}

// WriteTable replaces the stored table in a single transaction.
func (s *SQLStore) WriteTable(sourceID string, header []string, rows [][]string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}

	fail := func(err error) error {
		tx.Rollback()
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}

	del := tx.Rebind("DELETE FROM sheet_rows WHERE source_id = ?")
	if _, err := tx.Exec(del, sourceID); err != nil {
		return fail(err)
	}

	ins := tx.Rebind("INSERT INTO sheet_rows (source_id, row_idx, cells) VALUES (?, ?, ?)")
	table := append([][]string{header}, rows...)
	for i, row := range table {
		cells, err := json.Marshal(row)
		if err != nil {
			return fail(err)
		}
		if _, err := tx.Exec(ins, sourceID, i, string(cells)); err != nil {
			return fail(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}
	return nil
}

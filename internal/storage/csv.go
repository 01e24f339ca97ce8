package storage

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
)

// CSVStore keeps each table as <dir>/<sourceID>.csv.
type CSVStore struct {
	dir string
}

// NewCSVStore returns a store rooted at dir, creating it on first write.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

func (s *CSVStore) filePath(sourceID string) string {
	return filepath.Join(s.dir, sourceID+".csv")
}

// FetchTable reads the whole file. A missing file is an empty table.
func (s *CSVStore) FetchTable(sourceID string) ([]string, [][]string, error) {
	file, err := os.Open(s.filePath(sourceID))
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, &StorageError{Op: "fetch", Source: sourceID, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var header []string
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &StorageError{Op: "fetch", Source: sourceID, Err: err}
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

// WriteTable overwrites the whole file.
func (s *CSVStore) WriteTable(sourceID string, header []string, rows [][]string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}

	file, err := os.Create(s.filePath(sourceID))
	if err != nil {
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return &StorageError{Op: "write", Source: sourceID, Err: err}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}
	return nil
}

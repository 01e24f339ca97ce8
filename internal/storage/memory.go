package storage

// MemoryStore holds tables in process memory. Handy as a fixture and as a
// throwaway backend when no persistence is configured.
type MemoryStore struct {
	tables map[string]memoryTable
}

type memoryTable struct {
	header []string
	rows   [][]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]memoryTable)}
}

func (s *MemoryStore) FetchTable(sourceID string) ([]string, [][]string, error) {
	t, ok := s.tables[sourceID]
	if !ok {
		return nil, nil, nil
	}
	header := append([]string(nil), t.header...)
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append([]string(nil), row...)
	}
	return header, rows, nil
}

func (s *MemoryStore) WriteTable(sourceID string, header []string, rows [][]string) error {
	t := memoryTable{header: append([]string(nil), header...)}
	for _, row := range rows {
		t.rows = append(t.rows, append([]string(nil), row...))
	}
	s.tables[sourceID] = t
	return nil
}

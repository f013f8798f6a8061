package db

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps rows in process memory. Rows are copied on the way in and
// out so callers never share maps with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]Row),
		now:    time.Now,
	}
}

func (s *MemoryStore) Insert(_ context.Context, table string, row Row) (Row, error) {
	stored := copyRow(row)
	stored["id"] = uuid.NewString()
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = s.now().UTC().Format(time.RFC3339Nano)
	}

	s.mu.Lock()
	s.tables[table] = append(s.tables[table], stored)
	s.mu.Unlock()

	return copyRow(stored), nil
}

func (s *MemoryStore) Select(_ context.Context, table string, filter Filter) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Row{}
	for _, row := range s.tables[table] {
		if matches(row, filter) {
			out = append(out, copyRow(row))
		}
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, table string, filter Filter, patch Row) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Row{}
	for _, row := range s.tables[table] {
		if !matches(row, filter) {
			continue
		}
		for k, v := range patch {
			if k == "id" {
				continue
			}
			row[k] = copyValue(v)
		}
		out = append(out, copyRow(row))
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, table string, filter Filter) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Row{}
	kept := s.tables[table][:0]
	for _, row := range s.tables[table] {
		if matches(row, filter) {
			out = append(out, row)
			continue
		}
		kept = append(kept, row)
	}
	s.tables[table] = kept
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func matches(row Row, filter Filter) bool {
	v, ok := row[filter.Column].(string)
	if !ok {
		return false
	}
	return slices.Contains(filter.Values, v)
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	if s, ok := v.([]string); ok {
		return slices.Clone(s)
	}
	return v
}

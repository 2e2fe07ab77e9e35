// SPDX-License-Identifier: EPL-2.0

package song

import (
	"context"
	"sync"
)

var _ Store = (*MemStore)(nil)

// MemStore is a thread-safe in-memory Store. The zero value is ready to use.
type MemStore struct {
	mu      sync.RWMutex
	records []Record
	byName  map[string][]int
	lastID  int64
}

func NewMemStore() *MemStore {
	return &MemStore{byName: make(map[string][]int)}
}

func (s *MemStore) Save(ctx context.Context, r Record) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byName == nil {
		s.byName = make(map[string][]int)
	}

	s.lastID++
	r.ID = s.lastID
	s.byName[r.FileName] = append(s.byName[r.FileName], len(s.records))
	s.records = append(s.records, r)

	return r.ID, nil
}

func (s *MemStore) All(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]Record, 0, len(s.records)), s.records...), nil
}

func (s *MemStore) ByName(ctx context.Context, name string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.byName[name]
	out := make([]Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}

	return out, nil
}

// Len is the number of stored records.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

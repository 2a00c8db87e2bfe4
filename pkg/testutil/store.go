package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory types.RecordStore
type MemoryStore struct {
	mu      sync.RWMutex
	records []types.Record
	queries [][]string
	// InsertErr and FindErr are returned by the matching calls when set
	InsertErr error
	FindErr   error
	closed    bool
}

// NewMemoryStore creates an empty store
func NewMemoryStore(records ...types.Record) *MemoryStore {
	s := &MemoryStore{}
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		s.records = append(s.records, rec)
	}
	return s
}

// Insert appends rec with a fresh ID
func (s *MemoryStore) Insert(_ context.Context, rec types.Record) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.InsertErr != nil {
		return types.Record{}, s.InsertErr
	}

	rec.ID = uuid.NewString()
	rec.Tags = append([]string(nil), rec.Tags...)
	s.records = append(s.records, rec)
	return rec, nil
}

// Find calls fn for every record sharing a tag with tags, in insertion order
func (s *MemoryStore) Find(_ context.Context, tags []string, fn func(types.Record) error) error {
	s.mu.Lock()
	s.queries = append(s.queries, append([]string(nil), tags...))
	if s.FindErr != nil {
		s.mu.Unlock()
		return s.FindErr
	}
	matched := make([]types.Record, 0, len(s.records))
	for _, rec := range s.records {
		if types.TagSet(rec.Tags).ContainsAny(tags) {
			matched = append(matched, rec)
		}
	}
	s.mu.Unlock()

	for _, rec := range matched {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close marks the store closed
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Records returns a copy of all stored records
func (s *MemoryStore) Records() []types.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Record(nil), s.records...)
}

// Queries returns the tag sets passed to Find
func (s *MemoryStore) Queries() [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([][]string(nil), s.queries...)
}

// Closed reports whether Close was called
func (s *MemoryStore) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

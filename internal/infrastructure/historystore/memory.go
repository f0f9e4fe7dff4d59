package historystore

import (
	"context"
	"sync"

	"wallet_client/internal/domain/entity"
)

// MemoryStore is the in-process append-only log of confirmed transfers.
// Records live for the lifetime of the serving process: no eviction and no
// persistence across restarts, by contract.
//
// Ids are count+1 under a mutex, so they are strictly increasing even for
// concurrent appends (two tabs, rapid double-submit).
type MemoryStore struct {
	mu      sync.Mutex
	records []entity.TransferRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores the record, assigning the next sequential id, and returns the
// stored record. Any client-supplied id is overwritten.
func (s *MemoryStore) Append(_ context.Context, record entity.TransferRecord) (entity.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = len(s.records) + 1
	s.records = append(s.records, record)
	return record, nil
}

// List returns all records in original append order. Newest-first rendering
// is the presentation layer's job.
func (s *MemoryStore) List(_ context.Context) ([]entity.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]entity.TransferRecord, len(s.records))
	copy(records, s.records)
	return records, nil
}

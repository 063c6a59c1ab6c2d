package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/temperature-dashboard/internal/dataset"
)

var (
	// ErrNotFound is returned when no dataset exists for a given id.
	ErrNotFound = errors.New("dataset not found")
)

// MemoryStore is a concurrency-safe in-memory store of uploaded datasets.
type MemoryStore struct {
	mu sync.RWMutex

	// key: dataset id
	data map[string]*dataset.Dataset

	// retention configuration
	maxEntries int           // max number of datasets kept
	maxAge     time.Duration // optional max age of a dataset

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*dataset.Dataset),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save stores ds under its ID and evicts the oldest datasets beyond maxEntries.
func (s *MemoryStore) Save(ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[ds.ID] = ds

	if s.maxEntries <= 0 || len(s.data) <= s.maxEntries {
		return
	}

	all := make([]*dataset.Dataset, 0, len(s.data))
	for _, d := range s.data {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UploadedAt.Before(all[j].UploadedAt)
	})
	for _, d := range all[:len(all)-s.maxEntries] {
		delete(s.data, d.ID)
	}
}

// Get returns the dataset with the given id unless it is missing or expired.
func (s *MemoryStore) Get(id string) (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.data[id]
	if !ok || s.expired(ds) {
		return nil, ErrNotFound
	}
	return ds, nil
}

// Delete removes a dataset.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// Purge drops expired datasets and returns how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ds := range s.data {
		if s.expired(ds) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored datasets, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expired(ds *dataset.Dataset) bool {
	if s.maxAge <= 0 {
		return false
	}
	return s.now().Sub(ds.UploadedAt) > s.maxAge
}

package storage

import (
	"context"
	"errors"
	"sync"
)

var errNotInitialized = errors.New("store is not initialized")

// MemoryStore keeps records in a map for the life of the process.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	rules       map[string]RuleRecord
}

// NewMemoryStore returns an empty store; call Init before use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.rules = make(map[string]RuleRecord)
	return nil
}

func (s *MemoryStore) SaveRule(_ context.Context, rec RuleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if err := checkVersion(rec); err != nil {
		return err
	}
	s.rules[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetRule(_ context.Context, id string) (RuleRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.rules[id]
	return rec, ok, nil
}

func (s *MemoryStore) ListRules(_ context.Context) ([]RuleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RuleRecord, 0, len(s.rules))
	for _, rec := range s.rules {
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}

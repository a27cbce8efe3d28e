// Package memory provides a fully in-memory audit record store.
// Safe for concurrent access. Intended for unit testing and development.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/autoload/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	records []*store.Record
	closed  bool
}

// New returns a new empty Store.
func New() *Store {
	return &Store{}
}

// Append implements store.Store.
func (s *Store) Append(_ context.Context, rec *store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	cp := *rec
	s.records = append(s.records, &cp)
	return nil
}

// List implements store.Store. Records are returned newest first.
func (s *Store) List(_ context.Context, name string, limit int) ([]*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrClosed
	}

	out := make([]*store.Record, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if name != "" && rec.Name != name {
			continue
		}
		cp := *rec
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Ping implements store.Store.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

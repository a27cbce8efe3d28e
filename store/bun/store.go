// Package bunstore provides a relational audit record store built on the
// Bun ORM. It is dialect-agnostic: hand it any configured *bun.DB
// (Postgres, SQLite, MySQL).
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/xraph/autoload/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a Bun-backed implementation of store.Store.
type Store struct {
	db *bun.DB
}

// New creates a Store on top of an existing Bun database handle.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the records table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*recordModel)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("autoload/bun: migrate: %w", err)
	}
	return nil
}

// Append implements store.Store.
func (s *Store) Append(ctx context.Context, rec *store.Record) error {
	m := toModel(rec)
	if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return fmt.Errorf("autoload/bun: append record: %w", err)
	}
	return nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context, name string, limit int) ([]*store.Record, error) {
	var models []recordModel
	q := s.db.NewSelect().Model(&models).
		Order("created_at DESC")
	if name != "" {
		q = q.Where("name = ?", name)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("autoload/bun: list records: %w", err)
	}

	out := make([]*store.Record, 0, len(models))
	for i := range models {
		rec, err := fromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("autoload/bun: list records convert: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("autoload/bun: ping: %w", err)
	}
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

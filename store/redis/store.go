// Package redis provides a Redis-backed audit record store. Records are
// msgpack-encoded and pushed onto a capped list, so the backend holds a
// bounded window of the most recent resolution events.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/xraph/autoload/id"
	"github.com/xraph/autoload/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

const (
	defaultKey    = "autoload:records"
	defaultMaxLen = 10_000
)

// recordWire is the msgpack representation of a store.Record. IDs and
// durations are flattened to primitives so the encoding is stable across
// library versions.
type recordWire struct {
	ID        string    `msgpack:"id"`
	Domain    string    `msgpack:"domain"`
	Name      string    `msgpack:"name"`
	Event     string    `msgpack:"event"`
	Error     string    `msgpack:"error,omitempty"`
	ElapsedNS int64     `msgpack:"elapsed_ns"`
	CreatedAt time.Time `msgpack:"created_at"`
}

func toWire(rec *store.Record) *recordWire {
	return &recordWire{
		ID:        rec.ID.String(),
		Domain:    rec.Domain,
		Name:      rec.Name,
		Event:     rec.Event,
		Error:     rec.Error,
		ElapsedNS: int64(rec.Elapsed),
		CreatedAt: rec.CreatedAt,
	}
}

func fromWire(w *recordWire) (*store.Record, error) {
	recID, err := id.ParseRecordID(w.ID)
	if err != nil {
		return nil, fmt.Errorf("autoload/redis: decode record id: %w", err)
	}
	return &store.Record{
		ID:        recID,
		Domain:    w.Domain,
		Name:      w.Name,
		Event:     w.Event,
		Error:     w.Error,
		Elapsed:   time.Duration(w.ElapsedNS),
		CreatedAt: w.CreatedAt,
	}, nil
}

// Store is a Redis-backed implementation of store.Store.
type Store struct {
	client goredis.UniversalClient
	key    string
	maxLen int64
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the Redis list key holding the records.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithMaxLen caps how many records the list retains. A non-positive
// value disables trimming.
func WithMaxLen(n int64) Option {
	return func(s *Store) { s.maxLen = n }
}

// New creates a Store on top of an existing Redis client. The caller
// owns the client's lifecycle unless Close is used.
func New(client goredis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		key:    defaultKey,
		maxLen: defaultMaxLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append implements store.Store. The push and trim run in one pipeline.
func (s *Store) Append(ctx context.Context, rec *store.Record) error {
	data, err := msgpack.Marshal(toWire(rec))
	if err != nil {
		return fmt.Errorf("autoload/redis: encode record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	if s.maxLen > 0 {
		pipe.LTrim(ctx, s.key, 0, s.maxLen-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("autoload/redis: append record: %w", err)
	}
	return nil
}

// List implements store.Store. Records are newest first by construction
// (LPush). Name filtering happens client-side over the retained window.
func (s *Store) List(ctx context.Context, name string, limit int) ([]*store.Record, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("autoload/redis: list records: %w", err)
	}

	out := make([]*store.Record, 0, len(raw))
	for _, item := range raw {
		var w recordWire
		if err := msgpack.Unmarshal([]byte(item), &w); err != nil {
			return nil, fmt.Errorf("autoload/redis: decode record: %w", err)
		}
		rec, err := fromWire(&w)
		if err != nil {
			return nil, err
		}
		if name != "" && rec.Name != name {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("autoload/redis: ping: %w", err)
	}
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.client.Close()
}

// Package store defines the audit record model and the store interface
// its backends implement. A record captures one resolution event on a
// dispatch domain: a generation, a one-shot answer, a decline, a
// reserved-name no-op, a depth-guard trip, or a generation timeout.
//
// Backends: store/memory (tests and development), store/redis (capped
// list), store/bun (relational).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/xraph/autoload/id"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("autoload/store: store closed")

// Resolution event kinds recorded in Record.Event.
const (
	EventGenerated = "generated"
	EventAnswered  = "answered"
	EventDeclined  = "declined"
	EventReserved  = "reserved-noop"
	EventRecursion = "recursion-blocked"
	EventTimeout   = "generation-timeout"
)

// Record is one audit entry for a resolution event.
type Record struct {
	// ID is the record's unique identifier (prefix "rec").
	ID id.RecordID

	// Domain is the dispatch domain the event occurred on.
	Domain string

	// Name is the dispatched member name.
	Name string

	// Event is one of the Event* constants.
	Event string

	// Error holds the failure message for error events, empty otherwise.
	Error string

	// Elapsed is the resolver invocation time for generation events,
	// zero otherwise.
	Elapsed time.Duration

	// CreatedAt is when the event was recorded, in UTC.
	CreatedAt time.Time
}

// Store persists audit records.
type Store interface {
	// Append persists a record.
	Append(ctx context.Context, rec *Record) error

	// List returns up to limit records, newest first. An empty name
	// returns records for all names; a non-empty name filters to it.
	// A non-positive limit means no limit.
	List(ctx context.Context, name string, limit int) ([]*Record, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

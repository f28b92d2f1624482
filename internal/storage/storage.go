// Package storage defines the Store interface, the contract any
// persistence backend must satisfy to serve one kind of record.
//
// Handlers and controllers depend only on this interface, so the SQL
// backends (sqlite, postgres) and the in-memory backend used by tests are
// interchangeable. Swapping one for another is a one-line change in main.
package storage

import (
	"context"
	"errors"

	"github.com/ucsb-cs156/campus-api/internal/types"
)

// ErrNotFound is returned (possibly wrapped) by FindByID when no record
// has the requested key. Check it with errors.Is.
var ErrNotFound = errors.New("storage: record not found")

// Store persists records of type E keyed by K.
//
// Implementations are safe for concurrent use; serializing conflicting
// writes to the same key is their job, not the caller's.
type Store[E types.Entity[E, K], K comparable] interface {
	// FindAll returns every record in insertion order.
	// Returns an empty slice (not nil) when there are none.
	FindAll(ctx context.Context) ([]E, error)

	// FindByID fetches a single record, or ErrNotFound.
	FindByID(ctx context.Context, key K) (E, error)

	// Save inserts or overwrites a record and returns what was stored.
	// For kinds with generated keys a zero key means "insert and assign".
	Save(ctx context.Context, entity E) (E, error)

	// Delete removes the record with entity's key. Deleting a record that
	// is already gone is not an error.
	Delete(ctx context.Context, entity E) error
}

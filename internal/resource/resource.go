// Package resource implements the five-operation CRUD contract shared by
// every record kind: list, get, create, update and delete by key.
//
// A Controller is instantiated once per kind from a Kind descriptor and a
// storage.Store. It knows nothing about HTTP or roles; the handlers in
// internal/http/handlers/crud translate requests into controller calls and
// controller errors into status codes.
package resource

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ucsb-cs156/campus-api/internal/storage"
	"github.com/ucsb-cs156/campus-api/internal/types"
)

// Kind describes one record kind.
type Kind[E types.Entity[E, K], K comparable] struct {
	// Name appears in messages: "<Name> with id <key> not found".
	Name string

	// Path is the URL prefix, e.g. "/api/helprequests".
	Path string

	// KeyParam is the query parameter carrying the key ("id", "orgCode").
	KeyParam string

	// ParseKey converts the KeyParam value into a key.
	ParseKey func(string) (K, error)

	// Decode builds a new record from create parameters. Problems are
	// recorded on p and reported by the caller through p.Err().
	Decode func(p *Params) E
}

// Int64Key parses decimal ids.
func Int64Key(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// StringKey accepts any non-empty string as a key.
func StringKey(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty key")
	}
	return s, nil
}

// Controller runs the CRUD operations for one Kind against one Store.
// It holds no mutable state of its own and is safe for concurrent use.
type Controller[E types.Entity[E, K], K comparable] struct {
	kind  Kind[E, K]
	store storage.Store[E, K]
}

// New wires a controller for kind backed by store.
func New[E types.Entity[E, K], K comparable](kind Kind[E, K], store storage.Store[E, K]) *Controller[E, K] {
	return &Controller[E, K]{kind: kind, store: store}
}

func (c *Controller[E, K]) Kind() Kind[E, K] { return c.kind }

// ParseKey converts a raw key parameter, reporting failures as
// *InvalidArgumentError.
func (c *Controller[E, K]) ParseKey(raw string) (K, error) {
	key, err := c.kind.ParseKey(raw)
	if err != nil {
		var zero K
		return zero, invalidArgument("invalid %s %q", c.kind.KeyParam, raw)
	}
	return key, nil
}

// List returns every record in insertion order.
func (c *Controller[E, K]) List(ctx context.Context) ([]E, error) {
	all, err := c.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s.List: %w", c.kind.Name, err)
	}
	return all, nil
}

// Get returns the record with key, or *NotFoundError.
func (c *Controller[E, K]) Get(ctx context.Context, key K) (E, error) {
	e, err := c.store.FindByID(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return e, &NotFoundError{Kind: c.kind.Name, Key: key}
		}
		return e, fmt.Errorf("%s.Get: %w", c.kind.Name, err)
	}
	return e, nil
}

// Create validates entity and persists it. Nothing reaches the store when
// validation fails.
func (c *Controller[E, K]) Create(ctx context.Context, entity E) (E, error) {
	if err := Validate(entity); err != nil {
		return entity, err
	}

	saved, err := c.store.Save(ctx, entity)
	if err != nil {
		return saved, fmt.Errorf("%s.Create: %w", c.kind.Name, err)
	}
	return saved, nil
}

// Update replaces every field of the record with key by the fields of
// incoming. The payload is validated before the lookup, and a missing
// record never reaches Save.
func (c *Controller[E, K]) Update(ctx context.Context, key K, incoming E) (E, error) {
	if err := Validate(incoming); err != nil {
		return incoming, err
	}

	if _, err := c.Get(ctx, key); err != nil {
		return incoming, err
	}

	// the stored key wins over whatever the payload carried
	updated, err := c.store.Save(ctx, incoming.WithKey(key))
	if err != nil {
		return updated, fmt.Errorf("%s.Update: %w", c.kind.Name, err)
	}
	return updated, nil
}

// Delete removes the record with key and returns the confirmation
// message, or *NotFoundError.
func (c *Controller[E, K]) Delete(ctx context.Context, key K) (string, error) {
	e, err := c.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if err := c.store.Delete(ctx, e); err != nil {
		return "", fmt.Errorf("%s.Delete: %w", c.kind.Name, err)
	}
	return fmt.Sprintf("%s with id %v deleted", c.kind.Name, key), nil
}

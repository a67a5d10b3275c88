//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"

	"storefront-checkout/internal/domain/cart"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore is a CartStore over a map; snapshots round-trip through Export/Load like the Redis store.
type memoryStore struct {
	carts map[string]cart.Snapshot
	saves int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string]cart.Snapshot{}}
}

func (s *memoryStore) Load(_ context.Context, sessionID string) (cart.Snapshot, error) {
	snap, ok := s.carts[sessionID]
	if !ok {
		return cart.EmptySnapshot(), nil
	}
	return snap, nil
}

func (s *memoryStore) Save(_ context.Context, sessionID string, snap cart.Snapshot) error {
	s.carts[sessionID] = snap
	s.saves++
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

func (s *memoryStore) cart(sessionID string) *cart.Cart {
	snap, _ := s.Load(context.Background(), sessionID)
	return cart.New(snap)
}

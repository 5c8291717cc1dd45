// internal/store/memory.go
//
// In-memory implementation of the Store interface.
//
// Characteristics:
//   - Snapshots are kept in an ARC cache; past the size limit the least
//     used sessions are evicted and their games are lost.
//   - Concurrency-safe (the ARC cache locks internally).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/robalobadob/reddle/internal/game"
)

// memory is an ARC-cache-backed Store.
type memory struct {
	cache *lru.ARCCache // game.Snapshot keyed by ID
}

// NewMemoryStore constructs an in-memory Store holding at most size sessions.
func NewMemoryStore(size int) (Store, error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("lru new instance of arc cache: %w", err)
	}
	return &memory{cache: c}, nil
}

// Save stores a detached copy of the snapshot.
func (m *memory) Save(ctx context.Context, s game.Snapshot) error {
	m.cache.Add(s.ID, detach(s))
	return nil
}

// Get returns a copy of the stored snapshot or ErrNotFound.
func (m *memory) Get(ctx context.Context, id string) (game.Snapshot, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}
	return detach(v.(game.Snapshot)), nil
}

func (m *memory) Close() error {
	m.cache.Purge()
	return nil
}

// detach copies the message slice so callers never share it with the cache.
func detach(s game.Snapshot) game.Snapshot {
	s.Messages = append([]game.Message(nil), s.Messages...)
	return s
}

// internal/store/store.go
//
// Persistence interface for game sessions, plus backend selection.
// Backends store game.Snapshot values keyed by game ID:
//   - memory: bounded ARC cache (this process only).
//   - sqlite: a SQLite table with JSON state.
//   - redis:  JSON values with a TTL.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/reddle/internal/config"
	"github.com/robalobadob/reddle/internal/game"
)

// ErrNotFound is returned by Get when no session exists for the ID.
var ErrNotFound = errors.New("store: not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, s game.Snapshot) error

	// Get retrieves a game by ID.
	// Returns ErrNotFound if the game is missing or expired.
	Get(ctx context.Context, id string) (game.Snapshot, error)

	// Close releases backend resources.
	Close() error
}

// Open constructs the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "", "memory":
		return NewMemoryStore(cfg.StoreSize)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.StoreDSN)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.StoreDriver)
	}
}

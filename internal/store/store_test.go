package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/robalobadob/reddle/internal/config"
	"github.com/robalobadob/reddle/internal/game"
)

// playedSnapshot returns the state of a game with a few log entries.
func playedSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	g := game.New(func() string { return "apple" })
	g.NewGame()
	if err := g.Answer("^a"); err != nil {
		t.Fatal(err)
	}
	if err := g.Answer("grape"); err != nil {
		t.Fatal(err)
	}
	return g.State()
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	snap := playedSnapshot(t)
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", snap, got)
	}

	// Overwrite with a completed game.
	g := game.Restore(got, nil)
	g.GiveUp()
	if err := st.Save(ctx, g.State()); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, err = st.Get(ctx, snap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != game.StatusCompleted || len(got.Messages) != 4 {
		t.Errorf("expected updated session, got %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	st, err := NewMemoryStore(8)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	exerciseStore(t, st)
}

func TestMemoryStoreDetachesSnapshots(t *testing.T) {
	st, _ := NewMemoryStore(8)
	ctx := context.Background()
	snap := playedSnapshot(t)
	_ = st.Save(ctx, snap)

	snap.Messages[0].Kind = game.KindCorrect
	got, _ := st.Get(ctx, snap.ID)
	if got.Messages[0].Kind != game.KindStart {
		t.Error("stored snapshot shares memory with caller")
	}
}

func TestMemoryStoreEvicts(t *testing.T) {
	st, _ := NewMemoryStore(2)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = st.Save(ctx, game.Snapshot{ID: strconv.Itoa(i), Status: game.StatusNotStarted})
	}
	if _, err := st.Get(ctx, "0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected oldest session evicted, got %v", err)
	}
	if _, err := st.Get(ctx, "4"); err != nil {
		t.Errorf("newest session missing: %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "reddle.db")
	st, err := NewSQLiteStore(context.Background(), dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	exerciseStore(t, st)
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "reddle.db")
	ctx := context.Background()

	st, err := NewSQLiteStore(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	snap := playedSnapshot(t)
	if err := st.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}
	_ = st.Close()

	st, err = NewSQLiteStore(ctx, dsn)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if _, err := st.Get(ctx, snap.ID); err != nil {
		t.Errorf("session lost across reopen: %v", err)
	}
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	st, err := NewRedisStore(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	exerciseStore(t, st)
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.Config{StoreDriver: "mongo"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestOpenMemory(t *testing.T) {
	st, err := Open(context.Background(), config.Config{StoreDriver: "memory", StoreSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	exerciseStore(t, st)
}

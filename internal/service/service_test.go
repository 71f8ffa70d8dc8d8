package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aliskhannn/growth-tracker/internal/infra/sqlite"
	sqliterepo "github.com/aliskhannn/growth-tracker/internal/infra/sqlite/repository"
	"github.com/aliskhannn/growth-tracker/internal/repository"
)

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) repository.Store {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	store := sqliterepo.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ensureUser(t *testing.T, store repository.Store, userID int64) {
	t.Helper()
	if _, err := NewUserService(store).EnsureUser(context.Background(), userID, "tester"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
}

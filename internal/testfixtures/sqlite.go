package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/group-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style tests.
type SQLiteHarness struct {
	Users   *sqlite.UserRepository
	Groups  *sqlite.GroupRepository
	Busy    *sqlite.BusyRepository
	Events  *sqlite.EventRepository
	Invites *sqlite.InviteRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a migrated SQLite database in a temporary
// directory. Cleanup is registered with the provided testing.TB; calling
// Close earlier is allowed.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "scheduler.db")

	store, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Users:   sqlite.NewUserRepository(store),
		Groups:  sqlite.NewGroupRepository(store),
		Busy:    sqlite.NewBusyRepository(store),
		Events:  sqlite.NewEventRepository(store),
		Invites: sqlite.NewInviteRepository(store),
		cleanup: func() {
			_ = store.Close()
		},
	}
	tb.Cleanup(harness.Close)
	return harness
}

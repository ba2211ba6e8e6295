package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/executive-scheduler/internal/persistence"
	"github.com/example/executive-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Users       persistence.UserRepository
	Sessions    persistence.SessionRepository
	Meetings    persistence.MeetingRepository
	Leaves      persistence.LeaveRepository
	Engagements persistence.EngagementRepository
	Escalations persistence.EscalationRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness backed by a temporary database
// file that is migrated automatically. A cleanup callback is registered with
// the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "scheduler.db")

	pool, err := sqlite.NewConnectionPool("file:" + path + "?_foreign_keys=on")
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := sqlite.Migrate(context.Background(), pool); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Users:       sqlite.NewUserRepository(pool),
		Sessions:    sqlite.NewSessionRepository(pool),
		Meetings:    sqlite.NewMeetingRepository(pool),
		Leaves:      sqlite.NewLeaveRepository(pool),
		Engagements: sqlite.NewEngagementRepository(pool),
		Escalations: sqlite.NewEscalationRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

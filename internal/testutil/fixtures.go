package testutil

import (
	"testing"
	"time"

	"github.com/drossen/unplug/internal/domain"
	"github.com/drossen/unplug/internal/store"
	"github.com/google/uuid"
)

// NewTestStore creates an in-memory key-value store.
func NewTestStore() *store.MemoryStore {
	return store.NewMemoryStore()
}

// NewTestSQLiteStore creates an in-memory SQLite store closed when the
// test completes.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Session options
type SessionOption func(*domain.FocusSession)

func WithBlockedApps(apps ...string) SessionOption {
	return func(s *domain.FocusSession) {
		s.BlockedApps = apps
	}
}

func WithCompleted(endedAt time.Time) SessionOption {
	return func(s *domain.FocusSession) {
		s.Completed = true
		s.EndedAt = &endedAt
	}
}

// NewTestFocusSession builds a session starting at start with the given
// duration.
func NewTestFocusSession(start time.Time, duration time.Duration, opts ...SessionOption) domain.FocusSession {
	s := domain.FocusSession{
		ID:          uuid.New().String(),
		StartedAt:   start,
		DurationSec: int(duration.Seconds()),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestDailyUsage builds a day aggregate from app -> usage seconds, with
// one launch per app.
func NewTestDailyUsage(day time.Time, appUsage map[string]int) domain.DailyUsage {
	d := domain.NewDailyUsage(day)
	for app, sec := range appUsage {
		d.AddLaunch(app)
		d.AddUsage(app, sec)
	}
	return d
}

// Package notify defines the deferred-notification boundary. The core only
// requests and cancels fire-once alerts by identifier; delivering them is
// the host platform's job.
package notify

import (
	"io"
	"log/slog"
	"time"
)

// Identifiers for the alerts a focus session requests. A session's alerts
// are cancelable as a batch when it ends early.
const (
	IDFocusStart          = "focusStart"
	IDFocusHalfway        = "focusHalfway"
	IDFocusAlmostDone     = "focusAlmostDone"
	IDFocusComplete       = "focusComplete"
	IDFocusReminder       = "focusReminder"
	IDScheduledFocusStart = "scheduledFocusStart"
)

// SessionAlertIDs lists every identifier a session may have outstanding.
var SessionAlertIDs = []string{
	IDFocusStart,
	IDFocusHalfway,
	IDFocusAlmostDone,
	IDFocusComplete,
	IDFocusReminder,
	IDScheduledFocusStart,
}

// Scheduler schedules fire-once alerts at a relative or absolute time.
// Canceling an identifier with no outstanding alert is a no-op.
type Scheduler interface {
	ScheduleAt(id string, at time.Time, message string) error
	ScheduleIn(id string, after time.Duration, message string) error
	Cancel(ids ...string)
}

// NoopScheduler discards all requests. Useful as a default.
type NoopScheduler struct{}

func (NoopScheduler) ScheduleAt(string, time.Time, string) error     { return nil }
func (NoopScheduler) ScheduleIn(string, time.Duration, string) error { return nil }
func (NoopScheduler) Cancel(...string)                               {}

// LogScheduler records requests as structured log lines. It stands in for
// the OS-level scheduler when the process has nowhere to deliver alerts.
type LogScheduler struct {
	logger *slog.Logger
}

// NewLogScheduler creates a scheduler that logs requests to w.
func NewLogScheduler(w io.Writer) *LogScheduler {
	return &LogScheduler{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (s *LogScheduler) ScheduleAt(id string, at time.Time, message string) error {
	s.logger.Info("notification_scheduled",
		"id", id,
		"at", at.UTC().Format(time.RFC3339),
		"message", message,
	)
	return nil
}

func (s *LogScheduler) ScheduleIn(id string, after time.Duration, message string) error {
	s.logger.Info("notification_scheduled",
		"id", id,
		"after", after.String(),
		"message", message,
	)
	return nil
}

func (s *LogScheduler) Cancel(ids ...string) {
	for _, id := range ids {
		s.logger.Info("notification_canceled", "id", id)
	}
}

var (
	_ Scheduler = NoopScheduler{}
	_ Scheduler = (*LogScheduler)(nil)
)

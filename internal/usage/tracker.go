package usage

import (
	"log/slog"
	"sync"
	"time"

	"github.com/drossen/unplug/internal/domain"
	"github.com/drossen/unplug/internal/store"
)

type EventKind string

const (
	// EventUsageRecorded fires after a successful open or close mutation.
	EventUsageRecorded EventKind = "usage_recorded"
	// EventGoalUpdated fires after the goal is replaced.
	EventGoalUpdated EventKind = "usage_goal_updated"
	// EventSummaryGenerated fires after a weekly summary is appended.
	EventSummaryGenerated EventKind = "weekly_summary_generated"
)

// Event is delivered synchronously after the triggering mutation has been
// persisted.
type Event struct {
	Kind EventKind
}

// Listener receives tracker events on the mutating caller's goroutine.
type Listener func(Event)

// Tracker aggregates per-application open/close sessions into daily and
// weekly usage against a user-configured goal. It instruments at most one
// open application at a time.
type Tracker struct {
	mu           sync.Mutex
	store        store.Store
	now          func() time.Time
	firstWeekday time.Weekday
	logger       *slog.Logger
	listeners    []Listener

	history   []domain.DailyUsage
	summaries []domain.WeeklyUsageSummary
	goal      domain.UsageGoal
	pending   *domain.PendingAppSession
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock injects the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger injects a structured logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// WithFirstWeekday sets the locale's first weekday for week boundaries.
// Defaults to Monday.
func WithFirstWeekday(d time.Weekday) Option {
	return func(t *Tracker) { t.firstWeekday = d }
}

// New creates a Tracker and restores its state from the store. Malformed
// stored values restore as empty state; a missing goal restores as the
// default goal.
func New(st store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:        st,
		now:          time.Now,
		firstWeekday: time.Monday,
		logger:       slog.New(slog.DiscardHandler),
		goal:         domain.DefaultUsageGoal(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if h, ok := store.Load[[]domain.DailyUsage](st, store.KeyUsageHistory); ok {
		t.history = h
	}
	if s, ok := store.Load[[]domain.WeeklyUsageSummary](st, store.KeyWeeklyUsage); ok {
		t.summaries = s
	}
	if g, ok := store.Load[domain.UsageGoal](st, store.KeyUsageGoal); ok {
		t.goal = g
	}
	if p, ok := store.Load[domain.PendingAppSession](st, store.KeyPendingAppSession); ok {
		t.pending = &p
	}

	return t
}

// Subscribe registers a listener for tracker events.
func (t *Tracker) Subscribe(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// RecordAppOpen notes that appName was just opened. It fails, with no
// state change, while any pending session exists: the tracker only ever
// instruments one open application at a time.
func (t *Tracker) RecordAppOpen(appName string) bool {
	t.mu.Lock()
	if t.pending != nil {
		t.mu.Unlock()
		return false
	}
	now := t.now()
	t.pending = &domain.PendingAppSession{AppName: appName, StartedAt: now}
	day := t.todayLocked(now)
	day.AddLaunch(appName)
	t.persistHistoryLocked()
	t.persistPendingLocked()

	t.logger.Info("app_opened", "app", appName)
	t.mu.Unlock()
	t.emit(Event{Kind: EventUsageRecorded})
	return true
}

// RecordAppClose notes that appName was just closed. It is a no-op,
// returning false, when no pending session matches. The elapsed time is
// attributed entirely to the day the close lands on, even across a
// midnight boundary.
func (t *Tracker) RecordAppClose(appName string) bool {
	t.mu.Lock()
	if t.pending == nil || t.pending.AppName != appName {
		t.mu.Unlock()
		return false
	}
	now := t.now()
	elapsed := int(now.Sub(t.pending.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	day := t.todayLocked(now)
	day.AddUsage(appName, elapsed)
	t.pending = nil
	t.persistHistoryLocked()
	t.persistPendingLocked()

	t.logger.Info("app_closed", "app", appName, "elapsed_sec", elapsed)
	t.mu.Unlock()
	t.emit(Event{Kind: EventUsageRecorded})
	return true
}

// PendingSession returns the in-flight open-app record, if any.
func (t *Tracker) PendingSession() (domain.PendingAppSession, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return domain.PendingAppSession{}, false
	}
	return *t.pending, true
}

// Goal returns the current usage goal.
func (t *Tracker) Goal() domain.UsageGoal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.goal
}

// SetGoal replaces the usage goal and persists it.
func (t *Tracker) SetGoal(g domain.UsageGoal) {
	t.mu.Lock()
	t.goal = g
	_ = store.Save(t.store, store.KeyUsageGoal, t.goal)
	t.logger.Info("usage_goal_updated",
		"daily_limit_sec", g.DailyLimitSec,
		"weekly_reduction_target", g.WeeklyReductionTarget,
	)
	t.mu.Unlock()
	t.emit(Event{Kind: EventGoalUpdated})
}

// GoalProgress reports today's usage against the daily limit. The percent
// is zero when the limit is zero.
func (t *Tracker) GoalProgress() (currentSec, limitSec int, percentOfLimit float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	currentSec = t.todayTotalLocked(t.now())
	limitSec = t.goal.DailyLimitSec
	if limitSec > 0 {
		percentOfLimit = 100 * float64(currentSec) / float64(limitSec)
	}
	return currentSec, limitSec, percentOfLimit
}

// HasExceededDailyLimit reports whether today's total is over the goal's
// daily limit.
func (t *Tracker) HasExceededDailyLimit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.todayTotalLocked(t.now()) > t.goal.DailyLimitSec
}

// todayLocked returns the aggregate row for the day containing now,
// creating it on first use.
func (t *Tracker) todayLocked(now time.Time) *domain.DailyUsage {
	day := domain.DayOf(now)
	for i := range t.history {
		if t.history[i].Date.Equal(day) {
			return &t.history[i]
		}
	}
	t.history = append(t.history, domain.NewDailyUsage(now))
	return &t.history[len(t.history)-1]
}

func (t *Tracker) todayTotalLocked(now time.Time) int {
	day := domain.DayOf(now)
	for i := range t.history {
		if t.history[i].Date.Equal(day) {
			return t.history[i].TotalSec
		}
	}
	return 0
}

func (t *Tracker) persistHistoryLocked() {
	_ = store.Save(t.store, store.KeyUsageHistory, t.history)
}

func (t *Tracker) persistPendingLocked() {
	if t.pending == nil {
		_ = t.store.Delete(store.KeyPendingAppSession)
		return
	}
	_ = store.Save(t.store, store.KeyPendingAppSession, *t.pending)
}

func (t *Tracker) persistSummariesLocked() {
	_ = store.Save(t.store, store.KeyWeeklyUsage, t.summaries)
}

func (t *Tracker) emit(e Event) {
	t.mu.Lock()
	listeners := append([]Listener(nil), t.listeners...)
	t.mu.Unlock()
	for _, l := range listeners {
		l(e)
	}
}

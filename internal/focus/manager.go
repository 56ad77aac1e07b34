package focus

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/drossen/unplug/internal/domain"
	"github.com/drossen/unplug/internal/notify"
	"github.com/drossen/unplug/internal/store"
	"github.com/google/uuid"
)

// ErrInvalidDuration is returned when a session is requested with a
// non-positive duration.
var ErrInvalidDuration = errors.New("focus session duration must be positive")

const defaultTickInterval = time.Second

// Manager owns the focus session lifecycle: at most one active session, at
// most one scheduled session, and an append-only history. All state is
// persisted through the injected store before any event is emitted.
type Manager struct {
	mu        sync.Mutex
	store     store.Store
	sched     notify.Scheduler
	now       func() time.Time
	logger    *slog.Logger
	tick      time.Duration
	listeners []Listener

	active    *domain.FocusSession
	scheduled *domain.FocusSession
	history   []domain.FocusSession
	blocklist []string

	tickerStop chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger injects a structured logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithTickInterval overrides the 1-second reconciliation tick. A zero or
// negative interval disables the background ticker; callers then drive
// reconciliation through Tick.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) { m.tick = d }
}

// New creates a Manager, restores its state from the store, and runs one
// reconciliation pass. Malformed stored values restore as empty state.
func New(st store.Store, sched notify.Scheduler, opts ...Option) *Manager {
	m := &Manager{
		store:  st,
		sched:  sched,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
		tick:   defaultTickInterval,
	}
	for _, opt := range opts {
		opt(m)
	}

	if s, ok := store.Load[domain.FocusSession](st, store.KeyActiveFocusSession); ok {
		m.active = &s
	}
	if s, ok := store.Load[domain.FocusSession](st, store.KeyScheduledFocusSession); ok {
		m.scheduled = &s
	}
	if h, ok := store.Load[[]domain.FocusSession](st, store.KeyFocusSessions); ok {
		m.history = h
	}
	if apps, ok := store.Load[[]string](st, store.KeyDistractingApps); ok {
		m.blocklist = apps
	}

	m.mu.Lock()
	events := m.reconcileLocked(m.now())
	m.mu.Unlock()
	m.emit(events)

	return m
}

// Subscribe registers a listener for state-changed and timer-updated
// events.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// StartNow creates and activates a session for the given duration. A nil
// blockedApps falls back to the current distracting-apps list; an empty
// slice blocks nothing. An already active session is force-ended first and
// kept in history marked as not completed by the user.
func (m *Manager) StartNow(duration time.Duration, blockedApps []string) (*domain.FocusSession, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	m.mu.Lock()
	now := m.now()
	events := m.reconcileLocked(now)
	if m.active != nil {
		events = append(events, m.endLocked(now, false)...)
	}

	if blockedApps == nil {
		blockedApps = append([]string(nil), m.blocklist...)
	}
	s := &domain.FocusSession{
		ID:          uuid.New().String(),
		StartedAt:   now,
		DurationSec: int(duration.Seconds()),
		BlockedApps: blockedApps,
	}
	m.active = s
	m.history = append(m.history, *s)
	m.persistActiveLocked()
	m.persistHistoryLocked()
	m.armTickerLocked()
	m.requestSessionAlerts(s)

	m.logger.Info("focus_session_started",
		"session_id", s.ID,
		"duration_sec", s.DurationSec,
		"blocked_apps", len(s.BlockedApps),
	)
	snapshot := *s
	events = append(events, Event{
		Kind:      EventStateChanged,
		State:     domain.StateActive,
		Session:   &snapshot,
		Remaining: s.Remaining(now),
	})
	m.mu.Unlock()
	m.emit(events)

	return &snapshot, nil
}

// Schedule records a session to activate when its window opens. The start
// time is not validated against the clock: reconciliation promotes a
// window that is already open and discards one that has fully elapsed. Any
// previously scheduled session is replaced.
func (m *Manager) Schedule(startAt time.Time, duration time.Duration, blockedApps []string) (*domain.FocusSession, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	m.mu.Lock()
	now := m.now()
	if blockedApps == nil {
		blockedApps = append([]string(nil), m.blocklist...)
	}
	s := &domain.FocusSession{
		ID:          uuid.New().String(),
		StartedAt:   startAt,
		DurationSec: int(duration.Seconds()),
		BlockedApps: blockedApps,
	}
	m.scheduled = s
	m.persistScheduledLocked()

	reminderAt := startAt.Add(-5 * time.Minute)
	if reminderAt.After(now) {
		_ = m.sched.ScheduleAt(notify.IDFocusReminder, reminderAt, "Focus session starts in 5 minutes")
	}
	_ = m.sched.ScheduleAt(notify.IDScheduledFocusStart, startAt, "Scheduled focus session starting")

	m.logger.Info("focus_session_scheduled",
		"session_id", s.ID,
		"start_at", startAt.UTC().Format(time.RFC3339),
		"duration_sec", s.DurationSec,
	)
	snapshot := *s
	events := []Event{{
		Kind:    EventStateChanged,
		State:   m.currentStateLocked(now),
		Session: &snapshot,
	}}
	m.mu.Unlock()
	m.emit(events)

	return &snapshot, nil
}

// End completes the active session. completed=false records an early,
// not-completed-by-user end. No-op when no session is active.
func (m *Manager) End(completed bool) {
	m.mu.Lock()
	events := m.endLocked(m.now(), completed)
	m.mu.Unlock()
	m.emit(events)
}

// CancelScheduled clears the scheduled slot. No-op when nothing is
// scheduled.
func (m *Manager) CancelScheduled() {
	m.mu.Lock()
	if m.scheduled == nil {
		m.mu.Unlock()
		return
	}
	id := m.scheduled.ID
	m.scheduled = nil
	m.persistScheduledLocked()
	m.sched.Cancel(notify.IDFocusReminder, notify.IDScheduledFocusStart)

	m.logger.Info("focus_schedule_canceled", "session_id", id)
	events := []Event{{
		Kind:  EventStateChanged,
		State: m.currentStateLocked(m.now()),
	}}
	m.mu.Unlock()
	m.emit(events)
}

// IsBlocked reports whether appName is blocked by the currently active
// session.
func (m *Manager) IsBlocked(appName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil && m.active.IsActive(m.now()) && m.active.Blocks(appName)
}

// CurrentState reports the caller-visible state. Active takes priority
// over scheduled, which takes priority over inactive.
func (m *Manager) CurrentState() domain.FocusState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentStateLocked(m.now())
}

// ActiveSession returns a snapshot of the active session, if any.
func (m *Manager) ActiveSession() (domain.FocusSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || !m.active.IsActive(m.now()) {
		return domain.FocusSession{}, false
	}
	return *m.active, true
}

// ScheduledSession returns a snapshot of the scheduled session, if any.
func (m *Manager) ScheduledSession() (domain.FocusSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scheduled == nil {
		return domain.FocusSession{}, false
	}
	return *m.scheduled, true
}

// Reconcile re-evaluates session state against the clock. It runs once at
// construction and on every tick; callers with a disabled ticker drive it
// directly.
func (m *Manager) Reconcile() {
	m.mu.Lock()
	events := m.reconcileLocked(m.now())
	m.mu.Unlock()
	m.emit(events)
}

// Tick runs one reconciliation pass and, while a session remains active,
// emits a timer-updated event for UI consumers.
func (m *Manager) Tick() {
	m.mu.Lock()
	now := m.now()
	events := m.reconcileLocked(now)
	if m.active != nil && m.active.IsActive(now) {
		snapshot := *m.active
		events = append(events, Event{
			Kind:      EventTimerUpdated,
			State:     domain.StateActive,
			Session:   &snapshot,
			Remaining: snapshot.Remaining(now),
		})
	}
	m.mu.Unlock()
	m.emit(events)
}

// Stop halts the background ticker. Session state is untouched.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTickerLocked()
}

// currentStateLocked derives the state from the two slots.
func (m *Manager) currentStateLocked(now time.Time) domain.FocusState {
	if m.active != nil && m.active.IsActive(now) {
		return domain.StateActive
	}
	if m.scheduled != nil && now.Before(m.scheduled.EndTime()) {
		return domain.StateScheduled
	}
	return domain.StateInactive
}

// reconcileLocked settles expired and due sessions. Step order matters: an
// expired active session completes before a due scheduled one promotes.
func (m *Manager) reconcileLocked(now time.Time) []Event {
	var events []Event

	if m.active != nil {
		if !m.active.IsActive(now) {
			events = append(events, m.endLocked(now, true)...)
		} else {
			m.armTickerLocked()
		}
	}

	if m.scheduled != nil {
		s := m.scheduled
		switch {
		case s.IsActive(now):
			// Promote: the session enters history here, not at schedule
			// time.
			m.scheduled = nil
			m.active = s
			m.history = append(m.history, *s)
			m.persistScheduledLocked()
			m.persistActiveLocked()
			m.persistHistoryLocked()
			m.armTickerLocked()
			m.requestSessionAlerts(s)
			m.logger.Info("focus_session_promoted", "session_id", s.ID)
			snapshot := *s
			events = append(events, Event{
				Kind:      EventStateChanged,
				State:     domain.StateActive,
				Session:   &snapshot,
				Remaining: s.Remaining(now),
			})
		case !now.Before(s.EndTime()):
			// The window fully elapsed without activation. Never run a
			// session in the past; drop it without an event.
			m.scheduled = nil
			m.persistScheduledLocked()
			m.logger.Info("focus_schedule_expired", "session_id", s.ID)
		}
	}

	return events
}

// endLocked completes the active session, updates its history entry in
// place, and cancels outstanding alerts.
func (m *Manager) endLocked(now time.Time, completed bool) []Event {
	if m.active == nil {
		return nil
	}
	s := m.active
	s.Completed = completed
	ended := now
	s.EndedAt = &ended

	for i := range m.history {
		if m.history[i].ID == s.ID {
			m.history[i] = *s
			break
		}
	}
	m.active = nil
	m.persistActiveLocked()
	m.persistHistoryLocked()
	m.stopTickerLocked()
	m.sched.Cancel(notify.SessionAlertIDs...)

	m.logger.Info("focus_session_ended",
		"session_id", s.ID,
		"completed", completed,
	)
	snapshot := *s
	return []Event{{
		Kind:    EventStateChanged,
		State:   m.currentStateLocked(now),
		Session: &snapshot,
	}}
}

// requestSessionAlerts schedules the in-session alerts: start, halfway,
// one-minute-remaining (only for sessions longer than two minutes), and
// completion.
func (m *Manager) requestSessionAlerts(s *domain.FocusSession) {
	_ = m.sched.ScheduleIn(notify.IDFocusStart, 0, "Focus session started")
	_ = m.sched.ScheduleAt(notify.IDFocusHalfway, s.StartedAt.Add(s.Duration()/2), "Halfway through your focus session")
	if s.DurationSec > 120 {
		_ = m.sched.ScheduleAt(notify.IDFocusAlmostDone, s.EndTime().Add(-time.Minute), "One minute remaining")
	}
	_ = m.sched.ScheduleAt(notify.IDFocusComplete, s.EndTime(), "Focus session complete")
}

func (m *Manager) armTickerLocked() {
	if m.tickerStop != nil || m.tick <= 0 {
		return
	}
	stop := make(chan struct{})
	m.tickerStop = stop
	go func() {
		t := time.NewTicker(m.tick)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				m.Tick()
			}
		}
	}()
}

func (m *Manager) stopTickerLocked() {
	if m.tickerStop == nil {
		return
	}
	close(m.tickerStop)
	m.tickerStop = nil
}

func (m *Manager) persistActiveLocked() {
	if m.active == nil {
		_ = m.store.Delete(store.KeyActiveFocusSession)
		return
	}
	_ = store.Save(m.store, store.KeyActiveFocusSession, *m.active)
}

func (m *Manager) persistScheduledLocked() {
	if m.scheduled == nil {
		_ = m.store.Delete(store.KeyScheduledFocusSession)
		return
	}
	_ = store.Save(m.store, store.KeyScheduledFocusSession, *m.scheduled)
}

func (m *Manager) persistHistoryLocked() {
	_ = store.Save(m.store, store.KeyFocusSessions, m.history)
}

func (m *Manager) persistBlocklistLocked() {
	_ = store.Save(m.store, store.KeyDistractingApps, m.blocklist)
}

func (m *Manager) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	m.mu.Lock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()
	for _, e := range events {
		for _, l := range listeners {
			l(e)
		}
	}
}

package focus

import (
	"testing"
	"time"

	"github.com/drossen/unplug/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_CompletesExpiredActive(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	s, err := m.StartNow(10*time.Minute, nil)
	require.NoError(t, err)

	clock.Advance(10*time.Minute + time.Second)
	m.Reconcile()

	assert.Equal(t, domain.StateInactive, m.CurrentState())
	got, ok := m.SessionByID(s.ID)
	require.True(t, ok)
	assert.True(t, got.Completed, "expiry counts as completion")
}

func TestReconcile_PromotesDueScheduled(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	s, err := m.Schedule(clock.Now().Add(30*time.Minute), 25*time.Minute, []string{"instagram"})
	require.NoError(t, err)
	assert.Equal(t, domain.StateScheduled, m.CurrentState())
	assert.Empty(t, m.History(), "scheduled sessions are not in history before promotion")

	clock.Advance(31 * time.Minute)
	m.Reconcile()

	assert.Equal(t, domain.StateActive, m.CurrentState())
	active, ok := m.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, s.ID, active.ID)
	assert.True(t, m.IsBlocked("instagram"))

	history := m.History()
	require.Len(t, history, 1, "promotion appends exactly once")
	assert.Equal(t, s.ID, history[0].ID)
}

func TestReconcile_DiscardsFullyElapsedScheduled(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	_, err := m.Schedule(clock.Now().Add(10*time.Minute), 5*time.Minute, nil)
	require.NoError(t, err)

	var events []Event
	m.Subscribe(func(e Event) { events = append(events, e) })

	clock.Advance(time.Hour)
	m.Reconcile()

	assert.Equal(t, domain.StateInactive, m.CurrentState())
	assert.Empty(t, m.History(), "discarded sessions never reach history")
	assert.Empty(t, events, "discard is silent")

	_, ok := m.ScheduledSession()
	assert.False(t, ok)
}

func TestReconcile_PastScheduleWithOpenWindowPromotes(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	// Scheduling in the past is accepted; the window is still open.
	_, err := m.Schedule(clock.Now().Add(-5*time.Minute), 25*time.Minute, nil)
	require.NoError(t, err)

	m.Reconcile()
	assert.Equal(t, domain.StateActive, m.CurrentState())
}

func TestReconcile_ScheduleReplacesPrevious(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	first, err := m.Schedule(clock.Now().Add(time.Hour), 25*time.Minute, nil)
	require.NoError(t, err)
	second, err := m.Schedule(clock.Now().Add(2*time.Hour), 25*time.Minute, nil)
	require.NoError(t, err)

	scheduled, ok := m.ScheduledSession()
	require.True(t, ok)
	assert.NotEqual(t, first.ID, scheduled.ID)
	assert.Equal(t, second.ID, scheduled.ID)
}

func TestTick_EmitsTimerUpdates(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	var timerEvents []Event
	m.Subscribe(func(e Event) {
		if e.Kind == EventTimerUpdated {
			timerEvents = append(timerEvents, e)
		}
	})

	_, err := m.StartNow(10*time.Minute, nil)
	require.NoError(t, err)

	clock.Advance(time.Second)
	m.Tick()
	clock.Advance(time.Second)
	m.Tick()

	require.Len(t, timerEvents, 2)
	assert.Equal(t, 10*time.Minute-2*time.Second, timerEvents[1].Remaining)

	// Past expiry the tick completes the session and stops reporting.
	clock.Advance(11 * time.Minute)
	m.Tick()
	require.Len(t, timerEvents, 2)
	assert.Equal(t, domain.StateInactive, m.CurrentState())
}

func TestNew_ReconcilesAtStartup(t *testing.T) {
	m, clock, sched, st := newTestManager(t)

	_, err := m.Schedule(clock.Now().Add(time.Minute), 30*time.Minute, nil)
	require.NoError(t, err)
	m.Stop()

	// Relaunch after the window opened.
	clock.Advance(5 * time.Minute)
	m2 := New(st, sched, WithClock(clock.Now), WithTickInterval(0))
	defer m2.Stop()

	assert.Equal(t, domain.StateActive, m2.CurrentState())
}

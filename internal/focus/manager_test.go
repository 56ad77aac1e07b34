package focus

import (
	"testing"
	"time"

	"github.com/drossen/unplug/internal/domain"
	"github.com/drossen/unplug/internal/store"
	"github.com/drossen/unplug/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// newTestManager builds a manager on a memory store with a frozen clock
// and the background ticker disabled.
func newTestManager(t *testing.T) (*Manager, *testutil.Clock, *testutil.RecordingScheduler, *store.MemoryStore) {
	t.Helper()
	st := testutil.NewTestStore()
	clock := testutil.NewClock(testStart)
	sched := testutil.NewRecordingScheduler()
	m := New(st, sched,
		WithClock(clock.Now),
		WithTickInterval(0),
	)
	return m, clock, sched, st
}

func TestStartNow_ActivatesAndBlocks(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	s, err := m.StartNow(25*time.Minute, []string{"instagram", "tiktok"})
	require.NoError(t, err)

	assert.Equal(t, domain.StateActive, m.CurrentState())
	assert.Equal(t, 1500, s.DurationSec)
	assert.True(t, m.IsBlocked("instagram"))
	assert.True(t, m.IsBlocked("tiktok"))
	assert.False(t, m.IsBlocked("mail"))
}

func TestStartNow_RejectsNonPositiveDuration(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	_, err := m.StartNow(0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = m.StartNow(-time.Minute, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, domain.StateInactive, m.CurrentState())
}

func TestStartNow_NilBlocklistFallsBackToDistractingApps(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	m.AddDistractingApp("instagram")
	m.AddDistractingApp("tiktok")

	s, err := m.StartNow(10*time.Minute, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"instagram", "tiktok"}, s.BlockedApps)

	// An explicitly empty list blocks nothing.
	s2, err := m.StartNow(10*time.Minute, []string{})
	require.NoError(t, err)
	assert.Empty(t, s2.BlockedApps)
	assert.False(t, m.IsBlocked("instagram"))
}

func TestStartNow_ForceEndsExistingActive(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	first, err := m.StartNow(30*time.Minute, nil)
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)

	second, err := m.StartNow(30*time.Minute, nil)
	require.NoError(t, err)

	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.False(t, history[0].Completed, "force-ended session is not completed by user")
	require.NotNil(t, history[0].EndedAt)
	assert.Equal(t, clock.Now(), *history[0].EndedAt)

	assert.Equal(t, second.ID, history[1].ID)
	assert.Equal(t, domain.StateActive, m.CurrentState())
	active, ok := m.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)
}

func TestEnd_CompletesAndUpdatesHistory(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	s, err := m.StartNow(20*time.Minute, nil)
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)

	m.End(true)

	assert.Equal(t, domain.StateInactive, m.CurrentState())
	got, ok := m.SessionByID(s.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
	require.NotNil(t, got.EndedAt)
	assert.Equal(t, clock.Now(), *got.EndedAt)
}

func TestEnd_NoActiveIsNoop(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	m.End(true)
	assert.Equal(t, domain.StateInactive, m.CurrentState())
	assert.Empty(t, m.History())
}

func TestCancelScheduled(t *testing.T) {
	m, clock, sched, _ := newTestManager(t)

	_, err := m.Schedule(clock.Now().Add(time.Hour), 25*time.Minute, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StateScheduled, m.CurrentState())

	m.CancelScheduled()
	assert.Equal(t, domain.StateInactive, m.CurrentState())
	assert.Contains(t, sched.Canceled(), "focusReminder")
	assert.Contains(t, sched.Canceled(), "scheduledFocusStart")

	// Canceling again is a no-op.
	m.CancelScheduled()
	assert.Equal(t, domain.StateInactive, m.CurrentState())
}

func TestCurrentState_ActiveTakesPriorityOverScheduled(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	_, err := m.Schedule(clock.Now().Add(2*time.Hour), 25*time.Minute, nil)
	require.NoError(t, err)
	_, err = m.StartNow(25*time.Minute, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StateActive, m.CurrentState())
}

func TestIsBlocked_FalseAfterExpiry(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	_, err := m.StartNow(10*time.Minute, []string{"instagram"})
	require.NoError(t, err)
	assert.True(t, m.IsBlocked("instagram"))

	clock.Advance(11 * time.Minute)
	assert.False(t, m.IsBlocked("instagram"))
}

func TestStateChangedEvents_FireAfterMutations(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	var kinds []EventKind
	var states []domain.FocusState
	m.Subscribe(func(e Event) {
		kinds = append(kinds, e.Kind)
		states = append(states, e.State)
	})

	_, err := m.StartNow(10*time.Minute, nil)
	require.NoError(t, err)
	m.End(true)

	require.Len(t, kinds, 2)
	assert.Equal(t, EventStateChanged, kinds[0])
	assert.Equal(t, domain.StateActive, states[0])
	assert.Equal(t, EventStateChanged, kinds[1])
	assert.Equal(t, domain.StateInactive, states[1])
}

func TestPersistHappensBeforeNotify(t *testing.T) {
	st := testutil.NewTestStore()
	clock := testutil.NewClock(testStart)
	m := New(st, testutil.NewRecordingScheduler(),
		WithClock(clock.Now),
		WithTickInterval(0),
	)

	m.Subscribe(func(e Event) {
		if e.Kind != EventStateChanged || e.State != domain.StateActive {
			return
		}
		// The observer must see durable state.
		persisted, ok := store.Load[domain.FocusSession](st, store.KeyActiveFocusSession)
		require.True(t, ok)
		assert.Equal(t, e.Session.ID, persisted.ID)
	})

	_, err := m.StartNow(10*time.Minute, nil)
	require.NoError(t, err)
}

func TestReload_RestoresState(t *testing.T) {
	st := testutil.NewTestStore()
	clock := testutil.NewClock(testStart)
	sched := testutil.NewRecordingScheduler()

	m := New(st, sched, WithClock(clock.Now), WithTickInterval(0))
	m.AddDistractingApp("instagram")
	s, err := m.StartNow(time.Hour, nil)
	require.NoError(t, err)
	m.Stop()

	// New process, same store.
	m2 := New(st, sched, WithClock(clock.Now), WithTickInterval(0))
	defer m2.Stop()
	assert.Equal(t, domain.StateActive, m2.CurrentState())
	active, ok := m2.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, s.ID, active.ID)
	assert.Equal(t, []string{"instagram"}, m2.DistractingApps())
	require.Len(t, m2.History(), 1)
}

func TestReload_CorruptedStateFallsBackToEmpty(t *testing.T) {
	st := testutil.NewTestStore()
	require.NoError(t, st.Set(store.KeyActiveFocusSession, []byte("{broken")))
	require.NoError(t, st.Set(store.KeyFocusSessions, []byte("also broken")))

	m := New(st, testutil.NewRecordingScheduler(), WithTickInterval(0))
	assert.Equal(t, domain.StateInactive, m.CurrentState())
	assert.Empty(t, m.History())
}

func TestBlocklist_AddRemove(t *testing.T) {
	m, _, _, st := newTestManager(t)

	assert.True(t, m.AddDistractingApp("instagram"))
	assert.False(t, m.AddDistractingApp("instagram"), "duplicates are rejected")
	assert.True(t, m.AddDistractingApp("tiktok"))
	assert.True(t, m.RemoveDistractingApp("instagram"))
	assert.False(t, m.RemoveDistractingApp("instagram"))

	persisted, ok := store.Load[[]string](st, store.KeyDistractingApps)
	require.True(t, ok)
	assert.Equal(t, []string{"tiktok"}, persisted)
}

func TestRecentHistory_FiltersByRecency(t *testing.T) {
	m, clock, _, _ := newTestManager(t)

	_, err := m.StartNow(10*time.Minute, nil)
	require.NoError(t, err)
	m.End(true)

	clock.Advance(10 * 24 * time.Hour)
	_, err = m.StartNow(10*time.Minute, nil)
	require.NoError(t, err)
	m.End(false)

	assert.Len(t, m.History(), 2)
	assert.Len(t, m.RecentHistory(7), 1)
	assert.Len(t, m.CompletedSessions(), 1)
}

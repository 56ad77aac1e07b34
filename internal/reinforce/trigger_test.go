package reinforce

import (
	"testing"
	"time"

	"github.com/drossen/unplug/internal/focus"
	"github.com/drossen/unplug/internal/testutil"
	"github.com/drossen/unplug/internal/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

type recordingCelebrator struct {
	got []Achievement
}

func (c *recordingCelebrator) Celebrate(a Achievement) {
	c.got = append(c.got, a)
}

func (c *recordingCelebrator) kinds() []Kind {
	out := make([]Kind, 0, len(c.got))
	for _, a := range c.got {
		out = append(out, a.Kind)
	}
	return out
}

func newTestTrigger(t *testing.T) (*Trigger, *usage.Tracker, *recordingCelebrator, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(testStart)
	tr := usage.New(testutil.NewTestStore(), usage.WithClock(clock.Now))
	cel := &recordingCelebrator{}
	trig := New(tr, cel, WithClock(clock.Now))
	return trig, tr, cel, clock
}

func accrue(t *testing.T, tr *usage.Tracker, clock *testutil.Clock, app string, d time.Duration) {
	t.Helper()
	require.True(t, tr.RecordAppOpen(app))
	clock.Advance(d)
	require.True(t, tr.RecordAppClose(app))
}

func TestEvaluate_UnderThenOverDailyLimit(t *testing.T) {
	trig, tr, cel, clock := newTestTrigger(t)

	accrue(t, tr, clock, "instagram", 30*time.Minute)
	trig.Evaluate()
	assert.Equal(t, []Kind{KindUnderDailyLimit}, cel.kinds())

	cel.got = nil
	accrue(t, tr, clock, "instagram", 45*time.Minute)
	trig.Evaluate()
	assert.Equal(t, []Kind{KindOverDailyLimit}, cel.kinds())
}

func TestEvaluate_NoUsageNoEvents(t *testing.T) {
	trig, _, cel, _ := newTestTrigger(t)
	trig.Evaluate()
	assert.Empty(t, cel.got)
}

func TestEvaluate_IdempotentOnRepeat(t *testing.T) {
	trig, tr, cel, clock := newTestTrigger(t)

	accrue(t, tr, clock, "instagram", 10*time.Minute)
	trig.Evaluate()
	trig.Evaluate()

	// Redundant calls repeat the same event; de-duplication is the
	// collaborator's job.
	assert.Equal(t, []Kind{KindUnderDailyLimit, KindUnderDailyLimit}, cel.kinds())
}

func TestEvaluate_StreakContinuedAndBroken(t *testing.T) {
	trig, tr, cel, clock := newTestTrigger(t)

	// Two prior days under the limit.
	clock.Set(testStart.AddDate(0, 0, -2))
	accrue(t, tr, clock, "instagram", 10*time.Minute)
	clock.Set(testStart.AddDate(0, 0, -1))
	accrue(t, tr, clock, "instagram", 10*time.Minute)

	clock.Set(testStart)
	accrue(t, tr, clock, "instagram", 10*time.Minute)
	trig.Evaluate()
	assert.Contains(t, cel.kinds(), KindStreakContinued)

	cel.got = nil
	accrue(t, tr, clock, "instagram", 2*time.Hour)
	trig.Evaluate()
	assert.Contains(t, cel.kinds(), KindOverDailyLimit)
	assert.Contains(t, cel.kinds(), KindStreakBroken)
}

func TestEvaluate_WeeklyReductionMet(t *testing.T) {
	trig, tr, cel, clock := newTestTrigger(t)

	// Previous week summarized at 4000s, this week well below it.
	clock.Set(time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC))
	accrue(t, tr, clock, "instagram", 4000*time.Second)
	clock.Set(time.Date(2026, 2, 23, 20, 0, 0, 0, time.UTC))
	tr.GenerateWeeklySummary()

	clock.Set(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	accrue(t, tr, clock, "instagram", 1000*time.Second)
	clock.Set(time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC))
	tr.GenerateWeeklySummary()

	cel.got = nil
	trig.Evaluate()
	assert.Contains(t, cel.kinds(), KindWeeklyReductionMet)
}

func TestOnFocusEvent_CompletedSessionCelebrated(t *testing.T) {
	clock := testutil.NewClock(testStart)
	st := testutil.NewTestStore()
	tr := usage.New(st, usage.WithClock(clock.Now))
	cel := &recordingCelebrator{}
	trig := New(tr, cel, WithClock(clock.Now))

	m := focus.New(st, testutil.NewRecordingScheduler(),
		focus.WithClock(clock.Now),
		focus.WithTickInterval(0),
	)
	trig.Bind(m, tr)

	_, err := m.StartNow(25*time.Minute, nil)
	require.NoError(t, err)
	assert.Empty(t, cel.got, "starting a session is not an achievement")

	m.End(true)
	require.Len(t, cel.got, 1)
	assert.Equal(t, KindFocusCompleted, cel.got[0].Kind)

	// A force-ended session does not celebrate.
	cel.got = nil
	_, err = m.StartNow(25*time.Minute, nil)
	require.NoError(t, err)
	m.End(false)
	assert.Empty(t, cel.got)
}

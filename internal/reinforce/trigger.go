// Package reinforce evaluates threshold crossings after engine mutations
// and forwards achievement events to an external celebration collaborator.
// It holds no state of its own; redundant evaluation is harmless because
// the collaborator de-duplicates.
package reinforce

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/drossen/unplug/internal/domain"
	"github.com/drossen/unplug/internal/focus"
	"github.com/drossen/unplug/internal/usage"
)

type Kind string

const (
	KindUnderDailyLimit    Kind = "under_daily_limit"
	KindOverDailyLimit     Kind = "over_daily_limit"
	KindWeeklyReductionMet Kind = "weekly_reduction_met"
	KindStreakContinued    Kind = "streak_continued"
	KindStreakBroken       Kind = "streak_broken"
	KindFocusCompleted     Kind = "focus_completed"
)

// Achievement is one fire-and-forget threshold-crossing event.
type Achievement struct {
	Kind   Kind
	When   time.Time
	Detail string
}

// Celebrator receives achievement events. Implementations are responsible
// for de-duplicating repeats.
type Celebrator interface {
	Celebrate(a Achievement)
}

// UsageReader is the slice of the aggregator's read surface the trigger
// needs.
type UsageReader interface {
	Goal() domain.UsageGoal
	GoalProgress() (currentSec, limitSec int, percentOfLimit float64)
	WeeklyReductionProgress() (currentPct, targetPct, percentOfTarget float64)
	HasExceededDailyLimit() bool
	RecentUsage(days int) []domain.DailyUsage
}

// streakWindow bounds how far back streak evaluation looks.
const streakWindow = 30

// Trigger computes crossings from the engines' public reads.
type Trigger struct {
	usage     UsageReader
	celebrate Celebrator
	now       func() time.Time
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithClock injects the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Trigger) { t.now = now }
}

// New creates a trigger reading from reader and forwarding to c.
func New(reader UsageReader, c Celebrator, opts ...Option) *Trigger {
	t := &Trigger{usage: reader, celebrate: c, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Bind subscribes the trigger to both engines so every successful
// aggregator mutation and focus completion is evaluated.
func (t *Trigger) Bind(m *focus.Manager, tr *usage.Tracker) {
	m.Subscribe(t.OnFocusEvent)
	tr.Subscribe(func(e usage.Event) {
		if e.Kind == usage.EventUsageRecorded || e.Kind == usage.EventSummaryGenerated {
			t.Evaluate()
		}
	})
}

// OnFocusEvent forwards a completed focus session as an achievement.
func (t *Trigger) OnFocusEvent(e focus.Event) {
	if e.Kind != focus.EventStateChanged || e.Session == nil || !e.Session.Completed {
		return
	}
	t.fire(Achievement{
		Kind:   KindFocusCompleted,
		When:   t.now(),
		Detail: fmt.Sprintf("focused for %s", e.Session.Duration()),
	})
}

// Evaluate recomputes every usage-side crossing and forwards one event per
// crossing currently in effect.
func (t *Trigger) Evaluate() {
	now := t.now()
	current, limit, pct := t.usage.GoalProgress()

	if limit > 0 && current > limit {
		t.fire(Achievement{
			Kind:   KindOverDailyLimit,
			When:   now,
			Detail: fmt.Sprintf("at %.0f%% of the daily limit", pct),
		})
		if n := t.streakThroughYesterday(now, limit); n > 0 {
			t.fire(Achievement{
				Kind:   KindStreakBroken,
				When:   now,
				Detail: fmt.Sprintf("%d-day streak ended", n),
			})
		}
	} else if current > 0 {
		t.fire(Achievement{
			Kind:   KindUnderDailyLimit,
			When:   now,
			Detail: fmt.Sprintf("at %.0f%% of the daily limit", pct),
		})
		if n := t.streakThroughYesterday(now, limit); n > 0 {
			t.fire(Achievement{
				Kind:   KindStreakContinued,
				When:   now,
				Detail: fmt.Sprintf("day %d under the limit", n+1),
			})
		}
	}

	reduction, target, _ := t.usage.WeeklyReductionProgress()
	if target > 0 && reduction >= target {
		t.fire(Achievement{
			Kind:   KindWeeklyReductionMet,
			When:   now,
			Detail: fmt.Sprintf("usage down %.1f%% week over week", reduction),
		})
	}
}

// fire guards a nil collaborator.
func (t *Trigger) fire(a Achievement) {
	if t.celebrate == nil {
		return
	}
	t.celebrate.Celebrate(a)
}

// streakThroughYesterday counts consecutive recorded days under the limit
// ending yesterday. A day with no record breaks the streak.
func (t *Trigger) streakThroughYesterday(now time.Time, limit int) int {
	recent := t.usage.RecentUsage(streakWindow)
	byDay := make(map[time.Time]int, len(recent))
	for _, d := range recent {
		byDay[d.Date] = d.TotalSec
	}

	streak := 0
	day := domain.DayOf(now).AddDate(0, 0, -1)
	for {
		total, ok := byDay[day]
		if !ok || total > limit {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// LogCelebrator writes achievements as structured log lines. It stands in
// for the celebration UI in headless runs.
type LogCelebrator struct {
	logger *slog.Logger
}

// NewLogCelebrator creates a celebrator logging to w.
func NewLogCelebrator(w io.Writer) *LogCelebrator {
	return &LogCelebrator{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (c *LogCelebrator) Celebrate(a Achievement) {
	c.logger.Info("achievement",
		"kind", string(a.Kind),
		"detail", a.Detail,
	)
}

var _ Celebrator = (*LogCelebrator)(nil)

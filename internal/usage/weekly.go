package usage

import (
	"github.com/drossen/unplug/internal/domain"
)

// GenerateWeeklySummary computes the aggregates for the current week, from
// the locale's first weekday through today inclusive, and appends the
// result. Summaries are never overwritten. The reduction percentage is
// computed against the most recent summary whose week starts exactly seven
// days earlier; without one it stays zero.
func (t *Tracker) GenerateWeeklySummary() domain.WeeklyUsageSummary {
	t.mu.Lock()
	now := t.now()
	weekStart := domain.WeekStart(now, t.firstWeekday)
	today := domain.DayOf(now)

	total := 0
	appTotals := make(map[string]int)
	for i := range t.history {
		d := t.history[i]
		if d.Date.Before(weekStart) || d.Date.After(today) {
			continue
		}
		total += d.TotalSec
		for app, st := range d.Apps {
			appTotals[app] += st.UsageSec
		}
	}

	days := int(today.Sub(weekStart).Hours()/24) + 1
	summary := domain.WeeklyUsageSummary{
		WeekStart:       weekStart,
		TotalSec:        total,
		DailyAverageSec: total / days,
		MostUsedApp:     mostUsed(appTotals),
	}

	prevStart := weekStart.AddDate(0, 0, -7)
	for i := len(t.summaries) - 1; i >= 0; i-- {
		if t.summaries[i].WeekStart.Equal(prevStart) {
			if prev := t.summaries[i].TotalSec; prev > 0 {
				summary.ReductionPct = 100 * float64(prev-total) / float64(prev)
			}
			break
		}
	}

	t.summaries = append(t.summaries, summary)
	t.persistSummariesLocked()
	t.logger.Info("weekly_summary_generated",
		"week_start", weekStart.Format("2006-01-02"),
		"total_sec", total,
		"reduction_pct", summary.ReductionPct,
	)
	t.mu.Unlock()
	t.emit(Event{Kind: EventSummaryGenerated})

	return summary
}

// WeeklyReductionProgress reports the most recently computed reduction
// percentage against the goal's target, both expressed as percentages.
func (t *Tracker) WeeklyReductionProgress() (currentPct, targetPct, percentOfTarget float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.summaries); n > 0 {
		currentPct = t.summaries[n-1].ReductionPct
	}
	targetPct = t.goal.WeeklyReductionTarget * 100
	if targetPct != 0 {
		percentOfTarget = 100 * currentPct / targetPct
	}
	return currentPct, targetPct, percentOfTarget
}

// WeeklySummaries returns a copy of every summary computed so far, oldest
// first.
func (t *Tracker) WeeklySummaries() []domain.WeeklyUsageSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.WeeklyUsageSummary(nil), t.summaries...)
}

// mostUsed picks the app with the highest usage, breaking ties by name so
// the result is stable.
func mostUsed(appTotals map[string]int) string {
	best := ""
	bestSec := -1
	for app, sec := range appTotals {
		if sec > bestSec || (sec == bestSec && app < best) {
			best = app
			bestSec = sec
		}
	}
	return best
}

package usage

import (
	"time"

	"github.com/drossen/unplug/internal/domain"
)

// Today returns the aggregate for the current day, if one exists.
func (t *Tracker) Today() (domain.DailyUsage, bool) {
	return t.UsageOn(t.now())
}

// UsageOn returns the aggregate for the day containing date, if one
// exists.
func (t *Tracker) UsageOn(date time.Time) (domain.DailyUsage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	day := domain.DayOf(date)
	for i := range t.history {
		if t.history[i].Date.Equal(day) {
			return t.history[i].Clone(), true
		}
	}
	return domain.DailyUsage{}, false
}

// UsageBetween returns the aggregates for days within [from, to],
// inclusive on both ends, oldest first.
func (t *Tracker) UsageBetween(from, to time.Time) []domain.DailyUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	lo, hi := domain.DayOf(from), domain.DayOf(to)
	var out []domain.DailyUsage
	for i := range t.history {
		d := t.history[i].Date
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, t.history[i].Clone())
	}
	return out
}

// RecentUsage returns the aggregates for the trailing number of days,
// today included.
func (t *Tracker) RecentUsage(days int) []domain.DailyUsage {
	today := domain.DayOf(t.now())
	return t.UsageBetween(today.AddDate(0, 0, -(days-1)), today)
}

// DatesWithUsage returns the days that accumulated any usage time, oldest
// first.
func (t *Tracker) DatesWithUsage() []time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []time.Time
	for i := range t.history {
		if t.history[i].TotalSec > 0 {
			out = append(out, t.history[i].Date)
		}
	}
	return out
}

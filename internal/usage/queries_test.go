package usage

import (
	"testing"
	"time"

	"github.com/drossen/unplug/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T) (*Tracker, time.Time) {
	t.Helper()
	tr, clock, st := newTestTracker(t)
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	seedDay(t, st, tr, clock, base, map[string]int{"instagram": 100})
	seedDay(t, st, tr, clock, base.AddDate(0, 0, 1), map[string]int{"mail": 200})
	seedDay(t, st, tr, clock, base.AddDate(0, 0, 3), map[string]int{"tiktok": 300})
	clock.Set(base.AddDate(0, 0, 3).Add(18 * time.Hour))
	return tr, base
}

func TestUsageOn(t *testing.T) {
	tr, base := seedHistory(t)

	d, ok := tr.UsageOn(base.AddDate(0, 0, 1).Add(9*time.Hour))
	require.True(t, ok)
	assert.Equal(t, 200, d.TotalSec)

	_, ok = tr.UsageOn(base.AddDate(0, 0, 2))
	assert.False(t, ok, "days without any record are absent")
}

func TestUsageBetween(t *testing.T) {
	tr, base := seedHistory(t)

	got := tr.UsageBetween(base, base.AddDate(0, 0, 1))
	require.Len(t, got, 2)
	assert.Equal(t, 100, got[0].TotalSec)
	assert.Equal(t, 200, got[1].TotalSec)

	all := tr.UsageBetween(base.AddDate(0, 0, -30), base.AddDate(0, 0, 30))
	assert.Len(t, all, 3)
}

func TestRecentUsage(t *testing.T) {
	tr, base := seedHistory(t)

	// Clock sits on base+3d; a two-day trailing window covers days 2-3.
	got := tr.RecentUsage(2)
	require.Len(t, got, 1)
	assert.Equal(t, base.AddDate(0, 0, 3), got[0].Date)

	assert.Len(t, tr.RecentUsage(7), 3)
}

func TestDatesWithUsage(t *testing.T) {
	tr, base := seedHistory(t)

	// A launch without accrued time does not count as usage.
	require.True(t, tr.RecordAppOpen("mail"))
	require.True(t, tr.RecordAppClose("mail"))

	dates := tr.DatesWithUsage()
	assert.Equal(t, []time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3)}, dates)
}

func TestUsageOn_ReturnsACopy(t *testing.T) {
	tr, base := seedHistory(t)

	d, ok := tr.UsageOn(base)
	require.True(t, ok)
	d.Apps["instagram"] = domain.UsageStats{LaunchCount: 99, UsageSec: 99}

	again, _ := tr.UsageOn(base)
	assert.Equal(t, 100, again.Apps["instagram"].UsageSec, "callers cannot mutate tracker state")
}

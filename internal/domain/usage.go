package domain

import "time"

// UsageStats accumulates one application's launches and usage time for a
// single calendar day.
type UsageStats struct {
	LaunchCount int `json:"launch_count"`
	UsageSec    int `json:"usage_sec"`
}

// DailyUsage is the aggregate of per-application usage for one calendar day.
// Date is UTC midnight of the day it describes.
type DailyUsage struct {
	Date     time.Time             `json:"date"`
	TotalSec int                   `json:"total_sec"`
	Apps     map[string]UsageStats `json:"apps"`
}

// NewDailyUsage creates an empty aggregate for the day containing t.
func NewDailyUsage(t time.Time) DailyUsage {
	return DailyUsage{
		Date: DayOf(t),
		Apps: make(map[string]UsageStats),
	}
}

// AddLaunch increments the launch count for appName, creating a zero
// usage entry on first launch.
func (d *DailyUsage) AddLaunch(appName string) {
	if d.Apps == nil {
		d.Apps = make(map[string]UsageStats)
	}
	st := d.Apps[appName]
	st.LaunchCount++
	d.Apps[appName] = st
}

// AddUsage adds sec seconds to appName's usage and to the day total.
func (d *DailyUsage) AddUsage(appName string, sec int) {
	if d.Apps == nil {
		d.Apps = make(map[string]UsageStats)
	}
	st := d.Apps[appName]
	st.UsageSec += sec
	d.Apps[appName] = st
	d.TotalSec += sec
}

// Clone returns a deep copy, so callers can hand out aggregates without
// sharing the per-app map.
func (d DailyUsage) Clone() DailyUsage {
	out := d
	out.Apps = make(map[string]UsageStats, len(d.Apps))
	for k, v := range d.Apps {
		out.Apps[k] = v
	}
	return out
}

// ReconstructedTotal sums per-app usage. It must equal TotalSec; the
// aggregator never stores the two independently.
func (d *DailyUsage) ReconstructedTotal() int {
	total := 0
	for _, st := range d.Apps {
		total += st.UsageSec
	}
	return total
}

// PendingAppSession is the single in-flight record of an application the
// tracker believes is currently open.
type PendingAppSession struct {
	AppName   string    `json:"app_name"`
	StartedAt time.Time `json:"started_at"`
}

// WeeklyUsageSummary is a computed rollup of one week's daily usage plus
// the reduction against the prior week, when that week was summarized.
type WeeklyUsageSummary struct {
	WeekStart       time.Time `json:"week_start"`
	TotalSec        int       `json:"total_sec"`
	DailyAverageSec int       `json:"daily_average_sec"`
	MostUsedApp     string    `json:"most_used_app"`
	ReductionPct    float64   `json:"reduction_pct"`
}

// DayOf truncates t to UTC midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// WeekStart returns UTC midnight of the most recent firstWeekday at or
// before t.
func WeekStart(t time.Time, firstWeekday time.Weekday) time.Time {
	day := DayOf(t)
	diff := (int(day.Weekday()) - int(firstWeekday) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

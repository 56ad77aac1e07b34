package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFocusSession_IsActive(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := &FocusSession{ID: "s1", StartedAt: start, DurationSec: 1500}

	assert.False(t, s.IsActive(start.Add(-time.Second)), "before window")
	assert.True(t, s.IsActive(start), "window start is inclusive")
	assert.True(t, s.IsActive(start.Add(10*time.Minute)))
	assert.False(t, s.IsActive(start.Add(25*time.Minute)), "window end is exclusive")

	s.Completed = true
	assert.False(t, s.IsActive(start.Add(10*time.Minute)), "completed sessions are never active")
}

func TestFocusSession_Remaining(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := &FocusSession{ID: "s1", StartedAt: start, DurationSec: 600}

	assert.Equal(t, 600*time.Second, s.Remaining(start))
	assert.Equal(t, 100*time.Second, s.Remaining(start.Add(500*time.Second)))
	assert.Equal(t, time.Duration(0), s.Remaining(start.Add(time.Hour)))
	assert.Equal(t, time.Duration(0), s.Remaining(start.Add(-time.Hour)), "not yet active")
}

func TestFocusSession_PercentComplete(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := &FocusSession{ID: "s1", StartedAt: start, DurationSec: 1000}

	assert.InDelta(t, 0.0, s.PercentComplete(start), 0.001)
	assert.InDelta(t, 0.5, s.PercentComplete(start.Add(500*time.Second)), 0.001)
	assert.InDelta(t, 1.0, s.PercentComplete(start.Add(2000*time.Second)), 0.001)
}

func TestFocusSession_Blocks(t *testing.T) {
	s := &FocusSession{BlockedApps: []string{"instagram", "tiktok"}}
	assert.True(t, s.Blocks("instagram"))
	assert.False(t, s.Blocks("mail"))

	empty := &FocusSession{}
	assert.False(t, empty.Blocks("instagram"))
}

package domain

import "time"

// FocusSession is a time-boxed period during which a set of named
// applications is advisorily blocked.
type FocusSession struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	DurationSec int        `json:"duration_sec"`
	BlockedApps []string   `json:"blocked_apps"`
	Completed   bool       `json:"completed"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// Duration returns the planned session length.
func (s *FocusSession) Duration() time.Duration {
	return time.Duration(s.DurationSec) * time.Second
}

// EndTime returns the planned end of the session window.
func (s *FocusSession) EndTime() time.Time {
	return s.StartedAt.Add(s.Duration())
}

// IsActive reports whether now falls within [start, end) and the session
// has not been completed.
func (s *FocusSession) IsActive(now time.Time) bool {
	if s.Completed || s.EndedAt != nil {
		return false
	}
	return !now.Before(s.StartedAt) && now.Before(s.EndTime())
}

// Remaining returns how much of the session window is left. Zero for a
// session that is not active at now.
func (s *FocusSession) Remaining(now time.Time) time.Duration {
	if !s.IsActive(now) {
		return 0
	}
	return s.EndTime().Sub(now)
}

// PercentComplete returns progress through the session window in [0, 1].
func (s *FocusSession) PercentComplete(now time.Time) float64 {
	if s.DurationSec <= 0 {
		return 0
	}
	elapsed := s.Duration() - s.Remaining(now)
	pct := elapsed.Seconds() / s.Duration().Seconds()
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// Blocks reports whether appName is in the session's blocked set.
func (s *FocusSession) Blocks(appName string) bool {
	for _, a := range s.BlockedApps {
		if a == appName {
			return true
		}
	}
	return false
}

package testutil

import (
	"sync"
	"time"
)

// ScheduledAlert records one request made against the fake scheduler.
type ScheduledAlert struct {
	ID      string
	At      time.Time
	After   time.Duration
	Message string
	// Absolute is true for ScheduleAt requests, false for ScheduleIn.
	Absolute bool
}

// RecordingScheduler captures notification requests for assertions.
type RecordingScheduler struct {
	mu        sync.Mutex
	scheduled []ScheduledAlert
	canceled  []string
}

// NewRecordingScheduler creates an empty recording scheduler.
func NewRecordingScheduler() *RecordingScheduler {
	return &RecordingScheduler{}
}

func (s *RecordingScheduler) ScheduleAt(id string, at time.Time, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, ScheduledAlert{ID: id, At: at, Message: message, Absolute: true})
	return nil
}

func (s *RecordingScheduler) ScheduleIn(id string, after time.Duration, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, ScheduledAlert{ID: id, After: after, Message: message})
	return nil
}

func (s *RecordingScheduler) Cancel(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled = append(s.canceled, ids...)
}

// Scheduled returns a copy of all requests so far.
func (s *RecordingScheduler) Scheduled() []ScheduledAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScheduledAlert, len(s.scheduled))
	copy(out, s.scheduled)
	return out
}

// ScheduledIDs returns the identifiers of all requests so far, in order.
func (s *RecordingScheduler) ScheduledIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.scheduled))
	for _, a := range s.scheduled {
		ids = append(ids, a.ID)
	}
	return ids
}

// Canceled returns the identifiers canceled so far, in order.
func (s *RecordingScheduler) Canceled() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.canceled))
	copy(out, s.canceled)
	return out
}

// Reset clears all recorded requests.
func (s *RecordingScheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = nil
	s.canceled = nil
}

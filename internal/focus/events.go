package focus

import (
	"time"

	"github.com/drossen/unplug/internal/domain"
)

type EventKind string

const (
	// EventStateChanged fires after any transition between inactive,
	// active and scheduled. State is already durable when it fires.
	EventStateChanged EventKind = "focus_state_changed"
	// EventTimerUpdated fires once per tick while a session is active.
	EventTimerUpdated EventKind = "focus_timer_updated"
)

// Event is delivered synchronously to subscribed listeners after the
// triggering mutation has been persisted.
type Event struct {
	Kind      EventKind
	State     domain.FocusState
	Session   *domain.FocusSession
	Remaining time.Duration
}

// Listener receives manager events. Listeners run on the caller's
// goroutine and should return quickly.
type Listener func(Event)

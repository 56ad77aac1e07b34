package domain

type FocusState string

const (
	StateInactive  FocusState = "inactive"
	StateActive    FocusState = "active"
	StateScheduled FocusState = "scheduled"
)

package store

import "encoding/json"

// Keys under which the core persists its state.
const (
	KeyDistractingApps       = "distractingApps"
	KeyFocusSessions         = "focusSessions"
	KeyActiveFocusSession    = "activeFocusSession"
	KeyScheduledFocusSession = "scheduledFocusSession"
	KeyUsageHistory          = "usageHistory"
	KeyWeeklyUsage           = "weeklyUsage"
	KeyUsageGoal             = "usageGoal"
	KeyPendingAppSession     = "pendingAppSession"
)

// Store is a durable map from string keys to serialized values. Reads and
// writes are synchronous and local; there are no transactions.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Load decodes the value stored under key into T. A missing key or a
// payload that fails to decode both report ok=false: corrupted state is
// deliberately treated as absent.
func Load[T any](s Store, key string) (T, bool) {
	var v T
	raw, ok := s.Get(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// Save encodes v as JSON and writes it under key.
func Save[T any](s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, raw)
}

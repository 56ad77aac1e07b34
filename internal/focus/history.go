package focus

import (
	"github.com/drossen/unplug/internal/domain"
)

// SessionByID looks up one history entry.
func (m *Manager) SessionByID(id string) (domain.FocusSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.history {
		if m.history[i].ID == id {
			return m.history[i], true
		}
	}
	return domain.FocusSession{}, false
}

// History returns a copy of the full session history, oldest first.
func (m *Manager) History() []domain.FocusSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FocusSession(nil), m.history...)
}

// RecentHistory returns the sessions started within the trailing number of
// days.
func (m *Manager) RecentHistory(days int) []domain.FocusSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().AddDate(0, 0, -days)
	var out []domain.FocusSession
	for i := range m.history {
		if !m.history[i].StartedAt.Before(cutoff) {
			out = append(out, m.history[i])
		}
	}
	return out
}

// CompletedSessions returns the history entries the user saw through to
// the end.
func (m *Manager) CompletedSessions() []domain.FocusSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FocusSession
	for i := range m.history {
		if m.history[i].Completed {
			out = append(out, m.history[i])
		}
	}
	return out
}

// DistractingApps returns the default block-list applied when a session
// does not name one explicitly.
func (m *Manager) DistractingApps() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.blocklist...)
}

// AddDistractingApp appends a unique name to the default block-list.
// Returns false for a duplicate.
func (m *Manager) AddDistractingApp(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.blocklist {
		if a == name {
			return false
		}
	}
	m.blocklist = append(m.blocklist, name)
	m.persistBlocklistLocked()
	return true
}

// RemoveDistractingApp removes a name from the default block-list.
// Returns false when the name is not present.
func (m *Manager) RemoveDistractingApp(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.blocklist {
		if a == name {
			m.blocklist = append(m.blocklist[:i], m.blocklist[i+1:]...)
			m.persistBlocklistLocked()
			return true
		}
	}
	return false
}

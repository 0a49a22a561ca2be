package utils

import "time"

// Clock abstracts "today" for the date-driven services: projection
// windows, alert sweeps, and month defaults all derive from it instead
// of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock used in production wiring.
type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock pins Now to a fixed instant so tests can place themselves
// on an exact calendar day.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// SetNow moves the pinned instant, e.g. to step a test across days.
func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

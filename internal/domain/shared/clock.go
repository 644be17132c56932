package shared

import "time"

// Clock abstracts the current time so that month-key derivation and
// paid_at stamping are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock is a Clock frozen at a specific instant, for tests
type FixedClock struct {
	Instant time.Time
}

// Now returns the frozen instant
func (c FixedClock) Now() time.Time {
	return c.Instant
}

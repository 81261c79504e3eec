package auth

import "time"

// Clock supplies the current time for issued-at and expiry computation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// FixedClock returns a Clock frozen at the given unix second.
func FixedClock(unix int64) Clock {
	t := time.Unix(unix, 0)
	return ClockFunc(func() time.Time { return t })
}

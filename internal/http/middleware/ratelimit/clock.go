package ratelimit

import "time"

// Clock is the time source for token refills and bucket eviction.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain func, e.g. a fake test clock or the dispatch
// service clock, to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// RealClock reads the wall clock in UTC, same as job timestamps.
var RealClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

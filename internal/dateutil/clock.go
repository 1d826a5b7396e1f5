package dateutil

import "time"

// Clock provides the current calendar date. It is the only clock dependency in
// the analytics core; handlers use SystemClock, tests use FixedClock.
type Clock interface {
	Today() string
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Today() string {
	return Format(time.Now())
}

// FixedClock always reports the same date.
type FixedClock struct {
	Date string
}

func (c FixedClock) Today() string {
	return c.Date
}

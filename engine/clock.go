package engine

import (
	"sync/atomic"
	"time"
)

// Clock supplies wall time to the app loop
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to
// Safe to read from another goroutine while the test advances it
type ManualClock struct {
	nanos atomic.Int64
}

func NewManualClock(start time.Time) *ManualClock {
	c := &ManualClock{}
	c.nanos.Store(start.UnixNano())
	return c
}

func (c *ManualClock) Now() time.Time {
	return time.Unix(0, c.nanos.Load()).UTC()
}

func (c *ManualClock) Set(t time.Time) {
	c.nanos.Store(t.UnixNano())
}

func (c *ManualClock) Advance(d time.Duration) {
	c.nanos.Add(int64(d))
}

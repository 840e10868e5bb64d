package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as its bit pattern
// Zero value reads as 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// MaxLabelLen caps stored labels so the HUD line stays bounded
const MaxLabelLen = 24

// AtomicLabel holds a short string such as the active scene name
type AtomicLabel struct {
	ptr atomic.Pointer[string]
}

// Store truncates val to MaxLabelLen bytes
func (s *AtomicLabel) Store(val string) {
	if len(val) > MaxLabelLen {
		val = val[:MaxLabelLen]
	}
	s.ptr.Store(&val)
}

func (s *AtomicLabel) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

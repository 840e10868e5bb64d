// Package status collects session counters read by the HUD and the debug log.
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known metric keys
const (
	KeyLaunches  = "launches"
	KeyClears    = "clears"
	KeySessions  = "sessions"
	KeySwept     = "swept"
	KeyRespawns  = "respawns"
	KeySteps     = "steps"
	KeyDwell     = "dwell"
	KeyScene     = "scene"
	KeySessionID = "session"
)

// Registry groups metrics by value type
// Writers cache pointers once and update atomics without locking
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
	Labels *MetricMap[AtomicLabel]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
		Labels: NewMetricMap[AtomicLabel](),
	}
}

// Counter is shorthand for Ints.Get
func (r *Registry) Counter(key string) *atomic.Int64 {
	return r.Ints.Get(key)
}

// Gauge is shorthand for Floats.Get
func (r *Registry) Gauge(key string) *AtomicFloat {
	return r.Floats.Get(key)
}

// Label is shorthand for Labels.Get
func (r *Registry) Label(key string) *AtomicLabel {
	return r.Labels.Get(key)
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Labels.Count()
}

// Summary renders every metric as space separated key=value pairs
// Labels first, then counters, then gauges, each in key order
func (r *Registry) Summary() string {
	var parts []string
	r.Labels.Range(func(k string, v *AtomicLabel) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, v.Get()))
	})
	return strings.Join(parts, " ")
}

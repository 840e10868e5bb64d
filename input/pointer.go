package input

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Pointer tracks the cursor in world coordinates
// Velocity is sampled once per tick as displacement over dt
// A sample survives quiet ticks until hold seconds pass without motion
type Pointer struct {
	pos  cp.Vector
	prev cp.Vector
	vel  cp.Vector
	hold float64
	idle float64
}

// SetHold sets how long a motion sample outlives a still pointer
func (p *Pointer) SetHold(d time.Duration) {
	p.hold = d.Seconds()
}

// Reset places the pointer at p with zero velocity
func (p *Pointer) Reset(at cp.Vector) {
	p.pos = at
	p.prev = at
	p.vel = cp.Vector{}
	p.idle = 0
}

// MoveTo records the latest position without sampling
func (p *Pointer) MoveTo(at cp.Vector) {
	p.pos = at
}

// Sample computes velocity in world units per second since the last sample
func (p *Pointer) Sample(dt float64) {
	if dt <= 0 {
		return
	}
	delta := p.pos.Sub(p.prev)
	p.prev = p.pos
	if delta.X != 0 || delta.Y != 0 {
		p.vel = delta.Mult(1 / dt)
		p.idle = 0
		return
	}
	p.idle += dt
	if p.idle > p.hold {
		p.vel = cp.Vector{}
	}
}

func (p *Pointer) Position() cp.Vector {
	return p.pos
}

func (p *Pointer) Velocity() cp.Vector {
	return p.vel
}

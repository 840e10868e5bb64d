// Package goal decides when the movable glyph has rested near a peg long enough to clear the stage.
package goal

import (
	"log"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/event"
)

// Body is anything with a position and an approximate radius
type Body interface {
	Position() cp.Vector
	Radius() float64
}

// Outcome reports what a tick decided
type Outcome uint8

const (
	OutcomeSkipped  Outcome = iota // Nothing to evaluate, or already cleared
	OutcomeFloor                   // Lower extent touches the floor band
	OutcomeFar                     // No peg within the proximity threshold
	OutcomeDwelling                // Near a peg, dwell not yet complete
	OutcomeCleared                 // Dwell complete, fires once
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFloor:
		return "floor"
	case OutcomeFar:
		return "far"
	case OutcomeDwelling:
		return "dwelling"
	case OutcomeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Evaluator is the clear condition state machine
// Time is the simulation timestamp in milliseconds
type Evaluator struct {
	cfg     config.Goal
	floorY  float64
	dwellMs float64

	movable Body
	pegs    []Body

	start   float64
	timing  bool
	cleared bool
}

func NewEvaluator(cfg config.Goal, floorY float64) *Evaluator {
	return &Evaluator{
		cfg:     cfg,
		floorY:  floorY,
		dwellMs: float64(cfg.Dwell) / float64(time.Millisecond),
	}
}

// Track sets the movable body, nil stops evaluation
func (e *Evaluator) Track(movable Body) {
	e.movable = movable
	e.resetTimer()
}

// SetPegs replaces the target list
func (e *Evaluator) SetPegs(pegs []Body) {
	e.pegs = append(e.pegs[:0], pegs...)
	e.resetTimer()
}

// Timer returns the dwell start timestamp when running
func (e *Evaluator) Timer() (float64, bool) {
	return e.start, e.timing
}

// Cleared reports whether the clear has fired since the last Reset
func (e *Evaluator) Cleared() bool {
	return e.cleared
}

// Reset clears the timer and re-arms the clear
func (e *Evaluator) Reset() {
	e.resetTimer()
	e.cleared = false
}

// Elapsed returns dwell progress at now, zero when not timing
func (e *Evaluator) Elapsed(now float64) float64 {
	if !e.timing {
		return 0
	}
	return now - e.start
}

// Progress returns dwell completion in [0,1]
func (e *Evaluator) Progress(now float64) float64 {
	if e.dwellMs <= 0 {
		return 0
	}
	return min(e.Elapsed(now)/e.dwellMs, 1)
}

// Tick evaluates one physics step
func (e *Evaluator) Tick(now float64) Outcome {
	if e.cleared {
		return OutcomeSkipped
	}
	if e.movable == nil || len(e.pegs) == 0 {
		e.resetTimer()
		return OutcomeSkipped
	}

	pos := e.movable.Position()
	radius := e.movable.Radius()

	bottom := pos.Y + radius*e.cfg.BottomFactor
	if bottom >= e.floorY-e.cfg.FloorMargin {
		e.resetTimer()
		return OutcomeFloor
	}

	if !e.near(pos, radius) {
		e.resetTimer()
		return OutcomeFar
	}

	if !e.timing {
		e.start = now
		e.timing = true
		return OutcomeDwelling
	}

	if now-e.start >= e.dwellMs {
		log.Printf("[goal] cleared after %.0fms dwell", now-e.start)
		e.resetTimer()
		e.cleared = true
		return OutcomeCleared
	}
	return OutcomeDwelling
}

func (e *Evaluator) near(pos cp.Vector, radius float64) bool {
	for _, peg := range e.pegs {
		threshold := radius + peg.Radius() + e.cfg.ProximityMargin
		if pos.DistanceSq(peg.Position()) < threshold*threshold {
			return true
		}
	}
	return false
}

func (e *Evaluator) resetTimer() {
	e.start = 0
	e.timing = false
}

// Attach evaluates on every after-update hook while active reports true
func (e *Evaluator) Attach(subs *event.Subscriptions, active func() bool, onClear func()) {
	subs.On(event.EventAfterUpdate, func(ev event.Event) {
		if active != nil && !active() {
			return
		}
		if e.Tick(ev.Timestamp) == OutcomeCleared && onClear != nil {
			onClear()
		}
	})
}

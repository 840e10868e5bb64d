package goal

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBody struct {
	pos    cp.Vector
	radius float64
}

func (f *fakeBody) Position() cp.Vector { return f.pos }
func (f *fakeBody) Radius() float64     { return f.radius }

var peg = &fakeBody{pos: cp.Vector{X: 629, Y: 437}, radius: 6}

func newEvaluator(t *testing.T) (*Evaluator, *fakeBody) {
	t.Helper()
	cfg := config.Default()
	e := NewEvaluator(cfg.Goal, cfg.FloorY())
	movable := &fakeBody{radius: 38 * 0.8}
	e.Track(movable)
	e.SetPegs([]Body{peg})
	return e, movable
}

// atDistance places the body d away from the peg, above it
func atDistance(d float64) cp.Vector {
	return cp.Vector{X: 629, Y: 437 - d}
}

func TestEvaluator_Scenario(t *testing.T) {
	e, m := newEvaluator(t)
	m.pos = atDistance(40)

	// Threshold is 46.4, so 40 is near
	assert.Equal(t, OutcomeDwelling, e.Tick(1000))
	start, ok := e.Timer()
	require.True(t, ok)
	assert.Equal(t, 1000.0, start)

	assert.Equal(t, OutcomeDwelling, e.Tick(3999))
	assert.InDelta(t, 2999.0/3000.0, e.Progress(3999), 1e-9)
	assert.Equal(t, OutcomeCleared, e.Tick(4000))

	_, ok = e.Timer()
	assert.False(t, ok, "timer resets on clear")
	assert.True(t, e.Cleared())

	// Fires exactly once
	for now := 4016.0; now < 10000; now += 16 {
		assert.Equal(t, OutcomeSkipped, e.Tick(now))
	}
}

func TestEvaluator_ProximityBoundary(t *testing.T) {
	e, m := newEvaluator(t)
	m.radius = 30
	// Threshold is 30 + 6 + 10 = 46, compared strictly
	m.pos = cp.Vector{X: 629 + 46, Y: 437}
	assert.Equal(t, OutcomeFar, e.Tick(0))

	m.pos = cp.Vector{X: 629 + 45.5, Y: 437}
	assert.Equal(t, OutcomeDwelling, e.Tick(0))
}

func TestEvaluator_LossOfProximityResets(t *testing.T) {
	e, m := newEvaluator(t)
	m.pos = atDistance(40)
	e.Tick(0)
	e.Tick(2500)

	m.pos = atDistance(100)
	assert.Equal(t, OutcomeFar, e.Tick(2600))
	_, ok := e.Timer()
	assert.False(t, ok)

	// Dwell restarts from scratch
	m.pos = atDistance(40)
	e.Tick(2700)
	assert.Equal(t, OutcomeDwelling, e.Tick(5600))
	assert.Equal(t, OutcomeCleared, e.Tick(5700))
}

func TestEvaluator_FloorContactResets(t *testing.T) {
	cfg := config.Default()
	e := NewEvaluator(cfg.Goal, cfg.FloorY())
	floorPeg := &fakeBody{pos: cp.Vector{X: 600, Y: 680}, radius: 6}
	m := &fakeBody{pos: cp.Vector{X: 600, Y: 640}, radius: 30.4}
	e.Track(m)
	e.SetPegs([]Body{floorPeg})

	// bottom = 640 + 33.44 = 673.44 < 690
	assert.Equal(t, OutcomeDwelling, e.Tick(0))

	// bottom = 657 + 33.44 = 690.44 >= 690
	m.pos.Y = 657
	assert.Equal(t, OutcomeFloor, e.Tick(100))
	_, ok := e.Timer()
	assert.False(t, ok)
}

func TestEvaluator_FloorCheckPrecedesProximity(t *testing.T) {
	cfg := config.Default()
	e := NewEvaluator(cfg.Goal, cfg.FloorY())
	m := &fakeBody{pos: cp.Vector{X: 600, Y: 700}, radius: 30.4}
	e.Track(m)
	e.SetPegs([]Body{&fakeBody{pos: cp.Vector{X: 600, Y: 700}, radius: 6}})

	assert.Equal(t, OutcomeFloor, e.Tick(0))
}

func TestEvaluator_MissingInputsAreNoop(t *testing.T) {
	cfg := config.Default()
	e := NewEvaluator(cfg.Goal, cfg.FloorY())
	assert.Equal(t, OutcomeSkipped, e.Tick(0))

	e.Track(&fakeBody{pos: atDistance(10), radius: 30})
	assert.Equal(t, OutcomeSkipped, e.Tick(0), "no pegs")

	e.SetPegs([]Body{peg})
	assert.Equal(t, OutcomeDwelling, e.Tick(0))

	e.Track(nil)
	assert.Equal(t, OutcomeSkipped, e.Tick(100))
	_, ok := e.Timer()
	assert.False(t, ok)
}

func TestEvaluator_NearestOfSeveralPegs(t *testing.T) {
	e, m := newEvaluator(t)
	e.SetPegs([]Body{
		&fakeBody{pos: cp.Vector{X: 100, Y: 100}, radius: 6},
		peg,
	})
	m.pos = atDistance(20)
	assert.Equal(t, OutcomeDwelling, e.Tick(0))
}

func TestEvaluator_ResetRearms(t *testing.T) {
	e, m := newEvaluator(t)
	m.pos = atDistance(20)
	e.Tick(0)
	require.Equal(t, OutcomeCleared, e.Tick(3000))

	e.Reset()
	assert.False(t, e.Cleared())
	assert.Equal(t, OutcomeDwelling, e.Tick(4000))
}

func TestEvaluator_Attach(t *testing.T) {
	e, m := newEvaluator(t)
	m.pos = atDistance(20)

	hub := event.NewHub()
	subs := event.NewSubscriptions(hub)
	active := true
	clears := 0
	e.Attach(subs, func() bool { return active }, func() { clears++ })

	for now := 0.0; now <= 3200; now += 16 {
		hub.Emit(event.Event{Type: event.EventAfterUpdate, Timestamp: now})
	}
	assert.Equal(t, 1, clears)

	// Inactive sessions are not evaluated
	e.Reset()
	active = false
	hub.Emit(event.Event{Type: event.EventAfterUpdate, Timestamp: 5000})
	_, ok := e.Timer()
	assert.False(t, ok)

	subs.OffAll()
	assert.Zero(t, hub.Total())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "cleared", OutcomeCleared.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

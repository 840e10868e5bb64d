package event

import "github.com/jakecoffman/cp"

// Canvas is the drawing surface passed to after-render hooks
type Canvas interface {
	// StrokeCircle outlines a circle given in world coordinates
	StrokeCircle(center cp.Vector, radius float64)
}

// Event is the single payload shape for every hook
// Fields irrelevant to the type are zero
type Event struct {
	Type      EventType
	Point     cp.Vector // World coordinates, pointer events
	Dt        float64   // Seconds, update events
	Timestamp float64   // Simulation milliseconds, update events
	Canvas    Canvas    // Render events
}

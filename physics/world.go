// Package physics adapts the chipmunk2d port to the fixed-step world a session drives.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
)

var (
	ErrInvalidWorld = errors.New("invalid world config")
	ErrTornDown     = errors.New("world torn down")
	ErrInvalidBody  = errors.New("invalid body")
)

// World owns one cp.Space and every object added to it
// The world keeps its own registry because bodies put to sleep by hand
// are not tracked in the space's sleeping component list
type World struct {
	space    *cp.Space
	timeStep float64
	sleeping bool
	bounds   cp.BB

	objects     []*Object
	index       map[*cp.Body]*Object
	constraints []*cp.Constraint

	timestamp float64 // milliseconds of simulated time
	steps     uint64
}

// NewWorld creates an empty world with the given physics and canvas settings
func NewWorld(phys config.Physics, canvas config.Canvas) (*World, error) {
	if phys.TimeStep <= 0 || math.IsInf(phys.TimeStep, 0) || math.IsNaN(phys.TimeStep) {
		return nil, fmt.Errorf("%w: time step %v", ErrInvalidWorld, phys.TimeStep)
	}
	if phys.Iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations %d", ErrInvalidWorld, phys.Iterations)
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas %vx%v", ErrInvalidWorld, canvas.Width, canvas.Height)
	}

	space := cp.NewSpace()
	space.Iterations = uint(phys.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: phys.GravityY})
	if phys.Damping > 0 {
		space.SetDamping(phys.Damping)
	}

	sleeping := phys.SleepingEnabled && phys.SleepTimeThreshold > 0
	if sleeping {
		space.SleepTimeThreshold = phys.SleepTimeThreshold
	} else {
		space.SleepTimeThreshold = cp.INFINITY
	}

	return &World{
		space:    space,
		timeStep: phys.TimeStep,
		sleeping: sleeping,
		bounds:   cp.BB{L: 0, B: 0, R: canvas.Width, T: canvas.Height},
		index:    make(map[*cp.Body]*Object),
	}, nil
}

// Active reports whether the world has not been torn down
func (w *World) Active() bool {
	return w.space != nil
}

// Space exposes the underlying space for read-only queries
func (w *World) Space() *cp.Space {
	return w.space
}

// Bounds returns the canvas rectangle
func (w *World) Bounds() cp.BB {
	return w.bounds
}

// TimeStep returns the fixed step in seconds
func (w *World) TimeStep() float64 {
	return w.timeStep
}

// SleepingEnabled reports whether bodies can be parked
func (w *World) SleepingEnabled() bool {
	return w.sleeping
}

// Timestamp returns simulated milliseconds since creation
func (w *World) Timestamp() float64 {
	return w.timestamp
}

// Steps returns the number of completed steps
func (w *World) Steps() uint64 {
	return w.steps
}

// Step advances the simulation by one fixed time step
func (w *World) Step() {
	if w.space == nil {
		return
	}
	w.space.Step(w.timeStep)
	w.steps++
	w.timestamp += w.timeStep * 1000
}

// Add inserts one object and its shapes
func (w *World) Add(obj *Object) error {
	return w.AddBatch(obj)
}

// AddBatch validates every object before inserting any of them
func (w *World) AddBatch(objs ...*Object) error {
	if w.space == nil {
		return ErrTornDown
	}

	seen := make(map[*cp.Body]struct{}, len(objs))
	for i, obj := range objs {
		if err := w.validate(obj, seen); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}

	for _, obj := range objs {
		w.space.AddBody(obj.Body)
		for _, shape := range obj.Shapes {
			w.space.AddShape(shape)
		}
		w.objects = append(w.objects, obj)
		w.index[obj.Body] = obj
	}
	return nil
}

func (w *World) validate(obj *Object, seen map[*cp.Body]struct{}) error {
	if obj == nil || obj.Body == nil {
		return fmt.Errorf("%w: nil", ErrInvalidBody)
	}
	if _, added := w.index[obj.Body]; added {
		return fmt.Errorf("%w: already added", ErrInvalidBody)
	}
	if _, dup := seen[obj.Body]; dup {
		return fmt.Errorf("%w: duplicate in batch", ErrInvalidBody)
	}
	seen[obj.Body] = struct{}{}

	if len(obj.Shapes) == 0 {
		return fmt.Errorf("%w: no shapes", ErrInvalidBody)
	}
	for _, shape := range obj.Shapes {
		if shape == nil || shape.Body() != obj.Body {
			return fmt.Errorf("%w: shape not owned by body", ErrInvalidBody)
		}
		if shape.Space() != nil {
			return fmt.Errorf("%w: shape already in a space", ErrInvalidBody)
		}
	}
	if obj.Body.GetType() == cp.BODY_DYNAMIC {
		p := obj.Body.Position()
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return fmt.Errorf("%w: position is NaN", ErrInvalidBody)
		}
	}
	return nil
}

// Remove detaches the object's constraints, shapes and body
// Unknown objects are ignored
func (w *World) Remove(obj *Object) {
	if w.space == nil || obj == nil {
		return
	}
	if _, ok := w.index[obj.Body]; !ok {
		return
	}

	// Constraints referencing the body would dangle
	var attached []*cp.Constraint
	obj.Body.EachConstraint(func(c *cp.Constraint) {
		attached = append(attached, c)
	})
	for _, c := range attached {
		w.DetachConstraint(c)
	}

	w.detach(obj)

	delete(w.index, obj.Body)
	for i, o := range w.objects {
		if o == obj {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			break
		}
	}
}

func (w *World) detach(obj *Object) {
	if obj.Body.GetType() == cp.BODY_DYNAMIC {
		obj.Body.Activate()
	}
	for _, shape := range obj.Shapes {
		if w.space.ContainsShape(shape) {
			w.space.RemoveShape(shape)
		}
	}
	if w.space.ContainsBody(obj.Body) {
		w.space.RemoveBody(obj.Body)
	}
}

// Contains reports whether obj is currently in the world
func (w *World) Contains(obj *Object) bool {
	if obj == nil {
		return false
	}
	_, ok := w.index[obj.Body]
	return ok
}

// Objects returns a snapshot of all objects in insertion order
func (w *World) Objects() []*Object {
	out := make([]*Object, len(w.objects))
	copy(out, w.objects)
	return out
}

// ObjectsOfKind returns the objects tagged with kind
func (w *World) ObjectsOfKind(kind Kind) []*Object {
	var out []*Object
	for _, obj := range w.objects {
		if obj.Tag().Kind == kind {
			out = append(out, obj)
		}
	}
	return out
}

// Lookup resolves a body back to its object
func (w *World) Lookup(body *cp.Body) (*Object, bool) {
	obj, ok := w.index[body]
	return obj, ok
}

// Sleep parks a freshly added dynamic body until something wakes it
// No-op when sleeping is disabled or the body is already asleep
func (w *World) Sleep(obj *Object) {
	if w.space == nil || !w.sleeping || !w.Contains(obj) {
		return
	}
	body := obj.Body
	if body.GetType() != cp.BODY_DYNAMIC || body.IsSleeping() {
		return
	}
	body.SetVelocity(0, 0)
	body.SetAngularVelocity(0)
	w.space.Deactivate(body)
	body.ComponentAdd(body)
}

// Wake activates a sleeping body
func (w *World) Wake(obj *Object) {
	if w.space == nil || !w.Contains(obj) {
		return
	}
	obj.Body.Activate()
}

// ObjectAt returns the object whose shape lies nearest to point within radius
// Points inside a shape have negative distance and always win
func (w *World) ObjectAt(point cp.Vector, radius float64) (*Object, bool) {
	if w.space == nil {
		return nil, false
	}
	info := w.space.PointQueryNearest(point, radius, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil, false
	}
	return w.Lookup(info.Shape.Body())
}

// PickDynamic returns the dynamic object nearest to point within radius
// Sleeping bodies are pickable
func (w *World) PickDynamic(point cp.Vector, radius float64) (*Object, bool) {
	obj, ok := w.ObjectAt(point, radius)
	if !ok || obj.Body.GetType() != cp.BODY_DYNAMIC {
		return nil, false
	}
	return obj, true
}

// AttachConstraint adds a constraint, waking any dynamic body it references
func (w *World) AttachConstraint(c *cp.Constraint) error {
	if w.space == nil {
		return ErrTornDown
	}
	if c == nil || w.space.ContainsConstraint(c) {
		return nil
	}
	w.space.AddConstraint(c)
	w.constraints = append(w.constraints, c)
	return nil
}

// DetachConstraint removes a constraint if present
func (w *World) DetachConstraint(c *cp.Constraint) {
	if w.space == nil || c == nil {
		return
	}
	for i, existing := range w.constraints {
		if existing == c {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			break
		}
	}
	if w.space.ContainsConstraint(c) {
		w.space.RemoveConstraint(c)
	}
}

// HasConstraint reports whether c is attached
func (w *World) HasConstraint(c *cp.Constraint) bool {
	return w.space != nil && c != nil && w.space.ContainsConstraint(c)
}

// Sweep removes awake dynamic objects outside the canvas grown by margin
func (w *World) Sweep(margin float64) []*Object {
	if w.space == nil {
		return nil
	}
	limit := cp.BB{
		L: w.bounds.L - margin,
		B: w.bounds.B - margin,
		R: w.bounds.R + margin,
		T: w.bounds.T + margin,
	}

	var removed []*Object
	for _, obj := range w.Objects() {
		if obj.Static() || obj.Sleeping() {
			continue
		}
		if !limit.ContainsVect(obj.Position()) {
			w.Remove(obj)
			removed = append(removed, obj)
		}
	}
	return removed
}

// Teardown removes every constraint, shape and body and releases the space
// Safe to call more than once
func (w *World) Teardown() {
	if w.space == nil {
		return
	}
	for _, c := range w.constraints {
		if w.space.ContainsConstraint(c) {
			w.space.RemoveConstraint(c)
		}
	}
	w.constraints = nil

	for _, obj := range w.objects {
		w.detach(obj)
	}
	w.objects = nil
	w.index = make(map[*cp.Body]*Object)
	w.space = nil
}

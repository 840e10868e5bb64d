package input

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/event"
	"github.com/lixenwraith/gthrower/physics"
)

// LaunchFunc observes a completed throw
type LaunchFunc func(obj *physics.Object, velocity cp.Vector)

// DragController converts pointer gestures into a zone-limited drag and a release impulse
//
// Grab is two-phase: the engine pick selects the nearest dynamic body, then the
// zone gate confirms or nullifies it before any joint exists
type DragController struct {
	world *physics.World
	zone  Zone
	cfg   config.Drag

	pointer Pointer
	pick    float64  // Tolerance from the render grid, floored by cfg.PickRadius
	mouse   *cp.Body // Kinematic anchor, never added to the space
	joint   *cp.Constraint
	grabbed *physics.Object

	onLaunch LaunchFunc
}

func NewDragController(world *physics.World, zone Zone, cfg config.Drag) *DragController {
	d := &DragController{
		world: world,
		zone:  zone,
		cfg:   cfg,
		pick:  cfg.PickRadius,
		mouse: cp.NewKinematicBody(),
	}
	d.pointer.SetHold(cfg.VelocityHold)
	return d
}

// SetPickRadius widens the pick tolerance, typically to the size a rendered cell covers
// Values below the configured radius fall back to it
func (d *DragController) SetPickRadius(r float64) {
	d.pick = max(r, d.cfg.PickRadius)
}

// PickRadius returns the tolerance used by PointerDown
func (d *DragController) PickRadius() float64 {
	return d.pick
}

// OnLaunch installs the release observer
func (d *DragController) OnLaunch(fn LaunchFunc) {
	d.onLaunch = fn
}

// Attach registers the pointer and pre-integration hooks
func (d *DragController) Attach(subs *event.Subscriptions) {
	subs.On(event.EventPointerDown, func(ev event.Event) { d.PointerDown(ev.Point) })
	subs.On(event.EventPointerMove, func(ev event.Event) { d.PointerMove(ev.Point) })
	subs.On(event.EventPointerUp, func(ev event.Event) { d.PointerUp(ev.Point) })
	subs.On(event.EventBeforeUpdate, func(ev event.Event) { d.Tick(ev.Dt) })
}

// Zone returns the interaction zone
func (d *DragController) Zone() Zone {
	return d.zone
}

// Pointer returns the tracked pointer
func (d *DragController) Pointer() *Pointer {
	return &d.pointer
}

// Grabbed returns the held object or nil
func (d *DragController) Grabbed() *physics.Object {
	return d.grabbed
}

// Joint returns the live drag joint or nil
func (d *DragController) Joint() *cp.Constraint {
	return d.joint
}

// PointerDown picks the body under p when p lies inside the zone
func (d *DragController) PointerDown(p cp.Vector) {
	d.pointer.Reset(p)
	d.mouse.SetPosition(p)
	d.mouse.SetVelocity(0, 0)

	if d.grabbed != nil {
		d.release()
	}

	candidate, ok := d.world.PickDynamic(p, d.pick)
	if !d.zone.Contains(p) {
		candidate, ok = nil, false
	}
	if !ok {
		return
	}

	anchor := candidate.Body.WorldToLocal(p)
	joint := cp.NewPivotJoint2(d.mouse, candidate.Body, cp.Vector{}, anchor)
	joint.SetMaxForce(d.cfg.MaxForce)
	joint.SetErrorBias(math.Pow(1-d.cfg.Stiffness, 60))
	if err := d.world.AttachConstraint(joint); err != nil {
		log.Printf("[drag] attach failed: %v", err)
		return
	}

	d.joint = joint
	d.grabbed = candidate
}

// PointerMove records the new pointer position; the anchor follows on the next tick
func (d *DragController) PointerMove(p cp.Vector) {
	d.pointer.MoveTo(p)
}

// Tick samples the pointer and enforces the zone while a body is held
// Runs before physics integration
func (d *DragController) Tick(dt float64) {
	d.pointer.Sample(dt)

	if d.grabbed == nil {
		return
	}
	if !d.world.Contains(d.grabbed) {
		d.joint = nil
		d.grabbed = nil
		return
	}

	p := d.pointer.Position()
	if !d.zone.Contains(p) {
		// Body keeps its current velocity
		d.release()
		return
	}

	if dt > 0 {
		d.mouse.SetVelocityVector(p.Sub(d.mouse.Position()).Mult(1 / dt))
	}
	d.mouse.SetPosition(p)
}

// PointerUp launches the held body with the scaled pointer velocity
// No-op when nothing is held
func (d *DragController) PointerUp(p cp.Vector) {
	d.pointer.MoveTo(p)

	obj := d.grabbed
	if obj == nil {
		return
	}

	v := d.pointer.Velocity()
	launch := cp.Vector{X: v.X * d.cfg.LaunchMultiplier, Y: v.Y * d.cfg.LaunchMultiplier}

	d.release()
	if !d.world.Contains(obj) {
		return
	}
	d.world.Wake(obj)
	obj.Body.SetVelocityVector(launch)

	if d.onLaunch != nil {
		d.onLaunch(obj, launch)
	}
}

// ReleaseObject drops the grab if obj is the held body
func (d *DragController) ReleaseObject(obj *physics.Object) {
	if obj != nil && d.grabbed == obj {
		d.release()
	}
}

// Detach removes any live joint; the controller holds nothing afterwards
func (d *DragController) Detach() {
	d.release()
	d.onLaunch = nil
}

func (d *DragController) release() {
	if d.joint != nil {
		d.world.DetachConstraint(d.joint)
	}
	d.joint = nil
	d.grabbed = nil
}

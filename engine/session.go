package engine

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/event"
	"github.com/lixenwraith/gthrower/glyph"
	"github.com/lixenwraith/gthrower/goal"
	"github.com/lixenwraith/gthrower/input"
	"github.com/lixenwraith/gthrower/obstacle"
	"github.com/lixenwraith/gthrower/physics"
	"github.com/lixenwraith/gthrower/status"
)

var (
	ErrNoRenderTarget = errors.New("no render target")
	ErrSetup          = errors.New("session setup failed")
)

// SessionState is the lifecycle of one play-through
type SessionState uint8

const (
	StateIdle SessionState = iota
	StateRunning
	StateCleared
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// RenderTarget draws a bound world
type RenderTarget interface {
	Bind(world *physics.World) error
	Unbind()
}

// Sound plays session feedback; implementations must tolerate a missing device
type Sound interface {
	PlayClear() bool
	PlayLaunch() bool
}

// SessionContext is everything built by Start and destroyed by Stop
type SessionContext struct {
	ID        uuid.UUID
	World     *physics.World
	Drag      *input.DragController
	Evaluator *goal.Evaluator
	Pegs      []*physics.Object
	Movable   *physics.Object
	Subs      *event.Subscriptions

	bound      bool
	stepJob    JobID
	cleanupJob JobID
	clearJob   JobID
}

// Session owns at most one running simulation
type Session struct {
	cfg     *config.Config
	hub     *event.Hub
	sched   *Scheduler
	target  RenderTarget
	sound   Sound
	variant glyph.Variant
	rng     *rand.Rand

	pick      float64
	state     SessionState
	ctx       *SessionContext
	onCleared func()

	statLaunches *atomic.Int64
	statClears   *atomic.Int64
	statSessions *atomic.Int64
	statSwept    *atomic.Int64
	statRespawns *atomic.Int64
	statSteps    *atomic.Int64
	statDwell    *status.AtomicFloat
	labelSession *status.AtomicLabel
}

// SessionDeps are the collaborators a session borrows from the app
type SessionDeps struct {
	Hub     *event.Hub
	Sched   *Scheduler
	Target  RenderTarget
	Sound   Sound
	Metrics *status.Registry
	Rand    *rand.Rand
}

// NewSession validates the glyph variant up front so Start cannot fail on it
func NewSession(cfg *config.Config, deps SessionDeps) (*Session, error) {
	variant, err := glyph.ParseVariant(cfg.Glyph.Variant)
	if err != nil {
		return nil, err
	}
	if deps.Hub == nil || deps.Sched == nil {
		return nil, fmt.Errorf("%w: hub and scheduler are required", ErrSetup)
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	rng := deps.Rand
	if rng == nil {
		seed := uint64(cfg.Pegs.Random.Seed)
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	return &Session{
		cfg:          cfg,
		hub:          deps.Hub,
		sched:        deps.Sched,
		target:       deps.Target,
		sound:        deps.Sound,
		variant:      variant,
		rng:          rng,
		statLaunches: metrics.Counter(status.KeyLaunches),
		statClears:   metrics.Counter(status.KeyClears),
		statSessions: metrics.Counter(status.KeySessions),
		statSwept:    metrics.Counter(status.KeySwept),
		statRespawns: metrics.Counter(status.KeyRespawns),
		statSteps:    metrics.Counter(status.KeySteps),
		statDwell:    metrics.Gauge(status.KeyDwell),
		labelSession: metrics.Label(status.KeySessionID),
	}, nil
}

// SetRenderTarget replaces the target used by the next Start
func (s *Session) SetRenderTarget(t RenderTarget) {
	s.target = t
}

// SetPickRadius sets the pointer pick tolerance for the running and later sessions
func (s *Session) SetPickRadius(r float64) {
	s.pick = r
	if s.ctx != nil && s.ctx.Drag != nil {
		s.ctx.Drag.SetPickRadius(r)
	}
}

// OnCleared installs the hook run after the clear delay while still Cleared
func (s *Session) OnCleared(fn func()) {
	s.onCleared = fn
}

func (s *Session) State() SessionState {
	return s.state
}

// Context returns the live session context, nil when Idle
func (s *Session) Context() *SessionContext {
	return s.ctx
}

// Start builds the stage and begins stepping
// A second Start while a session exists logs and returns nil
func (s *Session) Start() (err error) {
	if s.ctx != nil {
		log.Printf("[session] start ignored: session %s is %s", s.ctx.ID, s.state)
		return nil
	}
	if s.target == nil {
		log.Printf("[session] start aborted: %v", ErrNoRenderTarget)
		return ErrNoRenderTarget
	}

	sc := &SessionContext{
		ID:   uuid.New(),
		Subs: event.NewSubscriptions(s.hub),
	}
	s.ctx = sc

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrSetup, r)
		}
		if err != nil {
			log.Printf("[session] start %s failed: %v", sc.ID, err)
			s.teardown()
		}
	}()

	if err := s.setup(sc); err != nil {
		return err
	}

	s.state = StateRunning
	s.statSessions.Add(1)
	s.labelSession.Store(sc.ID.String()[:8])
	log.Printf("[session] %s running with %d pegs", sc.ID, len(sc.Pegs))
	return nil
}

func (s *Session) setup(sc *SessionContext) error {
	cfg := s.cfg

	world, err := physics.NewWorld(cfg.Physics, cfg.Canvas)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	sc.World = world

	if err := s.target.Bind(world); err != nil {
		return fmt.Errorf("%w: bind render target: %w", ErrSetup, err)
	}
	sc.bound = true

	builder := obstacle.NewBuilder(world)
	if err := builder.Populate(obstacle.Walls(cfg.Canvas)...); err != nil {
		return fmt.Errorf("%w: walls: %w", ErrSetup, err)
	}

	zone := input.NewZone(cp.Vector{X: cfg.Zone.X, Y: cfg.Zone.Y}, cfg.Zone.Radius)
	sc.Drag = input.NewDragController(world, zone, cfg.Drag)
	sc.Drag.SetPickRadius(s.pick)
	sc.Drag.OnLaunch(s.launched)
	sc.Drag.Attach(sc.Subs)

	sc.Pegs = obstacle.Pegs(s.pegPositions(zone), cfg.Pegs.Radius)
	if err := builder.Populate(sc.Pegs...); err != nil {
		return fmt.Errorf("%w: pegs: %w", ErrSetup, err)
	}

	if cfg.Obstacles.Tree {
		root := cp.Vector{X: cfg.Canvas.Width * cfg.Obstacles.TreeRootXRatio, Y: cfg.Canvas.Height}
		if err := builder.Populate(obstacle.Tree(root, cfg.Canvas.Height)); err != nil {
			return fmt.Errorf("%w: tree: %w", ErrSetup, err)
		}
	}

	sc.Evaluator = goal.NewEvaluator(cfg.Goal, cfg.FloorY())
	targets := make([]goal.Body, len(sc.Pegs))
	for i, p := range sc.Pegs {
		targets[i] = p
	}
	sc.Evaluator.SetPegs(targets)

	if err := s.spawnMovable(sc); err != nil {
		return err
	}

	sc.stepJob = s.sched.EveryFrame(func(time.Duration) { s.step() })

	sc.Evaluator.Attach(sc.Subs, func() bool { return s.state == StateRunning }, s.cleared)
	sc.Subs.On(event.EventAfterRender, func(ev event.Event) {
		if ev.Canvas != nil {
			ev.Canvas.StrokeCircle(zone.Center, zone.Radius)
		}
	})

	sc.cleanupJob = s.sched.Every(cfg.Cleanup.Interval, s.sweep)
	return nil
}

// pegPositions merges configured pegs with randomly placed ones
func (s *Session) pegPositions(zone input.Zone) []cp.Vector {
	pc := s.cfg.Pegs
	fixed := make([]cp.Vector, 0, len(pc.Positions))
	for _, p := range pc.Positions {
		fixed = append(fixed, cp.Vector{X: p.X, Y: p.Y})
	}
	if pc.Random.Count <= 0 {
		return fixed
	}

	random := obstacle.PlacePegs(s.rng, obstacle.PegRequest{
		Count:            pc.Random.Count,
		Area:             cp.BB{L: pc.Random.MinX, B: pc.Random.MinY, R: pc.Random.MaxX, T: pc.Random.MaxY},
		Radius:           pc.Radius,
		SeparationFactor: pc.Random.SeparationFactor,
		AttemptFactor:    pc.Random.AttemptFactor,
		Avoid:            append(fixed, zone.Center),
	})
	return append(fixed, random...)
}

func (s *Session) spawnMovable(sc *SessionContext) error {
	spec, err := s.variant.Spec(sc.Drag.Zone().Center, s.cfg.Glyph.Scale)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	obj := glyph.Build(spec)
	if err := sc.World.Add(obj); err != nil {
		return fmt.Errorf("%w: movable: %w", ErrSetup, err)
	}
	sc.World.Sleep(obj)
	sc.Movable = obj
	sc.Evaluator.Track(obj)
	return nil
}

// step is the single stepping driver: drag check, integrate, evaluate
func (s *Session) step() {
	sc := s.ctx
	if sc == nil || !sc.World.Active() {
		return
	}
	dt := sc.World.TimeStep()
	s.hub.Emit(event.Event{Type: event.EventBeforeUpdate, Dt: dt, Timestamp: sc.World.Timestamp()})
	sc.World.Step()
	s.statSteps.Add(1)
	now := sc.World.Timestamp()
	s.hub.Emit(event.Event{Type: event.EventAfterUpdate, Dt: dt, Timestamp: now})
	s.statDwell.Set(sc.Evaluator.Progress(now))
}

func (s *Session) launched(obj *physics.Object, v cp.Vector) {
	s.statLaunches.Add(1)
	if s.sound != nil {
		s.sound.PlayLaunch()
	}
	log.Printf("[session] launch %s v=(%.1f, %.1f)", obj.Tag().Label, v.X, v.Y)
}

func (s *Session) cleared() {
	sc := s.ctx
	if sc == nil || s.state != StateRunning {
		return
	}
	s.state = StateCleared
	s.statClears.Add(1)
	s.statDwell.Set(1)
	if s.sound != nil {
		s.sound.PlayClear()
	}
	log.Printf("[session] %s cleared", sc.ID)

	sc.clearJob = s.sched.After(s.cfg.Goal.TransitionDelay, func() {
		sc.clearJob = 0
		if s.ctx == sc && s.state == StateCleared && s.onCleared != nil {
			s.onCleared()
		}
	})
}

// sweep removes escaped bodies and respawns the movable if it was among them
func (s *Session) sweep() {
	sc := s.ctx
	if sc == nil {
		return
	}
	removed := sc.World.Sweep(s.cfg.Cleanup.Margin)
	if len(removed) == 0 {
		return
	}
	s.statSwept.Add(int64(len(removed)))
	for _, obj := range removed {
		sc.Drag.ReleaseObject(obj)
		if obj == sc.Movable {
			sc.Movable = nil
			sc.Evaluator.Track(nil)
		}
	}
	log.Printf("[session] swept %d bodies", len(removed))

	if sc.Movable == nil && s.state == StateRunning {
		if err := s.spawnMovable(sc); err != nil {
			log.Printf("[session] respawn failed: %v", err)
			return
		}
		s.statRespawns.Add(1)
	}
}

// ResetMovable respawns the glyph asleep at the zone center
// Returns false unless Running
func (s *Session) ResetMovable() bool {
	sc := s.ctx
	if sc == nil || s.state != StateRunning {
		return false
	}
	if sc.Movable != nil {
		sc.Drag.ReleaseObject(sc.Movable)
		sc.World.Remove(sc.Movable)
		sc.Movable = nil
	}
	if err := s.spawnMovable(sc); err != nil {
		log.Printf("[session] reset failed: %v", err)
		return false
	}
	s.statRespawns.Add(1)
	s.statDwell.Set(0)
	return true
}

// Stop tears the session down; no-op when Idle
func (s *Session) Stop() {
	if s.ctx == nil {
		return
	}
	id := s.ctx.ID
	s.teardown()
	log.Printf("[session] %s stopped", id)
}

func (s *Session) teardown() {
	sc := s.ctx
	if sc == nil {
		return
	}

	s.sched.Cancel(sc.stepJob)
	sc.Subs.OffAll()
	s.sched.Cancel(sc.cleanupJob)
	s.sched.Cancel(sc.clearJob)

	if sc.Drag != nil {
		sc.Drag.Detach()
	}
	if sc.bound {
		s.target.Unbind()
		sc.bound = false
	}
	if sc.World != nil {
		sc.World.Teardown()
	}
	if sc.Evaluator != nil {
		sc.Evaluator.Track(nil)
		sc.Evaluator.Reset()
	}

	sc.Pegs = nil
	sc.Movable = nil
	s.ctx = nil
	s.state = StateIdle
	s.statDwell.Set(0)
}

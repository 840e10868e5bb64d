package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/event"
	"github.com/lixenwraith/gthrower/physics"
	"github.com/lixenwraith/gthrower/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	bindErr  error
	panicMsg string
	world    *physics.World
	binds    int
	unbinds  int
}

func (f *fakeTarget) Bind(w *physics.World) error {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.bindErr != nil {
		return f.bindErr
	}
	f.binds++
	f.world = w
	return nil
}

func (f *fakeTarget) Unbind() {
	f.unbinds++
	f.world = nil
}

type fakeSound struct {
	clears, launches int
}

func (f *fakeSound) PlayClear() bool  { f.clears++; return true }
func (f *fakeSound) PlayLaunch() bool { f.launches++; return true }

type sessionRig struct {
	cfg     *config.Config
	hub     *event.Hub
	sched   *Scheduler
	target  *fakeTarget
	sound   *fakeSound
	metrics *status.Registry
	session *Session
	now     time.Time
}

func newRig(t *testing.T, mutate func(*config.Config)) *sessionRig {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	r := &sessionRig{
		cfg:     cfg,
		hub:     event.NewHub(),
		sched:   NewScheduler(epoch),
		target:  &fakeTarget{},
		sound:   &fakeSound{},
		metrics: status.NewRegistry(),
		now:     epoch,
	}
	s, err := NewSession(cfg, SessionDeps{
		Hub:     r.hub,
		Sched:   r.sched,
		Target:  r.target,
		Sound:   r.sound,
		Metrics: r.metrics,
	})
	require.NoError(t, err)
	r.session = s
	return r
}

// frame advances wall time by one frame interval
func (r *sessionRig) frame() {
	r.now = r.now.Add(16 * time.Millisecond)
	r.sched.Advance(r.now)
}

func (r *sessionRig) wait(d time.Duration) {
	r.now = r.now.Add(d)
	r.sched.Advance(r.now)
}

// nearPeg puts the only peg 40 units right of the zone center with gravity off
func nearPeg(cfg *config.Config) {
	cfg.Physics.GravityY = 0
	cfg.Obstacles.Tree = false
	cfg.Pegs.Positions = []config.Point{{X: cfg.Zone.X + 40, Y: cfg.Zone.Y}}
}

func assertAt(t *testing.T, want, got cp.Vector) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestNewSession_RejectsUnknownVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Glyph.Variant = "Q"
	_, err := NewSession(cfg, SessionDeps{Hub: event.NewHub(), Sched: NewScheduler(epoch)})
	assert.Error(t, err)

	_, err = NewSession(config.Default(), SessionDeps{})
	assert.ErrorIs(t, err, ErrSetup)
}

func TestSession_StartRequiresRenderTarget(t *testing.T) {
	r := newRig(t, nil)
	r.session.SetRenderTarget(nil)

	assert.ErrorIs(t, r.session.Start(), ErrNoRenderTarget)
	assert.Equal(t, StateIdle, r.session.State())
	assert.Nil(t, r.session.Context())
}

func TestSession_StartBuildsStage(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())
	assert.Equal(t, StateRunning, r.session.State())

	sc := r.session.Context()
	require.NotNil(t, sc)
	assert.Same(t, sc.World, r.target.world)

	w := sc.World
	assert.Len(t, w.ObjectsOfKind(physics.KindWall), 4)
	assert.Len(t, w.ObjectsOfKind(physics.KindPeg), 1)
	assert.Len(t, w.ObjectsOfKind(physics.KindObstacle), 1)
	movables := w.ObjectsOfKind(physics.KindMovable)
	require.Len(t, movables, 1)
	assert.Same(t, sc.Movable, movables[0])

	assert.True(t, sc.Movable.Sleeping())
	assertAt(t, cp.Vector{X: r.cfg.Zone.X, Y: r.cfg.Zone.Y}, sc.Movable.Position())

	// Drag handlers, evaluator and overlay
	assert.Equal(t, 1, r.hub.HandlerCount(event.EventPointerDown))
	assert.Equal(t, 1, r.hub.HandlerCount(event.EventBeforeUpdate))
	assert.Equal(t, 1, r.hub.HandlerCount(event.EventAfterUpdate))
	assert.Equal(t, 1, r.hub.HandlerCount(event.EventAfterRender))
	// Stepping and cleanup drivers
	assert.Equal(t, 2, r.sched.Len())
	assert.Equal(t, int64(1), r.metrics.Counter(status.KeySessions).Load())
}

func TestSession_SecondStartIsNoop(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())
	sc := r.session.Context()

	require.NoError(t, r.session.Start())
	assert.Same(t, sc, r.session.Context())
	assert.Equal(t, 1, r.target.binds)
	assert.Equal(t, 2, r.sched.Len())
}

func TestSession_SingleSteppingDriver(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())
	w := r.session.Context().World

	for i := 0; i < 10; i++ {
		r.frame()
	}
	assert.Equal(t, uint64(10), w.Steps())
}

func TestSession_StopIsIdempotent(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())
	w := r.session.Context().World

	r.session.Stop()
	assert.Equal(t, StateIdle, r.session.State())
	assert.Nil(t, r.session.Context())
	assert.Zero(t, r.hub.Total())
	assert.Zero(t, r.sched.Len())
	assert.False(t, w.Active())
	assert.Equal(t, 1, r.target.unbinds)

	assert.NotPanics(t, r.session.Stop)
	assert.Equal(t, StateIdle, r.session.State())
	assert.Equal(t, 1, r.target.unbinds)

	// Frames after stop touch nothing
	r.frame()
	assert.Zero(t, w.Steps())
}

func TestSession_BindFailureLeavesIdle(t *testing.T) {
	r := newRig(t, nil)
	r.target.bindErr = errors.New("canvas missing")

	err := r.session.Start()
	require.ErrorIs(t, err, ErrSetup)
	assert.Equal(t, StateIdle, r.session.State())
	assert.Nil(t, r.session.Context())
	assert.Zero(t, r.hub.Total())
	assert.Zero(t, r.sched.Len())
	assert.Zero(t, r.target.unbinds, "never bound")

	// A later attempt can succeed
	r.target.bindErr = nil
	require.NoError(t, r.session.Start())
}

func TestSession_PanicDuringSetupIsRecovered(t *testing.T) {
	r := newRig(t, nil)
	r.target.panicMsg = "boom"

	err := r.session.Start()
	require.ErrorIs(t, err, ErrSetup)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, StateIdle, r.session.State())
	assert.Zero(t, r.hub.Total())
}

func TestSession_ClearFlow(t *testing.T) {
	r := newRig(t, nearPeg)
	transitions := 0
	r.session.OnCleared(func() { transitions++ })
	require.NoError(t, r.session.Start())

	for i := 0; i < 300 && r.session.State() == StateRunning; i++ {
		r.frame()
	}
	require.Equal(t, StateCleared, r.session.State())
	assert.Equal(t, 1, r.sound.clears)
	assert.Equal(t, int64(1), r.metrics.Counter(status.KeyClears).Load())

	// Transition waits for the delay
	assert.Zero(t, transitions)
	r.wait(r.cfg.Goal.TransitionDelay)
	assert.Equal(t, 1, transitions)

	// Cleared fires once however long the body stays
	for i := 0; i < 300; i++ {
		r.frame()
	}
	assert.Equal(t, 1, transitions)
	assert.Equal(t, 1, r.sound.clears)
}

func TestSession_StopCancelsClearTransition(t *testing.T) {
	r := newRig(t, nearPeg)
	transitions := 0
	r.session.OnCleared(func() { transitions++ })
	require.NoError(t, r.session.Start())

	for i := 0; i < 300 && r.session.State() == StateRunning; i++ {
		r.frame()
	}
	require.Equal(t, StateCleared, r.session.State())

	r.session.Stop()
	r.wait(time.Second)
	assert.Zero(t, transitions)
}

func TestSession_ResetMovable(t *testing.T) {
	r := newRig(t, nil)
	assert.False(t, r.session.ResetMovable(), "idle")

	require.NoError(t, r.session.Start())
	sc := r.session.Context()
	old := sc.Movable
	old.Body.SetPosition(cp.Vector{X: 600, Y: 300})

	require.True(t, r.session.ResetMovable())
	assert.NotSame(t, old, sc.Movable)
	assert.False(t, sc.World.Contains(old))
	assert.True(t, sc.Movable.Sleeping())
	assertAt(t, cp.Vector{X: r.cfg.Zone.X, Y: r.cfg.Zone.Y}, sc.Movable.Position())
	assert.Len(t, sc.World.ObjectsOfKind(physics.KindMovable), 1)
	_, timing := sc.Evaluator.Timer()
	assert.False(t, timing)
}

func TestSession_PickRadiusCarriesAcrossSessions(t *testing.T) {
	r := newRig(t, nil)
	r.session.SetPickRadius(20)
	require.NoError(t, r.session.Start())
	assert.Equal(t, 20.0, r.session.Context().Drag.PickRadius())

	// Applied to the live controller, floored by the configured radius
	r.session.SetPickRadius(1)
	assert.Equal(t, r.cfg.Drag.PickRadius, r.session.Context().Drag.PickRadius())

	r.session.SetPickRadius(12)
	r.session.Stop()
	require.NoError(t, r.session.Start())
	assert.Equal(t, 12.0, r.session.Context().Drag.PickRadius())
}

func TestSession_ResetReleasesGrab(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())
	sc := r.session.Context()

	center := cp.Vector{X: r.cfg.Zone.X, Y: r.cfg.Zone.Y}
	r.hub.Emit(event.Event{Type: event.EventPointerDown, Point: center})
	require.NotNil(t, sc.Drag.Grabbed())
	joint := sc.Drag.Joint()

	require.True(t, r.session.ResetMovable())
	assert.Nil(t, sc.Drag.Grabbed())
	assert.False(t, sc.World.HasConstraint(joint))
}

func TestSession_LaunchThroughHub(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())
	sc := r.session.Context()

	center := cp.Vector{X: r.cfg.Zone.X, Y: r.cfg.Zone.Y}
	r.hub.Emit(event.Event{Type: event.EventPointerDown, Point: center})
	require.NotNil(t, sc.Drag.Grabbed())

	r.hub.Emit(event.Event{Type: event.EventPointerMove, Point: center.Add(cp.Vector{X: 10})})
	r.frame()
	r.hub.Emit(event.Event{Type: event.EventPointerUp, Point: center.Add(cp.Vector{X: 10})})

	assert.Nil(t, sc.Drag.Grabbed())
	assert.Equal(t, 1, r.sound.launches)
	assert.Equal(t, int64(1), r.metrics.Counter(status.KeyLaunches).Load())
	assert.False(t, sc.Movable.Sleeping())
}

func TestSession_SweepRespawnsEscapedMovable(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())
	sc := r.session.Context()
	old := sc.Movable
	old.Body.SetPosition(cp.Vector{X: -1000, Y: 300})

	r.wait(r.cfg.Cleanup.Interval)

	assert.False(t, sc.World.Contains(old))
	require.NotNil(t, sc.Movable)
	assert.NotSame(t, old, sc.Movable)
	assert.Equal(t, int64(1), r.metrics.Counter(status.KeySwept).Load())
	assert.Equal(t, int64(1), r.metrics.Counter(status.KeyRespawns).Load())
}

func TestSession_OverlayStrokesZone(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.session.Start())

	canvas := &recordingCanvas{}
	r.hub.Emit(event.Event{Type: event.EventAfterRender, Canvas: canvas})
	require.Len(t, canvas.circles, 1)
	assert.Equal(t, cp.Vector{X: r.cfg.Zone.X, Y: r.cfg.Zone.Y}, canvas.circles[0].center)
	assert.Equal(t, r.cfg.Zone.Radius, canvas.circles[0].radius)

	r.session.Stop()
	r.hub.Emit(event.Event{Type: event.EventAfterRender, Canvas: canvas})
	assert.Len(t, canvas.circles, 1)
}

type circle struct {
	center cp.Vector
	radius float64
}

type recordingCanvas struct {
	circles []circle
}

func (c *recordingCanvas) StrokeCircle(center cp.Vector, radius float64) {
	c.circles = append(c.circles, circle{center, radius})
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "unknown", SessionState(9).String())
}

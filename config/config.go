// Package config holds every tunable of a gthrower session.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/gthrower/constants"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root configuration
type Config struct {
	Canvas    Canvas    `yaml:"canvas"`
	Physics   Physics   `yaml:"physics"`
	Zone      Zone      `yaml:"zone"`
	Drag      Drag      `yaml:"drag"`
	Glyph     Glyph     `yaml:"glyph"`
	Pegs      Pegs      `yaml:"pegs"`
	Goal      Goal      `yaml:"goal"`
	Cleanup   Cleanup   `yaml:"cleanup"`
	Obstacles Obstacles `yaml:"obstacles"`
	Keys      Keys      `yaml:"keys"`
	Audio     Audio     `yaml:"audio"`
	Render    Render    `yaml:"render"`
}

// Canvas is the world extent in world units
type Canvas struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

type Physics struct {
	GravityY           float64 `yaml:"gravity_y"`
	SleepingEnabled    bool    `yaml:"sleeping_enabled"`
	TimeStep           float64 `yaml:"time_step"`
	Iterations         int     `yaml:"iterations"`
	SleepTimeThreshold float64 `yaml:"sleep_time_threshold"`
	Damping            float64 `yaml:"damping"`
}

// Zone is the circular region a drag may start and continue in
type Zone struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type Drag struct {
	LaunchMultiplier float64       `yaml:"launch_multiplier"`
	Stiffness        float64       `yaml:"stiffness"`
	MaxForce         float64       `yaml:"max_force"`
	PickRadius       float64       `yaml:"pick_radius"`
	VelocityHold     time.Duration `yaml:"velocity_hold"`
}

// Glyph selects the movable body shape
type Glyph struct {
	Variant string  `yaml:"variant"`
	Scale   float64 `yaml:"scale"`
}

// Point is a world position
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Pegs configures fixed and randomly placed target pegs
type Pegs struct {
	Radius    float64      `yaml:"radius"`
	Positions []Point      `yaml:"positions"`
	Random    RandomPlacer `yaml:"random"`
}

// RandomPlacer places Count extra pegs inside [MinX,MaxX]x[MinY,MaxY]
type RandomPlacer struct {
	Count            int     `yaml:"count"`
	MinX             float64 `yaml:"min_x"`
	MinY             float64 `yaml:"min_y"`
	MaxX             float64 `yaml:"max_x"`
	MaxY             float64 `yaml:"max_y"`
	SeparationFactor float64 `yaml:"separation_factor"`
	AttemptFactor    int     `yaml:"attempt_factor"`
	Seed             int64   `yaml:"seed"`
}

// Goal holds the clear condition thresholds
type Goal struct {
	ProximityMargin float64       `yaml:"proximity_margin"`
	FloorInset      *float64      `yaml:"floor_inset"` // Nil follows half the wall thickness
	FloorMargin     float64       `yaml:"floor_margin"`
	BottomFactor    float64       `yaml:"bottom_factor"`
	Dwell           time.Duration `yaml:"dwell"`
	TransitionDelay time.Duration `yaml:"transition_delay"`
}

type Cleanup struct {
	Interval time.Duration `yaml:"interval"`
	Margin   float64       `yaml:"margin"`
}

type Obstacles struct {
	Tree           bool    `yaml:"tree"`
	TreeRootXRatio float64 `yaml:"tree_root_x_ratio"`
}

type Keys struct {
	Reset string `yaml:"reset"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type Render struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// FloorY is the surface the clear check measures clearance against
// Without an explicit inset it sits mid-way into the bottom wall
func (c *Config) FloorY() float64 {
	if c.Goal.FloorInset != nil {
		return c.Canvas.Height - *c.Goal.FloorInset
	}
	return c.Canvas.Height - c.Canvas.WallThickness/2
}

// Default returns the stock stage configuration
func Default() *Config {
	return &Config{
		Canvas: Canvas{
			Width:         constants.CanvasWidth,
			Height:        constants.CanvasHeight,
			WallThickness: constants.WallThickness,
		},
		Physics: Physics{
			GravityY:           constants.GravityY,
			SleepingEnabled:    true,
			TimeStep:           constants.PhysicsTimeStep,
			Iterations:         constants.SolverIterations,
			SleepTimeThreshold: constants.SleepTimeThreshold,
			Damping:            constants.SpaceDamping,
		},
		Zone: Zone{
			X:      constants.ZoneX,
			Y:      constants.ZoneY,
			Radius: constants.ZoneRadius,
		},
		Drag: Drag{
			LaunchMultiplier: constants.LaunchMultiplier,
			Stiffness:        constants.DragStiffness,
			MaxForce:         constants.DragMaxForce,
			PickRadius:       constants.PickRadius,
			VelocityHold:     constants.PointerVelocityHold,
		},
		Glyph: Glyph{
			Variant: "G",
			Scale:   constants.GlyphScale,
		},
		Pegs: Pegs{
			Radius:    constants.PegRadius,
			Positions: []Point{{X: constants.PegX, Y: constants.PegY}},
			Random: RandomPlacer{
				MinX:             constants.CanvasWidth * 0.4,
				MinY:             constants.CanvasHeight * 0.15,
				MaxX:             constants.CanvasWidth - constants.WallThickness,
				MaxY:             constants.CanvasHeight * 0.75,
				SeparationFactor: constants.PegSeparation,
				AttemptFactor:    constants.PegAttemptFactor,
			},
		},
		Goal: Goal{
			ProximityMargin: constants.ProximityMargin,
			FloorMargin:     constants.FloorMargin,
			BottomFactor:    constants.BottomFactor,
			Dwell:           constants.ClearDwell,
			TransitionDelay: constants.ClearDelay,
		},
		Cleanup: Cleanup{
			Interval: constants.CleanupInterval,
			Margin:   constants.CleanupMargin,
		},
		Obstacles: Obstacles{
			Tree:           true,
			TreeRootXRatio: constants.TreeRootXRatio,
		},
		Keys: Keys{
			Reset: "r",
		},
		Audio: Audio{
			Enabled: true,
			Volume:  constants.AudioVolume,
		},
		Render: Render{
			FrameInterval: constants.FrameUpdateInterval,
		},
	}
}

// Validate reports the first out-of-range value
func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Canvas.Width > 0 && c.Canvas.Height > 0, "canvas size must be positive"},
		{c.Canvas.WallThickness > 0, "wall thickness must be positive"},
		{c.Physics.TimeStep > 0, "physics time step must be positive"},
		{c.Physics.Iterations > 0, "physics iterations must be positive"},
		{c.Zone.Radius > 0, "zone radius must be positive"},
		{c.Drag.LaunchMultiplier >= 0, "launch multiplier must not be negative"},
		{c.Drag.Stiffness > 0 && c.Drag.Stiffness <= 1, "drag stiffness must be in (0,1]"},
		{c.Drag.MaxForce > 0, "drag max force must be positive"},
		{c.Drag.PickRadius >= 0, "drag pick radius must not be negative"},
		{c.Drag.VelocityHold >= 0, "drag velocity hold must not be negative"},
		{c.Glyph.Scale > 0, "glyph scale must be positive"},
		{c.Pegs.Radius > 0, "peg radius must be positive"},
		{c.Pegs.Random.Count >= 0, "random peg count must not be negative"},
		{c.Pegs.Random.Count == 0 || (c.Pegs.Random.MaxX > c.Pegs.Random.MinX && c.Pegs.Random.MaxY > c.Pegs.Random.MinY), "random peg area must be non-empty"},
		{c.Goal.Dwell > 0, "goal dwell must be positive"},
		{c.Goal.TransitionDelay >= 0, "goal transition delay must not be negative"},
		{c.Goal.BottomFactor > 0, "goal bottom factor must be positive"},
		{c.Goal.FloorInset == nil || *c.Goal.FloorInset >= 0, "goal floor inset must not be negative"},
		{c.Cleanup.Interval > 0, "cleanup interval must be positive"},
		{c.Cleanup.Margin >= 0, "cleanup margin must not be negative"},
		{len([]rune(c.Keys.Reset)) == 1, "reset key must be a single character"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio volume must be in [0,1]"},
		{c.Render.FrameInterval > 0, "frame interval must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.what)
		}
	}
	return nil
}

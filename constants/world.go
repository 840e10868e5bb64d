package constants

import "time"

// Canvas
const (
	CanvasWidth   = 1280.0
	CanvasHeight  = 720.0
	WallThickness = 50.0
)

// Physics Defaults
// Gravity is in px/s², 0.5 px/ms² scaled to seconds
const (
	GravityY           = 500.0
	SolverIterations   = 10
	SleepTimeThreshold = 0.5
	SpaceDamping       = 1.0
)

// Interaction Zone
const (
	ZoneX      = 100.0
	ZoneY      = CanvasHeight - 100.0
	ZoneRadius = 80.0
)

// Drag
const (
	// LaunchMultiplier scales pointer velocity on release
	LaunchMultiplier = 1.8

	// DragStiffness is the joint error correction fraction per step
	DragStiffness = 0.2

	// DragMaxForce caps the pointer joint force
	DragMaxForce = 60000.0

	// PickRadius is the minimum pointer pick tolerance in world units
	// The app widens it to the rendered cell probe
	PickRadius = 4.0

	// PointerVelocityHold keeps the last motion sample through quiet ticks
	// Terminals only report motion when the cursor changes cells
	PointerVelocityHold = 100 * time.Millisecond
)

// Glyph
const (
	GlyphScale    = 0.8
	GlyphFriction = 0.1
	// GlyphElasticity corresponds to restitution
	GlyphElasticity = 0.4
	// GlyphAirDrag is the per-60Hz-step velocity loss fraction
	GlyphAirDrag = 0.03
	GlyphDensity = 0.001
)

// Pegs
const (
	PegRadius          = 6.0
	PegX               = 629.0
	PegY               = 437.0
	PegSeparation      = 8.0
	PegAttemptFactor   = 10
	PegFriction        = 0.5
	PegElasticity      = 0.2
	WallFriction       = 0.8
	WallElasticity     = 0.2
	ObstacleFriction   = 0.6
	ObstacleElasticity = 0.1
)

// Clear Condition
const (
	ProximityMargin = 10.0
	FloorMargin     = 5.0
	BottomFactor    = 1.1
	ClearDwell      = 3 * time.Second
	ClearDelay      = 300 * time.Millisecond
)

// Cleanup
const (
	CleanupInterval = 5 * time.Second
	CleanupMargin   = 100.0
)

// Decorative Tree
const (
	TreeRootXRatio      = 0.7
	TreeTrunkWidth      = 20.0
	TreeTrunkHeightRate = 0.55
	TreeBranchThickness = 12.0
)

package constants

import "time"

// Loop Timing
const (
	// FrameUpdateInterval is the render and physics frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// PhysicsTimeStep is the fixed simulation step in seconds
	PhysicsTimeStep = 1.0 / 60.0

	// InputChannelSize buffers terminal events between the poller and the loop
	InputChannelSize = 64
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "gthrower.log"
	// MaxLogSize triggers rotation of the previous log on startup (10MB)
	MaxLogSize = 10 * 1024 * 1024
)

package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the simulation frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the delta fed to systems after a stall (debugger, suspended terminal)
	MaxFrameDelta = 250 * time.Millisecond

	// EventLoopIterations is the cycles the scheduler attempts to consume events for immediate settling
	// Events emitted by handlers during dispatch are routed in the same frame up to this depth
	EventLoopIterations = 16
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)

// Observer Output
const (
	// SnapshotRefreshFrames forces a snapshot publish at least this often even when nothing changed
	SnapshotRefreshFrames = 30
)

// Terminal View
const (
	// ViewRefreshInterval is the redraw period of the terminal farm view
	ViewRefreshInterval = 100 * time.Millisecond
)

package parameter

import "time"

// Loop & Scheduler Timing
const (
	// FrameUpdateInterval is the rendering frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// PhysicsStepInterval is the fixed physics step
	PhysicsStepInterval = 16 * time.Millisecond

	// PhysicsMaxCatchUp caps the number of physics steps run in one loop iteration after a stall
	PhysicsMaxCatchUp = 4

	// ClockLabelInterval is the refresh period of the "now" clock label
	ClockLabelInterval = time.Second
)

// Event queue
const (
	// EventQueueSize is the fixed capacity of the UI event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// InputQueueSize is the buffered capacity of the input channel between the poller and the loop
const InputQueueSize = 64

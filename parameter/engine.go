package parameter

import "time"

// Loop & Engine Timing
const (
	// FrameUpdateInterval is the view repaint interval (~30 FPS, terminal bound)
	FrameUpdateInterval = 33 * time.Millisecond

	// TickInterval is the default scheduler tick (event drain + systems)
	TickInterval = 16 * time.Millisecond

	// DrainIterations bounds how many drain passes one tick makes so events
	// emitted by handlers during the tick settle in the same frame
	DrainIterations = 4
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047

	// StoreInitialCapacity presizes dense entity slices
	StoreInitialCapacity = 64
)

// Journal
const (
	// ReplayPageSize is the number of journal rows fetched per replay page
	ReplayPageSize = 200
)

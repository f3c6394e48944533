package engine

import "github.com/lixenwraith/graphview/event"

// System is an interface that all systems must implement
type System interface {
	// Init resets session state
	Init()

	// Name returns the system's registry name, used in logs
	Name() string

	// Priority orders Update calls, lower values run first
	Priority() int

	// Update runs once per tick after the event drain
	Update()
}

// EventHandler processes specific event types
// Systems implement this interface to receive routed events
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the drain phase, before World.Update()
	HandleEvent(ev event.GraphEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []event.EventType
}

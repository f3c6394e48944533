package engine

import (
	"github.com/lixenwraith/graphview/event"
)

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch (no concurrency issues with World mutation)
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - All events consumed and dispatched before World.Update() runs
type Router struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.Queue

	// Observers see every dispatched event after its handlers ran
	observers []func(event.GraphEvent)
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *event.Queue) *Router {
	return &Router{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Observe adds a callback invoked for every dispatched event
func (r *Router) Observe(fn func(event.GraphEvent)) {
	r.observers = append(r.observers, fn)
}

// DispatchAll consumes all pending events and routes them to handlers in FIFO order
// All handlers for an event type are called before moving to the next event
// Returns the number of events dispatched
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		r.Dispatch(ev)
	}
	return len(events)
}

// Dispatch routes one event synchronously, bypassing the queue
func (r *Router) Dispatch(ev event.GraphEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
	for _, fn := range r.observers {
		fn(ev)
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router) HasHandlers(t event.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}

// Package event provides the notification bus the camera controller emits
// on. Dispatch is synchronous: publishers run on the engine's single logical
// input/tick thread and handlers complete before Publish returns, so
// subscribers always observe events in emission order.
package event

import "sync"

// Type identifies a notification topic.
type Type int

const (
	// DistanceModeChanged fires whenever the camera's distance mode label
	// changes: discrete cycle, pinch-end snap, or far-limit force.
	// Payload: camera.ModeChangedPayload
	DistanceModeChanged Type = iota

	// PanChanged fires whenever the orbit target moves from a two-finger
	// pan. Payload: camera.PanChangedPayload
	PanChanged
)

// Event is one published notification.
type Event struct {
	// Type is the notification topic.
	Type Type

	// Payload carries topic-specific data; see the Type constants.
	Payload any
}

// Handler consumes published events.
type Handler func(Event)

// Bus is a minimal synchronous publish/subscribe bus.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[Type]map[int]Handler
}

// NewBus creates an empty bus.
//
// Returns:
//   - *Bus: the newly created bus
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Type]map[int]Handler),
	}
}

// Subscribe registers a handler for one topic and returns a disposer that
// removes it. Disposers are idempotent.
//
// Parameters:
//   - t: the topic to subscribe to
//   - h: the handler to invoke for each published event
//
// Returns:
//   - func(): unsubscribe disposer
func (b *Bus) Subscribe(t Type, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[t] == nil {
		b.subs[t] = make(map[int]Handler)
	}
	id := b.next
	b.next++
	b.subs[t][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[t], id)
	}
}

// Publish delivers an event to every handler subscribed to its topic,
// synchronously, before returning.
//
// Parameters:
//   - e: the event to deliver
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[e.Type]))
	for _, h := range b.subs[e.Type] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}

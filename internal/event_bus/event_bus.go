package event_bus

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType is an identifier for events.
type EventType string

// Event is the envelope used by the bus. Data is kept as any to allow
// different payload types on the same bus.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

// NewEvent creates a new Event with the given context, type, and data.
// The timestamp is set to the current time automatically.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context associated with this event. Handlers should use
// it for any operation that needs cancellation or context values (user id).
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type handler func(Event) error

// EventBus is a concurrency-safe synchronous event dispatcher.
// All handlers run sequentially during Publish.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]handler
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[EventType][]handler)}
}

// Subscribe registers a handler for the given eventType.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler(h))
}

// Publish dispatches the event to all subscribers of its type. Handler errors
// are logged, not propagated; one failing subscriber must not block the rest.
func (eb *EventBus) Publish(e Event) {
	eb.mu.RLock()
	handlers := eb.subscribers[e.Type]
	eb.mu.RUnlock()

	for _, h := range handlers {
		if err := h(e); err != nil {
			log.Errorf("event handler failed for %s: %v", e.Type, err)
		}
	}
}

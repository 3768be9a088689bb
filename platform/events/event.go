// Package events is the in-process bus that carries MediGuide domain events
// (hospital registration, profile updates) from the module that owns a change
// to the modules that react to it, such as the notification audit log.
package events

import (
	"context"
	"time"
)

// Event is anything published on the bus. EventName is the subscription key,
// dotted by owning module ("auth.hospital.registered").
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by every domain event for its timestamp.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to one published event. Publish logs a returned error;
// PublishSync hands it back to the caller.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus is what services depend on; InMemoryBus is the only implementation.
type Bus interface {
	// Publish fans the event out asynchronously and returns immediately.
	Publish(ctx context.Context, event Event)
	// PublishSync runs every handler in order and joins their errors.
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}

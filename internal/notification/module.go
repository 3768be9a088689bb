// Package notification reacts to hospital domain events. It subscribes to the
// bus and is not HTTP-facing.
package notification

import (
	"context"

	"mediguide/internal/events"
	"mediguide/platform/logger"
)

// Module writes an audit record for every hospital lifecycle event.
type Module struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Module {
	return &Module{log: log}
}

func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.HospitalRegistered{}.EventName(), m)
	bus.Subscribe(events.HospitalProfileUpdated{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	log := m.log.WithContext(ctx)
	switch e := event.(type) {
	case events.HospitalRegistered:
		log.Info("hospital registered",
			"event", e.EventName(),
			"accountId", e.AccountID,
			"hospitalId", e.HospitalID,
			"name", e.Name,
			"occurredAt", e.OccurredAt(),
		)
	case events.HospitalProfileUpdated:
		log.Info("hospital profile updated",
			"event", e.EventName(),
			"accountId", e.AccountID,
			"hospitalId", e.HospitalID,
			"availableBeds", e.AvailableBeds,
			"occurredAt", e.OccurredAt(),
		)
	default:
		log.Debug("unhandled event", "event", event.EventName())
	}
	return nil
}

var _ events.Handler = (*Module)(nil)

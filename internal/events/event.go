// Package events defines the MediGuide domain events and re-exports the
// platform bus so modules depend on a single import.
package events

import (
	"mediguide/platform/events"
	"mediguide/platform/logger"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

const (
	HospitalRegisteredName     = "auth.hospital.registered"
	HospitalProfileUpdatedName = "hospitals.profile.updated"
)

// HospitalRegistered is published after an account and its listing are created.
type HospitalRegistered struct {
	BaseEvent
	AccountID  uuid.UUID `json:"accountId"`
	HospitalID uuid.UUID `json:"hospitalId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
}

func (HospitalRegistered) EventName() string { return HospitalRegisteredName }

// HospitalProfileUpdated is published after a listing is replaced. The
// dashboard cache is already invalidated by then.
type HospitalProfileUpdated struct {
	BaseEvent
	AccountID     uuid.UUID `json:"accountId"`
	HospitalID    uuid.UUID `json:"hospitalId"`
	AvailableBeds int       `json:"availableBeds"`
}

func (HospitalProfileUpdated) EventName() string { return HospitalProfileUpdatedName }

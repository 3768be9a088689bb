// Package service holds the search trigger decision and its delivery.
package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"mediguide/platform/logger"
)

// TriggerName identifies the control that starts a search.
const TriggerName = "search-btn"

// WarningMessage is shown when neither field is provided.
const WarningMessage = "Please enter city/pincode or hospital name!"

// Kind classifies a notification.
type Kind string

const (
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notification is the single user-visible outcome of a trigger.
type Notification struct {
	Kind    Kind
	Message string
}

// Query carries the two free-text inputs read at trigger time.
type Query struct {
	// Location is a city name or postal code.
	Location string
	// Facility is a partial or full hospital name.
	Facility string
}

// Evaluate maps the inputs to a notification. Only the empty string counts
// as not provided; values are embedded verbatim.
func Evaluate(location, facility string) Notification {
	if location == "" && facility == "" {
		return Notification{Kind: KindWarning, Message: WarningMessage}
	}
	return Notification{
		Kind:    KindInfo,
		Message: fmt.Sprintf(`Searching hospitals in "%s" with keyword "%s"`, location, facility),
	}
}

// State of a trigger delivery.
type State int32

const (
	StateIdle State = iota
	StateNotifyingUser
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNotifyingUser:
		return "notifying_user"
	default:
		return "unknown"
	}
}

// Notifier delivers a notification to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Service evaluates triggers and hands the result to a Notifier.
type Service struct {
	log      *logger.Logger
	inFlight atomic.Int64
}

func New(log *logger.Logger) *Service {
	return &Service{log: log}
}

// State reports NotifyingUser while at least one notification is being
// delivered, Idle otherwise.
func (s *Service) State() State {
	if s.inFlight.Load() > 0 {
		return StateNotifyingUser
	}
	return StateIdle
}

// Trigger evaluates q and delivers exactly one notification through n.
// A delivery failure is logged and returned; it never changes the decision.
func (s *Service) Trigger(ctx context.Context, q Query, n Notifier) (Notification, error) {
	notification := Evaluate(q.Location, q.Facility)

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	log := s.log.WithContext(ctx)
	log.Debug("search triggered", "trigger", TriggerName, "kind", notification.Kind)

	if err := n.Notify(ctx, notification); err != nil {
		log.Warn("search notification delivery failed", "kind", notification.Kind, "error", err)
		return notification, fmt.Errorf("deliver %s notification: %w", notification.Kind, err)
	}
	return notification, nil
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mediguide/platform/logger"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		location string
		facility string
		want     Notification
	}{
		{
			name: "both empty",
			want: Notification{Kind: KindWarning, Message: "Please enter city/pincode or hospital name!"},
		},
		{
			name:     "pincode only",
			location: "560001",
			want:     Notification{Kind: KindInfo, Message: `Searching hospitals in "560001" with keyword ""`},
		},
		{
			name:     "hospital only",
			facility: "Apollo",
			want:     Notification{Kind: KindInfo, Message: `Searching hospitals in "" with keyword "Apollo"`},
		},
		{
			name:     "both provided",
			location: "560001",
			facility: "Apollo",
			want:     Notification{Kind: KindInfo, Message: `Searching hospitals in "560001" with keyword "Apollo"`},
		},
		{
			name:     "whitespace counts as provided",
			location: " ",
			want:     Notification{Kind: KindInfo, Message: `Searching hospitals in " " with keyword ""`},
		},
		{
			name:     "quotes are not escaped",
			facility: `St. "Mary's"`,
			want:     Notification{Kind: KindInfo, Message: `Searching hospitals in "" with keyword "St. "Mary's""`},
		},
		{
			name:     "city name kept verbatim",
			location: "New Delhi",
			facility: "aiims",
			want:     Notification{Kind: KindInfo, Message: `Searching hospitals in "New Delhi" with keyword "aiims"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.location, tt.facility); got != tt.want {
				t.Fatalf("Evaluate(%q, %q) = %+v, want %+v", tt.location, tt.facility, got, tt.want)
			}
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	first := Evaluate("560001", "Apollo")
	second := Evaluate("560001", "Apollo")
	if first != second {
		t.Fatalf("expected identical notifications, got %+v and %+v", first, second)
	}
}

func TestTriggerDeliversExactlyOnce(t *testing.T) {
	svc := New(logger.Discard())
	var delivered []Notification
	var stateDuring State

	notifier := NotifierFunc(func(_ context.Context, n Notification) error {
		stateDuring = svc.State()
		delivered = append(delivered, n)
		return nil
	})

	got, err := svc.Trigger(context.Background(), Query{}, notifier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != KindWarning {
		t.Fatalf("expected warning, got %s", got.Kind)
	}
	if len(delivered) != 1 || delivered[0] != got {
		t.Fatalf("expected one delivered notification, got %+v", delivered)
	}
	if stateDuring != StateNotifyingUser {
		t.Fatalf("expected notifying state during delivery, got %s", stateDuring)
	}
	if svc.State() != StateIdle {
		t.Fatalf("expected idle state after delivery, got %s", svc.State())
	}
}

func TestTriggerDeliveryFailureKeepsDecision(t *testing.T) {
	svc := New(logger.Discard())
	broken := errors.New("broken pipe")

	got, err := svc.Trigger(context.Background(), Query{Location: "560001"}, NotifierFunc(func(context.Context, Notification) error {
		return broken
	}))
	if !errors.Is(err, broken) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if got.Kind != KindInfo {
		t.Fatalf("expected info decision despite failure, got %s", got.Kind)
	}
	if svc.State() != StateIdle {
		t.Fatalf("expected idle state after failure, got %s", svc.State())
	}
}

func TestStateStaysNotifyingWhileAnyDeliveryIsPending(t *testing.T) {
	svc := New(logger.Discard())
	entered := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = svc.Trigger(context.Background(), Query{Location: "560001"}, NotifierFunc(func(context.Context, Notification) error {
			close(entered)
			<-release
			return nil
		}))
	}()
	<-entered

	if _, err := svc.Trigger(context.Background(), Query{Facility: "Apollo"}, NotifierFunc(func(context.Context, Notification) error {
		return nil
	})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.State(); got != StateNotifyingUser {
		t.Fatalf("state = %s while first delivery is pending, want %s", got, StateNotifyingUser)
	}

	close(release)
	wg.Wait()
	if got := svc.State(); got != StateIdle {
		t.Fatalf("state = %s after all deliveries, want %s", got, StateIdle)
	}
}

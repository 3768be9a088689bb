package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"mediguide/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncRunsMatchingHandlersOnly(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var hits, misses int32

	bus.Subscribe("a", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&hits, 1)
		return nil
	}))
	bus.Subscribe("b", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&misses, 1)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits != 1 || misses != 0 {
		t.Fatalf("expected 1 hit and 0 misses, got %d and %d", hits, misses)
	}
}

func TestPublishSyncJoinsErrorsAndRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	failure := errors.New("failed")

	bus.Subscribe("a", HandlerFunc(func(context.Context, Event) error { return failure }))
	bus.Subscribe("a", HandlerFunc(func(context.Context, Event) error { panic("boom") }))

	err := bus.PublishSync(context.Background(), testEvent{name: "a"})
	if !errors.Is(err, failure) {
		t.Fatalf("expected joined error to include handler failure, got %v", err)
	}
}

func TestPublishIsAsyncAndDetachedFromCancellation(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var ctxErr atomic.Value

	bus.Subscribe("a", HandlerFunc(func(ctx context.Context, _ Event) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{name: "a"})
	bus.Wait()

	if ok, _ := ctxErr.Load().(bool); !ok {
		t.Fatal("expected async handler context to ignore caller cancellation")
	}
}

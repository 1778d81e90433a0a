package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
)

const testEventType events.EventType = "test.SomethingHappened"

type testEvent struct {
	events.BaseEvent
}

func newTestEvent() testEvent {
	return testEvent{BaseEvent: events.NewBaseEvent(testEventType, "aggregate-1")}
}

func TestTransactionalPublisherFlushDispatches(t *testing.T) {
	registry := NewEventHandlerRegistry(slog.Default())

	var handled []string
	_ = registry.Subscribe(testEventType, HandlerFunc(func(_ context.Context, event events.Event) error {
		handled = append(handled, event.EventID())
		return nil
	}))

	publisher := NewTransactionalPublisher(registry, 10)
	event := newTestEvent()
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	// Nothing runs until Flush.
	if len(handled) != 0 {
		t.Fatal("handler ran before Flush")
	}
	if publisher.PendingCount() != 1 {
		t.Errorf("pending = %d, want 1", publisher.PendingCount())
	}

	if err := publisher.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(handled) != 1 || handled[0] != event.EventID() {
		t.Errorf("handled = %v, want the published event", handled)
	}
	if publisher.PendingCount() != 0 {
		t.Errorf("pending = %d, want 0 after flush", publisher.PendingCount())
	}
}

func TestTransactionalPublisherHandlerError(t *testing.T) {
	registry := NewEventHandlerRegistry(slog.Default())
	wantErr := errors.New("boom")
	_ = registry.Subscribe(testEventType, HandlerFunc(func(context.Context, events.Event) error {
		return wantErr
	}))

	publisher := NewTransactionalPublisher(registry, 10)
	_ = publisher.Publish(context.Background(), newTestEvent())

	if err := publisher.Flush(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Flush err = %v, want wrapped boom", err)
	}
}

func TestTransactionalPublisherDepthLimit(t *testing.T) {
	registry := NewEventHandlerRegistry(slog.Default())

	var publisher *TransactionalPublisher
	// A handler that republishes keeps the queue non-empty forever.
	_ = registry.Subscribe(testEventType, HandlerFunc(func(ctx context.Context, _ events.Event) error {
		return publisher.Publish(ctx, newTestEvent())
	}))

	publisher = NewTransactionalPublisher(registry, 3)
	_ = publisher.Publish(context.Background(), newTestEvent())

	if err := publisher.Flush(context.Background()); !errors.Is(err, ErrEventProcessingDepthExceeded) {
		t.Errorf("Flush err = %v, want ErrEventProcessingDepthExceeded", err)
	}
}

func TestInMemoryEventBusContinuesPastFailingHandler(t *testing.T) {
	bus := New(slog.Default())

	var secondRan bool
	_ = bus.Subscribe(testEventType, HandlerFunc(func(context.Context, events.Event) error {
		return errors.New("first handler fails")
	}))
	_ = bus.Subscribe(testEventType, HandlerFunc(func(context.Context, events.Event) error {
		secondRan = true
		return nil
	}))

	if err := bus.Publish(context.Background(), newTestEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !secondRan {
		t.Error("second handler should run despite the first failing")
	}
}

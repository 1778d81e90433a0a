package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
)

// ErrEventProcessingDepthExceeded is returned by Flush when handlers keep
// producing new events past the configured depth limit.
var ErrEventProcessingDepthExceeded = errors.New("event processing depth exceeded")

const defaultMaxDepth = 10

// TransactionalPublisher buffers events and dispatches them synchronously
// when Flush is called, inside the same transaction scope that produced
// them. A handler failure aborts the flush so the caller can roll back.
//
// Spanner may retry the transaction function on Aborted; construct the
// publisher inside the transaction closure so every retry starts with an
// empty buffer:
//
//	txScope.Execute(ctx, func(ctx context.Context) error {
//	    publisher := eventbus.NewTransactionalPublisher(registry, 0)
//	    // ... business logic publishing events ...
//	    return publisher.Flush(ctx)
//	})
type TransactionalPublisher struct {
	registry HandlerRegistry
	maxDepth int

	mu      sync.Mutex
	pending []events.Event
}

// NewTransactionalPublisher creates a publisher over the given registry.
// maxDepth bounds how many rounds of handler-produced events one Flush
// will process; zero or negative selects the default.
func NewTransactionalPublisher(registry HandlerRegistry, maxDepth int) *TransactionalPublisher {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &TransactionalPublisher{registry: registry, maxDepth: maxDepth}
}

// Publish implements events.Publisher by buffering. Nothing runs until
// Flush.
func (p *TransactionalPublisher) Publish(_ context.Context, evts ...events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, evts...)
	return nil
}

// Flush dispatches buffered events in rounds: events published by handlers
// during one round form the next. The mutex is not held while handlers run,
// so handlers are free to call Publish.
func (p *TransactionalPublisher) Flush(ctx context.Context) error {
	for round := 0; ; round++ {
		batch := p.takePending()
		if len(batch) == 0 {
			return nil
		}
		if round >= p.maxDepth {
			return ErrEventProcessingDepthExceeded
		}

		for _, event := range batch {
			for _, handler := range p.registry.HandlersFor(event.EventType()) {
				if err := handler.Handle(ctx, event); err != nil {
					return fmt.Errorf("handler failed for event %s: %w", event.EventType().String(), err)
				}
			}
		}
	}
}

// PendingCount returns how many events are buffered.
func (p *TransactionalPublisher) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *TransactionalPublisher) takePending() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	batch := p.pending
	p.pending = nil
	return batch
}

// Compile-time interface check.
var _ events.Publisher = (*TransactionalPublisher)(nil)

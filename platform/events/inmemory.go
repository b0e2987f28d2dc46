package events

import (
	"context"
	"fmt"
	"sync"

	"scoutscore_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Publish runs
// handlers on their own goroutines; PublishSync runs them inline and
// aggregates errors. Subscribe is expected at startup, but the bus is
// safe for concurrent use throughout.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates an empty in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for an event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers asynchronously. Handler
// errors and panics are logged, never propagated to the publisher.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	for _, h := range b.handlersFor(event.EventName()) {
		handler := h
		go func() {
			defer b.recoverHandler(event.EventName())
			// Detached from the publisher's cancellation: the request
			// finishing must not abort its side effects.
			if err := handler.Handle(context.WithoutCancel(ctx), event); err != nil {
				b.log.Error("event_handler_failed",
					"event", event.EventName(),
					"error", err.Error())
			}
		}()
	}
}

// PublishSync dispatches the event inline and returns the first
// handler error.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	for _, h := range b.handlersFor(event.EventName()) {
		if err := b.handleSync(ctx, event, h); err != nil {
			return err
		}
	}
	return nil
}

func (b *InMemoryBus) handleSync(ctx context.Context, event Event, h Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, event)
}

func (b *InMemoryBus) handlersFor(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := make([]Handler, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	return handlers
}

func (b *InMemoryBus) recoverHandler(eventName string) {
	if r := recover(); r != nil {
		b.log.Error("event_handler_panicked",
			"event", eventName,
			"panic", fmt.Sprintf("%v", r))
	}
}

package domain

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

// EventHandler processes a domain event.
type EventHandler func(ctx context.Context, event *DomainEvent) error

// EventDispatcher routes domain events to registered handlers.
type EventDispatcher struct {
	handlers map[EventType][]EventHandler
	mu       sync.RWMutex
}

// NewEventDispatcher creates a new EventDispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[EventType][]EventHandler),
	}
}

// Register registers a handler for a specific event type.
func (d *EventDispatcher) Register(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// RegisterAll registers handler for every event type.
func (d *EventDispatcher) RegisterAll(handler EventHandler) {
	for _, t := range AllEventTypes() {
		d.Register(t, handler)
	}
}

// Dispatch dispatches an event to all registered handlers.
// All handlers are called sequentially. If any handler fails, the error is logged
// but remaining handlers are still executed (best-effort delivery).
func (d *EventDispatcher) Dispatch(ctx context.Context, event *DomainEvent) error {
	d.mu.RLock()
	handlers := d.handlers[event.EventType]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		logger.Debug("No handlers registered for event type",
			zap.String("event_type", string(event.EventType)),
			zap.String("event_id", event.EventID),
		)
		return nil
	}

	var firstErr error
	for _, handler := range handlers {
		if err := safeCall(ctx, handler, event); err != nil {
			logger.Error("Event handler failed",
				zap.String("event_type", string(event.EventType)),
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("handler for %s failed: %w", event.EventType, err)
			}
		}
	}

	return firstErr
}

func safeCall(ctx context.Context, handler EventHandler, event *DomainEvent) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()
	return handler(ctx, event)
}

// LogHandler writes every event to the logger at info level.
func LogHandler(_ context.Context, event *DomainEvent) error {
	logger.Named("events").Info("Campaign event",
		zap.String("event_type", string(event.EventType)),
		zap.String("event_id", event.EventID),
		zap.String("aggregate_id", event.AggregateID),
		zap.String("created_by", event.CreatedBy),
		zap.Uint64("ledger_time", event.LedgerTime),
		zap.ByteString("payload", event.Payload),
	)
	return nil
}

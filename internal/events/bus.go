package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

const recentBufferSize = 100

// EventBus defines the interface for publishing and observing events.
type EventBus interface {
	// Start starts the event processor.
	Start(ctx context.Context) error

	// Stop drains and stops the bus gracefully.
	Stop(ctx context.Context) error

	// PublishAsync enqueues an event without blocking; events published
	// while the bus is stopped or the buffer is full are counted as
	// dropped, never delivered late.
	PublishAsync(event Event) error

	// Subscribe registers a handler for one event type. The empty type
	// subscribes to all events.
	Subscribe(eventType EventType, handler Handler)

	// Recent returns up to limit of the most recently processed events,
	// newest first.
	Recent(limit int) []Event

	// GetStats returns bus counters.
	GetStats() Stats
}

type eventBus struct {
	logger hclog.Logger

	mu          sync.RWMutex
	running     bool
	subscribers map[EventType][]Handler
	recent      []Event
	stats       Stats

	eventCh chan Event
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewBus creates an event bus with the given channel capacity.
func NewBus(logger hclog.Logger, bufferSize int) EventBus {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &eventBus{
		logger:      logger,
		subscribers: make(map[EventType][]Handler),
		recent:      make([]Event, 0, recentBufferSize),
		stats:       Stats{ByType: make(map[EventType]uint64)},
		eventCh:     make(chan Event, bufferSize),
	}
}

func (b *eventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return fmt.Errorf("event bus is already running")
	}
	b.running = true
	b.stats.Running = true
	b.stopCh = make(chan struct{})

	b.wg.Add(1)
	go b.process(ctx)

	b.logger.Info("event bus started", "buffer_size", cap(b.eventCh))
	return nil
}

func (b *eventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = false
	b.stats.Running = false
	close(b.stopCh)
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *eventBus) PublishAsync(event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		b.stats.Dropped++
		return nil
	}

	select {
	case b.eventCh <- event:
		b.stats.Published++
		return nil
	default:
		b.stats.Dropped++
		b.logger.Warn("event buffer full, dropping event", "type", event.Type)
		return nil
	}
}

func (b *eventBus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
	b.stats.Subscribers++
}

func (b *eventBus) Recent(limit int) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if limit <= 0 || limit > len(b.recent) {
		limit = len(b.recent)
	}
	out := make([]Event, 0, limit)
	for i := len(b.recent) - 1; i >= len(b.recent)-limit; i-- {
		out = append(out, b.recent[i])
	}
	return out
}

func (b *eventBus) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	byType := make(map[EventType]uint64, len(b.stats.ByType))
	for k, v := range b.stats.ByType {
		byType[k] = v
	}
	s := b.stats
	s.ByType = byType
	return s
}

func (b *eventBus) process(ctx context.Context) {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventCh:
			b.dispatch(event)
		case <-b.stopCh:
			// Drain whatever was enqueued before the stop.
			for {
				select {
				case event := <-b.eventCh:
					b.dispatch(event)
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *eventBus) dispatch(event Event) {
	b.mu.Lock()
	b.stats.Delivered++
	b.stats.ByType[event.Type]++
	if len(b.recent) >= recentBufferSize {
		b.recent = b.recent[1:]
	}
	b.recent = append(b.recent, event)
	handlers := make([]Handler, 0, len(b.subscribers[event.Type])+len(b.subscribers[""]))
	handlers = append(handlers, b.subscribers[event.Type]...)
	handlers = append(handlers, b.subscribers[""]...)
	b.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}

	b.logger.Debug("event dispatched", "type", event.Type, "id", event.ID)
}

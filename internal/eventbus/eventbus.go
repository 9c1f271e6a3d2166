package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"sitechrome/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventLocaleChanged  = domain.EventLocaleChanged
	EventStorageChanged = domain.EventStorageChanged
)

// Re-export domain event types
type LocaleChangedEvent = domain.LocaleChangedEvent
type StorageChangedEvent = domain.StorageChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the process-wide event target shared by every mounted surface
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	HandlerCount(eventType EventType) int
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Delivery is synchronous: Publish returns after every handler ran.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	logger   *zap.Logger
}

// Option configures the bus
type Option func(*bus)

// WithLogger routes publish and panic logs to logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a new event bus
func New(opts ...Option) EventBus {
	b := &bus{
		handlers: make(map[EventType][]subscription),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers event to the handlers subscribed at the time of the call
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}
	b.logger.Debug("eventbus: publish", zap.String("type", string(event.Type())))

	// Copy so handlers may (un)subscribe while we iterate
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.call(sub.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("eventbus: handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function; calling it more than once is harmless.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
			if len(b.handlers[eventType]) == 0 {
				delete(b.handlers, eventType)
			}
		})
	}
}

// HandlerCount returns the number of live handlers for eventType
func (b *bus) HandlerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

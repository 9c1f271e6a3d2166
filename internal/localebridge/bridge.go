// Package localebridge couples otherwise isolated surfaces through one
// persisted locale slot and a broadcast on the process-wide event bus.
package localebridge

import (
	"fmt"

	"go.uber.org/zap"

	"sitechrome/internal/domain"
	"sitechrome/internal/eventbus"
	"sitechrome/internal/storage"
)

// StorageKey is the well-known key of the persisted locale record
const StorageKey = "sitechrome.locale"

// Channel is the broadcast event name carrying the new locale
const Channel = eventbus.EventLocaleChanged

// Bridge reads and writes the persisted locale and fans changes out to listeners
type Bridge struct {
	store  storage.Store
	bus    eventbus.EventBus
	logger *zap.Logger
}

// Option configures a Bridge
type Option func(*Bridge)

// WithLogger sets the bridge logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a bridge over store and bus
func New(store storage.Store, bus eventbus.EventBus, opts ...Option) *Bridge {
	b := &Bridge{
		store:  store,
		bus:    bus,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Read returns the persisted locale. Absent or malformed values report false.
func (b *Bridge) Read() (domain.Locale, bool) {
	raw, ok := b.store.GetItem(StorageKey)
	if !ok {
		return "", false
	}
	l, ok := domain.ParseLocale(raw)
	if !ok {
		b.logger.Debug("bridge: ignoring malformed persisted locale", zap.String("value", raw))
		return "", false
	}
	return l, true
}

// Write persists l and then broadcasts it. The broadcast happens even when
// persisting fails so mounted surfaces still converge; the error is returned.
func (b *Bridge) Write(l domain.Locale) error {
	if !l.Valid() {
		return fmt.Errorf("write locale %q: %w", l, domain.ErrInvalidLocale)
	}
	err := b.Persist(l)
	b.Broadcast(l)
	return err
}

// Persist stores l without notifying anyone
func (b *Bridge) Persist(l domain.Locale) error {
	if !l.Valid() {
		return fmt.Errorf("persist locale %q: %w", l, domain.ErrInvalidLocale)
	}
	if err := b.store.SetItem(StorageKey, string(l)); err != nil {
		b.logger.Warn("bridge: failed to persist locale", zap.String("locale", string(l)), zap.Error(err))
		return fmt.Errorf("persist locale: %w", err)
	}
	return nil
}

// Broadcast emits l on Channel to every current listener
func (b *Bridge) Broadcast(l domain.Locale) {
	if !l.Valid() {
		return
	}
	b.logger.Debug("bridge: broadcast", zap.String("locale", string(l)))
	b.bus.Publish(eventbus.LocaleChangedEvent{Locale: l})
}

// Subscribe registers handler for every broadcast. The returned function
// unregisters it and must be called on teardown.
func (b *Bridge) Subscribe(handler func(domain.Locale)) func() {
	return b.bus.Subscribe(Channel, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.LocaleChangedEvent); ok {
			handler(ev.Locale)
		}
	})
}

// SyncExternal handles a storage change made by another process. A valid
// locale under StorageKey is re-broadcast; it is never re-persisted.
func (b *Bridge) SyncExternal(change domain.StorageChangedEvent) bool {
	if change.Key != StorageKey || !change.Present {
		return false
	}
	l, ok := domain.ParseLocale(change.Value)
	if !ok {
		b.logger.Debug("bridge: ignoring malformed external locale", zap.String("value", change.Value))
		return false
	}
	b.Broadcast(l)
	return true
}

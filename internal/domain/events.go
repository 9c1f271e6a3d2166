package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	// EventLocaleChanged is the well-known broadcast channel for locale changes
	EventLocaleChanged  EventType = "sitechrome:locale-change"
	EventStorageChanged EventType = "sitechrome:storage"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LocaleChangedEvent carries the new locale tag and nothing else
type LocaleChangedEvent struct {
	Locale Locale
}

func (e LocaleChangedEvent) Type() EventType { return EventLocaleChanged }

// StorageChangedEvent is emitted when another process rewrote a persisted key.
// Present is false when the key was removed.
type StorageChangedEvent struct {
	Key     string
	Value   string
	Present bool
}

func (e StorageChangedEvent) Type() EventType { return EventStorageChanged }

package ui

import (
	"sitechrome/internal/domain"
)

// StorageChangedMsg carries a change another process made to the store.
// Hosts forward FileStore.Watch callbacks with Program.Send.
type StorageChangedMsg struct {
	Change domain.StorageChangedEvent
}

// flushTransitionsMsg runs deferred locale transitions after the urgent
// state has been rendered
type flushTransitionsMsg struct{}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

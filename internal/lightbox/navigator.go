// Package lightbox holds the selection state of the media gallery viewer
package lightbox

import (
	"go.uber.org/zap"

	"sitechrome/internal/dom"
	"sitechrome/internal/domain"
)

// Keys routed while the viewer is open
const (
	KeyEscape = "esc"
	KeyLeft   = "left"
	KeyRight  = "right"
)

// KeyTarget is where the navigator attaches its key listener.
// *dom.Document satisfies it.
type KeyTarget interface {
	OnKey(fn dom.KeyListener) func()
}

// Navigator is a closed/open(tab, index) state machine over a gallery
type Navigator struct {
	items  []domain.GalleryItem
	target KeyTarget
	logger *zap.Logger

	tab      domain.MediaKind
	index    int // -1 when closed
	filtered []domain.GalleryItem

	detachKeys func()
}

// Option configures a Navigator
type Option func(*Navigator)

// WithKeyTarget enables keyboard routing while open
func WithKeyTarget(target KeyTarget) Option {
	return func(n *Navigator) { n.target = target }
}

// WithInitialTab sets the starting filter
func WithInitialTab(kind domain.MediaKind) Option {
	return func(n *Navigator) {
		if kind.Valid() {
			n.tab = kind
		}
	}
}

// WithLogger sets the navigator logger
func WithLogger(logger *zap.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a closed navigator showing photos
func New(items []domain.GalleryItem, opts ...Option) *Navigator {
	n := &Navigator{
		items:  append([]domain.GalleryItem(nil), items...),
		tab:    domain.KindPhoto,
		index:  -1,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.refilter()
	return n
}

// Tab returns the active filter
func (n *Navigator) Tab() domain.MediaKind { return n.tab }

// Filtered returns the items of the active tab in their original order
func (n *Navigator) Filtered() []domain.GalleryItem {
	return append([]domain.GalleryItem(nil), n.filtered...)
}

// IsOpen reports whether an item is being viewed
func (n *Navigator) IsOpen() bool { return n.index >= 0 }

// ActiveIndex returns the open index into Filtered, or -1
func (n *Navigator) ActiveIndex() int { return n.index }

// Active returns the open item
func (n *Navigator) Active() (domain.GalleryItem, bool) {
	if !n.IsOpen() {
		return domain.GalleryItem{}, false
	}
	return n.filtered[n.index], true
}

// SelectTab switches the filter. The viewer always closes: the old index may
// not exist in the new view.
func (n *Navigator) SelectTab(kind domain.MediaKind) {
	if !kind.Valid() {
		return
	}
	n.Close()
	n.tab = kind
	n.refilter()
}

// Open views the item at index of the filtered view
func (n *Navigator) Open(index int) bool {
	if index < 0 || index >= len(n.filtered) {
		return false
	}
	n.index = index
	n.attachKeys()
	n.logger.Debug("lightbox: open", zap.String("item", n.filtered[index].ID))
	return true
}

// Close returns to the grid and stops intercepting keys
func (n *Navigator) Close() {
	n.index = -1
	n.detach()
}

// Next steps forward, wrapping to the first item
func (n *Navigator) Next() {
	count := len(n.filtered)
	if count == 0 || !n.IsOpen() {
		return
	}
	n.index = (n.index + 1) % count
}

// Previous steps back, wrapping to the last item
func (n *Navigator) Previous() {
	count := len(n.filtered)
	if count == 0 || !n.IsOpen() {
		return
	}
	n.index = (n.index - 1 + count) % count
}

// Teardown releases the key listener
func (n *Navigator) Teardown() { n.Close() }

// SetItems replaces the gallery; the viewer closes
func (n *Navigator) SetItems(items []domain.GalleryItem) {
	n.Close()
	n.items = append([]domain.GalleryItem(nil), items...)
	n.refilter()
}

func (n *Navigator) handleKey(key string) bool {
	if !n.IsOpen() {
		return false
	}
	switch key {
	case KeyEscape:
		n.Close()
	case KeyLeft:
		n.Previous()
	case KeyRight:
		n.Next()
	default:
		return false
	}
	return true
}

func (n *Navigator) attachKeys() {
	if n.target == nil || n.detachKeys != nil {
		return
	}
	n.detachKeys = n.target.OnKey(n.handleKey)
}

func (n *Navigator) detach() {
	if n.detachKeys != nil {
		n.detachKeys()
		n.detachKeys = nil
	}
}

func (n *Navigator) refilter() {
	n.filtered = n.filtered[:0:0]
	for _, item := range n.items {
		if item.Kind == n.tab {
			n.filtered = append(n.filtered, item)
		}
	}
}

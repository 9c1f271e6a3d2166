// Package dom models the small part of a page document the chrome core
// depends on: laid-out elements with attributes, a scrollable viewport, a
// page-level scroll lock, key and scroll listeners, and intersection
// observers. Layout is measured in terminal rows.
package dom

import (
	"sort"
)

// Element is a laid-out node of the page
type Element struct {
	ID     string
	Text   string
	Top    int // first row, relative to the page
	Height int // rows occupied
	attrs  map[string]string
}

// NewElement creates an element at the given row span
func NewElement(id string, top, height int) *Element {
	return &Element{
		ID:     id,
		Top:    top,
		Height: height,
		attrs:  make(map[string]string),
	}
}

// SetAttr sets an attribute; boolean attributes use an empty value
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// Attr returns an attribute value and whether it is present
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr reports attribute presence
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// RemoveAttr deletes an attribute
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// KeyListener handles a key press and reports whether it consumed it
type KeyListener func(key string) bool

// ScrollListener receives the new scroll offset
type ScrollListener func(offset int)

// Document is the page a surface renders into. It is not safe for
// concurrent use; hosts drive it from their single update loop.
type Document struct {
	elements []*Element

	scrollY        int
	viewportHeight int
	scrollLocked   bool

	keyListeners    map[int]KeyListener
	scrollListeners map[int]ScrollListener
	nextListenerID  int

	observers             map[*IntersectionObserver]struct{}
	intersectionSupported bool
}

// Option configures a Document
type Option func(*Document)

// WithoutIntersectionObserver simulates a host lacking intersection observation
func WithoutIntersectionObserver() Option {
	return func(d *Document) { d.intersectionSupported = false }
}

// WithViewportHeight sets the initial viewport height in rows
func WithViewportHeight(rows int) Option {
	return func(d *Document) {
		if rows > 0 {
			d.viewportHeight = rows
		}
	}
}

// NewDocument creates an empty document
func NewDocument(opts ...Option) *Document {
	d := &Document{
		viewportHeight:        20,
		keyListeners:          make(map[int]KeyListener),
		scrollListeners:       make(map[int]ScrollListener),
		observers:             make(map[*IntersectionObserver]struct{}),
		intersectionSupported: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetContent replaces every element of the page. Observers keep watching the
// old nodes until they are told otherwise; replaced nodes simply never
// intersect again.
func (d *Document) SetContent(elements []*Element) {
	d.elements = append([]*Element(nil), elements...)
	d.clampScroll()
	d.checkIntersections()
}

// Elements returns the current nodes in document order
func (d *Document) Elements() []*Element {
	return append([]*Element(nil), d.elements...)
}

// QueryAll returns every element carrying attr, in document order
func (d *Document) QueryAll(attr string) []*Element {
	var out []*Element
	for _, el := range d.elements {
		if el.HasAttr(attr) {
			out = append(out, el)
		}
	}
	return out
}

// Contains reports whether el is currently part of the page
func (d *Document) Contains(el *Element) bool {
	for _, e := range d.elements {
		if e == el {
			return true
		}
	}
	return false
}

// PageHeight is the number of rows the content occupies
func (d *Document) PageHeight() int {
	h := 0
	for _, el := range d.elements {
		if bottom := el.Top + el.Height; bottom > h {
			h = bottom
		}
	}
	return h
}

// ScrollY returns the current scroll offset
func (d *Document) ScrollY() int { return d.scrollY }

// ViewportHeight returns the number of visible rows
func (d *Document) ViewportHeight() int { return d.viewportHeight }

// ScrollTo moves the viewport. It is refused while the page is scroll-locked.
func (d *Document) ScrollTo(offset int) bool {
	if d.scrollLocked {
		return false
	}
	prev := d.scrollY
	d.scrollY = offset
	d.clampScroll()
	if d.scrollY == prev {
		return true
	}

	for _, id := range sortedIDs(d.scrollListeners) {
		if fn, ok := d.scrollListeners[id]; ok {
			fn(d.scrollY)
		}
	}
	d.checkIntersections()
	return true
}

// Resize changes the viewport height
func (d *Document) Resize(rows int) {
	if rows < 1 {
		rows = 1
	}
	d.viewportHeight = rows
	d.clampScroll()
	d.checkIntersections()
}

func (d *Document) clampScroll() {
	maxY := d.PageHeight() - d.viewportHeight
	if maxY < 0 {
		maxY = 0
	}
	if d.scrollY > maxY {
		d.scrollY = maxY
	}
	if d.scrollY < 0 {
		d.scrollY = 0
	}
}

// SetScrollLocked sets or clears page-level scroll suppression
func (d *Document) SetScrollLocked(locked bool) { d.scrollLocked = locked }

// ScrollLocked reports whether page scrolling is suppressed
func (d *Document) ScrollLocked() bool { return d.scrollLocked }

// OnScroll registers a scroll listener and returns its remover
func (d *Document) OnScroll(fn ScrollListener) func() {
	d.nextListenerID++
	id := d.nextListenerID
	d.scrollListeners[id] = fn
	return func() { delete(d.scrollListeners, id) }
}

// OnKey registers a key listener and returns its remover
func (d *Document) OnKey(fn KeyListener) func() {
	d.nextListenerID++
	id := d.nextListenerID
	d.keyListeners[id] = fn
	return func() { delete(d.keyListeners, id) }
}

// DispatchKey offers key to listeners in registration order until one consumes it
func (d *Document) DispatchKey(key string) bool {
	for _, id := range sortedIDs(d.keyListeners) {
		fn, ok := d.keyListeners[id]
		if !ok {
			continue
		}
		if fn(key) {
			return true
		}
	}
	return false
}

// KeyListenerCount returns the number of registered key listeners
func (d *Document) KeyListenerCount() int { return len(d.keyListeners) }

// ScrollListenerCount returns the number of registered scroll listeners
func (d *Document) ScrollListenerCount() int { return len(d.scrollListeners) }

// SupportsIntersectionObserver reports whether observers can be created
func (d *Document) SupportsIntersectionObserver() bool { return d.intersectionSupported }

// ObserverCount returns the number of connected intersection observers
func (d *Document) ObserverCount() int { return len(d.observers) }

func (d *Document) checkIntersections() {
	for obs := range d.observers {
		obs.check()
	}
}

// VisibleFraction returns how much of el lies inside the viewport, 0..1
func (d *Document) VisibleFraction(el *Element) float64 {
	if el == nil || el.Height <= 0 || !d.Contains(el) {
		return 0
	}
	top := max(el.Top, d.scrollY)
	bottom := min(el.Top+el.Height, d.scrollY+d.viewportHeight)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(el.Height)
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

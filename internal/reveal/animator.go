// Package reveal marks content blocks visible the first time they scroll
// into view.
package reveal

import (
	"go.uber.org/zap"

	"sitechrome/internal/dom"
)

const (
	// Marker is the boolean attribute content templates put on animated blocks
	Marker = "data-reveal"
	// VisibleAttr is set once a block has been revealed
	VisibleAttr = "data-revealed"
	// DefaultThreshold is the visible fraction that triggers a reveal
	DefaultThreshold = 0.12
)

// Animator scans a document for marked nodes and reveals them lazily
type Animator struct {
	doc       *dom.Document
	threshold float64
	logger    *zap.Logger

	observer *dom.IntersectionObserver
	targets  []*dom.Element
}

// Option configures an Animator
type Option func(*Animator)

// WithThreshold overrides DefaultThreshold
func WithThreshold(threshold float64) Option {
	return func(a *Animator) {
		if threshold > 0 && threshold <= 1 {
			a.threshold = threshold
		}
	}
}

// WithLogger sets the animator logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Animator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an animator for doc
func New(doc *dom.Document, opts ...Option) *Animator {
	a := &Animator{
		doc:       doc,
		threshold: DefaultThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsVisible reports whether el has been revealed
func IsVisible(el *dom.Element) bool {
	return el.HasAttr(VisibleAttr)
}

// Start discovers the marked nodes currently in the document and begins
// observing them. Any previous run is stopped first. The returned function
// detaches all observation.
func (a *Animator) Start() func() {
	a.Stop()

	a.targets = a.doc.QueryAll(Marker)
	obs, ok := a.doc.NewIntersectionObserver(a.threshold, a.onIntersect)
	if !ok {
		// no observation primitive: show everything, no animation
		for _, el := range a.targets {
			el.SetAttr(VisibleAttr, "")
		}
		a.logger.Debug("reveal: observer unsupported, revealed all", zap.Int("targets", len(a.targets)))
		return a.Stop
	}

	a.observer = obs
	for _, el := range a.targets {
		if IsVisible(el) {
			continue
		}
		obs.Observe(el)
	}
	a.logger.Debug("reveal: observing", zap.Int("targets", len(a.targets)), zap.Int("pending", obs.Len()))
	return a.Stop
}

// Stop disconnects the observer; revealed nodes stay revealed
func (a *Animator) Stop() {
	if a.observer != nil {
		a.observer.Disconnect()
		a.observer = nil
	}
}

// Pending returns the number of nodes still waiting to be revealed
func (a *Animator) Pending() int {
	if a.observer == nil {
		return 0
	}
	return a.observer.Len()
}

// Targets returns the nodes discovered by the last Start
func (a *Animator) Targets() []*dom.Element {
	return append([]*dom.Element(nil), a.targets...)
}

func (a *Animator) onIntersect(entries []dom.IntersectionEntry, obs *dom.IntersectionObserver) {
	for _, entry := range entries {
		if !entry.IsIntersecting {
			continue
		}
		el := entry.Target
		// one-shot: reveal, then never look at it again
		obs.Unobserve(el)
		if IsVisible(el) {
			continue
		}
		el.SetAttr(VisibleAttr, "")
	}
}

// Package shell mounts the dashboard surface. It keeps its own chrome state
// but publishes every local locale change itself, persisting through the
// shared key and emitting the broadcast explicitly.
package shell

import (
	"go.uber.org/zap"

	"sitechrome/internal/chrome"
	"sitechrome/internal/dom"
	"sitechrome/internal/domain"
	"sitechrome/internal/localebridge"
)

// Synchronizer is the dashboard's locale owner
type Synchronizer struct {
	bridge     *localebridge.Bridge
	controller *chrome.Controller
	logger     *zap.Logger
}

// Option configures a Synchronizer
type Option func(*options)

type options struct {
	logger     *zap.Logger
	chromeOpts []chrome.Option
}

// WithLogger sets the synchronizer logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithChromeOptions passes options to the embedded controller
func WithChromeOptions(opts ...chrome.Option) Option {
	return func(o *options) { o.chromeOpts = append(o.chromeOpts, opts...) }
}

// New creates an unmounted dashboard surface rendering into doc
func New(bridge *localebridge.Bridge, doc *dom.Document, opts ...Option) *Synchronizer {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Synchronizer{bridge: bridge, logger: o.logger}

	chromeOpts := []chrome.Option{chrome.WithName("shell"), chrome.WithLogger(o.logger)}
	chromeOpts = append(chromeOpts, o.chromeOpts...)
	chromeOpts = append(chromeOpts, chrome.WithCommitter(s.commit))
	s.controller = chrome.New(bridge, doc, chromeOpts...)
	return s
}

// Controller exposes the surface state for rendering
func (s *Synchronizer) Controller() *chrome.Controller { return s.controller }

// Mount hydrates and registers the surface's single broadcast listener
func (s *Synchronizer) Mount() { s.controller.Mount() }

// Unmount deregisters the listener and releases everything the surface holds
func (s *Synchronizer) Unmount() { s.controller.Unmount() }

// Locale returns the dashboard's current locale
func (s *Synchronizer) Locale() domain.Locale { return s.controller.Locale() }

// SetLocale changes the dashboard locale and publishes it to every surface
func (s *Synchronizer) SetLocale(l domain.Locale) error { return s.controller.SetLocale(l) }

// ToggleLocale switches to the other locale
func (s *Synchronizer) ToggleLocale() error { return s.controller.ToggleLocale() }

// commit persists and emits the broadcast as two explicit steps, so surfaces
// that only watch the channel converge even if the write is rejected.
func (s *Synchronizer) commit(l domain.Locale) error {
	err := s.bridge.Persist(l)
	if err != nil {
		s.logger.Warn("shell: persist locale failed", zap.String("locale", string(l)), zap.Error(err))
	}
	s.bridge.Broadcast(l)
	return err
}

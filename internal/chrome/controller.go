// Package chrome owns the transient UI state of a mounted surface: its
// locale copy, the mobile navigation flag and the scroll-derived nav flag.
package chrome

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"sitechrome/internal/dom"
	"sitechrome/internal/domain"
	"sitechrome/internal/localebridge"
	"sitechrome/internal/reveal"
)

// DefaultScrollThreshold is the offset in rows past which the nav counts as scrolled
const DefaultScrollThreshold = 8

// State is the per-mount chrome state
type State struct {
	Locale        domain.Locale
	MobileNavOpen bool
	NavScrolled   bool
}

// Controller drives one surface. It is driven from the host's update loop
// and is not safe for concurrent use.
type Controller struct {
	name            string
	bridge          *localebridge.Bridge
	doc             *dom.Document
	animator        *reveal.Animator
	scheduler       Scheduler
	logger          *zap.Logger
	defaultLocale   domain.Locale
	scrollThreshold int
	commit          func(domain.Locale) error

	state         State
	mounted       bool
	pendingLocale domain.Locale // requested here, transition not yet applied
	teardown      []func()
	stopReveal    func()

	listeners  map[int]func(State)
	nextListen int
}

// Option configures a Controller
type Option func(*Controller)

// WithName labels log lines
func WithName(name string) Option {
	return func(c *Controller) { c.name = name }
}

// WithScheduler sets where locale transitions run
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithLogger sets the controller logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultLocale overrides domain.DefaultLocale
func WithDefaultLocale(l domain.Locale) Option {
	return func(c *Controller) {
		if l.Valid() {
			c.defaultLocale = l
		}
	}
}

// WithScrollThreshold overrides DefaultScrollThreshold
func WithScrollThreshold(rows int) Option {
	return func(c *Controller) {
		if rows >= 0 {
			c.scrollThreshold = rows
		}
	}
}

// WithAnimator replaces the default reveal animator
func WithAnimator(a *reveal.Animator) Option {
	return func(c *Controller) { c.animator = a }
}

// WithCommitter replaces how a user-requested locale is published.
// The default persists and broadcasts through the bridge.
func WithCommitter(fn func(domain.Locale) error) Option {
	return func(c *Controller) {
		if fn != nil {
			c.commit = fn
		}
	}
}

// New creates an unmounted controller
func New(bridge *localebridge.Bridge, doc *dom.Document, opts ...Option) *Controller {
	c := &Controller{
		name:            "chrome",
		bridge:          bridge,
		doc:             doc,
		scheduler:       ImmediateScheduler{},
		logger:          zap.NewNop(),
		defaultLocale:   domain.DefaultLocale,
		scrollThreshold: DefaultScrollThreshold,
		listeners:       make(map[int]func(State)),
	}
	c.commit = bridge.Write
	for _, opt := range opts {
		opt(c)
	}
	if c.animator == nil {
		c.animator = reveal.New(doc, reveal.WithLogger(c.logger))
	}
	c.state = State{Locale: c.defaultLocale}
	return c
}

// State returns a copy of the current state
func (c *Controller) State() State { return c.state }

// Locale returns the surface's current locale
func (c *Controller) Locale() domain.Locale { return c.state.Locale }

// Mounted reports whether Mount ran without a matching Unmount
func (c *Controller) Mounted() bool { return c.mounted }

// Document returns the document the controller drives
func (c *Controller) Document() *dom.Document { return c.doc }

// Animator returns the reveal animator
func (c *Controller) Animator() *reveal.Animator { return c.animator }

// OnChange registers a state listener and returns its remover.
// Hosts re-render content from here.
func (c *Controller) OnChange(fn func(State)) func() {
	c.nextListen++
	id := c.nextListen
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// Mount hydrates the locale from the bridge before anything is rendered,
// then starts listening for broadcasts and scroll events.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.pendingLocale = ""
	c.state = State{Locale: c.defaultLocale}

	// hydration is synchronous so the first frame already uses the persisted locale
	if l, ok := c.bridge.Read(); ok && l != c.state.Locale {
		c.logger.Debug("chrome: hydrated locale", zap.String("surface", c.name), zap.String("locale", string(l)))
		c.state.Locale = l
	}
	c.notify()

	c.teardown = append(c.teardown,
		c.bridge.Subscribe(c.onBroadcast),
		c.doc.OnScroll(c.onScroll),
	)
	c.onScroll(c.doc.ScrollY())
	c.restartReveal()
}

// Unmount releases every listener, the reveal observer and the scroll lock
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	for _, fn := range c.teardown {
		fn()
	}
	c.teardown = nil
	if c.stopReveal != nil {
		c.stopReveal()
		c.stopReveal = nil
	}
	c.doc.SetScrollLocked(false)
	c.mounted = false
	c.pendingLocale = ""
	c.state = State{Locale: c.defaultLocale}
}

// SetLocale handles a user's locale request. The nav closes at once; the
// content transition goes through the scheduler.
func (c *Controller) SetLocale(l domain.Locale) error {
	if !l.Valid() {
		return fmt.Errorf("set locale %q: %w", l, domain.ErrInvalidLocale)
	}
	if l == c.state.Locale && c.pendingLocale == "" {
		return nil
	}
	if l == c.pendingLocale {
		return nil
	}

	c.CloseNav()

	// set before committing: the broadcast reaches our own listener synchronously
	c.pendingLocale = l
	err := c.commit(l)

	c.scheduler.Schedule(func() {
		if !c.mounted || c.pendingLocale != l {
			return
		}
		c.pendingLocale = ""
		c.applyLocale(l)
	})
	if err != nil {
		c.logger.Warn("chrome: locale commit failed", zap.String("surface", c.name), zap.Error(err))
	}
	return err
}

// ToggleLocale requests the other supported locale
func (c *Controller) ToggleLocale() error {
	current := c.state.Locale
	if c.pendingLocale != "" {
		current = c.pendingLocale
	}
	return c.SetLocale(current.Other())
}

// PendingLocale returns a requested locale whose transition has not run yet
func (c *Controller) PendingLocale() (domain.Locale, bool) {
	return c.pendingLocale, c.pendingLocale != ""
}

// OpenNav opens the mobile nav and suppresses page scrolling
func (c *Controller) OpenNav() {
	if c.state.MobileNavOpen {
		return
	}
	c.state.MobileNavOpen = true
	c.doc.SetScrollLocked(true)
	c.notify()
}

// CloseNav closes the mobile nav and restores page scrolling
func (c *Controller) CloseNav() {
	c.doc.SetScrollLocked(false)
	if !c.state.MobileNavOpen {
		return
	}
	c.state.MobileNavOpen = false
	c.notify()
}

// ToggleNav flips the mobile nav
func (c *Controller) ToggleNav() {
	if c.state.MobileNavOpen {
		c.CloseNav()
		return
	}
	c.OpenNav()
}

// onBroadcast adopts another surface's locale without re-persisting it
func (c *Controller) onBroadcast(l domain.Locale) {
	if !c.mounted || !l.Valid() {
		return
	}
	if l == c.pendingLocale {
		// our own request; the scheduled transition applies it
		return
	}
	c.pendingLocale = ""
	if l == c.state.Locale {
		return
	}
	c.logger.Debug("chrome: adopted broadcast locale", zap.String("surface", c.name), zap.String("locale", string(l)))
	c.applyLocale(l)
}

func (c *Controller) onScroll(offset int) {
	scrolled := offset > c.scrollThreshold
	if scrolled == c.state.NavScrolled {
		return
	}
	c.state.NavScrolled = scrolled
	c.notify()
}

// applyLocale transitions the locale, lets listeners swap the content, then
// rescans reveal targets since they differ per locale
func (c *Controller) applyLocale(l domain.Locale) {
	if l == c.state.Locale {
		return
	}
	c.state.Locale = l
	c.notify()
	c.restartReveal()
}

func (c *Controller) restartReveal() {
	if c.animator == nil {
		return
	}
	if c.stopReveal != nil {
		c.stopReveal()
	}
	c.stopReveal = c.animator.Start()
}

func (c *Controller) notify() {
	s := c.state
	for _, id := range sortedKeys(c.listeners) {
		if fn, ok := c.listeners[id]; ok {
			fn(s)
		}
	}
}

func sortedKeys(m map[int]func(State)) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"sitechrome/internal/chrome"
	"sitechrome/internal/dom"
	"sitechrome/internal/domain"
	"sitechrome/internal/lightbox"
	"sitechrome/internal/localebridge"
	"sitechrome/internal/reveal"
	"sitechrome/internal/shell"
	"sitechrome/internal/site"
)

// rows used by the header, surface tabs, status and help lines
const chromeRows = 5

// Focus identifies the surface receiving input
type Focus int

const (
	FocusSite Focus = iota
	FocusDashboard
)

// Options configures the model
type Options struct {
	Gallery                []domain.GalleryItem
	DefaultLocale          domain.Locale
	ScrollThreshold        int // rows; negative selects chrome.DefaultScrollThreshold
	RevealThreshold        float64
	DeferLocaleTransitions bool
	Logger                 *zap.Logger
}

// Model hosts the public site and the dashboard shell side by side in one
// terminal. The two surfaces share nothing but the locale bridge.
type Model struct {
	bridge  *localebridge.Bridge
	builder *site.Builder
	logger  *zap.Logger

	site  *surface
	dash  *surface
	shell *shell.Synchronizer
	nav   *lightbox.Navigator
	queue *chrome.QueueScheduler // nil when transitions run inline

	focus  Focus
	keys   keyMap
	help   help.Model
	styles *Styles

	width     int
	height    int
	status    string
	statusErr bool
	closed    bool

	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	program      *tea.Program
}

// NewModel builds both surfaces and mounts them
func NewModel(bridge *localebridge.Bridge, builder *site.Builder, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		bridge:       bridge,
		builder:      builder,
		logger:       logger,
		keys:         newKeyMap(),
		help:         help.New(),
		styles:       NewStyles(),
		helpRenderer: NewHelpRenderer(builder.Translator()),
		width:        80,
		height:       24,
	}

	var scheduler chrome.Scheduler = chrome.ImmediateScheduler{}
	if opts.DeferLocaleTransitions {
		m.queue = chrome.NewQueueScheduler()
		scheduler = m.queue
	}
	threshold := opts.RevealThreshold
	if threshold <= 0 {
		threshold = reveal.DefaultThreshold
	}
	scrollThreshold := opts.ScrollThreshold
	if scrollThreshold < 0 {
		scrollThreshold = chrome.DefaultScrollThreshold
	}
	defaultLocale := opts.DefaultLocale
	if !defaultLocale.Valid() {
		defaultLocale = domain.DefaultLocale
	}

	siteDoc := dom.NewDocument(dom.WithViewportHeight(m.height - chromeRows))
	dashDoc := dom.NewDocument(dom.WithViewportHeight(m.height - chromeRows))
	m.nav = lightbox.New(opts.Gallery, lightbox.WithKeyTarget(siteDoc), lightbox.WithLogger(logger))

	common := func(doc *dom.Document) []chrome.Option {
		return []chrome.Option{
			chrome.WithScheduler(scheduler),
			chrome.WithLogger(logger),
			chrome.WithDefaultLocale(defaultLocale),
			chrome.WithScrollThreshold(scrollThreshold),
			chrome.WithAnimator(reveal.New(doc, reveal.WithThreshold(threshold), reveal.WithLogger(logger))),
		}
	}

	m.site = newSurface("site", siteDoc, builder.SitePage, func(l domain.Locale) []*dom.Element {
		return builder.GallerySection(l, m.nav)
	})
	m.site.ctrl = chrome.New(bridge, siteDoc, append(common(siteDoc), chrome.WithName("site"))...)

	m.dash = newSurface("dashboard", dashDoc, builder.DashboardPage, nil)
	m.shell = shell.New(bridge, dashDoc, shell.WithLogger(logger), shell.WithChromeOptions(common(dashDoc)...))
	m.dash.ctrl = m.shell.Controller()

	for _, s := range []*surface{m.site, m.dash} {
		s.ctrl.OnChange(func(state chrome.State) {
			if state.Locale != s.staticLocale || s.static == nil {
				s.refresh(state.Locale)
			}
		})
	}

	m.site.ctrl.Mount()
	m.shell.Mount()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Close unmounts both surfaces and releases the lightbox key listener
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.nav.Teardown()
	m.site.ctrl.Unmount()
	m.shell.Unmount()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		for _, s := range []*surface{m.site, m.dash} {
			s.resize(msg.Width, msg.Height-chromeRows)
		}
		return m, nil

	case flushTransitionsMsg:
		if m.queue != nil {
			m.queue.Flush()
		}
		return m, nil

	case StorageChangedMsg:
		if m.bridge.SyncExternal(msg.Change) {
			m.setStatus("locale changed in another window", false)
		}
		return m, m.flushCmd()

	case helpPagerMsg:
		if msg.err != nil {
			m.setStatus("help: "+msg.err.Error(), true)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := m.focused()

	// page-level key listeners first: the open lightbox owns esc and arrows
	if focused.doc.DispatchKey(msg.String()) {
		m.site.refresh(m.site.ctrl.Locale())
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		if m.focus == FocusSite {
			m.focus = FocusDashboard
		} else {
			m.focus = FocusSite
		}

	case key.Matches(msg, m.keys.Locale):
		var err error
		if m.focus == FocusSite {
			err = m.site.ctrl.ToggleLocale()
		} else {
			err = m.shell.ToggleLocale()
		}
		if err != nil {
			m.setStatus("language not saved: "+err.Error(), true)
		} else {
			m.setStatus("", false)
		}
		return m, m.flushCmd()

	case key.Matches(msg, m.keys.Nav):
		focused.ctrl.ToggleNav()

	case key.Matches(msg, m.keys.Close):
		focused.ctrl.CloseNav()

	case key.Matches(msg, m.keys.Photos) && m.focus == FocusSite:
		m.nav.SelectTab(domain.KindPhoto)
		m.site.refresh(m.site.ctrl.Locale())

	case key.Matches(msg, m.keys.Videos) && m.focus == FocusSite:
		m.nav.SelectTab(domain.KindVideo)
		m.site.refresh(m.site.ctrl.Locale())

	case key.Matches(msg, m.keys.Open) && m.focus == FocusSite:
		n, _ := strconv.Atoi(msg.String())
		if m.nav.Open(n - 1) {
			m.site.refresh(m.site.ctrl.Locale())
		}

	case key.Matches(msg, m.keys.Help):
		if m.helpOps == nil {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, m.helpOps.showHelpCmd(m.helpRenderer.Render(focused.ctrl.Locale()))

	case key.Matches(msg, m.keys.Up):
		focused.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		focused.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		focused.scrollBy(-focused.doc.ViewportHeight())
	case key.Matches(msg, m.keys.PageDown):
		focused.scrollBy(focused.doc.ViewportHeight())
	case key.Matches(msg, m.keys.Top):
		focused.doc.ScrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		focused.doc.ScrollTo(focused.doc.PageHeight())
	}
	return m, nil
}

// flushCmd schedules queued locale transitions for the next update turn
func (m *Model) flushCmd() tea.Cmd {
	if m.queue == nil || m.queue.Pending() == 0 {
		return nil
	}
	return func() tea.Msg { return flushTransitionsMsg{} }
}

func (m *Model) focused() *surface {
	if m.focus == FocusDashboard {
		return m.dash
	}
	return m.site
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	if isErr {
		m.logger.Warn("ui: " + text)
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.closed {
		return ""
	}
	s := m.focused()
	state := s.ctrl.State()

	var body string
	switch {
	case state.MobileNavOpen:
		body = m.renderMenu(state.Locale)
	case s == m.site && m.nav.IsOpen():
		media, _ := m.builder.ActiveMedia(state.Locale, m.nav)
		body = m.styles.Lightbox.Render(media)
	default:
		body = s.render(m.styles)
	}

	status := m.styles.Status.Render(m.status)
	if m.statusErr {
		status = m.styles.StatusError.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(s, state),
		m.renderTabs(),
		lipgloss.NewStyle().Height(max(m.height-chromeRows, 1)).Render(body),
		status,
		m.styles.Help.Render(m.help.View(m.keys)),
	)
}

func (m *Model) renderHeader(s *surface, state chrome.State) string {
	t := func(path string) string { return m.builder.Translator().T(state.Locale, path) }

	var parts []string
	if s == m.site {
		parts = append(parts, m.styles.Brand.Render(t("nav.brand")))
		for _, link := range []string{"nav.home", "nav.programs", "nav.gallery", "nav.contact"} {
			parts = append(parts, m.styles.NavLink.Render(t(link)))
		}
	} else {
		parts = append(parts, m.styles.Brand.Render(t("dashboard.title")))
	}
	parts = append(parts, m.styles.Locale.Render(strings.ToUpper(string(state.Locale))+" · "+t("locale.switch")))

	style := m.styles.NavBar
	if state.NavScrolled {
		style = m.styles.NavScrolled
	}
	return style.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m *Model) renderTabs() string {
	siteTab, dashTab := m.styles.TabInactive, m.styles.TabInactive
	if m.focus == FocusSite {
		siteTab = m.styles.TabActive
	} else {
		dashTab = m.styles.TabActive
	}
	return " " + siteTab.Render("site") + "  " + dashTab.Render("dashboard")
}

func (m *Model) renderMenu(l domain.Locale) string {
	t := func(path string) string { return m.builder.Translator().T(l, path) }
	lines := []string{t("nav.menu"), ""}
	for _, link := range []string{"nav.home", "nav.programs", "nav.gallery", "nav.contact"} {
		lines = append(lines, "  "+t(link))
	}
	lines = append(lines, "", "L  "+t("locale.switch"), "m  "+t("nav.close"))
	return m.styles.Menu.Render(strings.Join(lines, "\n"))
}

// Locale returns the locale of the given surface
func (m *Model) Locale(f Focus) domain.Locale {
	if f == FocusDashboard {
		return m.shell.Locale()
	}
	return m.site.ctrl.Locale()
}

// Focus returns the surface receiving input
func (m *Model) Focus() Focus { return m.focus }

// SiteDocument exposes the site page, mainly for inspection in tests
func (m *Model) SiteDocument() *dom.Document { return m.site.doc }

// DashboardDocument exposes the dashboard page
func (m *Model) DashboardDocument() *dom.Document { return m.dash.doc }

// SiteState returns the site chrome state
func (m *Model) SiteState() chrome.State { return m.site.ctrl.State() }

// DashboardState returns the dashboard chrome state
func (m *Model) DashboardState() chrome.State { return m.shell.Controller().State() }

// Navigator returns the gallery navigator
func (m *Model) Navigator() *lightbox.Navigator { return m.nav }

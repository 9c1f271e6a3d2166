package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"sitechrome/internal/chrome"
	"sitechrome/internal/dom"
	"sitechrome/internal/domain"
	"sitechrome/internal/reveal"
	"sitechrome/internal/site"
)

// surface is one independently mounted page: its document, its chrome
// controller and the viewport window onto the document.
type surface struct {
	name     string
	doc      *dom.Document
	ctrl     *chrome.Controller
	viewport viewport.Model

	// static blocks are rebuilt only when the locale changes so reveal
	// state survives unrelated re-renders
	content      func(domain.Locale) []*dom.Element
	trailer      func(domain.Locale) []*dom.Element
	static       []*dom.Element
	staticLocale domain.Locale
}

func newSurface(name string, doc *dom.Document, content, trailer func(domain.Locale) []*dom.Element) *surface {
	return &surface{
		name:     name,
		doc:      doc,
		viewport: viewport.New(80, doc.ViewportHeight()),
		content:  content,
		trailer:  trailer,
	}
}

// refresh lays the page out again for l
func (s *surface) refresh(l domain.Locale) {
	if s.static == nil || l != s.staticLocale {
		s.static = s.content(l)
		s.staticLocale = l
	}
	groups := [][]*dom.Element{s.static}
	if s.trailer != nil {
		groups = append(groups, s.trailer(l))
	}
	s.doc.SetContent(site.Stack(groups...))
}

func (s *surface) resize(width, height int) {
	if height < 1 {
		height = 1
	}
	s.viewport.Width = width
	s.viewport.Height = height
	s.doc.Resize(height)
}

// scrollBy moves the page; refused while the page is scroll-locked
func (s *surface) scrollBy(delta int) bool {
	return s.doc.ScrollTo(s.doc.ScrollY() + delta)
}

func (s *surface) render(styles *Styles) string {
	rows := make([]string, s.doc.PageHeight())
	for _, el := range s.doc.Elements() {
		style := styles.Revealed
		if el.HasAttr(reveal.Marker) && !reveal.IsVisible(el) {
			style = styles.Pending
		}
		for i, line := range site.Lines(el) {
			if r := el.Top + i; r < len(rows) {
				rows[r] = style.Render(line)
			}
		}
	}
	s.viewport.SetContent(strings.Join(rows, "\n"))
	s.viewport.SetYOffset(s.doc.ScrollY())
	return s.viewport.View()
}

// Package site builds the localized page content of both surfaces as
// document elements. Blocks that animate in carry reveal.Marker.
package site

import (
	"fmt"
	"strings"

	"sitechrome/internal/dom"
	"sitechrome/internal/domain"
	"sitechrome/internal/i18n"
	"sitechrome/internal/lightbox"
	"sitechrome/internal/reveal"
)

// Impact figures shown in the stats section
const (
	PartnerFarmers = 1200
	Villages       = 48
	HarvestTonnes  = 3400
)

// Builder renders content through a translator
type Builder struct {
	tr *i18n.Translator
}

// NewBuilder creates a content builder
func NewBuilder(tr *i18n.Translator) *Builder {
	return &Builder{tr: tr}
}

// Translator returns the underlying translator
func (b *Builder) Translator() *i18n.Translator { return b.tr }

// SitePage returns the locale-specific blocks of the public site, top to
// bottom. The gallery section is built separately since it follows the
// lightbox state.
func (b *Builder) SitePage(l domain.Locale) []*dom.Element {
	t := func(path string) string { return b.tr.T(l, path) }
	count := func(path string, n int) string { return b.tr.TData(l, path, map[string]any{"Count": n}) }

	blocks := []*dom.Element{
		block("hero", false, t("hero.title"), t("hero.subtitle")),
		block("programs", false, t("programs.title")),
	}
	for _, p := range []string{"training", "logistics", "market"} {
		blocks = append(blocks, block("program-"+p, true,
			t("programs."+p+".title"), "  "+t("programs."+p+".body")))
	}
	blocks = append(blocks,
		block("stats", false, t("stats.title")),
		block("stat-farmers", true, count("stats.farmers", PartnerFarmers)),
		block("stat-villages", true, count("stats.villages", Villages)),
		block("stat-harvest", true, count("stats.harvest", HarvestTonnes)),
		block("suppliers", true, t("suppliers.title"), t("suppliers.body")),
	)
	return blocks
}

// GallerySection renders the tab strip and the filtered items of nav
func (b *Builder) GallerySection(l domain.Locale, nav *lightbox.Navigator) []*dom.Element {
	t := func(path string) string { return b.tr.T(l, path) }

	tabs := []string{}
	for _, kind := range []domain.MediaKind{domain.KindPhoto, domain.KindVideo} {
		label := t("gallery.photos")
		if kind == domain.KindVideo {
			label = t("gallery.videos")
		}
		if kind == nav.Tab() {
			label = "[" + label + "]"
		}
		tabs = append(tabs, label)
	}

	lines := []string{t("gallery.title") + "  " + strings.Join(tabs, " "), t("gallery.hint")}
	items := nav.Filtered()
	if len(items) == 0 {
		lines = append(lines, t("gallery.empty"))
	}
	for i, item := range items {
		cursor := " "
		if i == nav.ActiveIndex() {
			cursor = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s (%s)", cursor, i+1, item.Title, t(mediaLabel(item))))
	}
	return []*dom.Element{
		block("gallery", false, lines...),
		block("footer", false, t("footer.copy")),
	}
}

// DashboardPage returns the blocks of the cooperative dashboard
func (b *Builder) DashboardPage(l domain.Locale) []*dom.Element {
	t := func(path string) string { return b.tr.T(l, path) }
	return []*dom.Element{
		block("dash-title", false, t("dashboard.title"), t("dashboard.welcome")),
		block("dash-orders", true, t("dashboard.orders"), "  128"),
		block("dash-deliveries", true, t("dashboard.deliveries"), "  14"),
		block("dash-reports", true, t("dashboard.reports"), "  6"),
		block("dash-note", false, t("dashboard.note")),
	}
}

// Stack lays groups out top to bottom starting at row 0 and returns the
// flattened element list ready for Document.SetContent
func Stack(groups ...[]*dom.Element) []*dom.Element {
	var out []*dom.Element
	row := 0
	for _, g := range groups {
		for _, el := range g {
			el.Top = row
			row += el.Height
			out = append(out, el)
		}
	}
	return out
}

// Lines returns the text rows of el, without the trailing gap row
func Lines(el *dom.Element) []string {
	return strings.Split(el.Text, "\n")
}

// ActiveMedia describes the open lightbox item for the locale, if any
func (b *Builder) ActiveMedia(l domain.Locale, nav *lightbox.Navigator) (string, bool) {
	item, ok := nav.Active()
	if !ok {
		return "", false
	}
	media := lightbox.MediaFor(item)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %d/%d\n", item.Title, nav.ActiveIndex()+1, len(nav.Filtered()))
	fmt.Fprintf(&sb, "<%s src=%q", media.Element, media.Src)
	if media.Poster != "" {
		fmt.Fprintf(&sb, " poster=%q", media.Poster)
	}
	if media.Controls {
		sb.WriteString(" controls")
	}
	if media.Autoplay {
		sb.WriteString(" autoplay")
	}
	sb.WriteString(">\n")
	fmt.Fprintf(&sb, "%s   %s   %s", b.tr.T(l, "lightbox.prev"), b.tr.T(l, "lightbox.next"), b.tr.T(l, "lightbox.close"))
	return sb.String(), true
}

func mediaLabel(item domain.GalleryItem) string {
	if item.Kind == domain.KindVideo {
		return "lightbox.video"
	}
	return "lightbox.photo"
}

// block creates an element spanning its lines plus one blank row
func block(id string, reveals bool, lines ...string) *dom.Element {
	el := dom.NewElement(id, 0, len(lines)+1)
	el.Text = strings.Join(lines, "\n")
	if reveals {
		el.SetAttr(reveal.Marker, "")
	}
	return el
}

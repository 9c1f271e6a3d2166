package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitechrome/internal/domain"
	"sitechrome/internal/i18n"
	"sitechrome/internal/lightbox"
	"sitechrome/internal/reveal"
)

func newBuilder() *Builder {
	return NewBuilder(i18n.NewTranslator(domain.LocaleID, nil))
}

func TestSitePageIsLocalized(t *testing.T) {
	b := newBuilder()
	id := b.SitePage(domain.LocaleID)
	en := b.SitePage(domain.LocaleEN)
	require.Equal(t, len(id), len(en))

	assert.Contains(t, id[0].Text, "Pangan segar")
	assert.Contains(t, en[0].Text, "Fresh food")
	assert.Contains(t, en[6].Text, "1200 partner farmers")
}

func TestSitePageMarksRevealBlocks(t *testing.T) {
	b := newBuilder()
	var marked []string
	for _, el := range b.SitePage(domain.LocaleEN) {
		if el.HasAttr(reveal.Marker) {
			marked = append(marked, el.ID)
		}
	}
	assert.Equal(t, []string{
		"program-training", "program-logistics", "program-market",
		"stat-farmers", "stat-villages", "stat-harvest", "suppliers",
	}, marked)
}

func TestStackAssignsRows(t *testing.T) {
	b := newBuilder()
	page := b.SitePage(domain.LocaleEN)
	els := Stack(page[:2], page[2:3])
	require.Len(t, els, 3)

	assert.Equal(t, 0, els[0].Top)
	assert.Equal(t, 3, els[0].Height, "two lines plus gap")
	assert.Equal(t, 3, els[1].Top)
	assert.Equal(t, els[1].Top+els[1].Height, els[2].Top)
}

func TestGallerySectionFollowsNavigator(t *testing.T) {
	b := newBuilder()
	nav := lightbox.New([]domain.GalleryItem{
		{ID: "a", Kind: domain.KindPhoto, Title: "Rice", MediaSrc: "a.jpg"},
		{ID: "v", Kind: domain.KindVideo, Title: "Truck", MediaSrc: "v.mp4"},
	})

	section := b.GallerySection(domain.LocaleEN, nav)
	lines := Lines(section[0])
	assert.Contains(t, lines[0], "[Photos]")
	assert.Contains(t, lines[2], "1. Rice (Photo)")

	nav.SelectTab(domain.KindVideo)
	require.True(t, nav.Open(0))
	lines = Lines(b.GallerySection(domain.LocaleID, nav)[0])
	assert.Contains(t, lines[0], "[Video]")
	assert.Contains(t, lines[2], "> 1. Truck (Video)")
}

func TestGallerySectionEmptyTab(t *testing.T) {
	b := newBuilder()
	nav := lightbox.New(nil)
	lines := Lines(b.GallerySection(domain.LocaleEN, nav)[0])
	assert.Contains(t, lines, "No media in this tab yet.")
}

func TestActiveMediaRendersByKind(t *testing.T) {
	b := newBuilder()
	nav := lightbox.New([]domain.GalleryItem{
		{ID: "v", Kind: domain.KindVideo, Title: "Truck", MediaSrc: "v.mp4", ThumbnailSrc: "v.jpg"},
	}, lightbox.WithInitialTab(domain.KindVideo))

	_, ok := b.ActiveMedia(domain.LocaleEN, nav)
	assert.False(t, ok)

	require.True(t, nav.Open(0))
	out, ok := b.ActiveMedia(domain.LocaleEN, nav)
	require.True(t, ok)
	assert.Contains(t, out, `<video src="v.mp4" poster="v.jpg" controls autoplay>`)
	assert.Contains(t, out, "Truck  1/1")
}

func TestDashboardFallsBackForUntranslatedCopy(t *testing.T) {
	b := newBuilder()
	en := b.DashboardPage(domain.LocaleEN)
	id := b.DashboardPage(domain.LocaleID)
	assert.Equal(t, id[4].Text, en[4].Text)
	assert.Equal(t, "Bahasa dasbor mengikuti situs utama.", en[4].Text)
	assert.Contains(t, en[0].Text, "Cooperative dashboard")
}

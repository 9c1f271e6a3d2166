package reveal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitechrome/internal/dom"
)

// content lays out n marked 10-row blocks plus an unmarked header
func content(doc *dom.Document, n int) []*dom.Element {
	els := []*dom.Element{dom.NewElement("header", 0, 5)}
	var marked []*dom.Element
	for i := 0; i < n; i++ {
		el := dom.NewElement(fmt.Sprintf("block-%d", i), 5+i*10, 10)
		el.SetAttr(Marker, "")
		els = append(els, el)
		marked = append(marked, el)
	}
	doc.SetContent(els)
	return marked
}

func TestRevealsInitiallyVisibleAndObservesRest(t *testing.T) {
	doc := dom.NewDocument(dom.WithViewportHeight(20))
	blocks := content(doc, 6)

	a := New(doc)
	stop := a.Start()
	defer stop()

	// rows 0-19: block-0 (5-14) full, block-1 (15-24) half
	assert.True(t, IsVisible(blocks[0]))
	assert.True(t, IsVisible(blocks[1]))
	assert.False(t, IsVisible(blocks[2]))
	assert.Equal(t, 4, a.Pending())
	assert.Len(t, a.Targets(), 6)
}

func TestThresholdIsTwelvePercent(t *testing.T) {
	doc := dom.NewDocument(dom.WithViewportHeight(20))
	blocks := content(doc, 6)
	a := New(doc)
	a.Start()

	// block-2 spans rows 25-34; viewport 6-25 shows one row = 10%
	doc.ScrollTo(6)
	assert.False(t, IsVisible(blocks[2]))

	// viewport 7-26 shows two rows = 20%
	doc.ScrollTo(7)
	assert.True(t, IsVisible(blocks[2]))
}

func TestRevealIsOneShot(t *testing.T) {
	doc := dom.NewDocument(dom.WithViewportHeight(20))
	blocks := content(doc, 6)
	a := New(doc)
	a.Start()

	doc.ScrollTo(40)
	require.True(t, IsVisible(blocks[3]))
	pending := a.Pending()

	// scrolling away and back never reverts and never re-observes
	doc.ScrollTo(0)
	doc.ScrollTo(40)
	assert.True(t, IsVisible(blocks[3]))
	assert.Equal(t, pending, a.Pending())

	for _, b := range blocks {
		if IsVisible(b) {
			assert.False(t, a.observer.Observing(b), b.ID)
		}
	}
}

func TestRestartSkipsAlreadyVisibleNodes(t *testing.T) {
	doc := dom.NewDocument(dom.WithViewportHeight(20))
	blocks := content(doc, 6)
	a := New(doc)
	a.Start()
	require.True(t, IsVisible(blocks[0]))

	a.Start()
	assert.False(t, a.observer.Observing(blocks[0]))
	assert.Equal(t, 1, doc.ObserverCount())
}

func TestFallbackWithoutObserver(t *testing.T) {
	doc := dom.NewDocument(dom.WithoutIntersectionObserver(), dom.WithViewportHeight(5))
	blocks := content(doc, 4)

	a := New(doc)
	stop := a.Start()
	defer stop()

	for _, b := range blocks {
		assert.True(t, IsVisible(b), b.ID)
	}
	assert.Equal(t, 0, a.Pending())
}

func TestStopDetachesObservation(t *testing.T) {
	doc := dom.NewDocument(dom.WithViewportHeight(20))
	blocks := content(doc, 6)
	a := New(doc)
	stop := a.Start()
	require.Equal(t, 1, doc.ObserverCount())

	stop()
	assert.Equal(t, 0, doc.ObserverCount())
	assert.Equal(t, 0, a.Pending())

	doc.ScrollTo(40)
	assert.False(t, IsVisible(blocks[3]))
}

func TestReplacedContentIsRediscovered(t *testing.T) {
	doc := dom.NewDocument(dom.WithViewportHeight(20))
	content(doc, 6)
	a := New(doc)
	a.Start()

	fresh := content(doc, 3)
	a.Start()
	assert.Len(t, a.Targets(), 3)
	assert.True(t, IsVisible(fresh[0]))
	assert.Equal(t, 1, doc.ObserverCount())
}

func TestWithThreshold(t *testing.T) {
	doc := dom.NewDocument(dom.WithViewportHeight(20))
	blocks := content(doc, 3)
	a := New(doc, WithThreshold(0.6))
	a.Start()

	// block-1 is half visible: below 60%
	assert.True(t, IsVisible(blocks[0]))
	assert.False(t, IsVisible(blocks[1]))
}

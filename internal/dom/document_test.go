package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page builds ten 10-row elements stacked from row 0
func page(t *testing.T, doc *Document) []*Element {
	t.Helper()
	var els []*Element
	for i := 0; i < 10; i++ {
		el := NewElement(string(rune('a'+i)), i*10, 10)
		if i%2 == 0 {
			el.SetAttr("data-reveal", "")
		}
		els = append(els, el)
	}
	doc.SetContent(els)
	return els
}

func TestQueryAllReturnsMarkedInOrder(t *testing.T) {
	doc := NewDocument()
	els := page(t, doc)

	got := doc.QueryAll("data-reveal")
	require.Len(t, got, 5)
	assert.Same(t, els[0], got[0])
	assert.Same(t, els[8], got[4])
}

func TestScrollToClampsAndNotifies(t *testing.T) {
	doc := NewDocument(WithViewportHeight(20))
	page(t, doc)

	var seen []int
	remove := doc.OnScroll(func(offset int) { seen = append(seen, offset) })

	assert.True(t, doc.ScrollTo(15))
	assert.True(t, doc.ScrollTo(1000))
	assert.Equal(t, 80, doc.ScrollY())
	assert.True(t, doc.ScrollTo(-5))
	assert.Equal(t, []int{15, 80, 0}, seen)

	remove()
	doc.ScrollTo(10)
	assert.Len(t, seen, 3)
	assert.Equal(t, 0, doc.ScrollListenerCount())
}

func TestScrollLockRefusesScrolling(t *testing.T) {
	doc := NewDocument(WithViewportHeight(20))
	page(t, doc)

	doc.SetScrollLocked(true)
	assert.False(t, doc.ScrollTo(30))
	assert.Equal(t, 0, doc.ScrollY())

	doc.SetScrollLocked(false)
	assert.True(t, doc.ScrollTo(30))
	assert.Equal(t, 30, doc.ScrollY())
}

func TestDispatchKeyStopsAtFirstConsumer(t *testing.T) {
	doc := NewDocument()
	var order []string
	doc.OnKey(func(key string) bool { order = append(order, "a:"+key); return false })
	removeB := doc.OnKey(func(key string) bool { order = append(order, "b:"+key); return true })
	doc.OnKey(func(key string) bool { order = append(order, "c:"+key); return true })

	assert.True(t, doc.DispatchKey("esc"))
	assert.Equal(t, []string{"a:esc", "b:esc"}, order)

	removeB()
	order = nil
	assert.True(t, doc.DispatchKey("left"))
	assert.Equal(t, []string{"a:left", "c:left"}, order)
	assert.Equal(t, 2, doc.KeyListenerCount())
}

func TestVisibleFraction(t *testing.T) {
	doc := NewDocument(WithViewportHeight(15))
	els := page(t, doc)

	assert.Equal(t, 1.0, doc.VisibleFraction(els[0]))
	assert.Equal(t, 0.5, doc.VisibleFraction(els[1]))
	assert.Equal(t, 0.0, doc.VisibleFraction(els[2]))

	orphan := NewElement("orphan", 0, 10)
	assert.Equal(t, 0.0, doc.VisibleFraction(orphan))
}

func TestObserverDeliversInitialAndCrossingEntries(t *testing.T) {
	doc := NewDocument(WithViewportHeight(10))
	els := page(t, doc)

	var entries []IntersectionEntry
	obs, ok := doc.NewIntersectionObserver(0.12, func(es []IntersectionEntry, _ *IntersectionObserver) {
		entries = append(entries, es...)
	})
	require.True(t, ok)

	obs.Observe(els[0])
	obs.Observe(els[2])
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsIntersecting)
	assert.False(t, entries[1].IsIntersecting)

	obs.Unobserve(els[0])
	assert.False(t, obs.Observing(els[0]))

	entries = nil
	doc.ScrollTo(11) // els[2] (rows 20-29) now 1 row visible: 10% < 12%
	assert.Empty(t, entries)

	doc.ScrollTo(13) // 3 rows of els[2] visible
	require.Len(t, entries, 1)
	assert.Same(t, els[2], entries[0].Target)
	assert.True(t, entries[0].IsIntersecting)

	obs.Disconnect()
	assert.Equal(t, 0, doc.ObserverCount())
	assert.Equal(t, 0, obs.Len())
}

func TestObserverUnsupported(t *testing.T) {
	doc := NewDocument(WithoutIntersectionObserver())
	obs, ok := doc.NewIntersectionObserver(0.12, func([]IntersectionEntry, *IntersectionObserver) {})
	assert.False(t, ok)
	assert.Nil(t, obs)
	assert.False(t, doc.SupportsIntersectionObserver())
}

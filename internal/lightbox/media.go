package lightbox

import "sitechrome/internal/domain"

// Media describes how an item is presented
type Media struct {
	Element  string // "video" or "img"
	Src      string
	Poster   string
	Controls bool
	Autoplay bool
}

// MediaFor derives the presentation of item from its kind alone
func MediaFor(item domain.GalleryItem) Media {
	if item.Kind == domain.KindVideo {
		return Media{
			Element:  "video",
			Src:      item.MediaSrc,
			Poster:   item.ThumbnailSrc,
			Controls: true,
			Autoplay: true,
		}
	}
	return Media{Element: "img", Src: item.MediaSrc}
}

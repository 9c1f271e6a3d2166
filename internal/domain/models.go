package domain

import "strings"

// Locale is the active display-language tag
type Locale string

const (
	LocaleID Locale = "id" // primary
	LocaleEN Locale = "en" // secondary
)

// DefaultLocale is used whenever no valid persisted value exists
const DefaultLocale = LocaleID

// Locales lists the supported tags in display order
var Locales = []Locale{LocaleID, LocaleEN}

// ParseLocale validates a raw tag. Surrounding whitespace and case are ignored.
func ParseLocale(raw string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case LocaleID:
		return LocaleID, true
	case LocaleEN:
		return LocaleEN, true
	}
	return "", false
}

// Valid reports whether l is one of the supported tags
func (l Locale) Valid() bool {
	return l == LocaleID || l == LocaleEN
}

// Other returns the opposite tag, used by the locale toggles
func (l Locale) Other() Locale {
	if l == LocaleEN {
		return LocaleID
	}
	return LocaleEN
}

func (l Locale) String() string { return string(l) }

// MediaKind discriminates gallery items
type MediaKind string

const (
	KindPhoto MediaKind = "photo"
	KindVideo MediaKind = "video"
)

// Valid reports whether k is photo or video
func (k MediaKind) Valid() bool {
	return k == KindPhoto || k == KindVideo
}

// GalleryItem is one entry of an externally supplied media collection
type GalleryItem struct {
	ID           string    `yaml:"id"`
	Kind         MediaKind `yaml:"kind"`
	Title        string    `yaml:"title"`
	MediaSrc     string    `yaml:"media_src"`
	ThumbnailSrc string    `yaml:"thumbnail_src,omitempty"` // optional
}

// Thumbnail returns the thumbnail source, falling back to the media itself
func (g GalleryItem) Thumbnail() string {
	if g.ThumbnailSrc != "" {
		return g.ThumbnailSrc
	}
	return g.MediaSrc
}

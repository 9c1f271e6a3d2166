package domain

import "errors"

var (
	// ErrInvalidLocale is returned when a tag is not one of the supported locales
	ErrInvalidLocale = errors.New("invalid locale")
	// ErrInvalidGalleryItem is returned by loaders for items missing an id or kind
	ErrInvalidGalleryItem = errors.New("invalid gallery item")
)

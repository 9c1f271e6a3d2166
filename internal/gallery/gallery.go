// Package gallery loads the media collection shown in the lightbox
package gallery

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sitechrome/internal/domain"
)

//go:embed default.yaml
var defaultGallery []byte

type file struct {
	Items []domain.GalleryItem `yaml:"items"`
}

// Default returns the embedded gallery
func Default() ([]domain.GalleryItem, error) {
	return Parse(defaultGallery)
}

// Load reads a gallery file; an empty path loads the embedded default
func Load(path string) ([]domain.GalleryItem, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery %s: %w", path, err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("gallery %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes and validates gallery YAML. Order is preserved.
func Parse(data []byte) ([]domain.GalleryItem, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse gallery: %w", err)
	}
	seen := make(map[string]bool, len(f.Items))
	for i, item := range f.Items {
		switch {
		case item.ID == "":
			return nil, fmt.Errorf("item %d: empty id: %w", i, domain.ErrInvalidGalleryItem)
		case seen[item.ID]:
			return nil, fmt.Errorf("item %q: duplicate id: %w", item.ID, domain.ErrInvalidGalleryItem)
		case !item.Kind.Valid():
			return nil, fmt.Errorf("item %q: unknown kind %q: %w", item.ID, item.Kind, domain.ErrInvalidGalleryItem)
		case item.MediaSrc == "":
			return nil, fmt.Errorf("item %q: empty media_src: %w", item.ID, domain.ErrInvalidGalleryItem)
		}
		seen[item.ID] = true
	}
	return f.Items, nil
}

// FilterByKind returns the items of kind in their original order
func FilterByKind(items []domain.GalleryItem, kind domain.MediaKind) []domain.GalleryItem {
	var out []domain.GalleryItem
	for _, item := range items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitechrome/internal/domain"
)

func TestTranslateEachLocale(t *testing.T) {
	tr := NewTranslator(domain.LocaleID, nil)

	assert.Equal(t, "Beranda", tr.T(domain.LocaleID, "nav.home"))
	assert.Equal(t, "Home", tr.T(domain.LocaleEN, "nav.home"))
}

func TestMissingPathReturnsPath(t *testing.T) {
	tr := NewTranslator(domain.LocaleID, nil)

	assert.Equal(t, "nav.nowhere", tr.T(domain.LocaleEN, "nav.nowhere"))
	assert.Equal(t, "programs", tr.T(domain.LocaleID, "programs"))
	assert.Equal(t, "", tr.T(domain.LocaleID, ""))
}

func TestFallsBackToDefaultLocale(t *testing.T) {
	tr := NewTranslator(domain.LocaleID, nil)

	assert.False(t, tr.Has(domain.LocaleEN, "dashboard.note"))
	assert.True(t, tr.Has(domain.LocaleID, "dashboard.note"))
	assert.Equal(t, tr.T(domain.LocaleID, "dashboard.note"), tr.T(domain.LocaleEN, "dashboard.note"))
}

func TestUntranslatedEnglishShowsIndonesianText(t *testing.T) {
	tr := NewTranslator(domain.LocaleID, nil)

	assert.Equal(t, "Bahasa dasbor mengikuti situs utama.", tr.T(domain.LocaleEN, "dashboard.note"))
	assert.NotEqual(t, "dashboard.note", tr.T(domain.LocaleEN, "dashboard.note"))
}

func TestInvalidLocaleUsesDefault(t *testing.T) {
	tr := NewTranslator(domain.LocaleID, nil)
	assert.Equal(t, "Beranda", tr.T("xx", "nav.home"))
}

func TestTemplateData(t *testing.T) {
	tr := NewTranslator(domain.LocaleID, nil)
	assert.Equal(t, "1200 partner farmers", tr.TData(domain.LocaleEN, "stats.farmers", map[string]any{"Count": 1200}))
}

func TestEveryEnglishKeyExistsInIndonesian(t *testing.T) {
	tr := NewTranslator(domain.LocaleID, nil)
	for _, path := range []string{"nav.brand", "hero.title", "gallery.photos", "lightbox.next", "help.title"} {
		assert.True(t, tr.Has(domain.LocaleID, path), path)
		assert.True(t, tr.Has(domain.LocaleEN, path), path)
	}
}

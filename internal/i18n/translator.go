// Package i18n resolves dotted translation paths for the supported locales
package i18n

import (
	"embed"
	"errors"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"sitechrome/internal/domain"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

var messageFiles = []string{"locales/active.id.toml", "locales/active.en.toml"}

// Translator wraps a go-i18n bundle loaded from the embedded message files
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	logger          *zap.Logger
}

// NewTranslator builds a Translator whose fallback language is defaultLocale
func NewTranslator(defaultLocale domain.Locale, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	tag, err := language.Parse(string(defaultLocale))
	if err != nil || !defaultLocale.Valid() {
		tag = language.Indonesian
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range messageFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Error("i18n: failed to load message file", zap.String("file", file), zap.Error(err))
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		logger:          logger,
	}
}

// T returns the message at path for locale, then for the default locale,
// then the path itself so missing copy stays visible.
func (t *Translator) T(locale domain.Locale, path string) string {
	return t.TData(locale, path, nil)
}

// TData is T with template data for messages containing placeholders
func (t *Translator) TData(locale domain.Locale, path string, data map[string]any) string {
	if path == "" {
		return ""
	}

	languages := []string{}
	if locale.Valid() {
		languages = append(languages, string(locale))
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    path,
		TemplateData: data,
	})
	if err != nil {
		// a message found only in a fallback language comes back with
		// MessageNotFoundErr for the requested one
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) || msg == "" {
			t.logger.Debug("i18n: missing translation", zap.String("path", path), zap.Strings("languages", languages), zap.Error(err))
			return path
		}
		t.logger.Debug("i18n: using fallback translation", zap.String("path", path), zap.String("locale", string(locale)))
	}
	if msg == "" {
		return path
	}
	return msg
}

// Has reports whether path is translated in locale itself
func (t *Translator) Has(locale domain.Locale, path string) bool {
	if path == "" || !locale.Valid() {
		return false
	}
	localizer := i18n.NewLocalizer(t.bundle, string(locale))
	_, tag, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: path})
	if err != nil {
		return false
	}
	return tag.String() == string(locale)
}

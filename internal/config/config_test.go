package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitechrome/internal/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), "config.toml"))
	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.UISettings.ScrollThreshold)
	assert.Equal(t, 0.12, cfg.UISettings.RevealThreshold)
	assert.True(t, cfg.UISettings.DeferLocaleTransitions)
	assert.Equal(t, domain.LocaleID, cfg.Locale())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.DefaultLocale = "en"
	cfg.GalleryPath = "/srv/gallery.yaml"
	cfg.UISettings.ScrollThreshold = 3
	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, domain.LocaleEN, loaded.Locale())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_locale = \"en\"\n[ui]\nscroll_threshold = 4\n"), 0o644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.UISettings.ScrollThreshold)
	assert.Equal(t, 0.12, cfg.UISettings.RevealThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("ui = ["), 0o644))
	_, err := NewConfigServiceAt(path).Load()
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvStorage:       "",
		EnvLogLevel:      "debug",
		EnvGallery:       "g.yaml",
		EnvDefaultLocale: " EN ",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg, lookup))
	assert.Equal(t, "", cfg.StoragePath, "empty storage selects the in-memory store")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "g.yaml", cfg.GalleryPath)
	assert.Equal(t, "en", cfg.DefaultLocale)

	env[EnvDefaultLocale] = "fr"
	assert.ErrorIs(t, ApplyEnv(cfg, lookup), domain.ErrInvalidLocale)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SITECHROME_GALLERY=from-dotenv.yaml\n"), 0o644))
	os.Unsetenv(EnvGallery)
	t.Cleanup(func() { os.Unsetenv(EnvGallery) })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	v, ok := os.LookupEnv(EnvGallery)
	require.True(t, ok)
	assert.Equal(t, "from-dotenv.yaml", v)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.UISettings.RevealThreshold = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.UISettings.ScrollThreshold = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DefaultLocale = "de"
	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidLocale)
}

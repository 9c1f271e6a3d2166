package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sitechrome/internal/config"
	"sitechrome/internal/domain"
	"sitechrome/internal/localebridge"
	"sitechrome/internal/storage"
)

type env map[string]string

func (e env) lookup(k string) (string, bool) {
	v, ok := e[k]
	return v, ok
}

func execute(t *testing.T, vars env, args ...string) (string, error) {
	t.Helper()
	a := &app{lookup: vars.lookup, logger: zap.NewNop()}
	cmd := newRootCommand(a, "1.2.3", "abc", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLocaleSetThenGet(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.toml")
	vars := env{config.EnvStorage: statePath}

	out, err := execute(t, vars, "locale", "get")
	require.NoError(t, err)
	assert.Equal(t, "id (default)\n", out)

	out, err = execute(t, vars, "locale", "set", "EN")
	require.NoError(t, err)
	assert.Equal(t, "en\n", out)

	fs, err := storage.OpenFileStore(statePath)
	require.NoError(t, err)
	v, _ := fs.GetItem(localebridge.StorageKey)
	assert.Equal(t, "en", v)

	out, err = execute(t, vars, "locale", "get")
	require.NoError(t, err)
	assert.Equal(t, "en\n", out)
}

func TestLocaleSetRejectsUnknown(t *testing.T) {
	vars := env{config.EnvStorage: filepath.Join(t.TempDir(), "state.toml")}
	_, err := execute(t, vars, "locale", "set", "fr")
	assert.Error(t, err)
}

func TestDefaultLocaleFromEnv(t *testing.T) {
	vars := env{config.EnvStorage: "", config.EnvDefaultLocale: "en"}
	out, err := execute(t, vars, "locale", "get")
	require.NoError(t, err)
	assert.Equal(t, "en (default)\n", out)
}

func TestGalleryListFiltersByKind(t *testing.T) {
	out, err := execute(t, env{}, "gallery", "list", "--kind", "video")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "field-school")
	assert.Contains(t, lines[2], "cooperative-meeting")

	_, err = execute(t, env{}, "gallery", "list", "--kind", "audio")
	assert.Error(t, err)
}

func TestGalleryTableColumns(t *testing.T) {
	out := galleryTable([]domain.GalleryItem{
		{ID: "rice", Kind: domain.KindPhoto, Title: "Rice", MediaSrc: "rice.jpg"},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"#", "ID", "KIND", "TITLE", "MEDIA"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "rice", "photo", "Rice", "rice.jpg"}, strings.Fields(lines[1]))
}

func TestConfigShowAppliesEnv(t *testing.T) {
	out, err := execute(t, env{config.EnvGallery: "custom.yaml"}, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "gallery_path = 'custom.yaml'")
	assert.Contains(t, out, "scroll_threshold = 8")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, env{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sitechrome 1.2.3 (abc) built on today")
}

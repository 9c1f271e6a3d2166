package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitechrome.log")
	logger, err := NewLogger("debug", path)
	require.NoError(t, err)

	logger.Named("chrome").Debug("locale adopted", zap.String("locale", "en"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "DEBUG", entry["severity"])
	assert.Equal(t, "locale adopted", entry["message"])
	assert.Equal(t, "chrome", entry["logger"])
	assert.Equal(t, "en", entry["locale"])
}

func TestNewLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitechrome.log")
	logger, err := NewLogger("loud", path)
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

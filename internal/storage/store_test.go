package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitechrome/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	_, ok := s.GetItem("k")
	assert.False(t, ok)

	require.NoError(t, s.SetItem("k", "v"))
	v, ok := s.GetItem("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, s.RemoveItem("k"))
	_, ok = s.GetItem("k")
	assert.False(t, ok)
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.toml")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem("sitechrome.locale", "en"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	v, ok := reopened.GetItem("sitechrome.locale")
	require.True(t, ok)
	assert.Equal(t, "en", v)

	require.NoError(t, reopened.RemoveItem("sitechrome.locale"))
	again, err := OpenFileStore(path)
	require.NoError(t, err)
	_, ok = again.GetItem("sitechrome.locale")
	assert.False(t, ok)
}

func TestFileStoreMalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o644))

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	_, ok := s.GetItem("sitechrome.locale")
	assert.False(t, ok)

	// next write repairs the file
	require.NoError(t, s.SetItem("sitechrome.locale", "id"))
	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	v, _ := reopened.GetItem("sitechrome.locale")
	assert.Equal(t, "id", v)
}

func TestDiffItems(t *testing.T) {
	changes := diffItems(
		map[string]string{"a": "1", "b": "2", "c": "3"},
		map[string]string{"a": "1", "b": "20", "d": "4"},
	)
	assert.Equal(t, []domain.StorageChangedEvent{
		{Key: "b", Value: "20", Present: true},
		{Key: "c", Present: false},
		{Key: "d", Value: "4", Present: true},
	}, changes)
}

func TestWatchReportsForeignWritesOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storage.toml")

	mine, err := OpenFileStore(path)
	require.NoError(t, err)
	other, err := OpenFileStore(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan domain.StorageChangedEvent, 8)
	require.NoError(t, mine.Watch(ctx, func(e domain.StorageChangedEvent) { changes <- e }))

	require.NoError(t, other.SetItem("sitechrome.locale", "en"))

	select {
	case e := <-changes:
		assert.Equal(t, "sitechrome.locale", e.Key)
		assert.Equal(t, "en", e.Value)
		assert.True(t, e.Present)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a storage change from the other writer")
	}

	v, ok := mine.GetItem("sitechrome.locale")
	require.True(t, ok)
	assert.Equal(t, "en", v)

	// our own write is already in memory and is not echoed back
	require.NoError(t, mine.SetItem("sitechrome.locale", "en"))
	select {
	case e := <-changes:
		t.Fatalf("unexpected change %+v", e)
	case <-time.After(300 * time.Millisecond):
	}
}

package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"sitechrome/internal/domain"
)

// ChangeFunc receives one event per key whose value was changed by another writer
type ChangeFunc func(domain.StorageChangedEvent)

// Watch reports changes made to the file by other processes until ctx is done.
// The parent directory is watched because writers replace the file by rename.
// fn runs on the watcher goroutine.
func (s *FileStore) Watch(ctx context.Context, fn ChangeFunc) error {
	watcher, err := createWatcher(filepath.Dir(s.path))
	if err != nil {
		return err
	}

	go func() {
		defer s.cleanupWatcher(watcher)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				for _, change := range s.reload() {
					fn(change)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("storage: watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

// reload re-reads the file and returns the keys that differ from memory.
// Our own writes already updated memory, so they produce no changes.
func (s *FileStore) reload() []domain.StorageChangedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.read()
	if err != nil {
		s.logger.Warn("storage: reload failed", zap.Error(err))
		return nil
	}

	changes := diffItems(s.items, next)
	s.items = next
	return changes
}

func diffItems(prev, next map[string]string) []domain.StorageChangedEvent {
	var changes []domain.StorageChangedEvent
	for k, v := range next {
		if old, ok := prev[k]; !ok || old != v {
			changes = append(changes, domain.StorageChangedEvent{Key: k, Value: v, Present: true})
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			changes = append(changes, domain.StorageChangedEvent{Key: k, Present: false})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
	return changes
}

// createWatcher creates and configures a new file system watcher
func createWatcher(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch storage directory: %w", err)
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func (s *FileStore) cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil {
		s.logger.Warn("storage: failed to close watcher", zap.Error(err))
	}
}

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// fileData is the on-disk layout of a FileStore
type fileData struct {
	Items map[string]string `toml:"items"`
}

// FileStore persists items to a TOML file. Writes go through a temp file and
// a rename so concurrent readers never observe a partial file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	items  map[string]string
	logger *zap.Logger
}

// FileOption configures a FileStore
type FileOption func(*FileStore)

// WithFileLogger sets the logger used for recoverable read problems
func WithFileLogger(logger *zap.Logger) FileOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// OpenFileStore loads path if it exists. A malformed file is treated as empty
// storage and is overwritten on the next write.
func OpenFileStore(path string, opts ...FileOption) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	s := &FileStore{
		path:   abs,
		items:  make(map[string]string),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	items, err := s.read()
	if err != nil {
		return nil, err
	}
	s.items = items
	return s, nil
}

// Path returns the absolute file path
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *FileStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.items[key]
	s.items[key] = value
	if err := s.writeLocked(); err != nil {
		// keep memory and disk consistent
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.writeLocked(); err != nil {
		s.items[key] = prev
		return err
	}
	return nil
}

// read parses the file from disk. Missing file yields empty items.
func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	var fd fileData
	if err := toml.Unmarshal(data, &fd); err != nil {
		s.logger.Warn("storage: ignoring malformed file", zap.String("path", s.path), zap.Error(err))
		return make(map[string]string), nil
	}
	if fd.Items == nil {
		fd.Items = make(map[string]string)
	}
	return fd.Items, nil
}

func (s *FileStore) writeLocked() error {
	data, err := toml.Marshal(fileData{Items: s.items})
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"sitechrome/internal/domain"
)

// Environment variables overriding the config file
const (
	EnvStorage       = "SITECHROME_STORAGE"
	EnvLogLevel      = "SITECHROME_LOG_LEVEL"
	EnvLogFile       = "SITECHROME_LOG_FILE"
	EnvGallery       = "SITECHROME_GALLERY"
	EnvDefaultLocale = "SITECHROME_DEFAULT_LOCALE"
)

// Config represents the application configuration
type Config struct {
	Version       int        `toml:"version"`
	StoragePath   string     `toml:"storage_path"` // empty keeps the locale in memory only
	DefaultLocale string     `toml:"default_locale"`
	GalleryPath   string     `toml:"gallery_path"` // empty uses the built-in gallery
	Log           LogConfig  `toml:"log"`
	UISettings    UISettings `toml:"ui"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ScrollThreshold        int     `toml:"scroll_threshold"`
	RevealThreshold        float64 `toml:"reveal_threshold"`
	DeferLocaleTransitions bool    `toml:"defer_locale_transitions"`
}

// Locale returns the configured default locale, or the built-in one
func (c *Config) Locale() domain.Locale {
	if l, ok := domain.ParseLocale(c.DefaultLocale); ok {
		return l
	}
	return domain.DefaultLocale
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service for the user's config directory
func NewConfigService() ConfigService {
	return &configService{filePath: filepath.Join(configDir(), "config.toml")}
}

// NewConfigServiceAt creates a config service bound to a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		dir = filepath.Join(dir, ".config")
	}
	return filepath.Join(dir, "sitechrome")
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration file; a missing file yields the defaults
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:       1,
		StoragePath:   filepath.Join(configDir(), "state.toml"),
		DefaultLocale: string(domain.DefaultLocale),
		Log: LogConfig{
			Level: "info",
		},
		UISettings: UISettings{
			ScrollThreshold:        8,
			RevealThreshold:        0.12,
			DeferLocaleTransitions: true,
		},
	}
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with SITECHROME_* variables from lookup
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvStorage); ok {
		cfg.StoragePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.Log.File = v
	}
	if v, ok := lookup(EnvGallery); ok {
		cfg.GalleryPath = v
	}
	if v, ok := lookup(EnvDefaultLocale); ok && v != "" {
		l, valid := domain.ParseLocale(v)
		if !valid {
			return fmt.Errorf("%s=%q: %w", EnvDefaultLocale, v, domain.ErrInvalidLocale)
		}
		cfg.DefaultLocale = string(l)
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.UISettings.ScrollThreshold < 0 {
		return fmt.Errorf("ui.scroll_threshold must not be negative, got %d", c.UISettings.ScrollThreshold)
	}
	if r := c.UISettings.RevealThreshold; r <= 0 || r > 1 {
		return fmt.Errorf("ui.reveal_threshold must be in (0, 1], got %s", strconv.FormatFloat(r, 'g', -1, 64))
	}
	if c.DefaultLocale != "" {
		if _, ok := domain.ParseLocale(c.DefaultLocale); !ok {
			return fmt.Errorf("default_locale %q: %w", c.DefaultLocale, domain.ErrInvalidLocale)
		}
	}
	return nil
}

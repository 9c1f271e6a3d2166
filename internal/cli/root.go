// Package cli wires configuration, storage and the terminal host into the
// sitechrome command.
package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitechrome/internal/config"
	"sitechrome/internal/eventbus"
	"sitechrome/internal/localebridge"
	"sitechrome/internal/observability"
	"sitechrome/internal/storage"
)

// app is the state shared by subcommands once flags are parsed
type app struct {
	cfgFile  string
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
	lookup func(string) (string, bool) // nil uses the process environment
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	return newRootCommand(&app{}, version, commit, date)
}

func newRootCommand(a *app, version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitechrome",
		Short: "Bilingual site chrome in the terminal",
		Long: `sitechrome renders a bilingual site and its dashboard as two independent
surfaces that keep their display language in sync through one persisted value.

Running it without a subcommand starts the terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with SITECHROME_* overrides")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newLocaleCommand(a))
	rootCmd.AddCommand(newGalleryCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func (a *app) configService() config.ConfigService {
	if a.cfgFile != "" {
		return config.NewConfigServiceAt(a.cfgFile)
	}
	return config.NewConfigService()
}

// setup loads dotenv, the config file and env overrides, then builds the logger
func (a *app) setup() error {
	if a.lookup == nil {
		if err := config.LoadDotEnv(a.envFile); err != nil {
			return err
		}
	}

	cfg, err := a.configService().Load()
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg, a.lookup); err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	// subcommands log to stderr unless a file is configured; the TUI
	// picks its own file in runTUI
	if a.logger == nil {
		logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

// openStore returns the configured store; fileStore is nil for the memory store
func (a *app) openStore() (storage.Store, *storage.FileStore, error) {
	if a.cfg.StoragePath == "" {
		a.logger.Debug("using in-memory locale store")
		return storage.NewMemoryStore(), nil, nil
	}
	fs, err := storage.OpenFileStore(a.cfg.StoragePath, storage.WithFileLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	return fs, fs, nil
}

func (a *app) openBridge() (*localebridge.Bridge, *storage.FileStore, error) {
	store, fs, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	bus := eventbus.New(eventbus.WithLogger(a.logger))
	return localebridge.New(store, bus, localebridge.WithLogger(a.logger)), fs, nil
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout(), version, commit, date)
		},
	}
}

func printVersion(w io.Writer, version, commit, date string) {
	if version == "dev" || version == "" {
		version = "development"
	}
	if commit == "none" || commit == "" {
		commit = "local-build"
	}
	if date == "unknown" || date == "" {
		date = "local-build"
	}
	fmt.Fprintf(w, "sitechrome %s (%s) built on %s\n", version, commit, date)
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitechrome/internal/domain"
	"sitechrome/internal/gallery"
	"sitechrome/internal/i18n"
	"sitechrome/internal/observability"
	"sitechrome/internal/site"
	"sitechrome/internal/ui"
)

// defaultTUILog keeps log output off the terminal while the UI owns it
const defaultTUILog = "sitechrome.log"

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the terminal UI",
		Long: `Start the terminal UI with the site and the dashboard mounted.

Other sitechrome processes sharing the same storage file follow language
changes made here, and the other way round.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

func (a *app) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logPath := a.cfg.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}
	logger, err := observability.NewLogger(a.cfg.Log.Level, logPath)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	a.logger = logger

	bridge, fileStore, err := a.openBridge()
	if err != nil {
		return err
	}

	items, err := gallery.Load(a.cfg.GalleryPath)
	if err != nil {
		return err
	}

	tr := i18n.NewTranslator(a.cfg.Locale(), logger)
	model := ui.NewModel(bridge, site.NewBuilder(tr), ui.Options{
		Gallery:                items,
		DefaultLocale:          a.cfg.Locale(),
		ScrollThreshold:        a.cfg.UISettings.ScrollThreshold,
		RevealThreshold:        a.cfg.UISettings.RevealThreshold,
		DeferLocaleTransitions: a.cfg.UISettings.DeferLocaleTransitions,
		Logger:                 logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	if fileStore != nil {
		err := fileStore.Watch(ctx, func(change domain.StorageChangedEvent) {
			p.Send(ui.StorageChangedMsg{Change: change})
		})
		if err != nil {
			// the UI still works, it just won't follow other processes
			logger.Warn("storage watch unavailable", zap.String("path", fileStore.Path()), zap.Error(err))
		}
	}

	logger.Info("starting", zap.String("storage", a.cfg.StoragePath), zap.Int("gallery_items", len(items)))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

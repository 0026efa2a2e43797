package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/storesearch/internal/adapter"
	"github.com/mmcdole/storesearch/internal/adapter/itunes"
	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/service"
	"github.com/mmcdole/storesearch/internal/store"
	"github.com/mmcdole/storesearch/internal/tui"
)

var (
	cfgFile string
	verbose bool
	cfg     *adapter.Config
	logger  *slog.Logger
)

// rootCmd runs the interactive search UI
var rootCmd = &cobra.Command{
	Use:   "storesearch",
	Short: "Search the iTunes Store from the terminal",
	Long: `storesearch queries the iTunes Store search API for music, apps and e-books.

Example usage:
  storesearch                          # Interactive search
  storesearch query "jack johnson"     # Print results as a table
  storesearch query -c ebooks dune     # Search one category
  storesearch history                  # List recent searches`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/storesearch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.SetVersionTemplate("storesearch {{.Version}}\n")
}

// initConfig loads configuration and sets up the file logger
func initConfig() error {
	var err error
	cfg, err = adapter.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "DEBUG"
	}

	// The TUI owns the terminal, so logs always go to a file
	logger, err = adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Debug("configuration loaded", "file", cfg.File(), "base_url", cfg.Store.BaseURL)
	return nil
}

// newClient creates the catalog client from config
func newClient() *itunes.Client {
	return itunes.NewClient(itunes.Options{
		BaseURL:           cfg.Store.BaseURL,
		Country:           cfg.Store.Country,
		Lang:              cfg.Store.Lang,
		Timeout:           cfg.Store.Timeout,
		RequestsPerMinute: cfg.Store.RequestsPerMinute,
	}, logger)
}

// openHistory opens the history store. Disabled history returns a nil service.
func openHistory() (*service.HistoryService, func(), error) {
	if !cfg.History.Enabled {
		return nil, func() {}, nil
	}

	dir, err := adapter.ExpandHome(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.NewHistoryStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close history store", "error", err)
		}
	}
	return service.NewHistoryService(st, cfg.History.MaxEntries, logger), closeFn, nil
}

// defaultCategory parses ui.default_category, falling back to all
func defaultCategory() domain.Category {
	c, err := domain.ParseCategory(cfg.UI.DefaultCategory)
	if err != nil {
		logger.Warn("invalid default category", "value", cfg.UI.DefaultCategory, "error", err)
		return domain.CategoryAll
	}
	return c
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger.Info("starting storesearch", "version", Version)

	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	session := service.NewSearchSession(newClient(), logger)
	defer session.Close()

	model := tui.NewModel(
		session,
		history,
		adapter.NewOpener("", logger),
		tui.Options{
			Category:    defaultCategory(),
			GridColumns: cfg.UI.GridColumns,
			GridRows:    cfg.UI.GridRows,
		},
		logger,
	)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

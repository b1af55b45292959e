package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	a := &app{}
	err := newRootCommand(a).ExecuteContext(ctx)
	cancel()
	// Runs even when the command failed
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the wiring shared by every subcommand
type app struct {
	configFile string

	cfg    *adapter.Config
	logger *slog.Logger
	closer io.Closer
	client source.CatalogSource
	store  *store.Store
	opener *adapter.Opener
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "marquee",
		Short:   "Browse the TVMaze show catalog",
		Version: Version,
		Long: `Marquee browses the TVMaze show catalog from the terminal.

Run without a subcommand to open the interactive browser, or use list,
search and show for plain-text output.`,
		PersistentPreRunE: a.setup,
		RunE:              a.runBrowse,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is $HOME/.config/marquee/config.yaml)")
	rootCmd.SetVersionTemplate("marquee {{.Version}}\n")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "browse",
			Short: "Open the interactive browser",
			Args:  cobra.NoArgs,
			RunE:  a.runBrowse,
		},
		a.newListCommand(),
		a.newSearchCommand(),
		a.newShowCommand(),
		a.newConfigCommand(),
	)

	return rootCmd
}

// setup loads configuration and builds the client and store
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := adapter.LoadDotEnv(""); err != nil {
		return err
	}

	cfg, err := adapter.LoadConfig(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = adapter.NullLogger(), nil
	}
	a.logger, a.closer = logger, closer
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version, "command", cmd.Name())

	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}
	a.client = client

	a.store = store.New(client, logger)
	a.store.ConfigureBaseURL(cfg.Catalog.BaseURL)
	a.store.SetGenreFilter(cfg.UI.DefaultGenre)
	a.opener = adapter.NewOpener(cfg.UI.Browser, cfg.UI.BrowserArgs, logger)
	return nil
}

// close logs shutdown and releases the log file. Safe to call when setup
// never ran or failed part way.
func (a *app) close() error {
	if a.logger != nil {
		a.logger.Info("shutting down")
	}
	if a.closer == nil {
		return nil
	}
	closer := a.closer
	a.closer = nil
	return closer.Close()
}

func (a *app) runBrowse(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("browse needs an interactive terminal; use list or search instead")
	}

	model := tui.NewModel(a.store, tui.Options{
		SortByRating: a.cfg.UI.SortByRating,
		Opener:       a.opener,
		Logger:       a.logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

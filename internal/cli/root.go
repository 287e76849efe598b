// Package cli wires configuration, logging, storage and the scheduler into
// the todotree command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todotree/internal/config"
	"github.com/sandeepkv93/todotree/internal/logging"
	"github.com/sandeepkv93/todotree/internal/model"
	"github.com/sandeepkv93/todotree/internal/scheduler"
	"github.com/sandeepkv93/todotree/internal/storage"
	"github.com/sandeepkv93/todotree/internal/update"
)

const storageTimeout = 10 * time.Second

type App struct {
	Config     config.Config
	ConfigPath string

	dbPath    string
	logPath   string
	logLevel  string
	rowHeight int
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todotree",
		Short:        "Tagged todo groups in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  todotree

  # Use another database
  todotree --db ~/notes/todotree.db

  # Move data between machines
  todotree export backup.json
  todotree import backup.json
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolveConfig(cmd)
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.dbPath, "db", "", "Path to the SQLite database (overrides config)")
	flags.StringVar(&app.logPath, "log-file", "", "Path to the log file (overrides config)")
	flags.StringVar(&app.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	flags.IntVar(&app.rowHeight, "row-height", 0, "Terminal lines per todo row")

	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newGroupCmd(app))

	return cmd
}

// resolveConfig loads file and environment settings and applies the flags
// the user actually set.
func (app *App) resolveConfig(cmd *cobra.Command) error {
	cfg, path, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = app.dbPath
	}
	if flags.Changed("log-file") {
		cfg.LogPath = app.logPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(app.logLevel)
	}
	if flags.Changed("row-height") {
		cfg.RowHeight = app.rowHeight
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.Config = cfg
	app.ConfigPath = path
	return nil
}

func (app *App) openLogger() (*log.Logger, io.Closer, error) {
	if strings.TrimSpace(app.Config.LogPath) == "" {
		return logging.Discard(), io.NopCloser(nil), nil
	}
	return logging.New(app.Config.LogPath, app.Config.LogLevel)
}

// session opens the logger and repository and loads the saved data.
type session struct {
	logger *log.Logger
	repo   *storage.SQLiteRepository
	reg    *model.Registry
	store  *model.Store
	closer io.Closer
}

func (app *App) openSession(ctx context.Context) (*session, error) {
	logger, closer, err := app.openLogger()
	if err != nil {
		return nil, err
	}
	repo, err := storage.OpenSQLite(app.Config.DBPath)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	loadCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	reg, store, err := storage.Load(loadCtx, repo)
	if err != nil {
		_ = repo.Close()
		_ = closer.Close()
		return nil, fmt.Errorf("load %s: %w", app.Config.DBPath, err)
	}
	logger.Debug("session loaded", "db", app.Config.DBPath, "config", app.ConfigPath, "groups", store.Len())
	return &session{logger: logger, repo: repo, reg: reg, store: store, closer: closer}, nil
}

func (s *session) Close() error {
	err := s.repo.Close()
	if cerr := s.closer.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *session) save(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return storage.Save(ctx, s.repo, s.reg, s.store)
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := app.openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	engine := scheduler.NewEngine(app.Config.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()
	if n := engine.SyncStore(s.store, time.Now()); n > 0 {
		s.logger.Info("due dates scheduled", "count", n)
	}

	cfg := app.Config
	m := update.NewModel(update.Options{
		Registry:  s.reg,
		Store:     s.store,
		Repo:      s.repo,
		Scheduler: engine,
		Logger:    s.logger,
		RowHeight: cfg.RowHeight,
		AcceptAsset: func(a model.AssetRef) bool {
			return cfg.AcceptsAsset(string(a))
		},
	})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("todotree failed: %w", err)
	}
	if fm, ok := final.(update.Model); ok && fm.LastError != nil {
		return fm.LastError
	}
	return nil
}

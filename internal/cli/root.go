package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"totero-cli/internal/config"
	"totero-cli/internal/logging"
	"totero-cli/internal/model"
	"totero-cli/internal/store"
	"totero-cli/internal/table"
	"totero-cli/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time with -ldflags "-X totero-cli/internal/cli.Version=...".
var Version = "dev"

type App struct {
	ConfigPath string
	LogFile    string
}

// Replaced in tests.
var (
	runTUI     = tui.Run
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
)

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "totero PATH",
		Short:        "Read-only terminal browser for a Zotero library",
		Args:         cobra.ExactArgs(1),
		Version:      Version,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the library in ~/Zotero
  totero ~/Zotero

  # Use another config file and keep a debug log
  totero --config ./totero.toml --log-file /tmp/totero.log ~/Zotero

  # Print the newest items without the browser
  totero list --sort "year:desc" --columns "author,title,year" ~/Zotero
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), app, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default: $"+config.EnvConfigPath+" or <user config dir>/totero/config.toml)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr(logging.EnvLogPath, ""), "Append diagnostic logs to this file")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDocsCmd())

	return cmd
}

func runBrowse(ctx context.Context, app *App, dir string) error {
	if !isTerminal() {
		return errNotTerminal
	}
	s, err := openSession(ctx, app, dir)
	if err != nil {
		return err
	}
	defer s.close()

	return runTUI(tui.Options{
		DataDir:  dir,
		Records:  s.records,
		Config:   s.cfg,
		Columns:  s.reg,
		Sort:     s.sort,
		Launcher: tui.LauncherFromEnv(),
		Logger:   s.log.Logger,
	})
}

// session is everything loaded before records are shown.
type session struct {
	cfg     *config.Config
	reg     *table.Registry
	sort    table.Spec
	log     *logging.Log
	records []model.Record
}

func (s *session) close() {
	_ = s.log.Close()
}

// openSession loads configuration, then the log, then the records. Configuration
// problems are reported as *config.Error and stop everything else.
func openSession(ctx context.Context, app *App, dir string) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path, explicit := config.Resolve(app.ConfigPath)
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}
	reg, spec, err := columnsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	lg, err := logging.Open(logging.ResolvePath(app.LogFile))
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	lg.Logger.Info().
		Str("config", cfg.Path).
		Interface("overrides", cfg.Bindings.Overrides()).
		Msg("config loaded")

	start := time.Now()
	records, err := store.Load(ctx, dir)
	if err != nil {
		lg.Logger.Error().Err(err).Str("dir", dir).Msg("load records")
		_ = lg.Close()
		return nil, err
	}
	lg.Logger.Info().
		Str("dir", dir).
		Int("records", len(records)).
		Dur("took", time.Since(start)).
		Msg("records loaded")

	return &session{cfg: cfg, reg: reg, sort: spec, log: lg, records: records}, nil
}

// columnsFromConfig applies [columns] to a fresh registry. Names are checked here
// because the config package does not know the registered columns.
func columnsFromConfig(cfg *config.Config) (*table.Registry, table.Spec, error) {
	reg := table.DefaultRegistry()
	if len(cfg.Columns.Visible) > 0 {
		if err := reg.SetVisible(cfg.Columns.Visible); err != nil {
			return nil, nil, &config.Error{Path: cfg.Path, Err: fmt.Errorf("columns.visible: %w", err)}
		}
	}
	if err := reg.SetWeights(cfg.Columns.Weights); err != nil {
		return nil, nil, &config.Error{Path: cfg.Path, Err: fmt.Errorf("columns.weights: %w", err)}
	}
	spec, err := table.ParseSpec(cfg.Columns.Sort)
	if err == nil {
		err = spec.Validate(reg)
	}
	if err != nil {
		return nil, nil, &config.Error{Path: cfg.Path, Err: fmt.Errorf("columns.sort: %w", err)}
	}
	return reg, spec, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"popquiz-client/internal/api"
	"popquiz-client/internal/config"
	"popquiz-client/internal/history"
)

const version = "0.1.0"

type options struct {
	configPath  string
	apiBase     string
	logFile     string
	historyFile string
	verbose     bool
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	v := viper.New()
	v.SetEnvPrefix("POPQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "popquiz-client",
		Short:        "Terminal client for the popQuiz live multiplayer quiz service",
		Version:      version,
		SilenceUsage: true,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.configPath, "config", defaultConfigPath(), "path to YAML config (env: POPQUIZ_CONFIG)")
	fs.StringVar(&opts.apiBase, "api-base", "", "service root URL (env: POPQUIZ_API_BASE)")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file (env: POPQUIZ_LOG_FILE)")
	fs.StringVar(&opts.historyFile, "history-file", "", "local play-history file (env: POPQUIZ_HISTORY_FILE)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug-level logging (env: POPQUIZ_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(newPlayCmd(opts))
	cmd.AddCommand(newRegisterCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	return cmd
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "popquiz.yaml"
	}
	return filepath.Join(dir, "popquiz-client", "config.yaml")
}

// runtime bundles everything a subcommand needs after config merge.
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	client  *api.Client
	history *history.Store
	closeFn func()
}

func (rt *runtime) close() {
	if rt.closeFn != nil {
		rt.closeFn()
	}
}

// setup merges flags > env > file > defaults and builds the shared
// pieces. logDest is used when no log file is configured; the TUI
// passes io.Discard because it owns the terminal.
func (rt *runtime) setup(opts *options, logDest io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rt.cfg = cfg

	logFile := opts.logFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	verbose := opts.verbose || cfg.Log.Verbose

	dest := logDest
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		dest = f
		rt.closeFn = func() { _ = f.Close() }
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	rt.logger = slog.New(tint.NewHandler(dest, &tint.Options{Level: level}))
	slog.SetDefault(rt.logger)

	baseURL := opts.apiBase
	if baseURL == "" {
		baseURL = cfg.API.BaseURL
	}
	if baseURL == "" {
		baseURL = config.DefaultAPIBase
	}
	timeout := config.Duration(cfg.API.Timeout, config.DefaultHTTPTimeout)
	rt.client = api.NewClient(baseURL, timeout, rt.logger)

	historyPath := opts.historyFile
	if historyPath == "" {
		historyPath = cfg.History.File
	}
	if historyPath == "" {
		historyPath = history.DefaultPath()
	}
	rt.history = history.NewStore(historyPath)

	return nil
}

func (rt *runtime) pollInterval() time.Duration {
	return config.Duration(rt.cfg.Lobby.PollInterval, config.DefaultPollInterval)
}

func (rt *runtime) pollBackoffCap() time.Duration {
	return config.Duration(rt.cfg.Lobby.BackoffCap, config.DefaultPollBackoffCap)
}

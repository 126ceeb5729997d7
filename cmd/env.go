package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/wisein/internal/config"
	"github.com/abhisek/wisein/internal/llm"
	"github.com/abhisek/wisein/internal/metrics"
	"github.com/abhisek/wisein/internal/poolgen"
	"github.com/abhisek/wisein/internal/store"
	"github.com/abhisek/wisein/internal/tutor"
	"github.com/spf13/cobra"
)

// logFileName is where the TUI logs, next to the database, so log lines
// never draw over the alt screen.
const logFileName = "wisein.log"

// env is everything a command needs to run the tutor.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *store.Store
	provider llm.Provider // nil when no LLM is configured
	svc      *tutor.Service

	logFile *os.File
}

type envOptions struct {
	// logToFile sends logs to logFileName instead of stderr.
	logToFile bool

	// adjust tweaks the configuration before the service is built.
	adjust func(*config.Config)
}

// openEnv loads configuration, opens the store, loads the question bank
// and builds the tutor service. A missing or broken LLM configuration
// only disables question generation.
func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if opts.adjust != nil {
		opts.adjust(&cfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	e := &env{cfg: cfg}
	var logOut io.Writer = os.Stderr
	if opts.logToFile {
		f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		e.logFile, logOut = f, f
	}
	e.logger = newLogger(cfg, logOut, opts.logToFile)

	e.store, err = store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx := cmd.Context()
	catalog, err := tutor.LoadCatalog(ctx, e.store.QuestionRepo())
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	events := e.store.EventRepo()
	deps := tutor.Deps{
		Questions: e.store.QuestionRepo(),
		Sessions:  events,
		Recorder:  metrics.NewRecorder(e.logger, events),
		Logger:    e.logger,
	}

	llmCfg, err := llm.Resolve()
	if err == nil {
		e.provider, err = llm.NewProvider(ctx, llmCfg, events, e.logger)
	}
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		e.logger.Debug("LLM provider not configured; question generation disabled")
	case err != nil:
		e.logger.Warn("LLM provider unavailable; question generation disabled", "err", err)
		e.provider = nil
	default:
		deps.Generator = poolgen.New(e.provider, poolgen.DefaultConfig())
	}

	e.svc = tutor.New(catalog, cfg, deps)
	return e, nil
}

// Close releases the store and the log file.
func (e *env) Close() {
	if e.store != nil {
		_ = e.store.Close()
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// status labels the active LLM for headers and banners.
func (e *env) status() string {
	if e.provider == nil {
		return "offline bank"
	}
	return e.provider.Name() + "/" + e.provider.ModelID()
}

func newLogger(cfg config.Config, w io.Writer, noColor bool) *slog.Logger {
	level, err := metrics.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return metrics.NewLogger(w, level, cfg.LogFormat, noColor || os.Getenv("NO_COLOR") != "")
}

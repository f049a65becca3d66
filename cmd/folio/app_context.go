package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rajshekhar/folio/internal/application/content"
	"github.com/rajshekhar/folio/internal/application/theme"
	"github.com/rajshekhar/folio/internal/config"
	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/infrastructure/api"
	"github.com/rajshekhar/folio/internal/infrastructure/llm"
	"github.com/rajshekhar/folio/internal/infrastructure/logging"
	"github.com/rajshekhar/folio/internal/infrastructure/storage"
	"github.com/rajshekhar/folio/internal/ports"
)

const (
	defaultConfigHint = "$XDG_CONFIG_HOME/folio/config.yaml"
	contentRetryDelay = time.Second
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config *config.Config
	Logger ports.Logger
	// Getenv replaces os.Getenv while loading configuration.
	Getenv func(string) string

	closers []io.Closer
}

// Setup loads configuration and opens the logger. It runs before every
// command except version.
func (a *AppContext) Setup(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(config.LoadOptions{
		Path:    flags.configPath,
		EnvFile: flags.envFile,
		Getenv:  a.Getenv,
	})
	if err != nil {
		return newCommandError("load configuration", valueOrFallback(flags.configPath, config.DefaultPath()), err,
			"Fix the reported setting, or run without --config to use the built-in defaults.")
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}

	writer, err := a.logWriter(cfg.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return newCommandError("open log file", cfg.Log.File, err, "Pass --log-file - to log to stderr instead.")
	}
	logger, err := logging.New(logging.Options{
		Writer:        writer,
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Human,
		Layer:         "cli",
		Component:     "folio",
	})
	if err != nil {
		return newCommandError("create logger", cfg.Log.Level, err, "Use one of debug, info, warn or error for log.level.")
	}

	a.Config = cfg
	a.Logger = logger
	return nil
}

func (a *AppContext) logWriter(path string, stderr io.Writer) (io.Writer, error) {
	if path == "" || path == "-" {
		return stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, f)
	return f, nil
}

// CommandContext derives the context for one command invocation, tagged with
// a fresh correlation ID, and a logger scoped to the operation.
func (a *AppContext) CommandContext(cmd *cobra.Command, operation string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())

	logger := a.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return ctx, logger.With("operation", operation)
}

// Owner is the portfolio owner from configuration.
func (a *AppContext) Owner() portfolio.Owner {
	return a.Config.Owner.Portfolio()
}

// APIClient connects to the configured backend.
func (a *AppContext) APIClient(logger ports.Logger) (*api.Client, error) {
	client, err := api.New(api.Options{
		Endpoint: a.Config.API.Endpoint,
		Timeout:  a.Config.API.Timeout,
		Logger:   logger,
	})
	if err != nil {
		return nil, newCommandError("create api client", a.Config.API.Endpoint, err,
			"Set api.endpoint or FOLIO_API_ENDPOINT to the backend origin, e.g. http://localhost:8080.")
	}
	return client, nil
}

// ContentLoader wraps client with the configured cache policy.
func (a *AppContext) ContentLoader(client *api.Client, logger ports.Logger) *content.Loader {
	return content.NewLoader(client, content.Options{
		StaleAfter: a.Config.Content.StaleAfter,
		Retries:    a.Config.Content.Retries,
		RetryDelay: contentRetryDelay,
		Logger:     logger,
	})
}

// Completer builds the chat completion client. A missing key is logged here
// and surfaces later as the assistant's fallback reply.
func (a *AppContext) Completer(logger ports.Logger) *llm.Client {
	chat := a.Config.Chat
	return llm.New(llm.Options{
		APIKey:      chat.APIKey,
		BaseURL:     chat.BaseURL,
		Model:       chat.Model,
		MaxTokens:   chat.MaxTokens,
		Temperature: chat.Temperature,
		Timeout:     chat.Timeout,
		Logger:      logger,
	})
}

// ThemeStore opens the preference store and loads the persisted theme. The
// store is closed by Close.
func (a *AppContext) ThemeStore(ctx context.Context, logger ports.Logger) (*theme.Store, error) {
	kv, err := storage.Open(a.Config.Storage.Driver, a.Config.Storage.Path)
	if err != nil {
		return nil, newCommandError("open preference store", describeStorage(a.Config.Storage), err,
			"Check storage.path is writable, or set storage.driver to memory.")
	}
	store, err := theme.Load(ctx, kv, logger)
	if err != nil {
		_ = kv.Close()
		return nil, newCommandError("load theme preference", describeStorage(a.Config.Storage), err,
			"Delete the preference store to reset it.")
	}
	a.closers = append(a.closers, store)
	return store, nil
}

// Close releases everything opened through the context, newest first.
func (a *AppContext) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func describeStorage(cfg config.StorageConfig) string {
	if cfg.Driver == "memory" {
		return "memory"
	}
	return fmt.Sprintf("%s (%s)", cfg.Path, valueOrFallback(cfg.Driver, "sqlite"))
}

func valueOrFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Package bootstrap wires configuration, logging, Sentry, the content store and the markdown
// renderer into a ready-to-start site server.
package bootstrap

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/prior-it/mdxpress/config"
	"github.com/prior-it/mdxpress/content"
	"github.com/prior-it/mdxpress/markdown"
	"github.com/prior-it/mdxpress/server"
	"github.com/prior-it/mdxpress/site"
)

// New creates a new server with all default systems initialised and every route of the site
// registered.
//
// This will set up logging, Sentry (if enabled in config), the content store, the markdown renderer
// and, when watching is enabled or the app runs in debug mode, the content watcher.
//
// You can supply additional middleware if you want to.
//
// Note that this function will add routes before returning, which means it is not possible to add
// additional global middleware after calling this function.
func New(
	cfg *config.Config,
	middlewares ...func(http.Handler) http.Handler,
) *server.Server[*site.State] {
	if cfg == nil {
		panic("You need to supply a config.Config value to bootstrap a new server")
	}

	logger := CreateLogger(cfg)

	if cfg.Sentry.Enabled {
		initSentry(logger, cfg)
	}

	state := site.NewState(content.Open(cfg.Content), NewRenderer(cfg), logger)
	if cfg.App.Watch || cfg.App.Debug {
		if err := state.Watch(cfg.Content.Root, content.DefaultWatchInterval); err != nil {
			logger.Warn("Could not watch content", "root", cfg.Content.Root, "error", err)
		}
	}

	s := server.New(state, cfg).
		WithLogger(logger).
		WithLogWriter(os.Stdout)

	s.AttachDefaultMiddleware()

	// Enable sentry middleware
	if cfg.Sentry.Enabled {
		sentryHandler := sentryhttp.New(sentryhttp.Options{
			Repanic:         true,
			WaitForDelivery: true,
			Timeout:         5 * time.Second, //nolint:mnd
		})
		s.UseStd(sentryHandler.Handle)
	}

	// Make sure browsers always show the latest version of a page while writing
	if cfg.App.Debug {
		s.UseStd(middleware.NoCache)
	}

	s.UseStd(middlewares...)

	site.Routes(s)

	return s
}

// NewRenderer creates the markdown renderer described by the configuration.
func NewRenderer(cfg *config.Config) *markdown.Renderer {
	return markdown.New(
		markdown.WithHighlightStyle(cfg.Markdown.HighlightStyle),
		markdown.WithLineNumbers(cfg.Markdown.LineNumbers),
	)
}

// CreateLogger creates the application logger, writing to stdout, and installs it as the default
// slog logger.
func CreateLogger(cfg *config.Config) *slog.Logger {
	logger := NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// NewLogger creates a logger in the configured format and level that writes to w.
// Unknown formats fall back to plaintext.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.Log.Level.ToSlog()
	addSource := cfg.Log.Verbose && cfg.App.Debug
	loggerOptions := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}
	switch cfg.Log.Format {
	case config.LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, loggerOptions))
	case config.LogFormatPretty:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  addSource,
			TimeFormat: time.TimeOnly,
			NoColor:    w != os.Stdout && w != os.Stderr,
		}))
	default:
		return slog.New(slog.NewTextHandler(w, loggerOptions))
	}
}

func initSentry(logger *slog.Logger, cfg *config.Config) {
	logger.Debug("Trying to initialise Sentry")
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Debug:            cfg.App.Debug,
		AttachStacktrace: true,
		SampleRate:       cfg.Sentry.SampleRate,
		EnableTracing:    true,
		TracesSampleRate: cfg.Sentry.TracesRate,
		ServerName:       cfg.App.Name,
		Release:          cfg.App.Version,
		Environment:      string(cfg.App.Env),
	}); err != nil {
		logger.Error("Sentry initialization failed", "error", err)
	} else {
		logger.Debug("Sentry initialised")
	}
}

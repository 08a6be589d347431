// Package middleware contains the HTTP middleware shared by every site server.
package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/prior-it/mdxpress/config"
)

// RequestLogger writes exactly one httplog record per request, once the response is complete.
// The record carries the method, path, status, request id and any field set by the handler through
// [httplog.LogEntrySetField]. It also assigns request ids and recovers panics of later handlers.
//
// Verbose mode adds the request and response headers and the app tags to that same record, debug
// mode adds the request headers. Records are written to w, or to stdout if w is nil.
func RequestLogger(cfg *config.Config, w io.Writer) func(http.Handler) http.Handler {
	logger := httplog.NewLogger(cfg.App.Name, httplog.Options{
		LogLevel:       cfg.Log.Level.ToSlog(),
		JSON:           cfg.Log.Format == config.LogFormatJSON,
		Concise:        true,
		RequestHeaders: cfg.Log.Verbose || cfg.App.Debug,
		Writer:         w,
	})
	if !cfg.Log.Verbose {
		return httplog.RequestLogger(logger)
	}

	// Concise records leave out tags and response headers
	logger.Logger = logger.Logger.With(slog.Group("tags",
		slog.String("version", cfg.App.Version),
		slog.String("env", string(cfg.App.Env)),
	))
	requestLogger := httplog.RequestLogger(logger)
	return func(next http.Handler) http.Handler {
		return requestLogger(logResponseHeaders(next))
	}
}

func logResponseHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		header := w.Header()
		attrs := make([]slog.Attr, 0, len(header))
		for key, values := range header {
			attrs = append(attrs, slog.String(strings.ToLower(key), strings.Join(values, ", ")))
		}
		httplog.LogEntrySetField(r.Context(), "responseHeaders", slog.GroupValue(attrs...))
	})
}

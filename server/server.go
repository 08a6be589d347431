package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prior-it/mdxpress/config"
	"github.com/prior-it/mdxpress/core"
	"github.com/prior-it/mdxpress/server/middleware"
)

type State interface {
	Close(ctx context.Context)
}

type Server[state State] struct {
	mux       *chi.Mux
	state     state
	logger    *slog.Logger
	logWriter io.Writer
	cfg       *config.Config
}

type Handler[state any] func(ex *Exchange, state state) error

const notFoundMessage = "Not Found"

// New creates a new server with the specified state object and configuration.
func New[state State](s state, cfg *config.Config) *Server[state] {
	server := &Server[state]{
		mux:    chi.NewMux(),
		state:  s,
		logger: slog.Default(),
		cfg:    cfg,
	}

	// Unmatched paths get a static body; every route accepts all methods
	notFound := server.handle(func(ex *Exchange, _ state) error {
		ex.LogString("error", core.ErrRouteNotMatched.Error())
		render.Status(ex.Request, http.StatusNotFound)
		render.PlainText(ex.Writer, ex.Request, notFoundMessage)
		return nil
	})
	server.mux.NotFound(notFound)
	server.mux.MethodNotAllowed(notFound)

	return server
}

// WithLogger sets the logger for server lifecycle messages.
func (server *Server[state]) WithLogger(logger *slog.Logger) *Server[state] {
	server.logger = logger
	return server
}

// WithLogWriter sets where the access log is written. It must be called before
// AttachDefaultMiddleware; the default is stdout.
func (server *Server[state]) WithLogWriter(w io.Writer) *Server[state] {
	server.logWriter = w
	return server
}

func (server *Server[state]) handle(handler Handler[state]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ex := &Exchange{Writer: w, Request: r}
		if err := handler(ex, server.state); err != nil {
			DefaultErrorHandler(ex, err)
		}
		_ = r.Body.Close()
	}
}

// AttachDefaultMiddleware installs the middleware every site needs: real client addresses and the
// request logger, which also assigns request ids and recovers panics. Call it before adding routes.
func (server *Server[state]) AttachDefaultMiddleware() {
	server.UseStd(
		chimiddleware.RealIP,
		middleware.RequestLogger(server.cfg, server.logWriter),
	)
}

// Start runs the server until ctx is cancelled or the process receives SIGINT or SIGTERM, then
// shuts it down gracefully.
// If no listener is provided, a new TCP listener will be created on the configured host and port.
func (server *Server[state]) Start(ctx context.Context, listener net.Listener) error {
	// Handle OS signals to cancel the context
	ctxServer, stopSignal := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignal()

	httpServer := &http.Server{
		Addr:              server.cfg.Addr(),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second, //nolint:mnd
	}

	errorCh := make(chan error, 1)
	// Run the actual server
	go func() {
		addr := httpServer.Addr
		if listener != nil {
			addr = listener.Addr().String()
		}
		server.logger.Info("Starting server", "url", server.cfg.BaseURL(), "addr", addr)
		var err error
		if listener != nil {
			err = httpServer.Serve(listener)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorCh <- err
		}
		close(errorCh)
	}()

	var errServer error
	select {
	case err := <-errorCh:
		errServer = err
	case <-ctxServer.Done():
		server.logger.Info("Server interrupt received")
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(
		context.WithoutCancel(ctx),
		time.Duration(server.cfg.App.ShutdownTimeout)*time.Second,
	)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		server.logger.Warn("Server did not shut down cleanly", "error", err)
	}
	server.Shutdown(ctxShutdown)

	if errServer != nil {
		return fmt.Errorf("server stopped: %w", errServer)
	}
	return nil
}

// Shutdown will gracefully release all server resources. You generally don't need to call this manually.
func (server *Server[state]) Shutdown(ctx context.Context) {
	sentryTimeout := max(0, time.Duration(server.cfg.App.ShutdownTimeout-1))
	sentry.Flush(sentryTimeout * time.Second)
	server.state.Close(ctx)
	server.logger.Info("Server stopped")
}

// ServeHTTP implements [net/http.Handler].
func (server *Server[state]) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	server.mux.ServeHTTP(writer, request)
}

// UseStd appends a stdlib middleware handler to the middleware stack.
//
// The middleware stack for any server will execute before searching for a matching
// route to a specific handler, which provides opportunity to respond early,
// change the course of the request execution, or set request-scoped values for
// the next Handler.
func (server *Server[state]) UseStd(middlewares ...func(http.Handler) http.Handler) *Server[state] {
	server.mux.Use(middlewares...)
	return server
}

// Handle adds the route `pattern` that matches any http method to execute `handlerFn`.
// Patterns are either exact paths ("/blog") or fixed prefixes ending in a wildcard ("/blog/*").
func (server *Server[state]) Handle(
	pattern string,
	handlerFn func(ex *Exchange, state state) error,
) *Server[state] {
	server.mux.Handle(pattern, server.handle(handlerFn))
	return server
}

// Package site implements the pages of the personal site: the homepage, the blog index, individual
// blog posts and stylesheets.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prior-it/mdxpress/content"
	"github.com/prior-it/mdxpress/core"
)

// State is shared by all handlers. It holds no per-request data and is safe for concurrent use.
type State struct {
	Store    *content.Store
	Renderer core.Renderer

	logger *slog.Logger
	mu     sync.Mutex
	stop   context.CancelFunc
	done   chan struct{}
}

func NewState(store *content.Store, renderer core.Renderer, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{Store: store, Renderer: renderer, logger: logger}
}

// Watch checks the site again whenever something below root changes and logs the problems it finds.
// Pages are always read from storage, so the check only reports; it never changes what is served.
func (s *State) Watch(root string, interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return fmt.Errorf("already watching %q", root)
	}

	watcher, err := content.NewWatcher(root, interval)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.stop, s.done = cancel, done

	go func() {
		defer close(done)
		watcher.Run(ctx, func() { s.check(ctx) })
	}()
	s.logger.Info("Watching content", "root", root)
	return nil
}

func (s *State) check(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report := content.Check(ctx, s.Store, s.Renderer)
	if report.OK() {
		s.logger.Info("Site check passed", "posts", report.Posts)
		return
	}
	for _, problem := range report.Problems {
		s.logger.Warn("Site check found a problem", "path", problem.Path, "error", problem.Err)
	}
}

// Close stops the content watcher, if any, and waits for it until ctx expires.
func (s *State) Close(ctx context.Context) {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	stop()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Content watcher did not stop in time")
	}
}

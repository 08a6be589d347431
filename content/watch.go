package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

const DefaultWatchInterval = 200 * time.Millisecond

// Watcher reports changes anywhere below a content root, coalescing bursts of events.
type Watcher struct {
	root     string
	interval time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher starts watching root and all of its subdirectories.
// Directories created later are added as they appear.
func NewWatcher(root string, interval time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create watcher: %w", err)
	}
	w := &Watcher{root: root, interval: interval, watcher: watcher}
	if err := w.addTree(root); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("cannot add directory %q to watcher: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cannot walk content tree: %w", err)
	}
	return nil
}

// Run calls onChange once the content tree has been quiet for the watch interval after a change.
// It blocks until ctx is cancelled and closes the watcher before returning.
// A change still waiting for its quiet period when Run returns is dropped.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	defer w.watcher.Close()
	debounced := debounce.New(w.interval)
	defer debounced(func() {})

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New directories need their own watch
				if err := w.addTree(event.Name); err != nil {
					slog.Debug("Cannot watch new path", "path", event.Name, "error", err)
				}
			}
			slog.Debug("Content changed", "path", event.Name, "op", event.Op.String())
			debounced(onChange)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Content watcher error", "error", err)
		case <-ctx.Done():
			return
		}
	}
}

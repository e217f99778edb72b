// Package watch re-runs the build action whenever project source changes.
// Filesystem events are debounced so editor save bursts coalesce into one
// rebuild; each triggered rebuild gets a fresh run id and, through a fresh
// build service, a fresh memoization scope.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/gowork/internal/config"
	"git.home.luguber.info/inful/gowork/internal/logfields"
)

// Rebuild executes one build run triggered by a filesystem change.
type Rebuild func(ctx context.Context, runID string) error

// Watcher monitors the project's source trees and triggers rebuilds.
type Watcher struct {
	projectRoot string
	roots       []string
	suffix      string
	debounce    time.Duration
	rebuild     Rebuild
	watcher     *fsnotify.Watcher
}

// New creates a watcher over the project's package and commands trees.
func New(cfg *config.Config, rebuild Rebuild) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		projectRoot: cfg.ProjectRoot(),
		roots: []string{
			filepath.Join(cfg.ProjectRoot(), cfg.PackageDir),
			filepath.Join(cfg.ProjectRoot(), cfg.CommandsDir),
		},
		suffix:   cfg.SourceSuffix,
		debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		rebuild:  rebuild,
		watcher:  watcher,
	}, nil
}

// Run blocks watching for changes until the context is cancelled. Rebuild
// failures are logged and watching continues; only watcher-level errors
// terminate the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for _, root := range w.roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	slog.Info("Watching for source changes",
		logfields.Path(w.projectRoot),
		slog.Duration("debounce", w.debounce))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			if w.relevant(event) {
				pending = time.After(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))

		case <-pending:
			pending = nil
			w.runOnce(ctx)
		}
	}
}

// runOnce executes one debounced rebuild, tagged with a run id.
func (w *Watcher) runOnce(ctx context.Context) {
	runID := uuid.NewString()
	start := time.Now()
	slog.Info("Source changed, rebuilding", logfields.RunID(runID))

	if err := w.rebuild(ctx, runID); err != nil {
		slog.Error("Rebuild failed", logfields.RunID(runID), logfields.Error(err))
		return
	}
	slog.Info("Rebuild completed",
		logfields.RunID(runID),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

// relevant reports whether an event should schedule a rebuild.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, w.suffix)
}

// addTree registers root and every directory beneath it. A missing root is
// not an error; it may appear later as a Create event under a watched parent.
func (w *Watcher) addTree(root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

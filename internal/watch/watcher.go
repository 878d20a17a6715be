// SPDX-License-Identifier: MPL-2.0

// Package watch provides file-watching with debounced re-execution.
//
// It monitors a directory tree for changes to files matching glob patterns
// and invokes a callback after a quiet period. Events inside the debounce
// window are coalesced so the callback fires once with the full set of
// changed paths.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the delay before firing the callback after the last
// filesystem event, so an editor writing then renaming a temp file produces a
// single rebuild.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are always excluded from watching. They cover VCS metadata
// and the tool's own output directories, which would otherwise retrigger the
// build they came from.
var defaultIgnores = []string{
	"**/.git/**",
	"dist/**",
	"build/**",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns are doublestar glob patterns (e.g. "datapacks/**") that
		// select which files trigger the callback. An empty slice matches all
		// non-ignored files.
		Patterns []string

		// Ignore are additional patterns for paths that never trigger the
		// callback, merged with the built-in defaults.
		Ignore []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative falls back to defaultDebounce.
		Debounce time.Duration

		// BaseDir is the root directory to watch. Empty means the current
		// working directory.
		BaseDir string

		// OnChange is called after the debounce window closes with the
		// deduplicated, sorted list of changed paths relative to BaseDir.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives watcher lifecycle and callback-failure messages.
		// nil means a default logger on stderr.
		Logger *log.Logger
	}

	// Watcher monitors a directory tree and fires a debounced callback when
	// matching files change.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		debounce time.Duration
		baseDir  string
		logger   *log.Logger
	}
)

// New creates a Watcher from the given Config. It resolves BaseDir, verifies
// all patterns eagerly so invalid globs fail now rather than silently never
// matching, and registers every non-ignored directory under BaseDir.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	for _, p := range append(append([]string{}, cfg.Patterns...), cfg.Ignore...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("watch: invalid glob pattern %q", p)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "watch"})
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  append(append([]string{}, defaultIgnores...), cfg.Ignore...),
		debounce: debounce,
		baseDir:  absBase,
		logger:   logger,
	}

	if err := w.addDirs(absBase); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}

	return w, nil
}

// addDirs walks root and registers every non-ignored directory.
func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if rel := w.rel(path); rel != "." && w.ignored(rel+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// Run blocks, dispatching debounced callbacks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close() //nolint:errcheck // shutting down anyway

	changed := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	w.logger.Info("watching for changes", "dir", w.baseDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			rel := w.rel(event.Name)
			if w.ignored(rel) {
				continue
			}
			// New directories must be registered to see their contents.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addDirs(event.Name)
				}
			}
			if !w.matches(rel) {
				continue
			}
			changed[rel] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "err", err)

		case <-timer.C:
			if len(changed) == 0 || w.cfg.OnChange == nil {
				continue
			}
			paths := make([]string, 0, len(changed))
			for p := range changed {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			changed = map[string]struct{}{}

			if err := w.cfg.OnChange(ctx, paths); err != nil {
				// The watcher outlives failed rebuilds; the next change gets
				// another chance.
				w.logger.Error("change handler failed", "err", err)
			}
		}
	}
}

// rel converts an absolute event path to slash form relative to BaseDir.
func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// ignored reports whether a relative path is excluded.
func (w *Watcher) ignored(rel string) bool {
	for _, pattern := range w.ignores {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// matches reports whether a relative path triggers the callback.
func (w *Watcher) matches(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	for _, pattern := range w.cfg.Patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

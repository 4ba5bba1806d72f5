// Package watch turns an input directory into a drop folder: files that
// appear in it are handed to a callback once they stop changing.
//
// Events are collected from fsnotify and debounced, because slicers and
// network copies write a file in many chunks. Settled files are delivered
// one at a time, in name order, on the goroutine that called Run, so the
// callback never runs concurrently with itself.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must be quiet before it is delivered.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with the path of each settled file.
type Handler func(ctx context.Context, path string)

// Filter decides whether a file name (base name only) is of interest.
type Filter func(name string) bool

// Stats counts watcher activity.
type Stats struct {
	Events    int
	Delivered int
	Errors    int
}

// Watcher delivers settled files from one directory to a Handler.
type Watcher struct {
	dir      string
	filter   Filter
	handle   Handler
	logger   *zap.Logger
	debounce time.Duration
	fsw      *fsnotify.Watcher
	pending  map[string]time.Time
	stats    Stats
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger. The default is zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher on dir. The directory must exist.
func New(dir string, filter Filter, handle Handler, opts ...Option) (*Watcher, error) {
	if handle == nil {
		return nil, errors.New("watch: nil handler")
	}
	if filter == nil {
		filter = func(string) bool { return true }
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		filter:   filter,
		handle:   handle,
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
		fsw:      fsw,
		pending:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run blocks until ctx is cancelled or the underlying watcher fails, then
// releases the watcher. Pending files that have not settled are dropped.
// Run must be called at most once.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	tick := w.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	w.logger.Info("watching directory", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", zap.Int("delivered", w.stats.Delivered))
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			w.record(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			w.stats.Errors++
			w.logger.Warn("watcher error", zap.Error(err))

		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

// Stats returns activity counters. It is only safe to call after Run returns
// or from within the Handler.
func (w *Watcher) Stats() Stats {
	return w.stats
}

// record updates the pending set for one filesystem event.
func (w *Watcher) record(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if !w.filter(name) {
		return
	}
	w.stats.Events++

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.pending[event.Name] = time.Now()
		w.logger.Debug("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
	}
}

// flush delivers every pending file that has been quiet for the debounce
// window.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
		}
	}
	slices.SortFunc(ready, strings.Compare)

	for _, path := range ready {
		if ctx.Err() != nil {
			return
		}
		delete(w.pending, path)
		w.stats.Delivered++
		w.handle(ctx, path)
	}
}

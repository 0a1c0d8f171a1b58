package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dahyuniiiiii/Aigent/ingestion"
	"github.com/dahyuniiiiii/Aigent/summary"
)

// DefaultSettleDelay is how long the watcher waits after a file appears
// before reading it, giving the writer time to finish.
const DefaultSettleDelay = time.Second

// Watcher monitors a directory for newly created meeting summary files and
// feeds them through the ingestion pipeline.
type Watcher struct {
	dir      string
	pipeline *ingestion.Pipeline
	settle   time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher) error

// WithSettleDelay sets how long to wait after a create event before the
// file is read. Default is DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) error {
		if d >= 0 {
			w.settle = d
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewWatcher creates a watcher for the given directory.
func NewWatcher(dir string, pipeline *ingestion.Pipeline, opts ...Option) (*Watcher, error) {
	if dir == "" {
		return nil, ErrDirectoryRequired
	}
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	w := &Watcher{
		dir:      dir,
		pipeline: pipeline,
		settle:   DefaultSettleDelay,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Run watches the directory until the context is cancelled. Each created
// .txt file is ingested after the settle delay. Ingestion failures are
// logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	w.logger.Info("watching for new meeting summaries", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, summary.Suffix) {
				continue
			}
			// Settle and ingest off the loop; a burst of files must not
			// stall event delivery for a settle delay each.
			go w.handleCreated(ctx, event.Name)

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("filesystem watch error", "error", watchErr)
		}
	}
}

func (w *Watcher) handleCreated(ctx context.Context, path string) {
	// Let the writer finish before reading the file.
	if w.settle > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.settle):
		}
	}

	src, err := summary.ReadFile(path)
	if err != nil {
		w.logger.Error("reading new summary file", "path", path, "error", err)
		return
	}

	count, err := w.pipeline.Ingest(ctx, src)
	if err != nil {
		w.logger.Error("ingesting new summary file", "path", path, "error", err)
		return
	}

	w.logger.Info("ingested new summary file", "path", path, "documents", count)
}

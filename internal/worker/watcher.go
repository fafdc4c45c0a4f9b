package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shantanugsharp/chatbot-be/internal/core/ports"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher submits a reload job whenever the catalog file changes. Bursts of
// events within the debounce window produce one job.
type Watcher struct {
	path     string
	source   ports.CatalogSource
	pool     *Pool
	debounce time.Duration
}

func NewWatcher(path string, source ports.CatalogSource, pool *Pool, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{path: path, source: source, pool: pool, debounce: debounce}
}

// Serve watches the file's directory, since editors often replace files by
// rename, until ctx is cancelled.
func (w *Watcher) Serve(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.path)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watcher: watch %s: %w", filepath.Dir(target), err)
	}
	logging.Info().Str("path", target).Msg("watching catalog file")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher: event channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("catalog file changed")
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher: error channel closed")
			}
			logging.Warn().Err(err).Msg("catalog watcher error")

		case <-timer.C:
			w.pool.Submit(Job{Trigger: "watch", Source: w.source})
		}
	}
}

func (w *Watcher) String() string { return "catalog-watcher" }

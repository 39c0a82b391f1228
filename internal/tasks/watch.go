package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long a watched directory must be quiet before a batch is emitted.
const DefaultSettleDelay = time.Second

// Watcher reports image files created or written in a directory, batched once writes settle.
type Watcher struct {
	w      *fsnotify.Watcher
	dir    string
	settle time.Duration
	logger *log.Logger
}

// NewWatcher starts watching dir. Events are collected once [Watcher.Run] is called.
func NewWatcher(dir string, settle time.Duration, logger *log.Logger) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	if logger == nil {
		logger = log.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{w: w, dir: dir, settle: settle, logger: logger}, nil
}

// Run delivers each settled batch of paths to fn, sorted, until ctx is done.
// The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, fn func(paths []string)) error {
	defer w.w.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.settle)
	timer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := make([]string, 0, len(pending))
		for p := range pending {
			batch = append(batch, p)
		}
		clear(pending)
		slices.Sort(batch)
		fn(batch)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") || !IsImagePath(event.Name) {
				continue
			}
			w.logger.Debug("watch event", "op", event.Op.String(), "path", event.Name)
			pending[event.Name] = true
			timer.Reset(w.settle)

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "dir", w.dir, "error", err)

		case <-timer.C:
			flush()
		}
	}
}

// Package watch delivers text snapshots of a source file as it changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces bursts of writes from editors that save in
// several steps.
const DefaultDebounce = 100 * time.Millisecond

// Snapshot is the full text of the watched file at one point in time.
type Snapshot struct {
	Path string
	Text string
	At   time.Time
}

// Options configure a FileWatcher.
type Options struct {
	Debounce time.Duration
	Logger   zerolog.Logger
}

// FileWatcher reads a file and re-reads it on every change.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewFileWatcher creates a watcher for path.
func NewFileWatcher(path string, opts Options) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	return &FileWatcher{
		path:     absPath,
		debounce: opts.Debounce,
		logger:   opts.Logger.With().Str("path", absPath).Logger(),
	}, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Read returns the current contents of the file.
func (w *FileWatcher) Read() (Snapshot, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", w.path, err)
	}
	return Snapshot{Path: w.path, Text: string(data), At: time.Now()}, nil
}

// Watch sends the current snapshot immediately, then one per settled
// change. The channel is closed when ctx is done or the watcher is closed.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, fmt.Errorf("watcher is closed")
	}

	initial, err := w.Read()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	// Editors often replace the file on save, so watch the directory.
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}
	w.watcher = watcher

	ch := make(chan Snapshot, 1)
	ch <- initial

	go w.watchLoop(ctx, watcher, ch)

	w.logger.Debug().Msg("watching file")
	return ch, nil
}

func (w *FileWatcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, ch chan Snapshot) {
	defer close(ch)
	defer watcher.Close()

	name := filepath.Base(w.path)
	changed := make(chan struct{}, 1)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(w.debounce, func() {
					select {
					case changed <- struct{}{}:
					default:
					}
				})
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				w.logger.Warn().Msg("watched file removed, waiting for it to reappear")
			}

		case <-changed:
			snapshot, err := w.Read()
			if err != nil {
				w.logger.Warn().Err(err).Msg("failed to read changed file")
				continue
			}
			w.logger.Debug().Int("bytes", len(snapshot.Text)).Msg("file changed")

			// Drop a stale pending snapshot; only the latest text matters.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("file watcher error")
		}
	}
}

// Close stops watching and releases resources.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.watcher != nil {
		err := w.watcher.Close()
		w.watcher = nil
		return err
	}
	return nil
}

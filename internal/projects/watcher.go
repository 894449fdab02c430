package projects

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a project file whenever it changes on disk and publishes
// the newest valid catalog. Invalid intermediate saves are logged and skipped.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *zap.Logger
	updates  chan *Catalog
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	reloads  int
	failures int
}

func NewWatcher(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watch projects: no file configured")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch projects: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch projects: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		log:      log.Named("catalog"),
		updates:  make(chan *Catalog, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the file's directory, so atomic renames by editors are seen.
// It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.running = true
	w.log.Info("watching project file", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop, waits for it and closes Updates.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.fsw.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.fsw.Close(); err != nil {
		w.log.Warn("closing watcher", zap.Error(err))
	}
}

// Updates delivers reloaded catalogs. Only the newest unread one is kept.
func (w *Watcher) Updates() <-chan *Catalog { return w.updates }

// Stats reports successful and failed reloads.
func (w *Watcher) Stats() (reloads, failures int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads, w.failures
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	w.mu.Lock()
	if err != nil {
		w.failures++
	} else {
		w.reloads++
	}
	w.mu.Unlock()
	if err != nil {
		w.log.Warn("reload failed", zap.Error(err))
		return
	}
	w.log.Info("project file reloaded", zap.Int("projects", c.Len()))

	select {
	case w.updates <- c:
	default:
		select {
		case <-w.updates:
		default:
		}
		w.updates <- c
	}
}

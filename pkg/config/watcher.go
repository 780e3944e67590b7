package config

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"bladeassist/pkg/logger"
)

// ChangeHandler is called with the newly loaded file after a valid change.
type ChangeHandler func(*File) error

// Watcher monitors the configuration file and reloads it on change. Every
// reload produces a new assistant record; records handed out earlier are
// never modified.
type Watcher struct {
	loader   *Loader
	current  atomic.Pointer[File]
	log      *logger.Logger
	handlers []ChangeHandler
	mu       sync.RWMutex
	watching bool
}

// NewWatcher creates a watcher seeded with an already loaded file.
func NewWatcher(loader *Loader, initial *File, log *logger.Logger) *Watcher {
	w := &Watcher{
		loader:   loader,
		log:      log.WithFields(zap.String("component", "config-watcher")),
		handlers: make([]ChangeHandler, 0),
	}
	w.current.Store(initial)
	return w
}

// AddHandler registers a handler to be called when configuration changes.
func (w *Watcher) AddHandler(handler ChangeHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins watching. It fails when no file was loaded, since there is
// nothing on disk to watch.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return fmt.Errorf("watcher already started")
	}
	path := w.current.Load().Path
	if path == "" {
		return fmt.Errorf("no configuration file to watch")
	}
	w.watching = true

	w.loader.viper.OnConfigChange(func(e fsnotify.Event) {
		w.reload(path, e)
	})
	w.loader.viper.WatchConfig()

	w.log.Info("Watching configuration", zap.String("path", path))
	return nil
}

// Stop stops delivering changes. Viper keeps its fsnotify goroutine until
// the process exits; events after Stop are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watching = false
}

// Current returns the most recently loaded file.
func (w *Watcher) Current() *File {
	return w.current.Load()
}

func (w *Watcher) reload(path string, e fsnotify.Event) {
	w.mu.RLock()
	watching := w.watching
	w.mu.RUnlock()
	if !watching {
		return
	}

	next, err := w.loader.Reload(path)
	if err != nil {
		// Keep serving the last good record until the file is fixed.
		w.log.Warn("Ignoring invalid configuration change",
			zap.String("path", path),
			zap.String("op", e.Op.String()),
			zap.Error(err),
		)
		return
	}

	prev := w.current.Swap(next)
	if prev != nil && prev.Assistant.Equal(next.Assistant) && prev.Settings == next.Settings {
		w.log.Debug("Configuration touched without changes", zap.String("path", path))
		return
	}

	w.log.Info("Configuration reloaded",
		zap.String("path", path),
		zap.String("bot_name", next.Assistant.BotName()),
	)
	w.notifyHandlers(next)
}

func (w *Watcher) notifyHandlers(f *File) {
	w.mu.RLock()
	handlers := make([]ChangeHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(f); err != nil {
			w.log.Error("Configuration change handler failed", zap.Error(err))
		}
	}
}

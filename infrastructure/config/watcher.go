package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	domainconfig "writecoach-backend/domain/config"
)

const debounceDelay = 100 * time.Millisecond

// FeedbackWatcher follows a config file and republishes its feedback
// thresholds whenever the file changes. Files that fail to parse or hold
// invalid thresholds are logged and ignored.
type FeedbackWatcher struct {
	path   string
	loader *Loader
	logger *zap.Logger

	mu         sync.RWMutex
	thresholds domainconfig.FeedbackThresholds
	callbacks  []func(domainconfig.FeedbackThresholds)

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewFeedbackWatcher starts watching path. The directory is watched rather
// than the file so editors that replace the file are still seen.
func NewFeedbackWatcher(path string, initial domainconfig.FeedbackThresholds, logger *zap.Logger) (*FeedbackWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.Clean(path)
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &FeedbackWatcher{
		path:       path,
		loader:     NewLoader(),
		logger:     logger,
		thresholds: initial,
		watcher:    fsWatcher,
		stopCh:     make(chan struct{}),
	}
	go w.watchLoop()

	logger.Info("Watching feedback thresholds", zap.String("file", path))
	return w, nil
}

// Thresholds returns the current thresholds
func (w *FeedbackWatcher) Thresholds() domainconfig.FeedbackThresholds {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.thresholds
}

// OnChange registers a callback run after each accepted change
func (w *FeedbackWatcher) OnChange(callback func(domainconfig.FeedbackThresholds)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, callback)
	w.mu.Unlock()
}

// Stop stops the watcher
func (w *FeedbackWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
}

func (w *FeedbackWatcher) watchLoop() {
	defer w.watcher.Close()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("Configuration file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))

		case <-w.stopCh:
			w.logger.Info("Stopping feedback threshold watcher")
			return
		}
	}
}

// reload re-reads the file and swaps in its thresholds if they are valid
// and different.
func (w *FeedbackWatcher) reload() {
	fc, err := w.loader.ReadFile(w.path)
	if err != nil {
		w.logger.Error("Failed to reload configuration", zap.String("file", w.path), zap.Error(err))
		return
	}
	next := fc.Feedback
	if !next.Validate() {
		w.logger.Error("Ignoring invalid feedback thresholds", zap.String("file", w.path), zap.Any("thresholds", next))
		return
	}

	w.mu.Lock()
	if next == w.thresholds {
		w.mu.Unlock()
		w.logger.Debug("Feedback thresholds unchanged")
		return
	}
	previous := w.thresholds
	w.thresholds = next
	callbacks := make([]func(domainconfig.FeedbackThresholds), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	w.logger.Info("Feedback thresholds reloaded",
		zap.Any("previous", previous),
		zap.Any("current", next),
	)

	for i, cb := range callbacks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("Callback panicked",
						zap.Int("callback_index", i),
						zap.Any("panic", r),
					)
				}
			}()
			cb(next)
		}()
	}
}

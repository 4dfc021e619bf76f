package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"fairhire360/internal/errors"
)

// LexiconWatcher watches the lexicon override file and triggers reloads
// when it changes on disk
type LexiconWatcher struct {
	mu sync.RWMutex

	lexiconFile string
	lastModTime time.Time

	// Watcher components
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	// Control channels
	stopChan   chan struct{}
	reloadChan chan struct{}

	// Callback and logging
	reloadCallback func()
	logger         *errors.Logger

	// State
	running bool
}

// NewLexiconWatcher creates a new lexicon file watcher
func NewLexiconWatcher(lexiconFile string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) (*LexiconWatcher, error) {
	if lexiconFile == "" {
		return nil, fmt.Errorf("lexicon file path is required")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second // Default 1 second debounce
	}

	return &LexiconWatcher{
		lexiconFile:    lexiconFile,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching the lexicon file for changes
func (lw *LexiconWatcher) Start() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.running {
		return fmt.Errorf("lexicon watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	lw.fsWatcher = watcher

	if stat, err := os.Stat(lw.lexiconFile); err == nil {
		lw.lastModTime = stat.ModTime()
	} else if !os.IsNotExist(err) {
		lw.cleanupWatcher()
		return fmt.Errorf("failed to stat lexicon file: %w", err)
	}

	if err := lw.addFileToWatcher(); err != nil {
		lw.cleanupWatcher()
		return err
	}

	lw.running = true
	go lw.watchLoop()

	if lw.logger != nil {
		lw.logger.Info("Lexicon file watcher started",
			"file", lw.lexiconFile,
			"debounce_delay", lw.debounceDelay)
	}

	return nil
}

// cleanupWatcher closes the file watcher and logs any errors
func (lw *LexiconWatcher) cleanupWatcher() {
	if lw.fsWatcher != nil {
		if closeErr := lw.fsWatcher.Close(); closeErr != nil && lw.logger != nil {
			lw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// Stop stops the lexicon file watcher
func (lw *LexiconWatcher) Stop() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if !lw.running {
		return nil
	}

	// Signal stop
	close(lw.stopChan)

	// Stop debounce timer if running
	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}

	// Close file system watcher
	if lw.fsWatcher != nil {
		if err := lw.fsWatcher.Close(); err != nil {
			if lw.logger != nil {
				lw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	lw.running = false

	if lw.logger != nil {
		lw.logger.Info("Lexicon file watcher stopped")
	}

	return nil
}

// addFileToWatcher adds the lexicon file and its directory to the watcher
func (lw *LexiconWatcher) addFileToWatcher() error {
	// Watch the file itself
	if err := lw.fsWatcher.Add(lw.lexiconFile); err != nil {
		// If the file doesn't exist yet, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(lw.lexiconFile)
			if err := lw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if lw.logger != nil {
				lw.logger.Info("Watching directory for lexicon file",
					"file", lw.lexiconFile, "directory", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", lw.lexiconFile, err)
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(lw.lexiconFile)
	if err := lw.fsWatcher.Add(dir); err != nil {
		if lw.logger != nil {
			lw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

// hasFileChanged checks if the lexicon file has been modified since last check
func (lw *LexiconWatcher) hasFileChanged() bool {
	stat, err := os.Stat(lw.lexiconFile)
	if err != nil {
		if os.IsNotExist(err) {
			// File was deleted
			if !lw.lastModTime.IsZero() {
				lw.lastModTime = time.Time{}
				return true
			}
		}
		return false
	}

	if lw.lastModTime.IsZero() || stat.ModTime().After(lw.lastModTime) {
		lw.lastModTime = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (lw *LexiconWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-lw.fsWatcher.Events:
			if !ok {
				return
			}

			if lw.shouldProcessEvent(event) {
				lw.scheduleReload()
			}

		case err, ok := <-lw.fsWatcher.Errors:
			if !ok {
				return
			}
			if lw.logger != nil {
				lw.logger.LogError(err, "File watcher error")
			}

		case <-lw.reloadChan:
			// Debounced reload trigger
			if lw.hasFileChanged() {
				if lw.logger != nil {
					lw.logger.Info("Lexicon file changed, triggering reload")
				}
				lw.reloadCallback()
			}

		case <-lw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (lw *LexiconWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != lw.lexiconFile && filepath.Base(event.Name) != filepath.Base(lw.lexiconFile) {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (lw *LexiconWatcher) scheduleReload() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	// Reset the debounce timer
	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}

	lw.debounceTimer = time.AfterFunc(lw.debounceDelay, func() {
		select {
		case lw.reloadChan <- struct{}{}:
			// Reload scheduled
		default:
			// Channel is full, reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (lw *LexiconWatcher) IsRunning() bool {
	lw.mu.RLock()
	defer lw.mu.RUnlock()
	return lw.running
}

// WatchedFile returns the path of the watched lexicon file
func (lw *LexiconWatcher) WatchedFile() string {
	return lw.lexiconFile
}

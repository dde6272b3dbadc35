package events

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a change batch is delivered
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a set of files. Their directories are watched
// so editors that save by rename are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(files []string)
	logger   *zap.Logger

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool
	timer   *time.Timer
	pending map[string]bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for files. onChange receives the sorted
// changed paths once no event arrived for debounce.
func NewWatcher(files []string, debounce time.Duration, onChange func([]string), logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		pending:  make(map[string]bool),
		stop:     make(chan struct{}),
	}

	if err := w.SetFiles(files); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// SetFiles replaces the watched file set. Directories of new files are
// added; directories already watched stay watched.
func (w *Watcher) SetFiles(files []string) error {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		set[abs] = true
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for f := range set {
		dir := filepath.Dir(f)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		w.dirs[dir] = true
		w.logger.Debug("watching directory", zap.String("dir", dir))
	}
	w.files = set
	return nil
}

func (w *Watcher) watches(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[name]
}

// Start runs the event loop in the background
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if name, err := filepath.Abs(event.Name); err == nil && w.watches(name) {
				w.logger.Debug("definition changed", zap.String("file", name), zap.String("op", event.Op.String()))
				w.add(name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) add(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[name] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(files) == 0 {
		return
	}
	slices.Sort(files)
	w.onChange(files)
}

// Stop ends the event loop and cancels a pending batch
func (w *Watcher) Stop() error {
	select {
	case <-w.stop:
		return nil
	default:
		close(w.stop)
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

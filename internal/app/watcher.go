package app

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Watcher polls a file's modification time and calls back when it moves
// forward. It keeps watching after each change.
type Watcher struct {
	path     string
	interval time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	baseline time.Time
	onChange func()
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher watches path, checking every interval.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	// Editors that save by rename replace the link target.
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		path:     path,
		interval: interval,
		log:      zerolog.Nop(),
		baseline: info.ModTime(),
	}, nil
}

// SetLogger sets the logger for reload events.
func (w *Watcher) SetLogger(l zerolog.Logger) {
	w.log = l
}

// OnChange sets the callback. It runs on the watcher goroutine.
func (w *Watcher) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins polling in a background goroutine. Starting a running
// watcher is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopCh != nil {
		return
	}
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.watchLoop(w.stopCh, w.doneCh)
}

// Stop stops polling and waits for the goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	stop, done := w.stopCh, w.doneCh
	w.stopCh, w.doneCh = nil, nil
	w.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (w *Watcher) watchLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !w.Check() {
				continue
			}
			w.log.Info().Str("path", w.path).Msg("file changed")
			w.mu.Lock()
			fn := w.onChange
			w.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// Check reports whether the file changed since the last check and moves
// the baseline forward. A missing file is not a change.
func (w *Watcher) Check() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !info.ModTime().After(w.baseline) {
		return false
	}
	w.baseline = info.ModTime()
	return true
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Baseline returns the last seen modification time.
func (w *Watcher) Baseline() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.baseline
}

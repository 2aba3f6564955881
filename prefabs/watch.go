package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher collects prefab files edited on disk. fsnotify is read on its own
// goroutine; the game loop picks the collected names up with Drain.
type Watcher struct {
	fs     *fsnotify.Watcher
	logger *log.Logger

	mu      sync.Mutex
	changed []string
	seen    map[string]bool

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// Dirs lists the on-disk prefab directories that exist.
func Dirs() []string {
	var out []string
	for _, dir := range []string{DiskRoot, filepath.Join(DiskRoot, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}

// NewWatcher watches dirs until Close is called.
func NewWatcher(logger *log.Logger, dirs ...string) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
		logger.Debug("watching prefabs", "dir", dir)
	}

	w := newWatcher(logger)
	w.fs = fw
	go w.run()
	return w, nil
}

func newWatcher(logger *log.Logger) *Watcher {
	return &Watcher{
		logger:  logger,
		seen:    map[string]bool{},
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (w *Watcher) Close() error {
	if w == nil || w.fs == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}

// Drain returns the files changed since the previous call, each once, in the
// order they were first reported. It never blocks on the watcher.
func (w *Watcher) Drain() []string {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.changed
	w.changed = nil
	clear(w.seen)
	return out
}

func (w *Watcher) note(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[name] {
		return
	}
	w.seen[name] = true
	w.changed = append(w.changed, name)
}

func (w *Watcher) run() {
	defer close(w.stopped)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if relevant(ev) {
				w.note(ev.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("prefab watch", "err", err)
		case <-w.stop:
			return
		}
	}
}

// relevant keeps writes and replacements of yaml specs and tengo scripts.
// Editors that save by rename show up as Create on the new name.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}

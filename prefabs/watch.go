package prefabs

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changed tuning files. Events are debounced per file and
// delivered on Events; the game applies them between ticks.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Drain returns the tables changed since the last call, each named once,
// and the most recent watch error. It never blocks.
func (w *Watcher) Drain() ([]string, error) {
	if w == nil {
		return nil, nil
	}
	var (
		out     []string
		seen    = make(map[string]bool)
		lastErr error
	)
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return out, lastErr
			}
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return out, lastErr
			}
			lastErr = err
		default:
			return out, lastErr
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isTableFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// isTableFile reports whether path names one of the tuning tables. Editor
// swap files and unrelated YAML are ignored.
func isTableFile(path string) bool {
	switch filepath.Base(path) {
	case PlayerFile, WeaponsFile, MagicFile, MonstersFile, ParticlesFile, SoundsFile, HUDFile:
		return true
	}
	return false
}

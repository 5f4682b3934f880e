package document

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ideaforge/internal/errors"
	"ideaforge/internal/event"
	"ideaforge/internal/logging"
)

// DebounceInterval is how long a document must stay quiet after a write
// before a change is published. Editors save in bursts.
const DebounceInterval = 200 * time.Millisecond

// Watcher publishes document.changed events when markdown files in the
// output directory are written, debounced per path.
type Watcher struct {
	fsw      *fsnotify.Watcher
	bus      *event.Bus
	logger   *logging.Logger
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching the given directory. Close releases the
// underlying watcher and pending timers.
func NewWatcher(dir string, bus *event.Bus, logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "watch %s", dir)
	}

	w := &Watcher{
		fsw:      fsw,
		bus:      bus,
		logger:   logger,
		debounce: DebounceInterval,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			w.schedule(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err.Error())
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		w.logger.Debug("document changed", "path", path)
		w.bus.Publish(event.NewDocumentChangedEvent(path))
	})
}

// Close stops the watcher and cancels pending notifications.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for path, timer := range w.timers {
			timer.Stop()
			delete(w.timers, path)
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}

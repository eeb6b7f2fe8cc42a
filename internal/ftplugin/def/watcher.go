package def

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// LoaderFunc loads a filetype definition from a file.
type LoaderFunc func(path string) (*Filetype, error)

// ReloadEvent reports the outcome of one definition reload.
type ReloadEvent struct {
	// Path is the definition file that changed.
	Path string

	// Filetype is the reloaded filetype name, empty on error.
	Filetype string

	// Err is non-nil when the file could not be loaded or registered.
	Err error
}

// ReloadHandler is called after each reload attempt.
// Handlers must be non-blocking; panics are recovered.
type ReloadHandler func(event ReloadEvent)

// Watcher monitors a definitions directory and reloads changed files
// into a Registry. File extension selects the loader.
type Watcher struct {
	mu sync.Mutex

	dir      string
	registry *Registry
	loaders  map[string]LoaderFunc // extension -> loader

	watcher  *fsnotify.Watcher
	handlers []ReloadHandler
	debounce time.Duration

	pending map[string]*time.Timer

	closeCh chan struct{}
	closed  bool
	wg      sync.WaitGroup
}

// defaultDebounce coalesces editor write bursts into one reload.
const defaultDebounce = 100 * time.Millisecond

// NewWatcher creates a watcher over dir. Files whose extension has no
// loader are ignored.
func NewWatcher(dir string, registry *Registry, loaders map[string]LoaderFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	normalized := make(map[string]LoaderFunc, len(loaders))
	for ext, fn := range loaders {
		normalized[normalizeExt(ext)] = fn
	}

	return &Watcher{
		dir:      dir,
		registry: registry,
		loaders:  normalized,
		watcher:  fsw,
		debounce: defaultDebounce,
		pending:  make(map[string]*time.Timer),
		closeCh:  make(chan struct{}),
	}, nil
}

// OnReload registers a handler called after each reload attempt.
func (w *Watcher) OnReload(h ReloadHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Start begins watching. LoadAll should normally be called first so the
// registry starts from a complete state.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// LoadAll loads every loadable file currently in the directory.
// The first error is returned, but loading continues past failures.
func (w *Watcher) LoadAll() error {
	return LoadDir(w.dir, w.registry, w.loaders)
}

// Close stops watching. Pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// loop consumes fsnotify events until Close.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, ok := w.loaderFor(event.Name); !ok {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("dir", w.dir).Msg("definition watcher error")
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		_ = w.reload(path)
	})
}

// reload loads one file into the registry and notifies handlers.
func (w *Watcher) reload(path string) error {
	loader, ok := w.loaderFor(path)
	if !ok {
		return nil
	}

	event := ReloadEvent{Path: path}
	ft, err := loader(path)
	if err == nil {
		err = w.registry.Put(ft)
	}
	if err != nil {
		event.Err = err
		log.Warn().Err(err).Str("path", path).Msg("definition reload failed")
	} else {
		event.Filetype = ft.Name
		log.Debug().Str("path", path).Str("filetype", ft.Name).Msg("definition reloaded")
	}

	w.emit(event)
	return err
}

// emit notifies all handlers, recovering panics so one bad handler
// cannot stop the watcher.
func (w *Watcher) emit(event ReloadEvent) {
	w.mu.Lock()
	handlers := make([]ReloadHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Interface("panic", r).Msg("reload handler panicked")
				}
			}()
			h(event)
		}()
	}
}

// loaderFor returns the loader for a path's extension.
func (w *Watcher) loaderFor(path string) (LoaderFunc, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	fn, ok := w.loaders[ext]
	return fn, ok
}

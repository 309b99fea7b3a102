// Package watch re-runs generation whenever the permission source
// document changes on disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"

	"permgen/internal/generate"
	"permgen/internal/logging"
)

// Debounce is how long a change burst may keep extending before a pass
// runs. Editors commonly emit several events per save.
const Debounce = 200 * time.Millisecond

// Watcher monitors the source document and regenerates the targets on
// every change. Passes run synchronously inside the watch loop, so two
// can never overlap.
type Watcher struct {
	opts     generate.Options
	dataPath string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	mu       sync.Mutex
}

// NewWatcher resolves the source document from opts and begins monitoring
// its directory. Watching the directory rather than the file keeps the
// watch alive across editors that save by writing a new file and renaming
// it over the old one.
func NewWatcher(opts generate.Options) (*Watcher, error) {
	paths, err := generate.ResolvePaths(opts)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(paths.Data)); err != nil {
		w.Close()
		return nil, err
	}

	logging.Info().Str("data", paths.Data).Msg("watching source document")

	return &Watcher{
		opts:     opts,
		dataPath: paths.Data,
		watcher:  w,
		debounce: Debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// DataPath returns the resolved source document path being watched.
func (w *Watcher) DataPath() string {
	return w.dataPath
}

// Start begins watching in the background. A first pass runs immediately
// so the targets match the document before any edit arrives.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()
	go w.run()
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	w.generate()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-w.stopCh:
			if armed && !timer.Stop() {
				<-timer.C
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			logging.Debug().Str("op", ev.Op.String()).Str("path", ev.Name).Msg("source document changed")
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			armed = true
		case <-timer.C:
			armed = false
			w.generate()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error().Err(err).Msg("watch error")
		}
	}
}

// relevant reports whether ev is a content change of the source document.
// Comparing base names sidesteps symlinked temp dirs reporting a
// different prefix than the resolved path.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(ev.Name) == filepath.Base(w.dataPath)
}

func (w *Watcher) generate() {
	log := logging.With().Str("run", ulid.Make().String()).Logger()

	res, err := generate.Run(w.opts)
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		return
	}

	var names []string
	for _, change := range res.Changes {
		if change.Outcome == generate.Updated {
			names = append(names, change.Name)
		}
	}
	if len(names) == 0 {
		log.Debug().Msg("targets already up to date")
		return
	}
	log.Info().Strs("targets", names).Msg("targets regenerated")
}

// Stop halts the watcher and waits for any in-flight pass to finish.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()

	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}

	if started {
		<-w.doneCh
	}
	return w.watcher.Close()
}

// Package watcher observes the recordings folder and emits each new audio
// file exactly once per run.
package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Item is one discovered audio recording.
type Item struct {
	Path         string
	Size         int64
	DiscoveredAt time.Time
}

// Config for the folder watcher.
type Config struct {
	Dir               string
	Patterns          []string // filename globs, e.g. *.m4a
	StabilizeInterval time.Duration
	StabilizeChecks   int
}

// Watcher emits Items for new audio files in a single directory. The
// already-processed set is keyed by path + modification time and owned
// entirely by the watcher.
type Watcher struct {
	config     Config
	fsw        *fsnotify.Watcher
	stabilizer *PollStabilizer

	mu        sync.Mutex
	processed map[string]int64 // path -> mtime (unix nanos) of last emitted version
	inflight  map[string]bool

	wg       sync.WaitGroup // event loop
	pending  sync.WaitGroup // stabilization goroutines
}

// New creates a watcher. The watched directory must exist and be readable;
// anything else is fatal for the process.
func New(cfg Config) (*Watcher, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory unreachable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path is not a directory: %s", cfg.Dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		config:     cfg,
		fsw:        fsw,
		stabilizer: NewPollStabilizer(cfg.StabilizeInterval, cfg.StabilizeChecks),
		processed:  make(map[string]int64),
		inflight:   make(map[string]bool),
	}, nil
}

// Watch starts watching and returns the item channel. The channel is closed
// when ctx is cancelled or Stop is called. Recordings already present in the
// directory at startup are emitted first.
func (w *Watcher) Watch(ctx context.Context) (<-chan Item, error) {
	if err := w.fsw.Add(w.config.Dir); err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.config.Dir, err)
	}

	items := make(chan Item, 16)

	// pick up recordings dropped while we were not running
	entries, err := os.ReadDir(w.config.Dir)
	if err != nil {
		return nil, fmt.Errorf("scan watch directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !w.matches(entry.Name()) {
			continue
		}
		w.dispatch(ctx, filepath.Join(w.config.Dir, entry.Name()), items)
	}

	w.wg.Add(1)
	go w.loop(ctx, items)

	log.Printf("Watcher: watching %s for %v", w.config.Dir, w.config.Patterns)
	return items, nil
}

// Stop closes the underlying fsnotify watcher and waits for in-flight
// stabilization goroutines.
func (w *Watcher) Stop() error {
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context, items chan<- Item) {
	defer w.wg.Done()
	defer func() {
		// let stabilization goroutines drain before the channel closes
		w.pending.Wait()
		close(items)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.matches(filepath.Base(ev.Name)) {
				continue
			}
			w.dispatch(ctx, ev.Name, items)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher: error: %v", err)
		}
	}
}

// dispatch claims the path and hands it to a stabilization goroutine. Events
// for a path that is already in flight, or whose current version was already
// emitted, are dropped.
func (w *Watcher) dispatch(ctx context.Context, path string, items chan<- Item) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	if w.inflight[path] || w.processed[path] == info.ModTime().UnixNano() {
		w.mu.Unlock()
		return
	}
	w.inflight[path] = true
	w.mu.Unlock()

	w.pending.Add(1)
	go func() {
		defer w.pending.Done()
		defer func() {
			w.mu.Lock()
			delete(w.inflight, path)
			w.mu.Unlock()
		}()

		if err := w.stabilizer.WaitForStable(ctx, path); err != nil {
			if ctx.Err() == nil {
				log.Printf("Watcher: %s never stabilized: %v", path, err)
			}
			return
		}

		final, err := os.Stat(path)
		if err != nil {
			log.Printf("Watcher: %s vanished before emit: %v", path, err)
			return
		}

		w.mu.Lock()
		w.processed[path] = final.ModTime().UnixNano()
		w.mu.Unlock()

		select {
		case items <- Item{Path: path, Size: final.Size(), DiscoveredAt: time.Now()}:
		case <-ctx.Done():
		}
	}()
}

func (w *Watcher) matches(name string) bool {
	if len(w.config.Patterns) == 0 {
		return true
	}
	for _, pattern := range w.config.Patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

//go:build darwin

// Package watcher surfaces deletions under a watched root so freed space
// can be credited even when files are removed outside this process. It
// never drives re-scanning.
package watcher

import (
	"sync"
	"time"

	"github.com/fsnotify/fsevents"
)

// Watcher reports deleted paths using macOS FSEvents.
type Watcher struct {
	stream    *fsevents.EventStream
	deletions chan string
	done      chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
	closed    bool
}

// New creates an idle watcher.
func New() (*Watcher, error) {
	return &Watcher{
		deletions: make(chan string, 100),
		done:      make(chan struct{}),
	}, nil
}

// Deletions returns the channel of deleted paths. Closed by Stop.
func (w *Watcher) Deletions() <-chan string {
	return w.deletions
}

// Watch starts watching root recursively.
func (w *Watcher) Watch(root string) error {
	dev, err := fsevents.DeviceForPath(root)
	if err != nil {
		return err
	}

	w.stream = &fsevents.EventStream{
		Paths:   []string{root},
		Latency: 500 * time.Millisecond,
		Device:  dev,
		Flags:   fsevents.FileEvents | fsevents.WatchRoot,
	}
	w.stream.Start()

	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case events, ok := <-w.stream.Events:
			if !ok {
				return
			}
			for _, event := range events {
				w.handleEvent(event)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsevents.Event) {
	// Removals and renames only; moving to Trash shows up as a rename.
	if event.Flags&fsevents.ItemRemoved == 0 && event.Flags&fsevents.ItemRenamed == 0 {
		return
	}

	path := event.Path
	if len(path) > 0 && path[0] != '/' {
		path = "/" + path
	}

	select {
	case w.deletions <- path:
	default:
	}
}

// Stop tears the stream down and closes the deletions channel.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	if w.stream != nil {
		w.stream.Stop()
	}
	w.wg.Wait()
	close(w.deletions)
	return nil
}

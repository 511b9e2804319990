//go:build !darwin

// Package watcher surfaces deletions under a watched root so freed space
// can be credited even when files are removed outside this process. It
// never drives re-scanning.
package watcher

import "sync"

// Watcher is a no-op on platforms without an FSEvents-style API.
type Watcher struct {
	deletions chan string
	mu        sync.Mutex
	closed    bool
}

// New creates an idle watcher.
func New() (*Watcher, error) {
	return &Watcher{
		deletions: make(chan string, 100),
	}, nil
}

// Deletions returns the channel of deleted paths. Closed by Stop.
func (w *Watcher) Deletions() <-chan string {
	return w.deletions
}

// Watch is a no-op.
func (w *Watcher) Watch(root string) error {
	return nil
}

// Stop closes the deletions channel.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.deletions)
	return nil
}

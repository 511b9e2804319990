package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/samuli/duview/internal/logging"
	"github.com/samuli/duview/internal/model"
	"github.com/samuli/duview/internal/scanner"
	"github.com/samuli/duview/internal/stats"
	"github.com/samuli/duview/internal/watcher"
)

// minSignificantSize is the minimum size for a watcher-detected deletion
// to count in freed stats.
const minSignificantSize = 200 * 1024 // 200 KB

// Controller is the scan engine. It owns the shared ScanState, runs
// traversal work on background goroutines, and publishes every observable
// mutation as an Event on a single channel.
//
// At most one scan owns the right to mutate state at any instant. Each
// scan carries a generation number taken at acceptance time; bumping the
// generation is what revokes the previous scan's ownership. Workers
// re-check their generation under the state lock before every mutation, so
// a superseded scan can never write again, no matter how far its
// background work has already run ahead.
type Controller struct {
	mu    sync.Mutex
	state ScanState
	freed FreedState

	generation atomic.Int64

	sizer        *scanner.Sizer
	statsManager *stats.Manager
	watcher      *watcher.Watcher

	events chan Event
}

// NewController creates a controller with empty state.
func NewController() *Controller {
	return NewControllerWith(stats.NewManager())
}

// NewControllerWith creates a controller backed by the given stats
// manager.
func NewControllerWith(statsMgr *stats.Manager) *Controller {
	if err := statsMgr.Load(); err != nil {
		logging.Debug.Printf("failed to load stats: %v", err)
	}

	return &Controller{
		sizer:        scanner.NewSizer(),
		statsManager: statsMgr,
		events:       make(chan Event, 256),
		freed: FreedState{
			Lifetime: statsMgr.FreedLifetime(),
		},
	}
}

// Events returns the channel observers drain for state changes. Events
// for a scan are ordered; a newer scan's reset is always observable before
// any further event from the scan it superseded.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Snapshot returns a copy of the current state. The Entries slice is
// owned by the caller.
func (c *Controller) Snapshot() ScanState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Freed returns the current freed-space counters.
func (c *Controller) Freed() FreedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freed
}

// DefaultRoot returns the persisted default scan root, if any.
func (c *Controller) DefaultRoot() string {
	return c.statsManager.DefaultRoot()
}

func (c *Controller) snapshotLocked() ScanState {
	snap := c.state
	snap.Entries = make([]model.Entry, len(c.state.Entries))
	copy(snap.Entries, c.state.Entries)
	return snap
}

// ScanDirectory starts a shallow scan of rootPath: immediate children
// only, with child directories sized recursively. Any in-flight scan is
// superseded before this returns, and the reset state is observable
// immediately, ahead of any traversal I/O.
func (c *Controller) ScanDirectory(rootPath string) {
	// The generation bump and the acceptance reset form one critical
	// section: two racing scans serialize here, and the one bumped last is
	// also the one whose reset lands last. Events are emitted while still
	// holding the state lock so observers see them in exactly the order
	// the mutations landed; in particular a superseded worker can never
	// slip a stale snapshot in after this reset becomes visible.
	c.mu.Lock()
	gen := c.generation.Add(1)
	c.state.IsScanning = true
	c.state.CurrentRootPath = rootPath
	c.state.Entries = nil
	c.state.TotalSize = 0
	c.emit(ScanStartedEvent{Path: rootPath})
	c.emit(ScanUpdatedEvent{State: c.snapshotLocked()})
	c.mu.Unlock()

	go c.runShallowScan(gen, rootPath)
}

func (c *Controller) runShallowScan(gen int64, root string) {
	logging.Scan.Printf("shallow scan of %s", root)

	children, err := os.ReadDir(root)
	if err != nil {
		c.failScan(gen, &DirectoryReadError{Path: root, Err: err})
		return
	}

	cancelled := func() bool { return c.generation.Load() != gen }

	// Working list in discovery order; published copies are re-sorted on
	// every mutation so observers always see a size-descending view.
	working := make([]model.Entry, 0, len(children))

	for _, child := range children {
		if cancelled() {
			return
		}

		name := child.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(root, name)

		if child.IsDir() {
			// Show the directory right away at size zero, then correct it
			// once the recursive walk has converged.
			working = append(working, model.Entry{Path: path, Name: name, IsDir: true})
			idx := len(working) - 1
			if !c.publish(gen, working) {
				return
			}

			size := c.sizer.DirectorySize(path, cancelled)
			if cancelled() {
				return
			}
			working[idx].Size = size
			if !c.publish(gen, working) {
				return
			}
		} else {
			info, err := child.Info()
			if err != nil {
				continue
			}
			working = append(working, model.Entry{Path: path, Name: name, Size: info.Size()})
			if !c.publish(gen, working) {
				return
			}
		}
	}

	c.mu.Lock()
	if c.generation.Load() != gen {
		c.mu.Unlock()
		return
	}
	c.state.IsScanning = false
	// Only a root that scanned cleanly becomes the startup default; an
	// unreadable path must not wedge the next launch into a failed scan.
	// Persisted under the lock so a superseding scan cannot be outrun by
	// this one's stale default.
	c.statsManager.SetDefaultRoot(root)
	snap := c.snapshotLocked()
	c.emit(ScanCompletedEvent{State: snap})
	c.mu.Unlock()

	logging.Scan.Printf("shallow scan of %s complete: %d entries, %d bytes",
		root, len(snap.Entries), snap.TotalSize)
}

// publish installs a sorted copy of the working list as the observable
// state and emits a snapshot. It returns false without writing anything
// when the scan has been superseded.
func (c *Controller) publish(gen int64, working []model.Entry) bool {
	sorted := make([]model.Entry, len(working))
	copy(sorted, working)
	model.SortBySize(sorted)
	total := model.SumSizes(sorted)

	c.mu.Lock()
	if c.generation.Load() != gen {
		c.mu.Unlock()
		return false
	}
	c.state.Entries = sorted
	c.state.TotalSize = total
	c.emit(ScanUpdatedEvent{State: c.snapshotLocked()})
	c.mu.Unlock()

	return true
}

// failScan resets to the empty state after an unreadable root, provided
// the failing scan still owns the state.
func (c *Controller) failScan(gen int64, err *DirectoryReadError) {
	c.mu.Lock()
	if c.generation.Load() != gen {
		c.mu.Unlock()
		return
	}
	c.state = ScanState{}
	c.emit(ScanUpdatedEvent{State: c.snapshotLocked()})
	c.emit(ScanFailedEvent{Err: err})
	c.mu.Unlock()

	logging.Scan.Printf("scan failed: %v", err)
}

// ScanDirectoryRecursively starts a deep scan: every node under rootPath
// becomes its own entry, each directory sized by an independent recursive
// walk. The flat, size-sorted result is delivered once as a
// DeepScanCompletedEvent; this mode never emits incrementally.
func (c *Controller) ScanDirectoryRecursively(rootPath string) {
	c.mu.Lock()
	gen := c.generation.Add(1)
	c.state.IsScanning = true
	c.state.CurrentRootPath = rootPath
	c.state.Entries = nil
	c.state.TotalSize = 0
	c.emit(ScanStartedEvent{Path: rootPath})
	c.emit(ScanUpdatedEvent{State: c.snapshotLocked()})
	c.mu.Unlock()

	go c.runDeepScan(gen, rootPath)
}

func (c *Controller) runDeepScan(gen int64, root string) {
	logging.Scan.Printf("deep scan of %s", root)

	cancelled := func() bool { return c.generation.Load() != gen }

	entries, err := c.sizer.WalkEntries(root, cancelled)
	if err != nil {
		c.failScan(gen, &DirectoryReadError{Path: root, Err: err})
		return
	}

	// Every directory gets its own full recursive size, independent of the
	// sums already accumulated for the nodes above it.
	for i := range entries {
		if cancelled() {
			return
		}
		if entries[i].IsDir {
			entries[i].Size = c.sizer.DirectorySize(entries[i].Path, cancelled)
		}
	}
	if cancelled() {
		return
	}

	model.SortBySize(entries)

	c.mu.Lock()
	if c.generation.Load() != gen {
		c.mu.Unlock()
		return
	}
	c.state.IsScanning = false
	c.emit(ScanUpdatedEvent{State: c.snapshotLocked()})
	c.emit(DeepScanCompletedEvent{Root: root, Entries: entries})
	c.mu.Unlock()

	logging.Scan.Printf("deep scan of %s complete: %d entries", root, len(entries))
}

// DeleteItem removes the filesystem node at path, recursively for
// directories. On success it starts a fresh scan of the current root so
// the displayed state reflects the deletion, and returns nil. On failure
// it returns a descriptive error and leaves the displayed state alone.
func (c *Controller) DeleteItem(path string) error {
	c.mu.Lock()
	root := c.state.CurrentRootPath
	lastKnown := c.entrySizeLocked(path)
	c.mu.Unlock()

	if root != "" && !within(root, path) {
		return fmt.Errorf("refusing to delete %s: outside scan root %s", path, root)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}

	c.mu.Lock()
	c.freed.Session += lastKnown
	c.freed.Lifetime += lastKnown
	freed := c.freed
	c.mu.Unlock()
	c.statsManager.AddFreed(lastKnown)

	c.emit(ItemDeletedEvent{Path: path, Size: lastKnown, Freed: freed})
	logging.Debug.Printf("deleted %s (%d bytes)", path, lastKnown)

	if root != "" {
		c.ScanDirectory(root)
	}
	return nil
}

// entrySizeLocked returns the last-known size of the entry at path, or 0
// if it is not currently displayed.
func (c *Controller) entrySizeLocked(path string) int64 {
	for _, e := range c.state.Entries {
		if e.Path == path {
			return e.Size
		}
	}
	return 0
}

// within reports whether target is strictly inside root.
func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// StartWatching watches the current root for deletions made outside this
// process, crediting them to the freed counters. It never triggers a
// re-scan. No-op on platforms without a watcher implementation.
func (c *Controller) StartWatching() error {
	c.mu.Lock()
	root := c.state.CurrentRootPath
	if c.watcher != nil {
		_ = c.watcher.Stop()
		c.watcher = nil
	}
	c.mu.Unlock()

	if root == "" {
		return nil
	}

	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(root); err != nil {
		return err
	}

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()

	go c.watchLoop(w)
	return nil
}

func (c *Controller) watchLoop(w *watcher.Watcher) {
	for path := range w.Deletions() {
		c.mu.Lock()
		size := c.entrySizeLocked(path)
		if size < minSignificantSize {
			c.mu.Unlock()
			continue
		}
		c.freed.Session += size
		c.freed.Lifetime += size
		freed := c.freed
		c.mu.Unlock()

		c.statsManager.AddFreed(size)
		c.emit(DeletionDetectedEvent{Path: path, Size: size, Freed: freed})
		logging.Debug.Printf("external deletion of %s freed %d bytes", path, size)
	}
}

// Stop releases controller resources and flushes pending stats.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		_ = c.watcher.Stop()
		c.watcher = nil
	}
	if c.statsManager != nil {
		_ = c.statsManager.Close()
	}
}

// emit sends an event without blocking; a full channel drops the event.
func (c *Controller) emit(event Event) {
	select {
	case c.events <- event:
	default:
	}
}

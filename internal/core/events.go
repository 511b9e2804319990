package core

import "github.com/samuli/duview/internal/model"

// Event represents a state change from the controller. All events are
// delivered on a single channel so a lone observer goroutine sees every
// mutation in order.
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted synchronously when a scan is accepted,
// before any filesystem I/O happens.
type ScanStartedEvent struct {
	Path string
}

func (ScanStartedEvent) isEvent() {}

// ScanUpdatedEvent carries a state snapshot after an incremental mutation.
type ScanUpdatedEvent struct {
	State ScanState
}

func (ScanUpdatedEvent) isEvent() {}

// ScanCompletedEvent is emitted when a shallow scan finishes naturally.
type ScanCompletedEvent struct {
	State ScanState
}

func (ScanCompletedEvent) isEvent() {}

// ScanFailedEvent is emitted when the scan root itself cannot be listed.
// The state has already been reset to empty when this arrives.
type ScanFailedEvent struct {
	Err error
}

func (ScanFailedEvent) isEvent() {}

// DeepScanCompletedEvent delivers the full recursive listing as a single
// batch. Deep scans never emit incrementally.
type DeepScanCompletedEvent struct {
	Root    string
	Entries []model.Entry
}

func (DeepScanCompletedEvent) isEvent() {}

// ItemDeletedEvent is emitted after DeleteItem succeeds.
type ItemDeletedEvent struct {
	Path  string
	Size  int64
	Freed FreedState
}

func (ItemDeletedEvent) isEvent() {}

// DeletionDetectedEvent is emitted when the filesystem watcher notices an
// entry of the current root disappearing outside our own DeleteItem calls.
type DeletionDetectedEvent struct {
	Path  string
	Size  int64
	Freed FreedState
}

func (DeletionDetectedEvent) isEvent() {}

package core

import "github.com/samuli/duview/internal/model"

// ScanState is the shared view of scanning: the size-sorted entries of the
// current root, their running total, and whether a scan is in flight. The
// controller owns the single mutable copy; observers only ever see value
// snapshots whose Entries slice is never written to again.
//
// Invariants, held at every observation point:
//   - TotalSize equals the sum of Entries sizes
//   - Entries is sorted by size descending, discovery order breaking ties
//   - hidden entries never appear
type ScanState struct {
	Entries         []model.Entry
	TotalSize       int64
	IsScanning      bool
	CurrentRootPath string // empty means nothing selected
}

// FreedState tracks space recovered from deletions.
type FreedState struct {
	Session  int64 // bytes freed this session
	Lifetime int64 // bytes freed all time
}

// Package scanner provides the blocking filesystem traversal primitives
// used by the core scan engine: recursive directory sizing and flat
// descendant enumeration. Hidden (dot-prefixed) entries are never
// traversed and unreadable entries are skipped silently.
package scanner

// Cancel reports whether the calling scan has been superseded. Walks poll
// it at every visited descendant and abandon further I/O as soon as it
// returns true, keeping whatever partial result has accumulated.
type Cancel func() bool

// never is the Cancel used when the caller passes nil.
func never() bool { return false }

package model

import "sort"

// Entry is one reported filesystem node: an immediate child in a shallow
// scan, or any descendant in a recursive scan.
type Entry struct {
	Path  string // absolute path, stable identity
	Name  string // last path component
	Size  int64  // total bytes attributed to this entry
	IsDir bool
}

// Same reports whether two entries are the same logical item for list
// diffing. Identity is (Path, Size): a directory whose size is still
// converging compares as changed content rather than as a new item.
func (e Entry) Same(other Entry) bool {
	return e.Path == other.Path && e.Size == other.Size
}

// SortBySize sorts entries by size descending. The sort is stable, so
// equal sizes keep their discovery order.
func SortBySize(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size > entries[j].Size
	})
}

// SumSizes returns the total size of all entries.
func SumSizes(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}

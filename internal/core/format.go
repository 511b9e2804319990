package core

import "github.com/dustin/go-humanize"

// FormatBytes renders a byte count with binary units and adaptive
// precision, e.g. "1.5 MiB", "320 B".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

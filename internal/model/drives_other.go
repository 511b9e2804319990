//go:build !darwin && !windows

package model

import (
	"os"

	"golang.org/x/sys/unix"
)

func listPlatformDrives() ([]Drive, error) {
	root := Drive{Path: "/", Label: "/"}
	root.TotalBytes, root.FreeBytes = diskSpace("/")
	drives := []Drive{root}

	if home, err := os.UserHomeDir(); err == nil && home != "/" {
		d := Drive{Path: home, Label: home}
		d.TotalBytes, d.FreeBytes = diskSpace(home)
		drives = append(drives, d)
	}

	return drives, nil
}

// diskSpace returns total and available bytes for a mount point.
func diskSpace(path string) (total, free int64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	total = int64(stat.Blocks) * int64(stat.Bsize)
	free = int64(stat.Bavail) * int64(stat.Bsize)
	return total, free
}

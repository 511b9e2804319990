//go:build darwin

package model

import (
	"os"
	"path/filepath"
	"syscall"
)

// diskSpace returns total and available bytes for a mount point.
func diskSpace(path string) (total, free int64) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	total = int64(stat.Blocks) * int64(stat.Bsize)
	free = int64(stat.Bavail) * int64(stat.Bsize)
	return total, free
}

func listPlatformDrives() ([]Drive, error) {
	root := Drive{Path: "/", Label: "Macintosh HD"}
	root.TotalBytes, root.FreeBytes = diskSpace("/")
	drives := []Drive{root}

	entries, err := os.ReadDir("/Volumes")
	if err != nil {
		return drives, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join("/Volumes", entry.Name())

		var stat syscall.Statfs_t
		if err := syscall.Statfs(path, &stat); err != nil {
			continue
		}
		if skippedFilesystem(fsTypeName(stat.Fstypename[:])) {
			continue
		}

		d := Drive{Path: path, Label: entry.Name()}
		d.TotalBytes, d.FreeBytes = diskSpace(path)
		if d.TotalBytes > 0 {
			drives = append(drives, d)
		}
	}

	return drives, nil
}

func fsTypeName(arr []int8) string {
	b := make([]byte, 0, len(arr))
	for _, v := range arr {
		if v == 0 {
			break
		}
		b = append(b, byte(v))
	}
	return string(b)
}

// skippedFilesystem filters network and pseudo filesystems out of the
// drive list.
func skippedFilesystem(fsType string) bool {
	switch fsType {
	case "smbfs", "nfs", "afpfs", "webdav", "cifs",
		"devfs", "autofs", "mtmfs", "nullfs":
		return true
	}
	return false
}

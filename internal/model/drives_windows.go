//go:build windows

package model

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func listPlatformDrives() ([]Drive, error) {
	var drives []Drive

	for letter := 'A'; letter <= 'Z'; letter++ {
		path := fmt.Sprintf("%c:\\", letter)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		d := Drive{Path: path, Label: fmt.Sprintf("%c:", letter)}
		d.TotalBytes, d.FreeBytes = diskSpace(path)
		drives = append(drives, d)
	}

	return drives, nil
}

// diskSpace returns total and available bytes via GetDiskFreeSpaceEx.
func diskSpace(path string) (total, free int64) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	err = windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes)
	if err != nil {
		return 0, 0
	}
	return int64(totalBytes), int64(freeBytesAvailable)
}

package model

// Drive represents a mounted volume offered as a scan root.
type Drive struct {
	Path       string // e.g. "/" or "C:\\"
	Label      string // display label
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes used on this drive.
func (d Drive) UsedBytes() int64 {
	return d.TotalBytes - d.FreeBytes
}

// UsedPercent returns the percentage of the drive in use.
func (d Drive) UsedPercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.UsedBytes()) / float64(d.TotalBytes) * 100
}

// ListDrives returns the volumes available for scanning.
func ListDrives() ([]Drive, error) {
	return listPlatformDrives()
}

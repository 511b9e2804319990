package model

import "testing"

func TestListDrives(t *testing.T) {
	drives, err := ListDrives()
	if err != nil {
		t.Fatalf("ListDrives failed: %v", err)
	}
	if len(drives) == 0 {
		t.Fatal("expected at least one drive")
	}
	for _, d := range drives {
		if d.Path == "" {
			t.Error("drive with empty path")
		}
	}
}

func TestDriveUsedPercent(t *testing.T) {
	d := Drive{TotalBytes: 1000, FreeBytes: 250}
	if got := d.UsedBytes(); got != 750 {
		t.Errorf("UsedBytes = %d, want 750", got)
	}
	if got := d.UsedPercent(); got != 75 {
		t.Errorf("UsedPercent = %v, want 75", got)
	}

	var zero Drive
	if got := zero.UsedPercent(); got != 0 {
		t.Errorf("UsedPercent on empty drive = %v, want 0", got)
	}
}

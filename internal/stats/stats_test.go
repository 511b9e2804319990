package stats

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManagerAt(filepath.Join(t.TempDir(), "stats.json"))
	m.saveDuration = time.Millisecond
	return m
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	m := newTestManager(t)
	if err := m.Load(); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if m.FreedLifetime() != 0 || m.DefaultRoot() != "" {
		t.Error("expected zero stats for fresh manager")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newTestManager(t)
	m.AddFreed(12345)
	m.SetDefaultRoot("/data")
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reloaded := &Manager{path: m.path}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.FreedLifetime(); got != 12345 {
		t.Errorf("FreedLifetime = %d, want 12345", got)
	}
	if got := reloaded.DefaultRoot(); got != "/data" {
		t.Errorf("DefaultRoot = %q, want /data", got)
	}
}

func TestAddFreedIgnoresNonPositive(t *testing.T) {
	m := newTestManager(t)
	m.AddFreed(0)
	m.AddFreed(-10)
	if got := m.FreedLifetime(); got != 0 {
		t.Errorf("FreedLifetime = %d, want 0", got)
	}
}

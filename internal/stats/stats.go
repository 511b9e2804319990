// Package stats persists the small bits of state that survive runs:
// lifetime freed bytes and the default scan root. Scan results themselves
// are never persisted.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Stats is the on-disk settings document.
type Stats struct {
	FreedLifetime int64  `json:"freed_lifetime"`
	DefaultRoot   string `json:"default_root,omitempty"` // path scanned on startup
}

// Manager handles loading and saving stats with debounced writes.
type Manager struct {
	path         string
	stats        Stats
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a stats manager against the default path.
func NewManager() *Manager {
	return NewManagerAt(defaultPath())
}

// NewManagerAt creates a stats manager backed by the given file.
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second,
	}
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".duview-stats.json"
	}
	return filepath.Join(home, ".duview", "stats.json")
}

// Load reads stats from disk; a missing file starts fresh.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.stats = Stats{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.stats)
}

// Save writes stats to disk immediately.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// FreedLifetime returns the lifetime freed byte count.
func (m *Manager) FreedLifetime() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.FreedLifetime
}

// DefaultRoot returns the persisted default scan root.
func (m *Manager) DefaultRoot() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.DefaultRoot
}

// SetDefaultRoot records path as the default scan root and schedules a
// debounced save.
func (m *Manager) SetDefaultRoot(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stats.DefaultRoot == path {
		return
	}

	m.stats.DefaultRoot = path
	m.scheduleSaveLocked()
}

// AddFreed adds to the lifetime freed counter and schedules a debounced
// save.
func (m *Manager) AddFreed(bytes int64) {
	if bytes <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.FreedLifetime += bytes
	m.scheduleSaveLocked()
}

func (m *Manager) scheduleSaveLocked() {
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // background save, errors dropped
		}
	})
}

// Close flushes any pending save.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}

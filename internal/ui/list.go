package ui

import (
	"fmt"
	"strings"

	"github.com/samuli/duview/internal/core"
	"github.com/samuli/duview/internal/model"
)

// EntryList renders a scrolling, size-sorted entry listing with a
// proportional usage bar per row.
type EntryList struct {
	entries []model.Entry
	total   int64
	cursor  int
	offset  int
	width   int
	height  int
}

// SetSize updates the viewport dimensions.
func (l *EntryList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clamp()
}

// SetEntries replaces the displayed entries, keeping the cursor on the
// same path when it still exists.
func (l *EntryList) SetEntries(entries []model.Entry, total int64) {
	var selectedPath string
	if l.cursor < len(l.entries) {
		selectedPath = l.entries[l.cursor].Path
	}

	l.entries = entries
	l.total = total

	if selectedPath != "" {
		for i, e := range entries {
			if e.Path == selectedPath {
				l.cursor = i
				break
			}
		}
	}
	l.clamp()
}

// Selected returns the entry under the cursor.
func (l *EntryList) Selected() (model.Entry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return model.Entry{}, false
	}
	return l.entries[l.cursor], true
}

// MoveUp moves the cursor one row up.
func (l *EntryList) MoveUp() {
	l.cursor--
	l.clamp()
}

// MoveDown moves the cursor one row down.
func (l *EntryList) MoveDown() {
	l.cursor++
	l.clamp()
}

func (l *EntryList) clamp() {
	if l.cursor >= len(l.entries) {
		l.cursor = len(l.entries) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.height <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible rows.
func (l *EntryList) View() string {
	if len(l.entries) == 0 {
		return dimStyle.Render("  (empty)")
	}

	var b strings.Builder
	end := l.offset + l.height
	if end > len(l.entries) {
		end = len(l.entries)
	}

	for i := l.offset; i < end; i++ {
		e := l.entries[i]

		name := e.Name
		if e.IsDir {
			name += "/"
		}

		const barWidth = 12
		sizeStr := core.FormatBytes(e.Size)
		bar := usageBar(e.Size, l.total, barWidth)

		nameWidth := l.width - barWidth - 12 - 4
		if nameWidth < 8 {
			nameWidth = 8
		}
		if runes := []rune(name); len(runes) > nameWidth {
			name = string(runes[:nameWidth-1]) + "…"
		}

		row := fmt.Sprintf(" %-*s %s %10s ", nameWidth, name, bar, sizeStr)

		switch {
		case i == l.cursor:
			b.WriteString(selectedStyle.Render(row))
		case e.IsDir:
			b.WriteString(dirStyle.Render(row))
		default:
			b.WriteString(fileStyle.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// usageBar renders a fixed-width bar proportional to size/total.
func usageBar(size, total int64, width int) string {
	filled := 0
	if total > 0 {
		filled = int(float64(size) / float64(total) * float64(width))
	}
	if filled > width {
		filled = width
	}
	return barStyle.Render(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
}

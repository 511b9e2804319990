package ui

import (
	"fmt"

	"github.com/samuli/duview/internal/core"
)

// headerView renders the top bar: current root, running total, scan
// activity and freed-space counters.
func headerView(state core.ScanState, freed core.FreedState, spinner string, width int) string {
	title := titleStyle.Render("duview")

	root := state.CurrentRootPath
	if root == "" {
		root = "(no directory)"
	}

	status := fmt.Sprintf("%s  %s  %s items, %s",
		title,
		headerStyle.Render(root),
		headerStyle.Render(fmt.Sprintf("%d", len(state.Entries))),
		sizeStyle.Render(core.FormatBytes(state.TotalSize)),
	)
	if state.IsScanning {
		status += "  " + spinner + dimStyle.Render(" scanning")
	}

	freedLine := dimStyle.Render(fmt.Sprintf("freed %s this session, %s all time",
		core.FormatBytes(freed.Session), core.FormatBytes(freed.Lifetime)))

	return status + "\n" + freedLine + "\n" + dimStyle.Render(rule(width))
}

func rule(width int) string {
	if width <= 0 {
		return ""
	}
	line := make([]rune, width)
	for i := range line {
		line[i] = '─'
	}
	return string(line)
}

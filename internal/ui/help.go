package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// helpView renders the full key-binding overlay.
func helpView(keys KeyMap) string {
	bindings := []key.Binding{
		keys.Up,
		keys.Down,
		keys.Open,
		keys.Back,
		keys.Delete,
		keys.Refresh,
		keys.DeepScan,
		keys.Treemap,
		keys.Help,
		keys.Quit,
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, binding := range bindings {
		h := binding.Help()
		b.WriteString(headerStyle.Render(padRight(h.Key, 8)))
		b.WriteString(dimStyle.Render(h.Desc))
		b.WriteString("\n")
	}

	return helpBoxStyle.Render(b.String())
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

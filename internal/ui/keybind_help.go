package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp draws the hint bar shown while a leader sequence is
// being typed.
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil {
		return ""
	}
	bindings := NewKeyMap(h).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	hm := help.New()
	hm.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	hm.Styles.ShortDesc = Styles.Muted
	hm.Styles.ShortSeparator = Styles.Muted

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)

	prefix := h.LeaderSeq
	if len(h.Buffer) > 0 {
		prefix = h.CurrentSeq()
	}
	return box.Render(Styles.Muted.Render(prefix) + " " + hm.ShortHelpView(bindings))
}

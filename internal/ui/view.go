package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a screen or modal with its own Init/Update/View cycle. Update
// returns the View that should replace the receiver.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors
const (
	ColorAccent    = "86"  // titles, folder names
	ColorHighlight = "205" // selection, focused button
	ColorDanger    = "196" // errors
	ColorMuted     = "241" // hints, disabled controls
	ColorText      = "252"
	ColorWarning   = "208"
)

// Styles holds the shared lipgloss styles for the browser and modals.
var Styles = struct {
	Title        lipgloss.Style
	TitleWarning lipgloss.Style

	Box       lipgloss.Style // modal box
	BoxDanger lipgloss.Style

	Selected lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Folder   lipgloss.Style
	Empty    lipgloss.Style
	Label    lipgloss.Style

	FieldError   lipgloss.Style // inline validation error
	FieldWarning lipgloss.Style // inline validation warning

	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style

	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonPrimary  lipgloss.Style // enabled confirm button, unfocused
	ButtonDisabled lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Folder: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Label: lipgloss.NewStyle(),
	FieldError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	FieldWarning: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Bold(true),
	Button: lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color("237")),
	ButtonFocused: lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color(ColorHighlight)),
	ButtonPrimary: lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color(ColorAccent)),
	ButtonDisabled: lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color(ColorMuted)).
		Background(lipgloss.Color("235")),
}

// NewCompactListDelegate returns the single-line list delegate used by the
// browser.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.ShowDescription = false
	d.Styles.SelectedTitle = Styles.Selected
	d.Styles.SelectedDesc = Styles.Selected
	d.Styles.NormalTitle = Styles.Normal
	d.Styles.NormalDesc = Styles.Muted
	return d
}

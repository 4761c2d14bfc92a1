package ui

import (
	"fmt"
	"strings"

	"cloudnav/internal/names"
	"cloudnav/internal/storage"
	"cloudnav/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Outcome is how a modal was closed.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeConfirmed
	OutcomeCancelled
	OutcomeDismissed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "pending"
	}
}

type folderControl int

const (
	controlInput folderControl = iota
	controlCreate
	controlCancel
)

const createFolderTitleWidth = 48

// CreateFolderModal asks for the name of a new folder inside Parent,
// validating as the user types. The sibling names are captured once when the
// modal is built.
type CreateFolderModal struct {
	Parent storage.File

	siblings  map[string]struct{}
	validator names.Validator

	input textinput.Model
	focus *FocusRing[folderControl]
	check NameCheck

	createStyle lipgloss.Style
	cancelStyle lipgloss.Style

	shown   bool
	outcome Outcome
}

// Ensure CreateFolderModal implements View.
var _ View = (*CreateFolderModal)(nil)

// NewCreateFolderModal builds the modal for parent. siblings are the names of
// parent's current children.
func NewCreateFolderModal(parent storage.File, siblings map[string]struct{}, v names.Validator) *CreateFolderModal {
	ti := textinput.New()
	ti.Placeholder = "folder name"
	ti.Width = 40
	ti.CharLimit = 255
	if siblings == nil {
		siblings = map[string]struct{}{}
	}
	m := &CreateFolderModal{
		Parent:    parent,
		siblings:  siblings,
		validator: v,
		input:     ti,
		focus:     NewFocusRing(controlInput, controlCreate, controlCancel),
	}
	m.focus.OnChange = func(_, to folderControl) {
		if to == controlInput {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		m.applyButtonTheme()
	}
	m.revalidate()
	return m
}

// Init focuses the input and restyles the buttons.
func (m *CreateFolderModal) Init() tea.Cmd {
	m.shown = true
	m.focus.SetFocus(controlInput)
	m.applyButtonTheme()
	return m.input.Focus()
}

// Update implements View.
func (m *CreateFolderModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if m.outcome != OutcomePending {
		return m, nil
	}
	switch msg := msg.(type) {
	case DismissModalMsg:
		m.Dismiss()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.outcome = OutcomeCancelled
			return m, dismissModal
		case "ctrl+c":
			m.outcome = OutcomeDismissed
			return m, dismissModal
		case "tab":
			m.focus.Next()
			return m, nil
		case "shift+tab":
			m.focus.Prev()
			return m, nil
		case "enter":
			switch m.focus.Current {
			case controlCancel:
				m.outcome = OutcomeCancelled
				return m, dismissModal
			default:
				if !m.check.CanCreate() {
					return m, nil
				}
				return m, m.confirm()
			}
		}
		if !m.focus.Is(controlInput) {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.revalidate()
	return m, cmd
}

// SetValue replaces the input text and revalidates.
func (m *CreateFolderModal) SetValue(s string) {
	m.input.SetValue(s)
	m.revalidate()
}

// Value returns the raw input text.
func (m *CreateFolderModal) Value() string { return m.input.Value() }

// Check returns the current inline validation result.
func (m *CreateFolderModal) Check() NameCheck { return m.check }

// CanCreate reports whether the Create button is enabled.
func (m *CreateFolderModal) CanCreate() bool { return m.check.CanCreate() }

// Outcome reports how the modal ended, or OutcomePending while open.
func (m *CreateFolderModal) Outcome() Outcome { return m.outcome }

// Shown reports whether Init has run.
func (m *CreateFolderModal) Shown() bool { return m.shown }

// Dismiss marks the modal dismissed unless it already has an outcome.
func (m *CreateFolderModal) Dismiss() {
	if m.outcome == OutcomePending {
		m.outcome = OutcomeDismissed
	}
}

func (m *CreateFolderModal) revalidate() {
	m.check = CheckFolderName(m.input.Value(), m.siblings, m.validator)
	m.applyButtonTheme()
}

// applyButtonTheme derives the button styles from focus and validity.
func (m *CreateFolderModal) applyButtonTheme() {
	switch {
	case !m.check.CanCreate():
		m.createStyle = Styles.ButtonDisabled
	case m.focus.Is(controlCreate):
		m.createStyle = Styles.ButtonFocused
	default:
		m.createStyle = Styles.ButtonPrimary
	}
	if m.focus.Is(controlCancel) {
		m.cancelStyle = Styles.ButtonFocused
	} else {
		m.cancelStyle = Styles.Button
	}
}

// confirm re-checks the trimmed name against the validator and the sibling
// set. A rejected name produces an error toast and leaves the modal open.
func (m *CreateFolderModal) confirm() tea.Cmd {
	name := strings.TrimSpace(m.input.Value())
	if code := m.validator.Check(name); code != names.OK {
		return toast(code.Message(), true)
	}
	if _, ok := m.siblings[name]; ok {
		return toast(existsMessage, true)
	}
	m.outcome = OutcomeConfirmed
	req := CreateFolderMsg{
		Parent: m.Parent,
		Name:   name,
		Path:   storage.JoinFolderPath(m.Parent.Path, name),
	}
	return func() tea.Msg { return req }
}

// View implements View.
func (m *CreateFolderModal) View() string {
	where := textutil.Truncate(m.Parent.Path, createFolderTitleWidth)
	var b strings.Builder
	b.WriteString(Styles.Title.Render("New folder") + " " + Styles.Muted.Render(fmt.Sprintf("in %s", where)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	switch msg := m.check.Message(); {
	case msg == "":
		b.WriteString(" ")
	case m.check.IsWarning():
		b.WriteString(Styles.FieldWarning.Render(msg))
	default:
		b.WriteString(Styles.FieldError.Render(msg))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.createStyle.Render("Create"), "  ", m.cancelStyle.Render("Cancel")))
	b.WriteString("\n\n")
	b.WriteString(Styles.Hint.Render("Tab: next  Enter: select  Esc: cancel"))
	return Styles.Box.Render(b.String())
}

func dismissModal() tea.Msg { return DismissModalMsg{} }

func toast(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text, IsError: isError} }
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OverlayStack holds modal views above the browser. The topmost overlay
// receives key input.
type OverlayStack struct {
	Stack []View
}

// Push adds v on top.
func (s *OverlayStack) Push(v View) {
	s.Stack = append(s.Stack, v)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (View, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (View, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// UpdateTop routes msg to the top overlay and stores the returned View.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	v, cmd := s.Stack[len(s.Stack)-1].Update(msg)
	s.Stack[len(s.Stack)-1] = v
	return cmd, true
}

// Render draws the top overlay centered in a width x height area. With no
// overlay it returns base unchanged.
func (s *OverlayStack) Render(base string, width, height int) string {
	top, ok := s.Peek()
	if !ok {
		return base
	}
	if width <= 0 || height <= 0 {
		return base + "\n" + top.View()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, top.View())
}

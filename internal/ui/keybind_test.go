package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("SPC f n", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("space f n") == nil {
		t.Error("expected space f n to resolve to SPC f n")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
	if !reg.HasPrefix("SPC f") {
		t.Error("expected SPC f to be a prefix")
	}
	if reg.HasPrefix("SPC f n") {
		t.Error("SPC f n is a leaf")
	}
}

func TestKeyHandler_LeaderSequence(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC f n", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg(" "))
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting after space")
	}

	consumed, cmd = h.Handle(keyMsg("f"))
	if !consumed || cmd != nil {
		t.Errorf("f: consumed=%v cmd=%v", consumed, cmd)
	}
	if got := h.CurrentSeq(); got != "SPC f" {
		t.Errorf("CurrentSeq = %q, want SPC f", got)
	}

	consumed, cmd = h.Handle(keyMsg("n"))
	if !consumed || cmd == nil {
		t.Fatalf("n: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestKeyHandler_UnknownLeaderSequenceResets(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC f n", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("z"))
	if !consumed || cmd != nil {
		t.Errorf("z: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("unknown sequence should leave leader mode")
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC q", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"))
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}

	consumed, _ = h.Handle(keyMsg("esc"))
	if consumed {
		t.Error("esc outside leader mode should fall through")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("n", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("n"))
	if !consumed || cmd == nil {
		t.Errorf("n: consumed=%v cmd=%v", consumed, cmd)
	}
	consumed, _ = h.Handle(keyMsg("j"))
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestLeaderHints_GroupsAndLeaves(t *testing.T) {
	reg := defaultKeybinds()

	top := reg.LeaderHints("")
	if top["f"] != "Folder" {
		t.Errorf("top-level f = %q, want Folder", top["f"])
	}
	if top["q"] != "Quit" {
		t.Errorf("top-level q = %q, want Quit", top["q"])
	}

	folder := reg.LeaderHints("SPC f")
	if folder["n"] != "New folder" || folder["r"] != "Refresh" {
		t.Errorf("SPC f hints = %v", folder)
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	h := NewKeyHandler(defaultKeybinds())

	h.Handle(keyMsg(" "))
	if top := RenderKeybindHelp(h); !strings.Contains(top, "Folder") {
		t.Errorf("expected top-level hints, got %q", top)
	}

	h.Handle(keyMsg("f"))
	out := RenderKeybindHelp(h)
	for _, want := range []string{"SPC f", "New folder", "Refresh", "cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

// keyMsg creates a tea.KeyMsg for testing. Named keys map to their KeyType;
// anything else is sent as runes.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cloudnav/internal/fileops"
	"cloudnav/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, folders ...string) *storage.SQLite {
	t.Helper()
	s, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	for _, f := range folders {
		_, err := s.CreateFolder(context.Background(), f)
		require.NoError(t, err)
	}
	return s
}

// newTestApp starts an app on m and waits for the first listing.
func newTestApp(t *testing.T, m storage.Manager, start string) *appModelAdapter {
	t.Helper()
	a := &appModelAdapter{AppModel: NewAppModel(Options{
		Storage:       m,
		Log:           zerolog.Nop(),
		Start:         start,
		ToastDuration: time.Hour,
	})}
	settle(a, a.Init())
	return a
}

// collect runs cmd and returns the messages it yields. Commands still
// running after a short wait (ticks, cursor blinks) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case OpenFolderMsg, FolderListedMsg, RefreshMsg, ShowCreateFolderMsg,
		createFolderReadyMsg, CreateFolderMsg, ToastMsg, DismissModalMsg,
		fileops.FolderCreatedMsg, fileops.FolderCreateFailedMsg:
		return true
	}
	return false
}

// settle feeds the app's own messages produced by cmd back into Update
// until nothing is left. It returns every message seen.
func settle(a *appModelAdapter, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := collect(cmd)
	for i := 0; len(queue) > 0 && i < 100; i++ {
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		if !isAppMsg(msg) {
			continue
		}
		_, next := a.Update(msg)
		queue = append(queue, collect(next)...)
	}
	return seen
}

func sendKey(a *appModelAdapter, key string) []tea.Msg {
	_, cmd := a.Update(keyMsg(key))
	return settle(a, cmd)
}

func topModal(t *testing.T, a *appModelAdapter) *CreateFolderModal {
	t.Helper()
	top, ok := a.Overlays.Peek()
	require.True(t, ok, "expected an overlay")
	m, ok := top.(*CreateFolderModal)
	require.True(t, ok, "expected CreateFolderModal, got %T", top)
	return m
}

func countType[T any](msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			n++
		}
	}
	return n
}

func TestApp_InitListsStartFolder(t *testing.T) {
	cat := newCatalog(t, "/docs/", "/docs/reports/", "/music/")
	a := newTestApp(t, cat, "/docs/")

	assert.Equal(t, "/docs/", a.Browser.Folder.Path)
	require.Len(t, a.Browser.Entries, 1)
	assert.Equal(t, "reports", a.Browser.Entries[0].Name)
	assert.False(t, a.Browser.Loading())
}

func TestApp_NavigateIntoAndOut(t *testing.T) {
	cat := newCatalog(t, "/docs/", "/docs/reports/")
	a := newTestApp(t, cat, "/")

	sendKey(a, "enter")
	assert.Equal(t, "/docs/", a.Browser.Folder.Path)

	sendKey(a, "backspace")
	assert.Equal(t, "/", a.Browser.Folder.Path)
}

func TestApp_NewFolderFlow(t *testing.T) {
	cat := newCatalog(t, "/docs/", "/docs/reports/")
	a := newTestApp(t, cat, "/docs/")

	sendKey(a, "n")
	m := topModal(t, a)
	assert.True(t, m.Shown())
	assert.Equal(t, "/docs/", m.Parent.Path)

	// Global bindings are typed into the modal, not executed.
	sendKey(a, "reports")
	assert.False(t, m.CanCreate(), "existing sibling must disable Create")

	m.SetValue("")
	sendKey(a, "music")
	require.True(t, m.CanCreate())

	seen := sendKey(a, "enter")
	assert.Equal(t, 1, countType[CreateFolderMsg](seen), "exactly one creation request")
	assert.Equal(t, 1, countType[fileops.FolderCreatedMsg](seen))
	assert.Equal(t, OutcomeConfirmed, m.Outcome())
	assert.Equal(t, 0, a.Overlays.Len())

	f, err := cat.Stat(context.Background(), "/docs/music/")
	require.NoError(t, err)
	assert.True(t, f.IsDir())

	assert.Equal(t, "Created music", a.Status)
	assert.False(t, a.StatusIsError)
	sel, ok := a.Browser.Selected()
	require.True(t, ok)
	assert.Equal(t, "music", sel.Name)
}

func TestApp_NewFolderViaLeader(t *testing.T) {
	a := newTestApp(t, newCatalog(t), "/")

	sendKey(a, " ")
	assert.Contains(t, a.View(), "Folder")
	sendKey(a, "f")
	sendKey(a, "n")
	topModal(t, a)
}

func TestApp_InvalidConfirmKeepsModalOpen(t *testing.T) {
	a := newTestApp(t, newCatalog(t), "/")
	sendKey(a, "n")
	m := topModal(t, a)

	sendKey(a, "..")
	seen := sendKey(a, "enter")

	assert.Equal(t, 0, countType[CreateFolderMsg](seen))
	assert.Equal(t, 1, countType[ToastMsg](seen))
	assert.True(t, a.StatusIsError)
	assert.NotEmpty(t, a.Status)
	assert.Same(t, m, topModal(t, a))
	assert.Equal(t, OutcomePending, m.Outcome())
}

func TestApp_EscCancelsModal(t *testing.T) {
	a := newTestApp(t, newCatalog(t), "/")
	sendKey(a, "n")
	m := topModal(t, a)

	sendKey(a, "esc")
	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, OutcomeCancelled, m.Outcome())
}

func TestApp_HostDismissal(t *testing.T) {
	a := newTestApp(t, newCatalog(t), "/")
	sendKey(a, "n")
	m := topModal(t, a)

	settle(a, func() tea.Msg { return DismissModalMsg{} })
	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, OutcomeDismissed, m.Outcome())
}

func TestApp_CtrlCInModalDoesNotQuit(t *testing.T) {
	a := newTestApp(t, newCatalog(t), "/")
	sendKey(a, "n")
	m := topModal(t, a)

	seen := sendKey(a, "ctrl+c")
	assert.Equal(t, 0, countType[tea.QuitMsg](seen))
	assert.Equal(t, OutcomeDismissed, m.Outcome())
	assert.Equal(t, 0, a.Overlays.Len())
}

func TestApp_CreateConflictReported(t *testing.T) {
	cat := newCatalog(t)
	a := newTestApp(t, cat, "/")
	sendKey(a, "n")

	// Someone else creates the folder after the sibling list was taken.
	_, err := cat.CreateFolder(context.Background(), "/late/")
	require.NoError(t, err)

	sendKey(a, "late")
	seen := sendKey(a, "enter")
	require.Equal(t, 1, countType[fileops.FolderCreateFailedMsg](seen))
	assert.True(t, a.StatusIsError)
	assert.Equal(t, "late already exists", a.Status)
}

// failingLister fails every List call.
type failingLister struct {
	storage.Manager
}

func (failingLister) List(context.Context, storage.File) ([]storage.File, error) {
	return nil, errors.New("backend offline")
}

func TestApp_NewFolderListingFailure(t *testing.T) {
	a := newTestApp(t, failingLister{Manager: newCatalog(t)}, "/")
	assert.Error(t, a.Browser.Err)

	sendKey(a, "n")
	assert.Equal(t, 0, a.Overlays.Len())
	assert.True(t, a.StatusIsError)
	assert.Contains(t, a.Status, "backend offline")
}

func TestApp_RefreshPicksUpChanges(t *testing.T) {
	cat := newCatalog(t)
	a := newTestApp(t, cat, "/")
	require.Empty(t, a.Browser.Entries)

	_, err := cat.CreateFolder(context.Background(), "/new/")
	require.NoError(t, err)

	sendKey(a, "r")
	require.Len(t, a.Browser.Entries, 1)
	assert.Equal(t, "new", a.Browser.Entries[0].Name)
}

func TestApp_ToastExpires(t *testing.T) {
	a := newTestApp(t, newCatalog(t), "/")

	settle(a, func() tea.Msg { return ToastMsg{Text: "first"} })
	first := a.statusSeq
	settle(a, func() tea.Msg { return ToastMsg{Text: "second", IsError: true} })

	// The first toast's timer must not clear the newer one.
	a.Update(toastExpiredMsg{seq: first})
	assert.Equal(t, "second", a.Status)

	a.Update(toastExpiredMsg{seq: a.statusSeq})
	assert.Empty(t, a.Status)
	assert.False(t, a.StatusIsError)
}

func TestApp_ViewRendersModalOverBrowser(t *testing.T) {
	a := newTestApp(t, newCatalog(t, "/docs/"), "/")
	assert.Contains(t, a.View(), "docs/")

	sendKey(a, "n")
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := a.View()
	assert.Contains(t, out, "New folder")
	assert.True(t, strings.Contains(out, "Create"))
}

func TestApp_QuitKey(t *testing.T) {
	a := newTestApp(t, newCatalog(t), "/")
	seen := sendKey(a, "q")
	assert.Equal(t, 1, countType[tea.QuitMsg](seen))
}

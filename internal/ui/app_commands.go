package ui

import (
	"context"
	"fmt"
	"time"

	"cloudnav/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// listFolderCmd resolves path and lists its children.
func listFolderCmd(m storage.Manager, path string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		folder, err := m.Stat(ctx, path)
		if err != nil {
			return FolderListedMsg{Folder: storage.File{Path: path, Dir: true}, Err: fmt.Errorf("open %s: %w", path, err)}
		}
		if !folder.IsDir() {
			return FolderListedMsg{Folder: folder, Err: fmt.Errorf("open %s: %w", path, storage.ErrNotFolder)}
		}
		entries, err := m.List(ctx, folder)
		if err != nil {
			return FolderListedMsg{Folder: folder, Err: fmt.Errorf("list %s: %w", path, err)}
		}
		return FolderListedMsg{Folder: folder, Entries: entries}
	}
}

// prepareCreateFolderCmd lists parent once to collect the sibling names the
// new-folder modal checks against.
func prepareCreateFolderCmd(m storage.Manager, parent storage.File, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := m.List(ctx, parent)
		if err != nil {
			return createFolderReadyMsg{Parent: parent, Err: fmt.Errorf("list %s: %w", parent.Path, err)}
		}
		return createFolderReadyMsg{Parent: parent, Siblings: storage.SiblingNames(entries)}
	}
}

// toastExpireCmd fires once d has elapsed.
func toastExpireCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

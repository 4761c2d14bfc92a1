package ui

import (
	"errors"
	"fmt"

	"cloudnav/internal/fileops"
	"cloudnav/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// handleRefresh reloads the folder currently shown.
func (a *appModelAdapter) handleRefresh() (tea.Model, tea.Cmd) {
	if sel, ok := a.Browser.Selected(); ok {
		a.selectAfterLoad = sel.Name
	}
	return a, a.load(a.Browser.Folder.Path)
}

// handleFolderListed shows a listing, or reports why it failed.
func (a *appModelAdapter) handleFolderListed(msg FolderListedMsg) (tea.Model, tea.Cmd) {
	a.Browser.SetLoading(false)
	if msg.Err != nil {
		a.Log.Warn().Err(msg.Err).Str("path", msg.Folder.Path).Msg("list folder failed")
		if msg.Folder.Path == a.Browser.Folder.Path {
			a.Browser.Err = msg.Err
		}
		return a, a.setStatus(msg.Err.Error(), true)
	}
	a.Browser.SetEntries(msg.Folder, msg.Entries)
	if a.selectAfterLoad != "" {
		a.Browser.SelectName(a.selectAfterLoad)
		a.selectAfterLoad = ""
	}
	return a, nil
}

// handleShowCreateFolder collects the current folder's names before the
// modal opens.
func (a *appModelAdapter) handleShowCreateFolder() (tea.Model, tea.Cmd) {
	if a.Storage == nil || a.Overlays.Len() > 0 {
		return a, nil
	}
	return a, prepareCreateFolderCmd(a.Storage, a.Browser.Folder, a.Timeout)
}

// handleCreateFolderReady pushes the new-folder modal.
func (a *appModelAdapter) handleCreateFolderReady(msg createFolderReadyMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.Log.Warn().Err(msg.Err).Str("parent", msg.Parent.Path).Msg("cannot open new folder dialog")
		return a, a.setStatus(msg.Err.Error(), true)
	}
	if a.Overlays.Len() > 0 {
		return a, nil
	}
	modal := NewCreateFolderModal(msg.Parent, msg.Siblings, a.Validator)
	a.Overlays.Push(modal)
	return a, modal.Init()
}

// handleCreateFolder closes the modal and starts the backend call.
func (a *appModelAdapter) handleCreateFolder(msg CreateFolderMsg) (tea.Model, tea.Cmd) {
	if top, ok := a.Overlays.Peek(); ok {
		if _, isModal := top.(*CreateFolderModal); isModal {
			a.Overlays.Pop()
		}
	}
	a.Log.Debug().Str("path", msg.Path).Msg("create folder requested")
	return a, tea.Batch(
		a.setStatus(fmt.Sprintf("Creating %s…", msg.Name), false),
		a.Ops.CreateFolder(msg.Path),
	)
}

// handleFolderCreated refreshes the listing when the new folder is visible.
func (a *appModelAdapter) handleFolderCreated(msg fileops.FolderCreatedMsg) (tea.Model, tea.Cmd) {
	status := a.setStatus(fmt.Sprintf("Created %s", msg.Folder.Name), false)
	if storage.ParentPath(msg.Folder.Path) != a.Browser.Folder.Path {
		return a, status
	}
	a.selectAfterLoad = msg.Folder.Name
	return a, tea.Batch(status, a.load(a.Browser.Folder.Path))
}

// handleFolderCreateFailed reports a backend failure.
func (a *appModelAdapter) handleFolderCreateFailed(msg fileops.FolderCreateFailedMsg) (tea.Model, tea.Cmd) {
	name := storage.BaseName(msg.Path)
	var text string
	switch {
	case errors.Is(msg.Err, storage.ErrExists):
		text = fmt.Sprintf("%s already exists", name)
	case errors.Is(msg.Err, storage.ErrNotFound):
		text = fmt.Sprintf("Cannot create %s: parent folder is gone", name)
	default:
		text = fmt.Sprintf("Create %s: %v", name, msg.Err)
	}
	return a, a.setStatus(text, true)
}

// handleDismissModal closes the top overlay.
func (a *appModelAdapter) handleDismissModal() (tea.Model, tea.Cmd) {
	top, ok := a.Overlays.Pop()
	if !ok {
		return a, nil
	}
	if m, isModal := top.(*CreateFolderModal); isModal {
		m.Dismiss()
	}
	return a, nil
}

package ui

import (
	"cloudnav/internal/storage"
)

// OpenFolderMsg asks the browser to navigate to a folder.
type OpenFolderMsg struct {
	Path string
}

// FolderListedMsg carries the children of a folder after a listing.
type FolderListedMsg struct {
	Folder  storage.File
	Entries []storage.File
	Err     error
}

// RefreshMsg reloads the current folder (r / SPC f r).
type RefreshMsg struct{}

// ShowCreateFolderMsg starts the new-folder flow for the current folder (n / SPC f n).
type ShowCreateFolderMsg struct{}

// createFolderReadyMsg is produced once the parent's contents are known and
// the modal can be built.
type createFolderReadyMsg struct {
	Parent   storage.File
	Siblings map[string]struct{}
	Err      error
}

// CreateFolderMsg is emitted by the new-folder modal when the user confirms a
// valid name. Path is Parent.Path + Name + "/".
type CreateFolderMsg struct {
	Parent storage.File
	Name   string
	Path   string
}

// ToastMsg shows a transient status line notification.
type ToastMsg struct {
	Text    string
	IsError bool
}

// toastExpiredMsg clears the status line if no newer toast replaced it.
type toastExpiredMsg struct {
	seq int
}

// DismissModalMsg closes the topmost overlay. Modals send it on esc; the
// host may send it to dismiss a modal on its own.
type DismissModalMsg struct{}

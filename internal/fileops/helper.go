// Package fileops runs file operations requested from the UI as Bubble Tea
// commands, so the update loop never blocks on a backend.
package fileops

import (
	"context"
	"time"

	"cloudnav/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

// FolderCreatedMsg reports a folder created by Helper.CreateFolder.
type FolderCreatedMsg struct {
	Folder storage.File
}

// FolderCreateFailedMsg reports a failed Helper.CreateFolder.
type FolderCreateFailedMsg struct {
	Path string
	Err  error
}

// Helper performs folder operations against a storage backend.
type Helper struct {
	Storage storage.Manager
	Log     zerolog.Logger
	Timeout time.Duration // DefaultTimeout when zero
}

// NewHelper returns a Helper with the default timeout.
func NewHelper(m storage.Manager, log zerolog.Logger) *Helper {
	return &Helper{Storage: m, Log: log, Timeout: DefaultTimeout}
}

func (h *Helper) timeout() time.Duration {
	if h.Timeout <= 0 {
		return DefaultTimeout
	}
	return h.Timeout
}

// CreateFolder returns a command that creates the folder at path and
// reports FolderCreatedMsg or FolderCreateFailedMsg.
func (h *Helper) CreateFolder(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout())
		defer cancel()
		f, err := h.Storage.CreateFolder(ctx, path)
		if err != nil {
			h.Log.Warn().Err(err).Str("path", path).Msg("create folder failed")
			return FolderCreateFailedMsg{Path: path, Err: err}
		}
		h.Log.Info().Str("path", f.Path).Msg("folder created")
		return FolderCreatedMsg{Folder: f}
	}
}

package ui

import (
	"time"

	"cloudnav/internal/fileops"
	"cloudnav/internal/names"
	"cloudnav/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

const (
	defaultToastDuration = 3 * time.Second
	defaultTimeout       = 30 * time.Second
)

// Options configures NewAppModel.
type Options struct {
	Storage       storage.Manager
	Validator     names.Validator // defaults to names.New()
	Log           zerolog.Logger
	Start         string        // folder opened at startup, defaults to root
	Timeout       time.Duration // per storage call
	ToastDuration time.Duration
}

// AppModel is the root model: a folder browser with modals stacked above it.
type AppModel struct {
	Browser    *BrowserView
	Overlays   OverlayStack
	KeyHandler *KeyHandler

	Storage   storage.Manager
	Validator names.Validator
	Ops       *fileops.Helper
	Log       zerolog.Logger

	Start         string
	Timeout       time.Duration
	ToastDuration time.Duration

	Status        string
	StatusIsError bool
	statusSeq     int

	// selectAfterLoad is selected once the next listing arrives.
	selectAfterLoad string
	width, height   int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model and its keybindings.
func NewAppModel(opts Options) *AppModel {
	if opts.Validator == nil {
		opts.Validator = names.New()
	}
	if opts.Start == "" {
		opts.Start = storage.PathSeparator
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}
	ops := fileops.NewHelper(opts.Storage, opts.Log)
	ops.Timeout = opts.Timeout
	return &AppModel{
		Browser:       NewBrowserView(),
		KeyHandler:    NewKeyHandler(defaultKeybinds()),
		Storage:       opts.Storage,
		Validator:     opts.Validator,
		Ops:           ops,
		Log:           opts.Log,
		Start:         storage.CleanFolderPath(opts.Start),
		Timeout:       opts.Timeout,
		ToastDuration: opts.ToastDuration,
	}
}

func defaultKeybinds() *KeybindRegistry {
	newFolder := func() tea.Msg { return ShowCreateFolderMsg{} }
	refresh := func() tea.Msg { return RefreshMsg{} }

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("n", newFolder, "New folder")
	reg.BindWithDesc("r", refresh, "Refresh")
	reg.BindWithDesc("SPC f n", newFolder, "New folder")
	reg.BindWithDesc("SPC f r", refresh, "Refresh")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Browser.Init(), a.load(a.Start))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case OpenFolderMsg:
		return a, a.load(msg.Path)
	case RefreshMsg:
		return a.handleRefresh()
	case FolderListedMsg:
		return a.handleFolderListed(msg)
	case ShowCreateFolderMsg:
		return a.handleShowCreateFolder()
	case createFolderReadyMsg:
		return a.handleCreateFolderReady(msg)
	case CreateFolderMsg:
		return a.handleCreateFolder(msg)
	case fileops.FolderCreatedMsg:
		return a.handleFolderCreated(msg)
	case fileops.FolderCreateFailedMsg:
		return a.handleFolderCreateFailed(msg)
	case ToastMsg:
		return a, a.setStatus(msg.Text, msg.IsError)
	case toastExpiredMsg:
		if msg.seq == a.statusSeq {
			a.Status = ""
			a.StatusIsError = false
		}
		return a, nil
	case DismissModalMsg:
		return a.handleDismissModal()
	case tea.KeyMsg:
		// Modals get every key, including the ones bound globally.
		if a.Overlays.Len() > 0 {
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		if a.KeyHandler != nil {
			if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
				return a, cmd
			}
		}
		_, cmd := a.Browser.Update(msg)
		return a, cmd
	}

	// Non-key messages (ticks, blinks, resizes) reach both layers.
	var cmds []tea.Cmd
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		cmds = append(cmds, cmd)
	}
	_, cmd := a.Browser.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.Browser.View() + "\n" + a.statusLine()
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler)
	}
	return a.Overlays.Render(base, a.width, a.height)
}

func (a *appModelAdapter) statusLine() string {
	switch {
	case a.Status == "":
		return ""
	case a.StatusIsError:
		return Styles.StatusError.Render(a.Status)
	default:
		return Styles.StatusInfo.Render(a.Status)
	}
}

// setStatus shows text in the status line and schedules its removal.
func (a *AppModel) setStatus(text string, isError bool) tea.Cmd {
	a.statusSeq++
	a.Status = text
	a.StatusIsError = isError
	return toastExpireCmd(a.statusSeq, a.ToastDuration)
}

func (a *AppModel) load(path string) tea.Cmd {
	if a.Storage == nil {
		return nil
	}
	return tea.Batch(a.Browser.SetLoading(true), listFolderCmd(a.Storage, path, a.Timeout))
}

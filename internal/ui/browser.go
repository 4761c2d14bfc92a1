package ui

import (
	"fmt"
	"strings"

	"cloudnav/internal/storage"
	"cloudnav/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	nameColumnWidth = 48
	sizeColumnWidth = 10
)

// entryItem implements list.Item for a storage.File.
type entryItem struct {
	storage.File
}

func (e entryItem) FilterValue() string { return e.Name }

func (e entryItem) Title() string {
	if e.Dir {
		return textutil.Truncate(e.Name+storage.PathSeparator, nameColumnWidth)
	}
	name := textutil.Truncate(e.Name, nameColumnWidth)
	pad := nameColumnWidth - textutil.VisualWidth(name)
	return name + strings.Repeat(" ", pad) + textutil.PadLeft(textutil.HumanSize(e.Size), sizeColumnWidth)
}

func (e entryItem) Description() string {
	if e.ModTime.IsZero() {
		return ""
	}
	return e.ModTime.Format("2006-01-02 15:04")
}

// BrowserView lists the children of one folder.
type BrowserView struct {
	list    list.Model
	Folder  storage.File
	Entries []storage.File
	Err     error
	spinner spinner.Model
	loading bool
}

// Ensure BrowserView implements View.
var _ View = (*BrowserView)(nil)

// NewBrowserView creates an empty browser. Entries arrive via SetEntries.
func NewBrowserView() *BrowserView {
	l := list.New(nil, NewCompactListDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return &BrowserView{
		list:    l,
		Folder:  storage.File{Path: storage.PathSeparator, Dir: true},
		spinner: s,
	}
}

// Init implements View.
func (b *BrowserView) Init() tea.Cmd {
	return b.spinner.Tick
}

// SetLoading toggles the spinner.
func (b *BrowserView) SetLoading(loading bool) tea.Cmd {
	b.loading = loading
	if loading {
		return b.spinner.Tick
	}
	return nil
}

// Loading reports whether a listing is in flight.
func (b *BrowserView) Loading() bool { return b.loading }

// SetEntries replaces the listing. The selection is kept when the folder is
// unchanged, otherwise it moves to the first entry.
func (b *BrowserView) SetEntries(folder storage.File, entries []storage.File) {
	keep := -1
	if folder.Path == b.Folder.Path {
		keep = b.list.Index()
	}
	b.Folder = folder
	b.Entries = entries
	b.Err = nil
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{File: e}
	}
	b.list.SetItems(items)
	if keep >= 0 && keep < len(items) {
		b.list.Select(keep)
	} else {
		b.list.Select(0)
	}
}

// SelectName moves the cursor to the entry called name, if present.
func (b *BrowserView) SelectName(name string) bool {
	for i, e := range b.Entries {
		if e.Name == name {
			b.list.Select(i)
			return true
		}
	}
	return false
}

// Selected returns the entry under the cursor.
func (b *BrowserView) Selected() (storage.File, bool) {
	i := b.list.Index()
	if i < 0 || i >= len(b.Entries) {
		return storage.File{}, false
	}
	return b.Entries[i], true
}

// Update implements View.
func (b *BrowserView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetWidth(msg.Width)
		b.list.SetHeight(msg.Height - 5) // header, hint, status line
		return b, nil
	case spinner.TickMsg:
		if !b.loading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "l", "right":
			if f, ok := b.Selected(); ok && f.IsDir() {
				return b, openFolder(f.Path)
			}
			return b, nil
		case "backspace", "h", "left":
			if !b.Folder.IsRoot() {
				return b, openFolder(storage.ParentPath(b.Folder.Path))
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

// View implements View.
func (b *BrowserView) View() string {
	if b.list.Width() == 0 {
		b.list.SetWidth(80)
	}
	if b.list.Height() == 0 {
		b.list.SetHeight(20)
	}

	var s strings.Builder
	header := Styles.Title.Render(textutil.TruncateLeft(b.Folder.Path, b.list.Width()-16))
	header += Styles.Muted.Render(fmt.Sprintf(" (%d)", len(b.Entries)))
	if b.loading {
		header += " " + b.spinner.View()
	}
	s.WriteString(header + "\n")
	s.WriteString(Styles.Hint.Render("n: new folder  r: refresh  backspace: up  SPC: commands") + "\n\n")
	switch {
	case b.Err != nil:
		s.WriteString(Styles.StatusError.Render(b.Err.Error()))
	case len(b.Entries) == 0 && !b.loading:
		s.WriteString(Styles.Empty.Render("This folder is empty"))
	default:
		s.WriteString(b.list.View())
	}
	return s.String()
}

func openFolder(path string) tea.Cmd {
	return func() tea.Msg { return OpenFolderMsg{Path: path} }
}

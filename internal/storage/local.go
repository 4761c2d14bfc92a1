package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local serves a directory tree on disk as a backend.
type Local struct {
	root string
}

// Ensure Local implements Manager.
var _ Manager = (*Local)(nil)

// NewLocal returns a Local rooted at dir. dir must be an existing directory.
func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("local root %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("local root %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local root %q: %w", dir, ErrNotFolder)
	}
	return &Local{root: abs}, nil
}

// Dir returns the absolute directory backing the root folder.
func (l *Local) Dir() string {
	return l.root
}

// diskPath maps p below the root directory. Paths that would leave the
// root are rejected.
func (l *Local) diskPath(p string) (string, error) {
	dp := filepath.Join(append([]string{l.root}, Segments(p)...)...)
	rel, err := filepath.Rel(l.root, dp)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", p, ErrInvalidPath)
	}
	return dp, nil
}

func (l *Local) Root(ctx context.Context) (File, error) {
	return l.Stat(ctx, PathSeparator)
}

func (l *Local) Stat(ctx context.Context, p string) (File, error) {
	dp, err := l.diskPath(p)
	if err != nil {
		return File{}, fmt.Errorf("stat: %w", err)
	}
	info, err := os.Stat(dp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, fmt.Errorf("stat %q: %w", p, ErrNotFound)
		}
		return File{}, fmt.Errorf("stat %q: %w", p, err)
	}
	return l.fileFromInfo(p, dp, info), nil
}

func (l *Local) fileFromInfo(p, dp string, info fs.FileInfo) File {
	f := File{
		ID:      dp,
		Name:    BaseName(p),
		Dir:     info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if f.Dir {
		f.Path = CleanFolderPath(p)
		f.Size = 0
	} else {
		f.Path = PathSeparator + filepath.ToSlash(filepath.Join(Segments(p)...))
	}
	return f
}

func (l *Local) List(ctx context.Context, folder File) ([]File, error) {
	if !folder.Dir {
		return nil, fmt.Errorf("list %q: %w", folder.Path, ErrNotFolder)
	}
	dir, err := l.diskPath(folder.Path)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("list %q: %w", folder.Path, ErrNotFound)
		}
		return nil, fmt.Errorf("list %q: %w", folder.Path, err)
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info.
			continue
		}
		files = append(files, l.fileFromInfo(folder.Path+e.Name(), filepath.Join(dir, e.Name()), info))
	}
	SortFiles(files)
	return files, nil
}

func (l *Local) CreateFolder(ctx context.Context, p string) (File, error) {
	if !validFolderPath(p) {
		return File{}, fmt.Errorf("create folder %q: %w", p, ErrInvalidPath)
	}
	parent, err := l.Stat(ctx, ParentPath(p))
	if err != nil {
		return File{}, fmt.Errorf("create folder %q: parent: %w", p, err)
	}
	if !parent.Dir {
		return File{}, fmt.Errorf("create folder %q: parent: %w", p, ErrNotFolder)
	}
	dp, err := l.diskPath(p)
	if err != nil {
		return File{}, fmt.Errorf("create folder: %w", err)
	}
	if err := os.Mkdir(dp, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return File{}, fmt.Errorf("create folder %q: %w", p, ErrExists)
		}
		return File{}, fmt.Errorf("create folder %q: %w", p, err)
	}
	return l.Stat(ctx, p)
}

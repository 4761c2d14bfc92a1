// Package storage abstracts the cloud backends cloudnav can browse.
//
// Paths are slash-separated and absolute. Folder paths always end with
// PathSeparator; the root folder is "/".
package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// PathSeparator separates path segments and terminates folder paths.
const PathSeparator = "/"

var (
	// ErrNotFound is returned when a path does not resolve to a file.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when creating a file whose path is taken.
	ErrExists = errors.New("already exists")
	// ErrNotFolder is returned when a folder operation targets a document.
	ErrNotFolder = errors.New("not a folder")
	// ErrInvalidPath is returned for paths that are not absolute folder paths.
	ErrInvalidPath = errors.New("invalid path")
)

// File is a document or folder in a backend.
type File struct {
	ID      string // Backend identifier (disk path, row id, Drive file id)
	Path    string // Absolute path; folders end with PathSeparator
	Name    string // Last path segment, empty for root
	Dir     bool
	Size    int64
	ModTime time.Time
}

// IsDir reports whether f is a folder.
func (f File) IsDir() bool {
	return f.Dir
}

// IsRoot reports whether f is the backend root.
func (f File) IsRoot() bool {
	return f.Path == PathSeparator
}

// Manager lists and creates files in a backend.
type Manager interface {
	// Root returns the root folder.
	Root(ctx context.Context) (File, error)
	// Stat resolves path to a file.
	Stat(ctx context.Context, path string) (File, error)
	// List returns the direct children of folder, folders first then by name.
	List(ctx context.Context, folder File) ([]File, error)
	// CreateFolder creates the folder at path. The parent must exist.
	CreateFolder(ctx context.Context, path string) (File, error)
}

// Closer is implemented by backends that hold resources.
type Closer interface {
	Close() error
}

// JoinFolderPath returns the folder path for name inside parent.
func JoinFolderPath(parent, name string) string {
	return parent + name + PathSeparator
}

// CleanFolderPath normalizes p into a folder path: leading and trailing
// separator, no empty, "." or ".." segments.
func CleanFolderPath(p string) string {
	segs := Segments(p)
	if len(segs) == 0 {
		return PathSeparator
	}
	return PathSeparator + strings.Join(segs, PathSeparator) + PathSeparator
}

// Segments splits p into its path segments with "." and ".." resolved.
// ".." never climbs above root.
func Segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, PathSeparator) {
		switch s {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, s)
		}
	}
	return out
}

// HasParentRef reports whether p contains a ".." segment.
func HasParentRef(p string) bool {
	for _, s := range strings.Split(p, PathSeparator) {
		if s == ".." {
			return true
		}
	}
	return false
}

// ValidName reports whether name can be used as a single path segment.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, PathSeparator)
}

// ParentPath returns the folder path containing p. The parent of root is root.
func ParentPath(p string) string {
	segs := Segments(p)
	if len(segs) <= 1 {
		return PathSeparator
	}
	return PathSeparator + strings.Join(segs[:len(segs)-1], PathSeparator) + PathSeparator
}

// BaseName returns the last segment of p, or "" for root.
func BaseName(p string) string {
	segs := Segments(p)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

func validFolderPath(p string) bool {
	return strings.HasPrefix(p, PathSeparator) &&
		strings.HasSuffix(p, PathSeparator) &&
		!HasParentRef(p) &&
		len(Segments(p)) > 0
}

// SortFiles orders files folders first, then by name.
func SortFiles(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Dir != files[j].Dir {
			return files[i].Dir
		}
		return files[i].Name < files[j].Name
	})
}

// SiblingNames returns the set of names in files.
func SiblingNames(files []File) map[string]struct{} {
	names := make(map[string]struct{}, len(files))
	for _, f := range files {
		names[f.Name] = struct{}{}
	}
	return names
}

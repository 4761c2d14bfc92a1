package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	driveFolderMime = "application/vnd.google-apps.folder"
	driveFileFields = "id, name, mimeType, size, modifiedTime"
	driveRootID     = "root"
)

// Drive serves a Google Drive account as a backend. Paths are resolved by
// walking folder names from "My Drive".
type Drive struct {
	srv *drive.Service
}

// Ensure Drive implements Manager.
var _ Manager = (*Drive)(nil)

// NewDrive creates a Drive backend. Pass option.WithHTTPClient with an
// authorized client; see DriveHTTPClient.
func NewDrive(ctx context.Context, opts ...option.ClientOption) (*Drive, error) {
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &Drive{srv: srv}, nil
}

func (d *Drive) Root(ctx context.Context) (File, error) {
	f, err := d.srv.Files.Get(driveRootID).Fields(driveFileFields).Context(ctx).Do()
	if err != nil {
		return File{}, fmt.Errorf("drive root: %w", driveErr(err))
	}
	root := fileFromDrive(PathSeparator, f)
	root.Name = ""
	root.Dir = true
	return root, nil
}

func (d *Drive) Stat(ctx context.Context, p string) (File, error) {
	cur, err := d.Root(ctx)
	if err != nil {
		return File{}, err
	}
	for _, seg := range Segments(p) {
		if !cur.Dir {
			return File{}, fmt.Errorf("stat %q: %w", p, ErrNotFound)
		}
		child, ok, err := d.findChild(ctx, cur, seg)
		if err != nil {
			return File{}, fmt.Errorf("stat %q: %w", p, err)
		}
		if !ok {
			return File{}, fmt.Errorf("stat %q: %w", p, ErrNotFound)
		}
		cur = child
	}
	return cur, nil
}

func (d *Drive) findChild(ctx context.Context, folder File, name string) (File, bool, error) {
	q := fmt.Sprintf("'%s' in parents and name = '%s' and trashed = false", folder.ID, escapeDriveQuery(name))
	resp, err := d.srv.Files.List().Q(q).Fields("files(" + driveFileFields + ")").PageSize(1).Context(ctx).Do()
	if err != nil {
		return File{}, false, driveErr(err)
	}
	if len(resp.Files) == 0 {
		return File{}, false, nil
	}
	return fileFromDrive(folder.Path+name, resp.Files[0]), true, nil
}

func (d *Drive) List(ctx context.Context, folder File) ([]File, error) {
	if !folder.Dir {
		return nil, fmt.Errorf("list %q: %w", folder.Path, ErrNotFolder)
	}
	q := fmt.Sprintf("'%s' in parents and trashed = false", folder.ID)
	var files []File
	err := d.srv.Files.List().
		Q(q).
		Fields("nextPageToken, files("+driveFileFields+")").
		PageSize(1000).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				// Drive permits names such as "a/b" that have no path form.
				if !ValidName(f.Name) {
					continue
				}
				files = append(files, fileFromDrive(folder.Path+f.Name, f))
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", folder.Path, driveErr(err))
	}
	SortFiles(files)
	return files, nil
}

func (d *Drive) CreateFolder(ctx context.Context, p string) (File, error) {
	if !validFolderPath(p) {
		return File{}, fmt.Errorf("create folder %q: %w", p, ErrInvalidPath)
	}
	parent, err := d.Stat(ctx, ParentPath(p))
	if err != nil {
		return File{}, fmt.Errorf("create folder %q: parent: %w", p, err)
	}
	if !parent.Dir {
		return File{}, fmt.Errorf("create folder %q: parent: %w", p, ErrNotFolder)
	}
	name := BaseName(p)
	// Drive allows duplicate names; refuse them so paths stay unambiguous.
	if _, ok, err := d.findChild(ctx, parent, name); err != nil {
		return File{}, fmt.Errorf("create folder %q: %w", p, err)
	} else if ok {
		return File{}, fmt.Errorf("create folder %q: %w", p, ErrExists)
	}
	created, err := d.srv.Files.
		Create(&drive.File{Name: name, MimeType: driveFolderMime, Parents: []string{parent.ID}}).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		return File{}, fmt.Errorf("create folder %q: %w", p, driveErr(err))
	}
	return fileFromDrive(p, created), nil
}

func fileFromDrive(p string, f *drive.File) File {
	out := File{
		ID:   f.Id,
		Name: f.Name,
		Dir:  f.MimeType == driveFolderMime,
		Size: f.Size,
	}
	if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
		out.ModTime = t
	}
	if out.Dir {
		out.Path = CleanFolderPath(p)
	} else {
		out.Path = strings.TrimSuffix(CleanFolderPath(p), PathSeparator)
	}
	return out
}

func escapeDriveQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func driveErr(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite is a backend that keeps the file tree as a catalog table. It is
// used for offline mirrors of a remote account and for demos.
type SQLite struct {
	DB  *sql.DB
	now func() time.Time
}

// Ensure SQLite implements Manager.
var _ Manager = (*SQLite)(nil)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS files (
	id TEXT PRIMARY KEY,
	path TEXT NOT NULL UNIQUE,
	parent TEXT NOT NULL,
	name TEXT NOT NULL,
	is_dir INTEGER NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	mod_time INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS files_parent ON files(parent);`

// OpenSQLite opens (creating if needed) the catalog at path and makes sure
// the root folder row exists. Use ":memory:" for a throwaway catalog.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	// A single connection keeps ":memory:" catalogs shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	s := &SQLite{DB: db, now: time.Now}
	if err := s.ensureRoot(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.DB.Close()
}

func (s *SQLite) ensureRoot(ctx context.Context) error {
	q := `INSERT INTO files(id, path, parent, name, is_dir, size, mod_time)
		VALUES (?, ?, '', '', 1, 0, ?) ON CONFLICT(path) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, q, uuid.NewString(), PathSeparator, s.now().UnixMilli()); err != nil {
		return fmt.Errorf("create catalog root: %w", err)
	}
	return nil
}

func (s *SQLite) Root(ctx context.Context) (File, error) {
	return s.Stat(ctx, PathSeparator)
}

func (s *SQLite) Stat(ctx context.Context, p string) (File, error) {
	return stat(ctx, s.DB, p)
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func stat(ctx context.Context, db rowQuerier, p string) (File, error) {
	q := `SELECT id, path, name, is_dir, size, mod_time FROM files WHERE path = ? OR path = ?`
	row := db.QueryRowContext(ctx, q, CleanFolderPath(p), documentPath(p))
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return File{}, fmt.Errorf("stat %q: %w", p, ErrNotFound)
	}
	if err != nil {
		return File{}, fmt.Errorf("stat %q: %w", p, err)
	}
	return f, nil
}

func (s *SQLite) List(ctx context.Context, folder File) ([]File, error) {
	if !folder.Dir {
		return nil, fmt.Errorf("list %q: %w", folder.Path, ErrNotFolder)
	}
	q := `SELECT id, path, name, is_dir, size, mod_time FROM files WHERE parent = ?`
	rows, err := s.DB.QueryContext(ctx, q, folder.Path)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", folder.Path, err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", folder.Path, err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %q: %w", folder.Path, err)
	}
	SortFiles(files)
	return files, nil
}

func (s *SQLite) CreateFolder(ctx context.Context, p string) (File, error) {
	if !validFolderPath(p) {
		return File{}, fmt.Errorf("create folder %q: %w", p, ErrInvalidPath)
	}
	return s.insert(ctx, CleanFolderPath(p), true, 0)
}

// AddDocument records a document of the given size at p.
func (s *SQLite) AddDocument(ctx context.Context, p string, size int64) (File, error) {
	if len(Segments(p)) == 0 || HasParentRef(p) {
		return File{}, fmt.Errorf("add document %q: %w", p, ErrInvalidPath)
	}
	return s.insert(ctx, documentPath(p), false, size)
}

func (s *SQLite) insert(ctx context.Context, p string, dir bool, size int64) (File, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return File{}, fmt.Errorf("create %q: %w", p, err)
	}
	defer tx.Rollback()

	parentPath := ParentPath(p)
	parent, err := stat(ctx, tx, parentPath)
	if err != nil {
		return File{}, fmt.Errorf("create %q: parent: %w", p, err)
	}
	if !parent.Dir {
		return File{}, fmt.Errorf("create %q: parent: %w", p, ErrNotFolder)
	}
	name := BaseName(p)
	// Folders and documents share a namespace within a parent.
	var taken int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM files WHERE parent = ? AND name = ?`, parentPath, name).Scan(&taken)
	if err != nil {
		return File{}, fmt.Errorf("create %q: %w", p, err)
	}
	if taken > 0 {
		return File{}, fmt.Errorf("create %q: %w", p, ErrExists)
	}

	f := File{
		ID:      uuid.NewString(),
		Path:    p,
		Name:    name,
		Dir:     dir,
		Size:    size,
		ModTime: time.UnixMilli(s.now().UnixMilli()),
	}
	q := `INSERT INTO files(id, path, parent, name, is_dir, size, mod_time) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, f.ID, f.Path, parentPath, f.Name, boolToInt(dir), size, f.ModTime.UnixMilli()); err != nil {
		if isUniqueViolation(err) {
			return File{}, fmt.Errorf("create %q: %w", p, ErrExists)
		}
		return File{}, fmt.Errorf("create %q: %w", p, err)
	}
	if err := tx.Commit(); err != nil {
		return File{}, fmt.Errorf("create %q: %w", p, err)
	}
	return f, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	// Key constraints, with or without extended result codes.
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT:
		return true
	}
	return false
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(r rowScanner) (File, error) {
	var (
		f       File
		isDir   int
		modTime int64
	)
	if err := r.Scan(&f.ID, &f.Path, &f.Name, &isDir, &f.Size, &modTime); err != nil {
		return File{}, err
	}
	f.Dir = isDir != 0
	f.ModTime = time.UnixMilli(modTime)
	return f, nil
}

func documentPath(p string) string {
	if len(Segments(p)) == 0 {
		return PathSeparator
	}
	return strings.TrimSuffix(CleanFolderPath(p), PathSeparator)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (*Local, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "reports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "notes.txt"), []byte("hello"), 0o644))
	l, err := NewLocal(dir)
	require.NoError(t, err)
	return l, dir
}

func TestNewLocal_RejectsFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	_, err := NewLocal(p)
	assert.ErrorIs(t, err, ErrNotFolder)
}

func TestLocal_RootAndStat(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	root, err := l.Root(ctx)
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.True(t, root.IsDir())

	docs, err := l.Stat(ctx, "/docs")
	require.NoError(t, err)
	assert.Equal(t, "/docs/", docs.Path)
	assert.Equal(t, "docs", docs.Name)

	notes, err := l.Stat(ctx, "/docs/notes.txt")
	require.NoError(t, err)
	assert.False(t, notes.Dir)
	assert.Equal(t, "/docs/notes.txt", notes.Path)
	assert.Equal(t, int64(5), notes.Size)

	_, err = l.Stat(ctx, "/missing/")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocal_List(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	docs, err := l.Stat(ctx, "/docs/")
	require.NoError(t, err)
	files, err := l.List(ctx, docs)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "reports", files[0].Name)
	assert.Equal(t, "/docs/reports/", files[0].Path)
	assert.Equal(t, "notes.txt", files[1].Name)

	notes, err := l.Stat(ctx, "/docs/notes.txt")
	require.NoError(t, err)
	_, err = l.List(ctx, notes)
	assert.ErrorIs(t, err, ErrNotFolder)
}

func TestLocal_CreateFolder(t *testing.T) {
	l, dir := newTestLocal(t)
	ctx := context.Background()

	f, err := l.CreateFolder(ctx, "/docs/archive/")
	require.NoError(t, err)
	assert.Equal(t, "/docs/archive/", f.Path)
	assert.DirExists(t, filepath.Join(dir, "docs", "archive"))

	_, err = l.CreateFolder(ctx, "/docs/archive/")
	assert.ErrorIs(t, err, ErrExists)

	_, err = l.CreateFolder(ctx, "/nope/child/")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.CreateFolder(ctx, "/docs/notes.txt/child/")
	assert.ErrorIs(t, err, ErrNotFolder)

	_, err = l.CreateFolder(ctx, "/docs/no-trailing")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocal_StaysInsideRoot(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "root")
	require.NoError(t, os.Mkdir(dir, 0o755))
	l, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.CreateFolder(ctx, "/../escaped/")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.NoDirExists(t, filepath.Join(base, "escaped"))

	up, err := l.Stat(ctx, "/../")
	require.NoError(t, err)
	assert.True(t, up.IsRoot())
	assert.Equal(t, l.Dir(), up.ID)

	up, err = l.Stat(ctx, "/../..")
	require.NoError(t, err)
	assert.Equal(t, l.Dir(), up.ID)

	files, err := l.List(ctx, File{Path: "/../", Dir: true})
	require.NoError(t, err)
	assert.Empty(t, files)
}

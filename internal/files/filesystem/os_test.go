package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Open_ValidDirectory(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFileSystem()

	d, err := fsys.Open(dir)
	require.NoError(t, err)

	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, absDir, d.Path())
	assert.Equal(t, filepath.Join(absDir, "a.jpg"), d.Join("a.jpg"))
}

func TestOSFileSystem_Open_NonexistentPath(t *testing.T) {
	fsys := NewOSFileSystem()

	_, err := fsys.Open(filepath.Join(t.TempDir(), "nonexistent"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOSFileSystem_Open_FileNotDirectory(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("content"), 0644))

	_, err := NewOSFileSystem().Open(filePath)
	assert.Error(t, err)
}

func TestOSFileSystem_ReadFile(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "list.csv")
	require.NoError(t, os.WriteFile(filePath, []byte("image\n"), 0644))

	data, err := NewOSFileSystem().ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "image\n", string(data))
}

func TestOSFileSystem_Stat_Missing(t *testing.T) {
	_, err := NewOSFileSystem().Stat(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOSFileSystem_CopyFile_PreservesContentAndModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "out.jpg")
	payload := make([]byte, 3*copyBufferSize+17)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(src, payload, 0640))
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	require.NoError(t, NewOSFileSystem().CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v, want %v", info.ModTime(), mtime)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	}
}

func TestOSFileSystem_CopyFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b.jpg")
	require.NoError(t, os.WriteFile(src, []byte("short"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("much longer old content"), 0644))

	require.NoError(t, NewOSFileSystem().CopyFile(src, dst))

	got, _ := os.ReadFile(dst)
	assert.Equal(t, "short", string(got))
}

func TestOSFileSystem_CopyFile_SourceIsDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "folder.jpg")
	require.NoError(t, os.Mkdir(src, 0755))

	err := NewOSFileSystem().CopyFile(src, filepath.Join(dir, "out.jpg"))
	assert.Error(t, err)
}

func TestOSFileSystem_CopyFile_MissingDestinationDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	err := NewOSFileSystem().CopyFile(src, filepath.Join(dir, "missing", "a.jpg"))
	assert.Error(t, err)
}

func TestOSFileSystem_CopyFile_SameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	require.NoError(t, os.WriteFile(src, []byte("keep me"), 0644))

	err := NewOSFileSystem().CopyFile(src, src)
	require.Error(t, err)

	got, _ := os.ReadFile(src)
	assert.Equal(t, "keep me", string(got), "source must not be truncated")
}

package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":1}`), 0644))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// Overwrite replaces the content.
	require.NoError(t, WriteFileAtomic(path, []byte(`{}`), 0644))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))

	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "out.json"), []byte("x"), 0644)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileAtomicRenameFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	old := osRename
	osRename = func(string, string) error { return errors.New("rename refused") }
	defer func() { osRename = old }()

	err := WriteFileAtomic(path, []byte("new"), 0644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename refused")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got), "failed write must keep the old file")
	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomicWriteFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	old := tempFileWrite
	tempFileWrite = func(*os.File, []byte) (int, error) { return 0, io.ErrShortWrite }
	defer func() { tempFileWrite = old }()

	err := WriteFileAtomic(path, []byte("data"), 0644)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomicCloseFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	old := tempFileClose
	tempFileClose = func(c io.Closer) error {
		c.Close()
		return errors.New("close failed")
	}
	defer func() { tempFileClose = old }()

	err := WriteFileAtomic(path, []byte("data"), 0644)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

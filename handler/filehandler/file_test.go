package filehandler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backups lists rotated files next to filename.
func backups(t *testing.T, filename string) []string {
	t.Helper()
	ext := filepath.Ext(filename)
	prefix := filename[:len(filename)-len(ext)]
	matches, err := filepath.Glob(prefix + "-*" + ext + "*")
	require.NoError(t, err)
	return matches
}

func TestNew_Validation(t *testing.T) {
	_, err := New(FileConfig{})
	assert.ErrorContains(t, err, "filename is required")

	_, err = New(FileConfig{Filename: filepath.Join(t.TempDir(), "x.log"), MaxBackups: -1})
	assert.ErrorContains(t, err, "negative rotation setting")
}

func TestFile_WriteCreatesDirectory(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	f, err := New(FileConfig{Filename: filename})
	require.NoError(t, err)

	_, err = f.Write([]byte("first line\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "first line\n", string(data))
	assert.Equal(t, filename, f.Filename())
}

func TestFile_SizeRotation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := New(FileConfig{Filename: filename, MaxSizeMB: 1})
	require.NoError(t, err)
	defer f.Close()

	line := append(bytes.Repeat([]byte("s"), 1023), '\n')
	for i := 0; i < 1100; i++ {
		_, err := f.Write(line)
		require.NoError(t, err)
	}

	assert.NotEmpty(t, backups(t, filename), "writing more than MaxSizeMB rotates")
}

func TestFile_RotateInterval(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := New(FileConfig{Filename: filename, RotateInterval: time.Hour})
	require.NoError(t, err)
	defer f.Close()

	now := time.Now()
	f.now = func() time.Time { return now }

	_, err = f.Write([]byte("first\n"))
	require.NoError(t, err)
	assert.Empty(t, backups(t, filename))

	now = now.Add(2 * time.Hour)
	_, err = f.Write([]byte("second\n"))
	require.NoError(t, err)
	assert.Len(t, backups(t, filename), 1)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestFile_Rotate(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := New(FileConfig{Filename: filename})
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("before\n"))
	require.NoError(t, err)
	require.NoError(t, f.Rotate())
	_, err = f.Write([]byte("after\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "after\n", string(data))
	assert.Len(t, backups(t, filename), 1)
}

package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestManager(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	require.NoError(t, err)

	assert.Empty(t, manager.existing)
	assert.False(t, manager.Exists("leetcode_results.csv"))

	path, err := manager.Save("leetcode_results.csv", writeString("Roll Number\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "leetcode_results.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Roll Number\n", string(content))

	assert.True(t, manager.Exists("leetcode_results.csv"))
	assert.Len(t, manager.existing, 1)

	// Overwrites in place
	_, err = manager.Save("leetcode_results.csv", writeString("second\n"))
	require.NoError(t, err)
	content, _ = os.ReadFile(path)
	assert.Equal(t, "second\n", string(content))
	assert.Len(t, manager.existing, 1)

	// Scanning picks up exports created outside the manager
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "manual.xlsx"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0644))

	manager2, err := NewManager(tempDir)
	require.NoError(t, err)
	assert.Len(t, manager2.existing, 2)
	assert.False(t, manager2.existing["notes.txt"])
	assert.True(t, manager2.Exists("manual.xlsx"))
}

func TestManagerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	manager, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.csv"), manager.Path("a.csv"))
	assert.DirExists(t, dir)
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	tempDir := t.TempDir()
	manager, err := NewManager(tempDir)
	require.NoError(t, err)

	_, err = manager.Save("broken.csv", func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("encoder failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoder failed")

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, manager.Exists("broken.csv"))
}

func TestSaveRejectsPaths(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.csv", "sub/dir.csv"} {
		_, err := manager.Save(name, writeString("x"))
		assert.Error(t, err, name)
	}
}

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	testFile := filepath.Join(root, "b.txt")
	content := []byte("hello world")

	require.NoError(t, fsys.WriteFile(testFile, content, 0644))
	require.NoError(t, fsys.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "b.txt", info.Name())
	assert.Equal(t, int64(len(content)), info.Size())

	got, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, fsys.MkdirAll(filepath.Join(root, "sub", "dir"), 0755))

	entries, err := fsys.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "b.txt", entries[1].Name())
	assert.Equal(t, "sub", entries[2].Name())
	assert.True(t, entries[2].IsDir())

	_, err = fsys.ReadFile(filepath.Join(root, "sub"))
	assert.Error(t, err)

	moved := filepath.Join(root, "sub", "moved.txt")
	require.NoError(t, fsys.Rename(testFile, moved))
	_, err = fsys.Lstat(moved)
	require.NoError(t, err)

	require.NoError(t, fsys.Remove(moved))
	_, err = fsys.Stat(moved)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fsys.RemoveAll(filepath.Join(root, "sub")))
	_, err = fsys.Stat(filepath.Join(root, "sub"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestNewMemory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/work", 0755))
	exerciseFS(t, fsys, "/work")
}

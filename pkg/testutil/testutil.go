package testutil

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/liscaf/pkg/types"
)

// WriteTree creates root and one file per entry of files. Keys are
// slash-separated paths relative to root; parent directories are created
// as needed.
func WriteTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()

	if err := fsys.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", root, err)
	}
	for rel, content := range files {
		CreateFile(t, fsys, root, rel, content)
	}
}

// CreateFile writes content to dir/rel, creating parent directories.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, fsys types.FS, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// ReadFile reads the content of a file and returns it as a string.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()

	content, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// FileExists checks if a file exists and is not a directory.
func FileExists(t *testing.T, fsys types.FS, path string) bool {
	t.Helper()

	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(t *testing.T, fsys types.FS, path string) bool {
	t.Helper()

	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fsys types.FS, path, expected string) {
	t.Helper()

	if !FileExists(t, fsys, path) {
		t.Fatalf("File %s does not exist", path)
	}
	if actual := ReadFile(t, fsys, path); actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertNoFile checks that nothing exists at path.
func AssertNoFile(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	if _, err := fsys.Lstat(path); !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("%s exists but should not", path)
	}
}

// Snapshot returns every regular file under root keyed by its
// slash-separated relative path. Directories appear with a trailing slash
// and empty content.
func Snapshot(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to list %s: %v", dir, err)
		}
		for _, e := range entries {
			childRel := e.Name()
			if rel != "" {
				childRel = rel + "/" + e.Name()
			}
			child := filepath.Join(dir, e.Name())
			if e.IsDir() {
				out[childRel+"/"] = ""
				walk(child, childRel)
				continue
			}
			out[childRel] = ReadFile(t, fsys, child)
		}
	}
	walk(root, "")
	return out
}

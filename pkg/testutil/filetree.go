package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FileTree represents a directory structure for testing. String values are
// file contents, nested FileTree values are directories.
type FileTree map[string]interface{}

// Executable marks a file that should be written with mode 0755
type Executable string

// CreateFileTree recursively creates tree below basePath
func CreateFileTree(t *testing.T, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			writeFile(t, fullPath, v, 0644)
		case Executable:
			writeFile(t, fullPath, string(v), 0755)
		case FileTree:
			if err := os.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			CreateFileTree(t, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// TempTree creates tree in a fresh temporary directory and returns its path
func TempTree(t *testing.T, tree FileTree) string {
	t.Helper()
	dir := t.TempDir()
	CreateFileTree(t, dir, tree)
	return dir
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/maidsweep/pkg/filesystem"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/spf13/afero"
)

// FileTree represents a directory structure for testing. String values are
// file contents, FileTree values are subdirectories.
type FileTree map[string]interface{}

// WriteTree creates tree under root on the real filesystem
func WriteTree(t *testing.T, root string, tree FileTree) {
	t.Helper()
	createFileTree(t, afero.NewOsFs(), root, tree)
}

// MemTree builds tree under root in a fresh in-memory filesystem
func MemTree(t *testing.T, root string, tree FileTree) types.FS {
	t.Helper()

	mem := afero.NewMemMapFs()
	if err := mem.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}
	createFileTree(t, mem, root, tree)
	return filesystem.NewAferoFS(mem)
}

func createFileTree(t *testing.T, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := afero.WriteFile(fs, fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, os.FileMode(0755)); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

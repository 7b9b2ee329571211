//go:build unix

package filesys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHostFileSystem(t *testing.T) {
	exerciseFileSystem(t, NewHostFileSystem(t.TempDir()))
}

func TestHostFileSystem_StaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	fs := NewHostFileSystem(root)

	if err := fs.Create("../../escape.swp", 16); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.swp")); err != nil {
		t.Errorf("Expected file to be created inside root: %v", err)
	}
}

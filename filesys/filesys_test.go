package filesys

import (
	"errors"
	"io"
	"testing"
)

// exerciseFileSystem corre el mismo contrato contra cualquier implementación.
func exerciseFileSystem(t *testing.T, fs FileSystem) {
	t.Helper()

	if err := fs.Create("halt.swp", 300); err != nil {
		t.Fatalf("Expected no error creating file, got %v", err)
	}

	file, err := fs.Open("halt.swp")
	if err != nil {
		t.Fatalf("Expected no error opening file, got %v", err)
	}

	if file.Length() != 300 {
		t.Errorf("Expected length 300, got %d", file.Length())
	}

	if _, err := file.Write([]byte("pagina0")); err != nil {
		t.Fatalf("Expected no error writing, got %v", err)
	}
	if _, err := file.Write([]byte("+")); err != nil {
		t.Fatalf("Expected no error writing, got %v", err)
	}
	if _, err := file.WriteAt([]byte("pagina2"), 256); err != nil {
		t.Fatalf("Expected no error writing at offset, got %v", err)
	}

	buf := make([]byte, 8)
	if err := ReadFull(file, buf, 0); err != nil {
		t.Fatalf("Expected no error reading, got %v", err)
	}
	if string(buf) != "pagina0+" {
		t.Errorf("Expected %q, got %q", "pagina0+", buf)
	}

	tail := make([]byte, 100)
	n, err := file.ReadAt(tail, 256)
	if n != 44 || !errors.Is(err, io.EOF) {
		t.Errorf("Expected short read of 44 bytes with EOF, got %d (%v)", n, err)
	}
	if string(tail[:7]) != "pagina2" {
		t.Errorf("Expected %q, got %q", "pagina2", tail[:7])
	}

	if err := file.Close(); err != nil {
		t.Errorf("Expected no error closing, got %v", err)
	}
	if _, err := file.ReadAt(buf, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed after close, got %v", err)
	}

	if _, err := fs.Open("noexiste.swp"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := fs.Remove("halt.swp"); err != nil {
		t.Errorf("Expected no error removing, got %v", err)
	}
	if _, err := fs.Open("halt.swp"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after remove, got %v", err)
	}
}

func TestMemFileSystem(t *testing.T) {
	exerciseFileSystem(t, NewMemFileSystem())
}

func TestMemFileSystem_WriteFile(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.WriteFile("prog", []byte("contenido")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	file, _ := fs.Open("prog")
	defer file.Close()
	if file.Length() != int64(len("contenido")) {
		t.Errorf("Expected length %d, got %d", len("contenido"), file.Length())
	}
}

func TestMemFileSystem_InvalidCreate(t *testing.T) {
	fs := NewMemFileSystem()
	if err := fs.Create("", 10); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
}

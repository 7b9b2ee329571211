package filesys

import (
	"fmt"
	"io"
	"sync"
)

// MemFileSystem guarda los archivos en memoria. Es el que usan los tests y el modo sin disco del kernel.
type MemFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memData
}

type memData struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{files: make(map[string]*memData)}
}

func (fs *MemFileSystem) Create(name string, size int64) error {
	if name == "" || size < 0 {
		return fmt.Errorf("%w: %q (size %d)", ErrInvalidName, name, size)
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.files[name] = &memData{data: make([]byte, size)}
	return nil
}

func (fs *MemFileSystem) Open(name string) (OpenFile, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, ok := fs.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &memFile{file: data}, nil
}

func (fs *MemFileSystem) Remove(name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.files[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(fs.files, name)
	return nil
}

// WriteFile crea name con el contenido dado. Lo usan los tests para cargar ejecutables.
func (fs *MemFileSystem) WriteFile(name string, content []byte) error {
	if err := fs.Create(name, 0); err != nil {
		return err
	}
	file, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(content)
	return err
}

type memFile struct {
	file   *memData
	pos    int64
	closed bool
}

func (f *memFile) ReadAt(p []byte, off int64) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	f.file.mu.RLock()
	defer f.file.mu.RUnlock()

	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= int64(len(f.file.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.file.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *memFile) WriteAt(p []byte, off int64) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	f.file.mu.Lock()
	defer f.file.mu.Unlock()

	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	end := off + int64(len(p))
	if end > int64(len(f.file.data)) {
		grown := make([]byte, end)
		copy(grown, f.file.data)
		f.file.data = grown
	}
	return copy(f.file.data[off:end], p), nil
}

func (f *memFile) Write(p []byte) (int, error) {
	n, err := f.WriteAt(p, f.pos)
	f.pos += int64(n)
	return n, err
}

func (f *memFile) Length() int64 {
	f.file.mu.RLock()
	defer f.file.mu.RUnlock()
	return int64(len(f.file.data))
}

func (f *memFile) Close() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true
	return nil
}

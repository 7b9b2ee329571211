//go:build unix

package filesys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// HostFileSystem guarda los archivos como archivos reales bajo root, usando las
// syscalls del host directamente (pread/pwrite), igual que el stub de Nachos.
type HostFileSystem struct {
	root string
}

func NewHostFileSystem(root string) *HostFileSystem {
	return &HostFileSystem{root: root}
}

// path resuelve name dentro de root; los ".." no pueden salir de root.
func (h *HostFileSystem) path(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidName
	}
	return filepath.Join(h.root, filepath.Clean("/"+name)), nil
}

func (h *HostFileSystem) Create(name string, size int64) error {
	path, err := h.path(name)
	if err != nil || size < 0 {
		return fmt.Errorf("%w: %q (size %d)", ErrInvalidName, name, size)
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_TRUNC|unix.O_CLOEXEC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, size); err != nil {
		return fmt.Errorf("truncate %s: %w", path, err)
	}
	return nil
}

func (h *HostFileSystem) Open(name string) (OpenFile, error) {
	path, err := h.path(name)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &hostFile{fd: fd, name: path}, nil
}

func (h *HostFileSystem) Remove(name string) error {
	path, err := h.path(name)
	if err != nil {
		return err
	}
	if err := unix.Unlink(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

type hostFile struct {
	fd   int
	name string
	pos  int64
}

func (f *hostFile) ReadAt(p []byte, off int64) (int, error) {
	if f.fd < 0 {
		return 0, ErrClosed
	}
	done := 0
	for done < len(p) {
		n, err := unix.Pread(f.fd, p[done:], off+int64(done))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return done, fmt.Errorf("pread %s: %w", f.name, err)
		}
		if n == 0 {
			return done, io.EOF
		}
		done += n
	}
	return done, nil
}

func (f *hostFile) WriteAt(p []byte, off int64) (int, error) {
	if f.fd < 0 {
		return 0, ErrClosed
	}
	done := 0
	for done < len(p) {
		n, err := unix.Pwrite(f.fd, p[done:], off+int64(done))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return done, fmt.Errorf("pwrite %s: %w", f.name, err)
		}
		done += n
	}
	return done, nil
}

func (f *hostFile) Write(p []byte) (int, error) {
	n, err := f.WriteAt(p, f.pos)
	f.pos += int64(n)
	return n, err
}

func (f *hostFile) Length() int64 {
	if f.fd < 0 {
		return 0
	}
	var st unix.Stat_t
	if err := unix.Fstat(f.fd, &st); err != nil {
		return 0
	}
	return st.Size
}

func (f *hostFile) Close() error {
	if f.fd < 0 {
		return ErrClosed
	}
	err := unix.Close(f.fd)
	f.fd = -1
	return err
}

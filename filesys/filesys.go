// Package filesys define el sistema de archivos que usa el kernel para leer ejecutables
// y guardar los archivos de swap, con una implementación en memoria y otra sobre el
// sistema de archivos del host.
package filesys

import (
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
	ErrClosed      = errors.New("file already closed")
)

// OpenFile es un archivo abierto. ReadAt y WriteAt no mueven la posición; Write escribe
// en la posición actual y la avanza.
type OpenFile interface {
	io.ReaderAt
	io.WriterAt
	io.Writer
	io.Closer
	Length() int64
}

// FileSystem crea, abre y borra archivos por nombre.
type FileSystem interface {
	// Create crea (o trunca) el archivo name con size bytes en cero.
	Create(name string, size int64) error
	Open(name string) (OpenFile, error)
	Remove(name string) error
}

// ReadFull lee exactamente len(buf) bytes desde off, o devuelve el error de lectura.
func ReadFull(file io.ReaderAt, buf []byte, off int64) error {
	n, err := file.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

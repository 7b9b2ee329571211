package addrspace

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/filesys"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/noff"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/log"
)

// createSwapFile copia al swap todo lo que sigue al encabezado del ejecutable.
func (as *AddrSpace) createSwapFile(executable filesys.OpenFile) error {
	payloadSize := executable.Length() - noff.HeaderSize
	payload := make([]byte, payloadSize)
	if err := filesys.ReadFull(executable, payload, noff.HeaderSize); err != nil {
		slog.Error("No se pudo leer el ejecutable", "program", as.name, "error", err)
		return fmt.Errorf("no se pudo leer la imagen de %s: %w", as.name, err)
	}

	// Cada espacio tiene su propio swap aunque sea el mismo programa: halt.swp, halt.1.swp, ...
	as.swapFileName = as.sys.Swaps.Reserve(as, as.name, SwapSuffix)
	as.revisionName = services.Stem(as.swapFileName, SwapSuffix) + RevisionSuffix

	if err := as.writeSwapFile(payload); err != nil {
		slog.Error("No se pudo crear el archivo de swap", "swap", as.swapFileName, "error", err)
		as.sys.Swaps.Release(as, as.swapFileName)
		return fmt.Errorf("%w: %s: %w", ErrSwapUnavailable, as.swapFileName, err)
	}

	log.Debug('a', "Archivo de swap creado", "swap", as.swapFileName, "bytes", payloadSize)

	if as.sys.Config.RevisionFile {
		as.createRevisionFile(payload)
	}
	return nil
}

func (as *AddrSpace) writeSwapFile(payload []byte) error {
	fs := as.sys.FileSystem
	if err := fs.Create(as.swapFileName, int64(len(payload))); err != nil {
		return err
	}

	swap, err := fs.Open(as.swapFileName)
	if err != nil {
		return err
	}
	if _, err := swap.Write(payload); err != nil {
		swap.Close()
		return err
	}
	return swap.Close()
}

// createRevisionFile guarda los primeros bytes de la imagen para poder inspeccionarlos.
// Es solo diagnóstico: si falla se loguea y la carga sigue.
func (as *AddrSpace) createRevisionFile(payload []byte) {
	name := as.revisionName
	content := payload[:min(len(payload), RevisionSize)]

	if err := as.sys.FileSystem.Create(name, int64(len(content))); err != nil {
		slog.Warn("No se pudo crear el archivo de revisión", "file", name, "error", err)
		return
	}
	file, err := as.sys.FileSystem.Open(name)
	if err != nil {
		slog.Warn("No se pudo abrir el archivo de revisión", "file", name, "error", err)
		return
	}
	defer file.Close()

	if _, err := file.Write(content); err != nil {
		slog.Warn("No se pudo escribir el archivo de revisión", "file", name, "error", err)
	}
}

func (as *AddrSpace) openSwapFile() (filesys.OpenFile, error) {
	swap, err := as.sys.FileSystem.Open(as.swapFileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSwapUnavailable, as.swapFileName, err)
	}
	return swap, nil
}

// RemoveSwapFile borra el swap (y el archivo de revisión, si hay). Se usa al terminar el proceso.
// Si el nombre ya lo tomó otro espacio (este fue destruido y se cargó otro), no borra nada.
func (as *AddrSpace) RemoveSwapFile() error {
	if owner, taken := as.sys.Swaps.Owner(as.swapFileName); taken && owner != as {
		slog.Debug("El swap pertenece a otro espacio, no se borra", "swap", as.swapFileName, "owner", owner.Name())
		return nil
	}

	fs := as.sys.FileSystem
	if err := fs.Remove(as.swapFileName); err != nil && !errors.Is(err, filesys.ErrNotFound) {
		return fmt.Errorf("no se pudo borrar %s: %w", as.swapFileName, err)
	}
	if as.sys.Config.RevisionFile {
		if err := fs.Remove(as.revisionName); err != nil && !errors.Is(err, filesys.ErrNotFound) {
			return fmt.Errorf("no se pudo borrar %s: %w", as.revisionName, err)
		}
	}
	return nil
}

// Package addrspace administra el espacio de direcciones de un programa de usuario: decodifica
// el ejecutable NOFF, arma la tabla de páginas, crea el archivo de swap y atiende los fallos de
// página trayendo páginas desde el swap a marcos de la memoria física.
package addrspace

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/filesys"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/noff"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/log"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/numeric"
)

const (
	// StackGuard es el margen que se deja entre el tope del espacio y el puntero de pila inicial.
	StackGuard = 16

	SwapSuffix     = ".swp"
	RevisionSuffix = ".rev"
	RevisionSize   = 32
)

var (
	ErrTooLarge          = errors.New("address space too large for physical memory")
	ErrAddressOutOfRange = errors.New("virtual address out of range")
	ErrSwapUnavailable   = errors.New("swap file unavailable")
	ErrDestroyed         = errors.New("address space destroyed")
)

// faultLock serializa la atención de fallos, los desalojos y la destrucción de todos los espacios.
// Un desalojo modifica la tabla de páginas de otro espacio, por eso el lock es global.
var faultLock sync.Mutex

type AddrSpace struct {
	name         string
	header       noff.Header
	numPages     int
	pageTable    []cpuModels.TranslationEntry
	swapFileName string
	revisionName string
	sys          *services.System
	destroyed    bool
}

// New crea el espacio de direcciones del ejecutable ya abierto.
//
// Parámetros:
//   - executable: el archivo NOFF; no se cierra.
//   - programName: ruta del programa, el swap se llama como su último componente más ".swp".
//   - sys: máquina, tabla de marcos y filesystem compartidos.
//
// Ejemplo:
//
//	func main() {
//		sys, _ := services.Boot(models.Config{FileSystem: "memory"})
//		exe, _ := sys.FileSystem.Open("halt")
//		space, err := addrspace.New(exe, "halt", sys)
//		if err != nil {
//			panic(err)
//		}
//		space.InitRegisters()
//		space.RestoreState()
//	}
func New(executable filesys.OpenFile, programName string, sys *services.System) (*AddrSpace, error) {
	header, err := noff.ReadHeader(executable)
	if err != nil {
		slog.Error("Ejecutable inválido", "program", programName, "error", err)
		return nil, fmt.Errorf("no se pudo cargar %s: %w", programName, err)
	}

	pageSize := sys.Machine.PageSize()
	numPages := numeric.DivRoundUp(header.Size()+sys.Config.UserStackSize, pageSize)

	space := &AddrSpace{
		name:     filepath.Base(programName),
		header:   header,
		numPages: numPages,
		sys:      sys,
	}

	if err := space.checkCapacity(); err != nil {
		slog.Error("Espacio de direcciones rechazado", "program", space.name, "pages", numPages, "error", err)
		return nil, err
	}

	log.Debug('a', "Tamaño del proceso", "program", space.name, "bytes", header.Size())
	log.Debug('a', "Cantidad de páginas", "program", space.name, "pages", numPages)
	log.Debug('a', "Memoria asignada", "program", space.name, "bytes", numPages*pageSize)

	if err := space.createSwapFile(executable); err != nil {
		return nil, err
	}

	space.pageTable = make([]cpuModels.TranslationEntry, numPages)
	for i := range space.pageTable {
		space.pageTable[i] = cpuModels.TranslationEntry{VirtualPage: i, PhysicalPage: i}
	}

	if sys.Config.LoadPolicy == models.LoadEager {
		if err := space.loadAll(executable); err != nil {
			slog.Error("Falló la carga del programa", "program", space.name, "error", err)
			space.Destroy()
			if err := space.RemoveSwapFile(); err != nil {
				slog.Warn("No se pudo borrar el swap", "swap", space.swapFileName, "error", err)
			}
			return nil, err
		}
	}

	slog.Info(fmt.Sprintf("## Espacio de direcciones creado - Programa: %s - Páginas: %d - Swap: %s",
		space.name, numPages, space.swapFileName))
	return space, nil
}

// Load abre programName en el filesystem del sistema, crea su espacio y cierra el ejecutable.
func Load(programName string, sys *services.System) (*AddrSpace, error) {
	executable, err := sys.FileSystem.Open(programName)
	if err != nil {
		slog.Error("No se pudo abrir el ejecutable", "program", programName, "error", err)
		return nil, fmt.Errorf("no se pudo abrir %s: %w", programName, err)
	}
	defer executable.Close()

	return New(executable, programName, sys)
}

func (as *AddrSpace) checkCapacity() error {
	frames := as.sys.Machine.NumPhysPages()
	if as.sys.Config.Replacement == models.ReplacementNone && as.numPages > frames {
		return fmt.Errorf("%w: %d páginas, %d marcos", ErrTooLarge, as.numPages, frames)
	}
	if as.sys.Config.LoadPolicy == models.LoadEager {
		if free := as.sys.Frames.FreeCount(); as.numPages > free {
			return fmt.Errorf("%w: %d páginas, %d marcos libres", ErrTooLarge, as.numPages, free)
		}
	}
	return nil
}

// loadAll asigna un marco en cero a cada página y copia el código y los datos inicializados a
// sus direcciones virtuales. Los datos sin inicializar y la pila quedan en cero.
func (as *AddrSpace) loadAll(executable filesys.OpenFile) error {
	faultLock.Lock()
	defer faultLock.Unlock()

	for vpn := range as.pageTable {
		frame, err := as.allocateFrame(vpn)
		if err != nil {
			return err
		}
		clear(as.sys.Machine.Frame(frame))

		entry := &as.pageTable[vpn]
		entry.PhysicalPage = frame
		entry.Valid = true
		entry.Use = false
		// El swap guarda la imagen tal cual está en el archivo; si la página se desaloja hay
		// que escribir lo cargado.
		entry.Dirty = true
	}

	for _, segment := range []noff.Segment{as.header.Code, as.header.InitData} {
		if segment.Size == 0 {
			continue
		}
		if err := as.copySegment(executable, segment); err != nil {
			return err
		}
	}
	return nil
}

// copySegment lee el segmento desde InFileAddr y lo escribe en VirtualAddr a través de la
// tabla de páginas, página por página.
func (as *AddrSpace) copySegment(executable filesys.OpenFile, segment noff.Segment) error {
	data := make([]byte, segment.Size)
	if err := filesys.ReadFull(executable, data, int64(segment.InFileAddr)); err != nil {
		return fmt.Errorf("no se pudo leer el segmento en %d de %s: %w", segment.InFileAddr, as.name, err)
	}

	pageSize := as.sys.Machine.PageSize()
	start := int(segment.VirtualAddr)
	if start+len(data) > as.numPages*pageSize {
		return fmt.Errorf("%w: segmento [%d, %d) en %s", ErrAddressOutOfRange, start, start+len(data), as.name)
	}

	for done := 0; done < len(data); {
		address := start + done
		offset := address % pageSize
		n := min(pageSize-offset, len(data)-done)
		frame := as.sys.Machine.Frame(as.pageTable[address/pageSize].PhysicalPage)
		copy(frame[offset:offset+n], data[done:done+n])
		done += n
	}

	log.Debug('a', "Segmento cargado", "program", as.name, "virtual_addr", start, "in_file_addr", segment.InFileAddr, "bytes", len(data))
	return nil
}

// Destroy libera los marcos del espacio y su tabla de páginas. El archivo de swap queda en el
// filesystem; ver RemoveSwapFile.
func (as *AddrSpace) Destroy() {
	faultLock.Lock()
	defer faultLock.Unlock()

	if as.destroyed {
		return
	}

	released := as.sys.Frames.FreeOwner(as)
	as.sys.Swaps.Release(as, as.swapFileName)
	machine := as.sys.Machine
	if as.isBound() {
		machine.PageTable = nil
		machine.PageTableSize = 0
	}
	as.pageTable = nil
	as.destroyed = true

	slog.Info(fmt.Sprintf("## Espacio de direcciones destruido - Programa: %s - Marcos liberados: %d", as.name, released))
}

// isBound indica si la tabla de páginas de este espacio es la activa en la máquina.
func (as *AddrSpace) isBound() bool {
	table := as.sys.Machine.PageTable
	return len(table) > 0 && len(as.pageTable) > 0 && &table[0] == &as.pageTable[0]
}

// Name devuelve el nombre base del programa. Identifica al dueño de los marcos.
func (as *AddrSpace) Name() string { return as.name }

func (as *AddrSpace) NumPages() int { return as.numPages }

func (as *AddrSpace) Header() noff.Header { return as.header }

func (as *AddrSpace) SwapFileName() string { return as.swapFileName }

// PageTable devuelve la tabla de páginas del espacio (no una copia).
func (as *AddrSpace) PageTable() []cpuModels.TranslationEntry { return as.pageTable }

// Entries devuelve una copia de la tabla de páginas tomada bajo el lock de fallos.
func (as *AddrSpace) Entries() []cpuModels.TranslationEntry {
	faultLock.Lock()
	defer faultLock.Unlock()

	entries := make([]cpuModels.TranslationEntry, len(as.pageTable))
	copy(entries, as.pageTable)
	return entries
}

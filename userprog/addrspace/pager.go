package addrspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/log"
)

// SwapIn trae desde el swap la página que contiene faultAddr. Si la página ya está en memoria
// no hace nada. Si no hay marcos libres desaloja una víctima según el algoritmo de reemplazo.
func (as *AddrSpace) SwapIn(faultAddr int) error {
	faultLock.Lock()
	defer faultLock.Unlock()

	return as.swapIn(faultAddr)
}

// SwapInFault atiende el último fallo de página: la dirección la deja la MMU en BadVAddrReg.
func (as *AddrSpace) SwapInFault() error {
	return as.SwapIn(as.sys.Machine.ReadRegister(cpuModels.BadVAddrReg))
}

func (as *AddrSpace) swapIn(faultAddr int) error {
	if as.destroyed {
		return ErrDestroyed
	}

	pageSize := as.sys.Machine.PageSize()
	if faultAddr < 0 || faultAddr/pageSize >= as.numPages {
		return fmt.Errorf("%w: %d (%s tiene %d páginas)", ErrAddressOutOfRange, faultAddr, as.name, as.numPages)
	}

	vpn := faultAddr / pageSize
	entry := &as.pageTable[vpn]
	if entry.Valid {
		return nil
	}

	// Se abre el swap antes de pedir marco para no perder uno si el archivo no está.
	swap, err := as.openSwapFile()
	if err != nil {
		slog.Error("Fallo de página sin swap", "program", as.name, "page", vpn, "error", err)
		return err
	}
	defer swap.Close()

	frame, err := as.allocateFrame(vpn)
	if err != nil {
		return err
	}

	memory := as.sys.Machine.Frame(frame)
	clear(memory)
	n, err := swap.ReadAt(memory, int64(vpn*pageSize))
	if err != nil && !errors.Is(err, io.EOF) {
		as.sys.Frames.Free(frame)
		return fmt.Errorf("no se pudo leer la página %d de %s: %w", vpn, as.swapFileName, err)
	}

	entry.PhysicalPage = frame
	entry.Valid = true
	entry.Use = false
	entry.Dirty = false

	log.Debug('p', "Página cargada desde swap", "program", as.name, "page", vpn, "frame", frame, "bytes", n)
	return nil
}

// allocateFrame pide un marco y, si no hay, desaloja la víctima que elige la tabla de marcos.
func (as *AddrSpace) allocateFrame(vpn int) (int, error) {
	frames := as.sys.Frames

	frame, err := frames.Allocate(as, vpn)
	if !errors.Is(err, services.ErrNoFreeFrames) {
		return frame, err
	}

	victim, err := frames.Victim(referenced)
	if err != nil {
		return -1, fmt.Errorf("sin marcos para la página %d de %s (%s): %w", vpn, as.name, frames.Replacement(), err)
	}
	owner, ok := victim.Owner.(*AddrSpace)
	if !ok {
		return -1, fmt.Errorf("marco %d ocupado por un dueño desconocido %T", victim.Number, victim.Owner)
	}

	log.Debug('p', "Reemplazo de página", "frame", victim.Number,
		"victim", owner.name, "victim_page", victim.VirtualPage, "program", as.name, "page", vpn)

	if err := owner.swapOut(victim.VirtualPage); err != nil {
		return -1, fmt.Errorf("no se pudo desalojar el marco %d: %w", victim.Number, err)
	}
	return frames.Allocate(as, vpn)
}

// referenced devuelve el bit de uso de la página que ocupa el marco y lo limpia (CLOCK).
func referenced(frame models.Frame) bool {
	owner, ok := frame.Owner.(*AddrSpace)
	if !ok || frame.VirtualPage < 0 || frame.VirtualPage >= len(owner.pageTable) {
		return false
	}
	entry := &owner.pageTable[frame.VirtualPage]
	used := entry.Use
	entry.Use = false
	return used
}

// SwapOut desaloja la página vpn: si fue modificada la escribe en el swap, la marca inválida y
// devuelve el marco. Una página que no está en memoria no se toca.
func (as *AddrSpace) SwapOut(vpn int) error {
	faultLock.Lock()
	defer faultLock.Unlock()

	return as.swapOut(vpn)
}

func (as *AddrSpace) swapOut(vpn int) error {
	if as.destroyed {
		return ErrDestroyed
	}
	if vpn < 0 || vpn >= as.numPages {
		return fmt.Errorf("%w: página %d (%s tiene %d páginas)", ErrAddressOutOfRange, vpn, as.name, as.numPages)
	}

	entry := &as.pageTable[vpn]
	if !entry.Valid {
		return nil
	}
	frame := entry.PhysicalPage

	if entry.Dirty {
		if err := as.writeBack(vpn, frame); err != nil {
			return err
		}
	}

	entry.Valid = false
	entry.Use = false
	entry.Dirty = false
	entry.PhysicalPage = vpn

	log.Debug('p', "Página desalojada", "program", as.name, "page", vpn, "frame", frame)
	return as.sys.Frames.Free(frame)
}

func (as *AddrSpace) writeBack(vpn, frame int) error {
	swap, err := as.openSwapFile()
	if err != nil {
		return err
	}

	pageSize := as.sys.Machine.PageSize()
	if _, err := swap.WriteAt(as.sys.Machine.Frame(frame), int64(vpn*pageSize)); err != nil {
		swap.Close()
		return fmt.Errorf("no se pudo escribir la página %d en %s: %w", vpn, as.swapFileName, err)
	}
	return swap.Close()
}

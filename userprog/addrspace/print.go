package addrspace

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
)

// PrintPageTable escribe la tabla de páginas, una fila por entrada.
func (as *AddrSpace) PrintPageTable(w io.Writer) error {
	return FormatPageTable(w, as.name, as.Entries())
}

// FormatPageTable escribe entries con el formato de PrintPageTable. El kernel lo usa para las
// tablas que recibe del módulo de memoria.
func FormatPageTable(w io.Writer, name string, entries []cpuModels.TranslationEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Tabla de páginas de %s (%d páginas)\n", name, len(entries))
	fmt.Fprintln(tw, "VirtualPage\tPhysicalPage\tValid\tUse\tDirty\tReadOnly")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%d\t%d\t%t\t%t\t%t\t%t\n",
			entry.VirtualPage, entry.PhysicalPage, entry.Valid, entry.Use, entry.Dirty, entry.ReadOnly)
	}
	return tw.Flush()
}

// Dump escribe la imagen completa del espacio (NumPages páginas). Las páginas en memoria salen
// de su marco; las demás del swap, con ceros más allá del final del archivo.
func (as *AddrSpace) Dump(w io.Writer) error {
	faultLock.Lock()
	defer faultLock.Unlock()

	if as.destroyed {
		return ErrDestroyed
	}

	swap, err := as.openSwapFile()
	if err != nil {
		return err
	}
	defer swap.Close()

	pageSize := as.sys.Machine.PageSize()
	page := make([]byte, pageSize)
	for vpn, entry := range as.pageTable {
		if entry.Valid {
			copy(page, as.sys.Machine.Frame(entry.PhysicalPage))
		} else {
			clear(page)
			if _, err := swap.ReadAt(page, int64(vpn*pageSize)); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("no se pudo leer la página %d de %s: %w", vpn, as.swapFileName, err)
			}
		}
		if _, err := w.Write(page); err != nil {
			return fmt.Errorf("no se pudo escribir el dump de %s: %w", as.name, err)
		}
	}
	return nil
}

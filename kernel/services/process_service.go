package services

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	cpuServices "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/kernel/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/addrspace"
)

// maxFaultRetries acota los reintentos de un acceso: con reemplazo, la página recién traída
// podría volver a desalojarse antes del reintento.
const maxFaultRetries = 3

// StartProcess carga el programa en la máquina local, lo deja listo para correr y ejecuta las
// acciones pedidas por línea de comandos.
func StartProcess(sys *services.System, opts models.RunOptions, out io.Writer) (*addrspace.AddrSpace, error) {
	space, err := addrspace.Load(opts.Program, sys)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("## Se crea el proceso - Programa: %s - Páginas: %d", space.Name(), space.NumPages()))

	space.InitRegisters()
	space.RestoreState()

	for _, address := range opts.Touch {
		word, err := FetchWord(sys.Machine, space, address)
		if err != nil {
			return space, err
		}
		fmt.Fprintf(out, "[%d] = %#08x\n", address, word)
	}

	if opts.PrintTable {
		if err := space.PrintPageTable(out); err != nil {
			return space, err
		}
	}

	if opts.DumpFile != "" {
		if err := dumpToFile(space, opts.DumpFile); err != nil {
			return space, err
		}
		slog.Info(fmt.Sprintf("## Memory Dump de %s en %s", space.Name(), opts.DumpFile))
	}

	if opts.MapFile != "" {
		if err := sys.Frames.SaveFrameMap(opts.MapFile); err != nil {
			return space, fmt.Errorf("no se pudo guardar el mapa de marcos: %w", err)
		}
	}

	stats := sys.Machine.Stats
	slog.Info(fmt.Sprintf("## Estadísticas - Traducciones: %d - Fallos de página: %d", stats.Translations, stats.PageFaults))
	return space, nil
}

// FetchWord lee una palabra de la memoria del proceso activo. Ante un fallo de página lo atiende
// con SwapInFault y reintenta el acceso.
func FetchWord(machine *cpuModels.Machine, space *addrspace.AddrSpace, address int) (uint32, error) {
	buf := make([]byte, cpuModels.InstructionWidth)
	for attempt := 0; ; attempt++ {
		err := cpuServices.ReadMem(machine, address, buf)
		if err == nil {
			return binary.LittleEndian.Uint32(buf), nil
		}
		if !errors.Is(err, cpuModels.ErrPageFault) || attempt == maxFaultRetries {
			return 0, fmt.Errorf("no se pudo leer la dirección %d: %w", address, err)
		}

		slog.Debug("Fallo de página", "address", machine.ReadRegister(cpuModels.BadVAddrReg))
		if err := space.SwapInFault(); err != nil {
			return 0, err
		}
	}
}

func dumpToFile(space *addrspace.AddrSpace, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error al crear archivo de dump: %w", err)
	}
	if err := space.Dump(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

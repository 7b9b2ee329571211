package services

import (
	"fmt"
	"log/slog"
	"os"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/filesys"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
)

// System agrupa el estado global que comparten todos los espacios de direcciones.
type System struct {
	Config     models.Config
	Machine    *cpuModels.Machine
	Frames     *FrameManager
	FileSystem filesys.FileSystem
	Swaps      *SwapRegistry
}

// Boot crea la máquina, la tabla de marcos y el sistema de archivos a partir de la configuración.
func Boot(config models.Config) (*System, error) {
	config.ApplyDefaults()

	fs, err := newFileSystem(config)
	if err != nil {
		return nil, err
	}

	machine := cpuModels.NewMachine(config.MachineConfig)
	slog.Debug("Memoria inicializada",
		"page_size", machine.PageSize(),
		"frames", machine.NumPhysPages(),
		"tamaño", machine.MemorySize())

	return &System{
		Config:     config,
		Machine:    machine,
		Frames:     NewFrameManager(machine.NumPhysPages(), config.Replacement),
		FileSystem: fs,
		Swaps:      NewSwapRegistry(),
	}, nil
}

func newFileSystem(config models.Config) (filesys.FileSystem, error) {
	if config.FileSystem == models.FileSystemMemory {
		return filesys.NewMemFileSystem(), nil
	}

	if err := os.MkdirAll(config.FileSystemRoot, os.ModePerm); err != nil {
		return nil, fmt.Errorf("no se pudo crear la raíz del filesystem %s: %w", config.FileSystemRoot, err)
	}
	return filesys.NewHostFileSystem(config.FileSystemRoot), nil
}

package models

import (
	memoryModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
)

type Config struct {
	IpMemory   string              `json:"ip_memory"`
	PortMemory int                 `json:"port_memory"`
	LogLevel   string              `json:"log_level"`
	DebugFlags string              `json:"debug_flags"`
	Memory     memoryModels.Config `json:"memory"`
}

var KernelConfig *Config

// RunOptions son los parámetros de línea de comandos de una ejecución.
type RunOptions struct {
	Program    string
	PrintTable bool
	Touch      []int // Direcciones virtuales a leer a través de la MMU
	DumpFile   string
	MapFile    string
	Remote     bool
}

// Process es el resultado de cargar un programa, local o en el módulo de memoria.
type Process struct {
	PID      uint
	Name     string
	NumPages int
	SwapFile string
}

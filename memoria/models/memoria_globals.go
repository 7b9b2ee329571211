package models

import (
	"strings"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
)

// Políticas de carga de un espacio de direcciones.
const (
	LoadDemand = "DEMAND" // Ninguna página en memoria hasta el primer fallo
	LoadEager  = "EAGER"  // Todas las páginas se cargan al crear el espacio
)

// Algoritmos de reemplazo de marcos.
const (
	ReplacementFIFO  = "FIFO"
	ReplacementClock = "CLOCK"
	ReplacementNone  = "NONE" // Sin reemplazo: sin marcos libres el fallo falla
)

// Tipos de sistema de archivos.
const (
	FileSystemHost   = "HOST"
	FileSystemMemory = "MEMORY"
)

const DefaultUserStackSize = 1024

type Config struct {
	cpuModels.MachineConfig

	PortMemory     int    `json:"port_memory"`
	UserStackSize  int    `json:"user_stack_size"`
	LoadPolicy     string `json:"load_policy"`
	Replacement    string `json:"replacement"`
	FileSystem     string `json:"file_system"`
	FileSystemRoot string `json:"file_system_root"`
	DumpPath       string `json:"dump_path"`
	RevisionFile   bool   `json:"revision_file"`
	LogLevel       string `json:"log_level"`
	DebugFlags     string `json:"debug_flags"`
}

// ApplyDefaults completa los campos vacíos y normaliza las políticas a mayúsculas.
func (c *Config) ApplyDefaults() {
	c.MachineConfig.ApplyDefaults()
	if c.UserStackSize <= 0 {
		c.UserStackSize = DefaultUserStackSize
	}

	c.LoadPolicy = strings.ToUpper(c.LoadPolicy)
	if c.LoadPolicy != LoadEager {
		c.LoadPolicy = LoadDemand
	}

	c.Replacement = strings.ToUpper(c.Replacement)
	switch c.Replacement {
	case ReplacementFIFO, ReplacementClock, ReplacementNone:
	default:
		c.Replacement = ReplacementFIFO
	}

	c.FileSystem = strings.ToUpper(c.FileSystem)
	if c.FileSystem != FileSystemMemory {
		c.FileSystem = FileSystemHost
	}
	if c.FileSystemRoot == "" {
		c.FileSystemRoot = "."
	}
	if c.DumpPath == "" {
		c.DumpPath = "./dumps/"
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

var MemoryConfig *Config

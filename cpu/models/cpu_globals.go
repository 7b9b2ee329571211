package models

import "errors"

// Números de registro de la máquina MIPS simulada.
const (
	StackReg     = 29 // Puntero de pila
	RetAddrReg   = 31 // Dirección de retorno
	NumGPRegs    = 32 // Registros de propósito general
	HiReg        = 32
	LoReg        = 33
	PCReg        = 34 // Program counter
	NextPCReg    = 35 // Próximo PC (delay slot de los saltos)
	PrevPCReg    = 36
	LoadReg      = 37
	LoadValueReg = 38
	BadVAddrReg  = 39 // Dirección que provocó la última excepción
	NumTotalRegs = 40
)

const (
	// InstructionWidth es el tamaño en bytes de una instrucción.
	InstructionWidth = 4

	DefaultPageSize     = 128
	DefaultNumPhysPages = 32
)

// MachineConfig describe el tamaño de la memoria física simulada.
type MachineConfig struct {
	PageSize     int `json:"page_size"`
	NumPhysPages int `json:"num_phys_pages"`
}

// ApplyDefaults completa con los valores de Nachos los campos que vinieron en cero.
func (c *MachineConfig) ApplyDefaults() {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.NumPhysPages <= 0 {
		c.NumPhysPages = DefaultNumPhysPages
	}
}

// DEFINICION DE ERRORES
var (
	ErrPageFault     = errors.New("page fault")
	ErrAddressError  = errors.New("address error")
	ErrReadOnly      = errors.New("read-only page")
	ErrBusError      = errors.New("bus error")
	ErrNoPageTable   = errors.New("no page table bound")
	ErrInvalidLength = errors.New("invalid access length")
)

package addrspace

import (
	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/log"
)

// InitRegisters deja la máquina lista para arrancar el programa en la dirección 0, con la pila
// al final del espacio de direcciones.
func (as *AddrSpace) InitRegisters() {
	machine := as.sys.Machine
	for reg := 0; reg < cpuModels.NumTotalRegs; reg++ {
		machine.WriteRegister(reg, 0)
	}

	machine.WriteRegister(cpuModels.PCReg, 0)
	// El próximo PC va aparte por los delay slots de los saltos.
	machine.WriteRegister(cpuModels.NextPCReg, cpuModels.InstructionWidth)

	sp := as.numPages*machine.PageSize() - StackGuard
	machine.WriteRegister(cpuModels.StackReg, sp)
	log.Debug('a', "Registro de pila inicializado", "program", as.name, "sp", sp)
}

// SaveState no guarda nada: el estado de la CPU lo guarda el hilo.
func (as *AddrSpace) SaveState() {}

// RestoreState hace que la MMU traduzca con la tabla de páginas de este espacio.
func (as *AddrSpace) RestoreState() {
	machine := as.sys.Machine
	machine.PageTable = as.pageTable
	machine.PageTableSize = len(as.pageTable)
}

package handlers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/addrspace"
)

var ErrProcessNotFound = errors.New("process not found")

// ProcessTable asocia cada PID con su espacio de direcciones.
type ProcessTable struct {
	mu        sync.RWMutex
	sys       *services.System
	processes map[uint]*addrspace.AddrSpace
	nextPID   uint
}

func NewProcessTable(sys *services.System) *ProcessTable {
	return &ProcessTable{
		sys:       sys,
		processes: make(map[uint]*addrspace.AddrSpace),
	}
}

func (pt *ProcessTable) System() *services.System {
	return pt.sys
}

// Load crea el espacio de direcciones del programa y le asigna el próximo PID.
func (pt *ProcessTable) Load(programName string) (uint, *addrspace.AddrSpace, error) {
	space, err := addrspace.Load(programName, pt.sys)
	if err != nil {
		return 0, nil, err
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()

	pid := pt.nextPID
	pt.nextPID++
	pt.processes[pid] = space
	return pid, space, nil
}

func (pt *ProcessTable) Get(pid uint) (*addrspace.AddrSpace, error) {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	space, exists := pt.processes[pid]
	if !exists {
		return nil, fmt.Errorf("%w: PID %d", ErrProcessNotFound, pid)
	}
	return space, nil
}

// Remove saca el proceso de la tabla y lo devuelve; no lo destruye.
func (pt *ProcessTable) Remove(pid uint) (*addrspace.AddrSpace, error) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	space, exists := pt.processes[pid]
	if !exists {
		return nil, fmt.Errorf("%w: PID %d", ErrProcessNotFound, pid)
	}
	delete(pt.processes, pid)
	return space, nil
}

func (pt *ProcessTable) Len() int {
	pt.mu.RLock()
	defer pt.mu.RUnlock()
	return len(pt.processes)
}

package models

// Stats son los contadores de la máquina que se muestran al terminar.
type Stats struct {
	Translations int
	PageFaults   int
}

// Machine es la CPU simulada: memoria principal, registros y la tabla de páginas activa.
// Hay una sola CPU y el kernel la usa de a un hilo por vez, por eso no tiene locks.
type Machine struct {
	MainMemory    []byte
	PageTable     []TranslationEntry
	PageTableSize int
	Stats         Stats

	pageSize     int
	numPhysPages int
	registers    [NumTotalRegs]int
}

// NewMachine crea la máquina con la memoria física en cero.
func NewMachine(config MachineConfig) *Machine {
	config.ApplyDefaults()
	return &Machine{
		MainMemory:   make([]byte, config.PageSize*config.NumPhysPages),
		pageSize:     config.PageSize,
		numPhysPages: config.NumPhysPages,
	}
}

func (m *Machine) PageSize() int     { return m.pageSize }
func (m *Machine) NumPhysPages() int { return m.numPhysPages }
func (m *Machine) MemorySize() int   { return len(m.MainMemory) }

// ReadRegister devuelve el valor del registro num. Un número inválido devuelve 0.
func (m *Machine) ReadRegister(num int) int {
	if num < 0 || num >= NumTotalRegs {
		return 0
	}
	return m.registers[num]
}

// WriteRegister escribe value en el registro num. Un número inválido se ignora.
func (m *Machine) WriteRegister(num int, value int) {
	if num < 0 || num >= NumTotalRegs {
		return
	}
	m.registers[num] = value
}

// Frame devuelve la porción de memoria principal que ocupa el marco.
func (m *Machine) Frame(frame int) []byte {
	start := frame * m.pageSize
	return m.MainMemory[start : start+m.pageSize]
}

package services

import (
	"fmt"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/log"
)

// Translate traduce una dirección lógica a física usando la tabla de páginas activa de la máquina.
// Si la página no está en memoria deja la dirección en BadVAddrReg y devuelve un error que
// envuelve models.ErrPageFault; quien llama decide cómo atender el fallo.
func Translate(m *models.Machine, logicalAddress int, writing bool) (int, error) {
	if m.PageTable == nil {
		return -1, models.ErrNoPageTable
	}

	pageSize := m.PageSize()
	m.Stats.Translations++

	if logicalAddress < 0 {
		m.WriteRegister(models.BadVAddrReg, logicalAddress)
		return -1, fmt.Errorf("%w: dirección negativa %d", models.ErrAddressError, logicalAddress)
	}

	pageNumber := logicalAddress / pageSize
	offset := logicalAddress % pageSize

	if pageNumber >= m.PageTableSize {
		m.WriteRegister(models.BadVAddrReg, logicalAddress)
		return -1, fmt.Errorf("%w: página %d fuera de la tabla (%d entradas)", models.ErrAddressError, pageNumber, m.PageTableSize)
	}

	entry := &m.PageTable[pageNumber]
	if !entry.Valid {
		m.WriteRegister(models.BadVAddrReg, logicalAddress)
		m.Stats.PageFaults++
		log.Debug('p', "Fallo de página", "logical", logicalAddress, "page", pageNumber, "offset", offset, "fault", m.Stats.PageFaults)
		return -1, fmt.Errorf("%w: página %d", models.ErrPageFault, pageNumber)
	}

	if writing && entry.ReadOnly {
		m.WriteRegister(models.BadVAddrReg, logicalAddress)
		return -1, fmt.Errorf("%w: página %d", models.ErrReadOnly, pageNumber)
	}

	if entry.PhysicalPage < 0 || entry.PhysicalPage >= m.NumPhysPages() {
		return -1, fmt.Errorf("%w: marco %d", models.ErrBusError, entry.PhysicalPage)
	}

	entry.Use = true
	if writing {
		entry.Dirty = true
	}

	physicalAddress := entry.PhysicalPage*pageSize + offset
	log.Debug('p', "Traducción de dirección", "logical", logicalAddress, "page", pageNumber, "offset", offset,
		"physical", physicalAddress, "fault", m.Stats.PageFaults)

	return physicalAddress, nil
}

// ReadMem lee len(buf) bytes desde la dirección lógica, traduciendo página por página.
func ReadMem(m *models.Machine, logicalAddress int, buf []byte) error {
	return accessMem(m, logicalAddress, len(buf), false, func(physical, done, n int) {
		copy(buf[done:done+n], m.MainMemory[physical:physical+n])
	})
}

// WriteMem escribe data a partir de la dirección lógica, marcando las páginas como sucias.
func WriteMem(m *models.Machine, logicalAddress int, data []byte) error {
	return accessMem(m, logicalAddress, len(data), true, func(physical, done, n int) {
		copy(m.MainMemory[physical:physical+n], data[done:done+n])
	})
}

func accessMem(m *models.Machine, logicalAddress int, length int, writing bool, move func(physical, done, n int)) error {
	if length < 0 {
		return models.ErrInvalidLength
	}

	pageSize := m.PageSize()
	done := 0
	for done < length {
		address := logicalAddress + done
		physical, err := Translate(m, address, writing)
		if err != nil {
			return err
		}
		// No cruzar el límite de la página en una sola copia.
		n := min(pageSize-address%pageSize, length-done)
		move(physical, done, n)
		done += n
	}
	return nil
}

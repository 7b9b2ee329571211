package services

import (
	"errors"
	"testing"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
)

func newTestMachine(entries []models.TranslationEntry) *models.Machine {
	m := models.NewMachine(models.MachineConfig{PageSize: 128, NumPhysPages: 8})
	m.PageTable = entries
	m.PageTableSize = len(entries)
	return m
}

func TestTranslate_ValidPage(t *testing.T) {
	m := newTestMachine([]models.TranslationEntry{
		{VirtualPage: 0, PhysicalPage: 5, Valid: true},
	})

	physical, err := Translate(m, 10, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if physical != 5*128+10 {
		t.Errorf("Expected physical address %d, got %d", 5*128+10, physical)
	}
	if !m.PageTable[0].Use || m.PageTable[0].Dirty {
		t.Errorf("Expected use=true dirty=false, got %+v", m.PageTable[0])
	}
}

func TestTranslate_PageFaultSetsBadVAddr(t *testing.T) {
	m := newTestMachine([]models.TranslationEntry{
		{VirtualPage: 0, PhysicalPage: 0},
		{VirtualPage: 1, PhysicalPage: 1},
	})

	_, err := Translate(m, 130, false)
	if !errors.Is(err, models.ErrPageFault) {
		t.Fatalf("Expected ErrPageFault, got %v", err)
	}
	if got := m.ReadRegister(models.BadVAddrReg); got != 130 {
		t.Errorf("Expected BadVAddrReg 130, got %d", got)
	}
	if m.Stats.PageFaults != 1 {
		t.Errorf("Expected 1 page fault, got %d", m.Stats.PageFaults)
	}
}

func TestTranslate_Errors(t *testing.T) {
	m := newTestMachine([]models.TranslationEntry{
		{VirtualPage: 0, PhysicalPage: 0, Valid: true, ReadOnly: true},
		{VirtualPage: 1, PhysicalPage: 99, Valid: true},
	})

	if _, err := Translate(m, 5, true); !errors.Is(err, models.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
	if _, err := Translate(m, 128, false); !errors.Is(err, models.ErrBusError) {
		t.Errorf("Expected ErrBusError, got %v", err)
	}
	if _, err := Translate(m, 1000, false); !errors.Is(err, models.ErrAddressError) {
		t.Errorf("Expected ErrAddressError, got %v", err)
	}
	if _, err := Translate(m, -1, false); !errors.Is(err, models.ErrAddressError) {
		t.Errorf("Expected ErrAddressError for negative address, got %v", err)
	}

	unbound := models.NewMachine(models.MachineConfig{})
	if _, err := Translate(unbound, 0, false); !errors.Is(err, models.ErrNoPageTable) {
		t.Errorf("Expected ErrNoPageTable, got %v", err)
	}
}

func TestReadWriteMem_AcrossPages(t *testing.T) {
	m := newTestMachine([]models.TranslationEntry{
		{VirtualPage: 0, PhysicalPage: 3, Valid: true},
		{VirtualPage: 1, PhysicalPage: 1, Valid: true},
	})

	data := []byte("cruza el limite")
	if err := WriteMem(m, 120, data); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !m.PageTable[0].Dirty || !m.PageTable[1].Dirty {
		t.Errorf("Expected both pages dirty, got %+v", m.PageTable)
	}
	if string(m.MainMemory[3*128+120:3*128+128]) != "cruza el" {
		t.Errorf("Unexpected content in frame 3: %q", m.MainMemory[3*128+120:3*128+128])
	}

	buf := make([]byte, len(data))
	if err := ReadMem(m, 120, buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(buf) != string(data) {
		t.Errorf("Expected %q, got %q", data, buf)
	}
}

package addrspace

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	cpuServices "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
)

func TestPrintPageTable(t *testing.T) {
	sys, fs := bootSystem(t, models.Config{})
	space := loadProgram(t, sys, fs, "halt", buildExecutable(256, 0, 0, binary.LittleEndian))
	space.SwapIn(128)

	var out bytes.Buffer
	if err := space.PrintPageTable(&out); err != nil {
		t.Fatalf("PrintPageTable: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != space.NumPages()+2 {
		t.Fatalf("Expected %d lines, got %d:\n%s", space.NumPages()+2, len(lines), out.String())
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "VirtualPage PhysicalPage Valid Use Dirty ReadOnly" {
		t.Errorf("Unexpected header %q", lines[1])
	}
	if fields := strings.Fields(lines[3]); strings.Join(fields, " ") != "1 0 true false false false" {
		t.Errorf("Unexpected row for page 1 %q", lines[3])
	}
}

func TestFormatPageTable_MatchesPrintPageTable(t *testing.T) {
	sys, fs := bootSystem(t, models.Config{})
	space := loadProgram(t, sys, fs, "halt", buildExecutable(256, 0, 0, binary.LittleEndian))
	space.SwapIn(0)

	var local, remote bytes.Buffer
	if err := space.PrintPageTable(&local); err != nil {
		t.Fatalf("PrintPageTable: %v", err)
	}
	// Como llega al kernel: entradas copiadas, sin el espacio de direcciones.
	if err := FormatPageTable(&remote, "halt", space.Entries()); err != nil {
		t.Fatalf("FormatPageTable: %v", err)
	}
	if local.String() != remote.String() {
		t.Errorf("Expected the same table, got:\n%s\nvs\n%s", local.String(), remote.String())
	}

	remote.Reset()
	entries := []cpuModels.TranslationEntry{{VirtualPage: 0, PhysicalPage: 7, Valid: true, Dirty: true}}
	FormatPageTable(&remote, "sort", entries)
	lines := strings.Split(strings.TrimSpace(remote.String()), "\n")
	if lines[0] != "Tabla de páginas de sort (1 páginas)" {
		t.Errorf("Unexpected title %q", lines[0])
	}
	if fields := strings.Fields(lines[2]); strings.Join(fields, " ") != "0 7 true false true false" {
		t.Errorf("Unexpected row %q", lines[2])
	}
}

func TestDump(t *testing.T) {
	sys, fs := bootSystem(t, models.Config{})
	exe := buildExecutable(300, 0, 0, binary.LittleEndian)
	space := loadProgram(t, sys, fs, "halt", exe)
	space.RestoreState()

	space.SwapIn(0)
	cpuServices.WriteMem(sys.Machine, 10, []byte("dump"))

	var out bytes.Buffer
	if err := space.Dump(&out); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	want := make([]byte, space.NumPages()*128)
	copy(want, exe[40:])
	copy(want[10:], "dump")
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Dump differs from the expected image (%d bytes vs %d)", out.Len(), len(want))
	}
}

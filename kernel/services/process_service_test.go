package services

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/filesys"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/kernel/models"
	memoryModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	memoryServices "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/noff"
)

// writeProgram guarda un NOFF cuyo código son las palabras 0, 1, 2, ... en little-endian.
func writeProgram(t *testing.T, fs *filesys.MemFileSystem, name string, codeSize int) {
	t.Helper()
	header := noff.Header{Magic: noff.Magic, Code: noff.Segment{Size: uint32(codeSize), InFileAddr: noff.HeaderSize}}
	code := make([]byte, codeSize)
	for i := 0; i+4 <= codeSize; i += 4 {
		binary.LittleEndian.PutUint32(code[i:], uint32(i/4))
	}
	if err := fs.WriteFile(name, append(noff.Encode(header, binary.LittleEndian), code...)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func bootLocal(t *testing.T, config memoryModels.Config) (*memoryServices.System, *filesys.MemFileSystem) {
	t.Helper()
	config.FileSystem = memoryModels.FileSystemMemory
	sys, err := memoryServices.Boot(config)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	return sys, sys.FileSystem.(*filesys.MemFileSystem)
}

func TestStartProcess(t *testing.T) {
	sys, fs := bootLocal(t, memoryModels.Config{})
	writeProgram(t, fs, "halt", 512)

	dir := t.TempDir()
	opts := models.RunOptions{
		Program:    "halt",
		PrintTable: true,
		Touch:      []int{0, 260},
		DumpFile:   filepath.Join(dir, "halt.dmp"),
		MapFile:    filepath.Join(dir, "mapa.png"),
	}

	var out bytes.Buffer
	space, err := StartProcess(sys, opts, &out)
	if err != nil {
		t.Fatalf("StartProcess: %v", err)
	}

	if !strings.Contains(out.String(), "[260] = 0x000041") {
		t.Errorf("Expected word 65 at address 260, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "VirtualPage") {
		t.Errorf("Expected the page table in the output")
	}
	if sys.Machine.Stats.PageFaults != 2 {
		t.Errorf("Expected 2 page faults, got %d", sys.Machine.Stats.PageFaults)
	}
	if sys.Machine.ReadRegister(cpuModels.StackReg) != space.NumPages()*128-16 {
		t.Errorf("Expected the registers to be initialised")
	}

	dump, err := os.ReadFile(opts.DumpFile)
	if err != nil || len(dump) != space.NumPages()*128 {
		t.Errorf("Expected a dump of %d bytes, got %d (err %v)", space.NumPages()*128, len(dump), err)
	}
	if info, err := os.Stat(opts.MapFile); err != nil || info.Size() == 0 {
		t.Errorf("Expected the frame map to be written: %v", err)
	}
}

func TestStartProcess_MissingProgram(t *testing.T) {
	sys, _ := bootLocal(t, memoryModels.Config{})
	if _, err := StartProcess(sys, models.RunOptions{Program: "nope"}, &bytes.Buffer{}); !errors.Is(err, filesys.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFetchWord_WithReplacement(t *testing.T) {
	sys, fs := bootLocal(t, memoryModels.Config{
		MachineConfig: cpuModels.MachineConfig{NumPhysPages: 2},
		UserStackSize: 128,
		Replacement:   memoryModels.ReplacementClock,
	})
	writeProgram(t, fs, "sort", 512)

	space, err := StartProcess(sys, models.RunOptions{Program: "sort"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("StartProcess: %v", err)
	}

	for _, address := range []int{0, 128, 256, 384, 0} {
		word, err := FetchWord(sys.Machine, space, address)
		if err != nil {
			t.Fatalf("FetchWord(%d): %v", address, err)
		}
		if word != uint32(address/4) {
			t.Errorf("FetchWord(%d): expected %d, got %d", address, address/4, word)
		}
	}
	if sys.Frames.FreeCount() != 0 {
		t.Errorf("Expected both frames in use, %d free", sys.Frames.FreeCount())
	}
}

func TestFetchWord_OutOfRange(t *testing.T) {
	sys, fs := bootLocal(t, memoryModels.Config{})
	writeProgram(t, fs, "halt", 128)
	space, _ := StartProcess(sys, models.RunOptions{Program: "halt"}, &bytes.Buffer{})

	if _, err := FetchWord(sys.Machine, space, space.NumPages()*128); !errors.Is(err, cpuModels.ErrAddressError) {
		t.Errorf("Expected ErrAddressError, got %v", err)
	}
}

package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/list"
)

var (
	ErrNoFreeFrames = errors.New("no free frames")
	ErrInvalidFrame = errors.New("invalid frame")
)

// FrameManager lleva la tabla de marcos físicos: quién ocupa cada uno y en qué orden se asignaron.
type FrameManager struct {
	mu          sync.Mutex
	frames      []models.Frame
	loaded      *list.ArrayList[int] // Marcos ocupados en orden de asignación (FIFO)
	hand        int                  // Aguja del reloj (CLOCK)
	replacement string
}

func NewFrameManager(numFrames int, replacement string) *FrameManager {
	frames := make([]models.Frame, numFrames)
	for i := range frames {
		frames[i] = models.Frame{Number: i, VirtualPage: -1}
	}
	return &FrameManager{
		frames:      frames,
		loaded:      &list.ArrayList[int]{},
		replacement: replacement,
	}
}

func (fm *FrameManager) Replacement() string {
	return fm.replacement
}

// Allocate asigna el marco libre de número más bajo a la página vpn de owner.
// Sin marcos libres devuelve ErrNoFreeFrames y es el llamador quien decide si reemplaza.
func (fm *FrameManager) Allocate(owner models.Owner, vpn int) (int, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	for i := range fm.frames {
		if fm.frames[i].InUse {
			continue
		}
		fm.frames[i].InUse = true
		fm.frames[i].Owner = owner
		fm.frames[i].VirtualPage = vpn
		fm.loaded.Add(i)
		slog.Debug("Marco asignado", "frame", i, "owner", owner.Name(), "page", vpn)
		return i, nil
	}

	slog.Debug("No hay frames libres disponibles para asignar", "owner", owner.Name(), "page", vpn)
	return -1, ErrNoFreeFrames
}

// Free devuelve el marco a la lista de libres.
func (fm *FrameManager) Free(frame int) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if frame < 0 || frame >= len(fm.frames) {
		return fmt.Errorf("%w: %d", ErrInvalidFrame, frame)
	}
	if !fm.frames[frame].InUse {
		return nil
	}
	fm.frames[frame] = models.Frame{Number: frame, VirtualPage: -1}
	fm.loaded.RemoveWhere(func(f int) bool { return f == frame })
	return nil
}

// FreeOwner libera todos los marcos de owner y devuelve cuántos eran.
func (fm *FrameManager) FreeOwner(owner models.Owner) int {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	released := 0
	for i := range fm.frames {
		if fm.frames[i].InUse && fm.frames[i].Owner == owner {
			fm.frames[i] = models.Frame{Number: i, VirtualPage: -1}
			released++
		}
	}
	if released > 0 {
		fm.loaded.RemoveWhere(func(f int) bool { return !fm.frames[f].InUse })
	}
	return released
}

// Victim elige el marco a desalojar según el algoritmo configurado. No lo libera.
//
// Parámetros:
//   - referenced: en CLOCK se llama por cada marco que pasa la aguja; debe devolver el bit de uso
//     de la página y limpiarlo. En FIFO se ignora.
func (fm *FrameManager) Victim(referenced func(models.Frame) bool) (models.Frame, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	switch fm.replacement {
	case models.ReplacementFIFO:
		frame, err := fm.loaded.Get(0)
		if err != nil {
			return models.Frame{}, ErrNoFreeFrames
		}
		return fm.frames[frame], nil

	case models.ReplacementClock:
		n := len(fm.frames)
		// Dos vueltas alcanzan: en la primera se limpian todos los bits de uso.
		for step := 0; step < 2*n; step++ {
			frame := fm.frames[fm.hand]
			fm.hand = (fm.hand + 1) % n
			if !frame.InUse {
				continue
			}
			if referenced != nil && referenced(frame) {
				continue
			}
			return frame, nil
		}
		return models.Frame{}, ErrNoFreeFrames
	}

	return models.Frame{}, ErrNoFreeFrames
}

func (fm *FrameManager) FreeCount() int {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	free := 0
	for _, frame := range fm.frames {
		if !frame.InUse {
			free++
		}
	}
	return free
}

// Frames devuelve una copia de la tabla de marcos.
func (fm *FrameManager) Frames() []models.Frame {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	frames := make([]models.Frame, len(fm.frames))
	copy(frames, fm.frames)
	return frames
}

func (fm *FrameManager) Info() models.FramesResponse {
	frames := fm.Frames()
	infos := make([]models.FrameInfo, 0, len(frames))
	free := 0
	for _, frame := range frames {
		if !frame.InUse {
			free++
		}
		infos = append(infos, frame.Info())
	}
	return models.FramesResponse{Replacement: fm.replacement, Free: free, Frames: infos}
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/filesys"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/addrspace"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/noff"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/web/server"
)

// statusFor traduce los errores de memoria a códigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrProcessNotFound), errors.Is(err, filesys.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, noff.ErrBadMagic), errors.Is(err, noff.ErrShortHeader),
		errors.Is(err, addrspace.ErrTooLarge), errors.Is(err, addrspace.ErrAddressOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoFreeFrames), errors.Is(err, addrspace.ErrDestroyed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func decodeRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		slog.Error("Invalid request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return false
	}
	return true
}

// LoadProcessHandler crea el espacio de direcciones del programa pedido y responde su PID.
func LoadProcessHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.LoadRequest
		if !decodeRequest(w, r, &request) {
			return
		}
		if request.Name == "" {
			http.Error(w, "Falta el nombre del programa", http.StatusBadRequest)
			return
		}

		pid, space, err := table.Load(request.Name)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		slog.Info(fmt.Sprintf("## PID: %d - Proceso Creado - Programa: %s - Páginas: %d", pid, space.Name(), space.NumPages()))
		server.SendJsonResponse(w, models.LoadResponse{
			PID:      pid,
			NumPages: space.NumPages(),
			SwapFile: space.SwapFileName(),
		})
	}
}

// PageTableHandler devuelve la tabla de páginas del PID pasado por query (?pid=N).
func PageTableHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, err := strconv.ParseUint(r.URL.Query().Get("pid"), 10, 64)
		if err != nil {
			http.Error(w, "PID inválido", http.StatusBadRequest)
			return
		}

		space, err := table.Get(uint(pid))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		server.SendJsonResponse(w, models.PageTableResponse{
			PID:     uint(pid),
			Name:    space.Name(),
			Entries: space.Entries(),
		})
	}
}

// FramesHandler devuelve la ocupación de la memoria física.
func FramesHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		server.SendJsonResponse(w, table.System().Frames.Info())
	}
}

// FrameMapHandler devuelve el mapa de marcos como imagen PNG.
func FrameMapHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		if err := table.System().Frames.WriteFrameMap(w); err != nil {
			slog.Error("No se pudo generar el mapa de marcos", "error", err)
		}
	}
}

// MemoryConfigHandler devuelve la configuración efectiva (con los valores por defecto aplicados).
func MemoryConfigHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		server.SendJsonResponse(w, table.System().Config)
	}
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/addrspace"
)

// SwapInHandler atiende un fallo de página en la dirección virtual pedida.
func SwapInHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.SwapInRequest
		if !decodeRequest(w, r, &request) {
			return
		}

		space, err := table.Get(request.PID)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		if err := space.SwapIn(request.Address); err != nil {
			slog.Error("Error en swap-in", "pid", request.PID, "address", request.Address, "error", err)
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		page := request.Address / table.System().Machine.PageSize()
		if frame, ok := residentFrame(space, page); ok {
			slog.Info(fmt.Sprintf("## PID: %d - Swap In - Página: %d - Marco: %d", request.PID, page, frame))
		} else {
			// Otro pedido pudo desalojar la página o terminar el proceso entre el swap-in y el log.
			slog.Info(fmt.Sprintf("## PID: %d - Swap In - Página: %d - Marco: -", request.PID, page))
		}
		w.WriteHeader(http.StatusOK)
	}
}

// residentFrame devuelve el marco de la página si sigue cargada en memoria.
func residentFrame(space *addrspace.AddrSpace, page int) (int, bool) {
	entries := space.Entries()
	if page < 0 || page >= len(entries) || !entries[page].Valid {
		return -1, false
	}
	return entries[page].PhysicalPage, true
}

// SwapOutHandler desaloja una página del proceso.
func SwapOutHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.SwapOutRequest
		if !decodeRequest(w, r, &request) {
			return
		}

		space, err := table.Get(request.PID)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		if err := space.SwapOut(request.Page); err != nil {
			slog.Error("Error en swap-out", "pid", request.PID, "page", request.Page, "error", err)
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		slog.Info(fmt.Sprintf("## PID: %d - Swap Out - Página: %d", request.PID, request.Page))
		w.WriteHeader(http.StatusOK)
	}
}

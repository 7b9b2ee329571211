package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
)

// EndProcessHandler destruye el espacio de direcciones del PID y borra su swap.
func EndProcessHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.PIDRequest
		if !decodeRequest(w, r, &request) {
			return
		}

		space, err := table.Remove(request.PID)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		space.Destroy()
		if err := space.RemoveSwapFile(); err != nil {
			slog.Warn("No se pudo borrar el swap", "pid", request.PID, "error", err)
		}

		slog.Info(fmt.Sprintf("## PID: %d - Proceso Destruido", request.PID))
		w.WriteHeader(http.StatusOK)
	}
}

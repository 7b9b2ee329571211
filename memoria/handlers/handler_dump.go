package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/helpers"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/web/server"
)

// DumpHandler escribe la imagen del proceso en DumpPath y responde la ruta del archivo.
func DumpHandler(table *ProcessTable) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.PIDRequest
		if !decodeRequest(w, r, &request) {
			return
		}
		slog.Info(fmt.Sprintf("## PID: %d - Memory Dump solicitado", request.PID))

		space, err := table.Get(request.PID)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		dumpPath := table.System().Config.DumpPath
		helpers.CreateDirectory(dumpPath)
		path := filepath.Join(dumpPath, helpers.GetDumpName(request.PID))

		if err := writeDump(path, space.Dump); err != nil {
			slog.Error("Fallo el memory dump", "pid", request.PID, "error", err)
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		slog.Info(fmt.Sprintf("## PID: %d - Memory Dump completado: %s", request.PID, path))
		server.SendJsonResponse(w, models.DumpResponse{PID: request.PID, Path: path})
	}
}

func writeDump(path string, dump func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error al crear archivo de dump: %w", err)
	}

	if err := dump(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/kernel/models"
	memoryModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/userprog/addrspace"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/web/client"
)

// StartRemoteProcess carga el programa en el módulo de memoria y ejecuta por HTTP las acciones
// pedidas. Las direcciones a tocar se traen con swap-in explícitos.
func StartRemoteProcess(opts models.RunOptions, out io.Writer) (models.Process, error) {
	var loaded memoryModels.LoadResponse
	err := requestMemory(http.MethodPost, "memoria/cargar", memoryModels.LoadRequest{Name: opts.Program}, &loaded)
	if err != nil {
		return models.Process{}, fmt.Errorf("memoria no pudo cargar %s: %w", opts.Program, err)
	}
	process := models.Process{PID: loaded.PID, Name: opts.Program, NumPages: loaded.NumPages, SwapFile: loaded.SwapFile}
	slog.Info(fmt.Sprintf("## PID %d Se crea el proceso - Programa: %s - Páginas: %d", process.PID, process.Name, process.NumPages))

	for _, address := range opts.Touch {
		request := memoryModels.SwapInRequest{PID: process.PID, Address: address}
		if err := requestMemory(http.MethodPost, "memoria/swapin", request, nil); err != nil {
			return process, fmt.Errorf("swap-in de la dirección %d: %w", address, err)
		}
	}

	if opts.PrintTable {
		var table memoryModels.PageTableResponse
		query := "memoria/tabla?pid=" + strconv.FormatUint(uint64(process.PID), 10)
		if err := requestMemory(http.MethodGet, query, nil, &table); err != nil {
			return process, err
		}
		if err := addrspace.FormatPageTable(out, table.Name, table.Entries); err != nil {
			return process, err
		}
	}

	if opts.DumpFile != "" {
		var dump memoryModels.DumpResponse
		if err := requestMemory(http.MethodPost, "memoria/dump", memoryModels.PIDRequest{PID: process.PID}, &dump); err != nil {
			return process, err
		}
		slog.Info(fmt.Sprintf("## PID %d - Memory Dump en memoria: %s", process.PID, dump.Path))
	}

	return process, nil
}

// FinishRemoteProcess le pide a memoria que libere el espacio del proceso.
func FinishRemoteProcess(pid uint) error {
	return requestMemory(http.MethodPost, "memoria/liberar", memoryModels.PIDRequest{PID: pid}, nil)
}

// requestMemory envía request como JSON (si no es nil) y decodifica la respuesta en response (si no es nil).
func requestMemory(method, query string, request interface{}, response interface{}) error {
	var bodies [][]byte
	if request != nil {
		body, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("error al serializar la solicitud: %w", err)
		}
		bodies = append(bodies, body)
	}

	resp, err := client.DoRequest(models.KernelConfig.PortMemory, models.KernelConfig.IpMemory, method, query, bodies...)
	if err != nil {
		if resp != nil {
			detail, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	defer resp.Body.Close()

	if response == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("respuesta inválida de memoria: %w", err)
	}
	return nil
}

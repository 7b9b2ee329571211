package main

import (
	"fmt"
	"log/slog"
	"net/http"

	memoryHandler "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/helpers"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/web/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/web/server"
)

const (
	//NO borrar el comentario de ConfigPath
	ConfigPath = "memoria/configs/memoria.json" //"./configs/memoria.json"
	LogPath    = "./logs/memoria.log"           //"./memoria.log"
)

func main() {
	helpers.InitMemory(ConfigPath, LogPath)

	sys, err := services.Boot(*models.MemoryConfig)
	if err != nil {
		slog.Error(fmt.Sprintf("error al inicializar la memoria: %v", err))
		panic(err)
	}
	table := memoryHandler.NewProcessTable(sys)

	http.HandleFunc("GET /", handlers.HandshakeHandler("Bienvenido al módulo de Memoria"))
	http.HandleFunc("GET /memoria", handlers.HandshakeHandler("Memoria en funcionamiento 🚀"))
	http.HandleFunc("GET /config/memoria", memoryHandler.MemoryConfigHandler(table))

	http.HandleFunc("POST /memoria/cargar", memoryHandler.LoadProcessHandler(table))
	http.HandleFunc("POST /memoria/swapin", memoryHandler.SwapInHandler(table))
	http.HandleFunc("POST /memoria/swapout", memoryHandler.SwapOutHandler(table))
	http.HandleFunc("GET /memoria/tabla", memoryHandler.PageTableHandler(table))
	http.HandleFunc("POST /memoria/dump", memoryHandler.DumpHandler(table))
	http.HandleFunc("GET /memoria/marcos", memoryHandler.FramesHandler(table))
	http.HandleFunc("GET /memoria/mapa", memoryHandler.FrameMapHandler(table))

	//Liberar el espacio de direcciones de un proceso
	http.HandleFunc("POST /memoria/liberar", memoryHandler.EndProcessHandler(table))
	slog.Info("Memoria lista")

	err = server.InitServer(models.MemoryConfig.PortMemory)
	if err != nil {
		slog.Error(fmt.Sprintf("error initializing server: %v", err))
		panic(err)
	}
}

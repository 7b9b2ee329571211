package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/kernel/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/kernel/services"
	memoryServices "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/config"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/log"
)

const (
	ConfigPath = "kernel/configs/kernel.json"
	LogPath    = "./logs/kernel.log"
)

func main() {
	program := flag.String("x", "", "programa de usuario a ejecutar")
	configPath := flag.String("c", ConfigPath, "archivo de configuración")
	debugFlags := flag.String("d", "", "flags de debug (a: espacio de direcciones, p: paginación, +: todos)")
	printTable := flag.Bool("p", false, "imprimir la tabla de páginas al terminar")
	touch := flag.String("swapin", "", "direcciones virtuales a leer, separadas por coma")
	dumpFile := flag.String("dump", "", "archivo donde guardar la imagen del proceso")
	mapFile := flag.String("mapa", "", "archivo PNG donde guardar el mapa de marcos")
	remote := flag.Bool("remoto", false, "cargar el programa en el módulo de memoria")
	flag.Parse()

	if *program == "" {
		slog.Error("Falta el parametro necesario -x [programa]")
		flag.Usage()
		os.Exit(1)
	}

	config.InitConfig(*configPath, &models.KernelConfig)
	models.KernelConfig.Memory.ApplyDefaults()
	log.InitLogger(LogPath, models.KernelConfig.LogLevel)
	if *debugFlags == "" {
		*debugFlags = models.KernelConfig.DebugFlags
	}
	log.InitDebug(*debugFlags)

	addresses, err := parseAddresses(*touch)
	if err != nil {
		slog.Error(fmt.Sprintf("Direcciones inválidas: %v", err))
		os.Exit(1)
	}

	opts := models.RunOptions{
		Program:    *program,
		PrintTable: *printTable,
		Touch:      addresses,
		DumpFile:   *dumpFile,
		MapFile:    *mapFile,
		Remote:     *remote,
	}

	if opts.Remote {
		if _, err := services.StartRemoteProcess(opts, os.Stdout); err != nil {
			slog.Error("Error al iniciar proceso", "err", err)
			os.Exit(1)
		}
		return
	}

	sys, err := memoryServices.Boot(models.KernelConfig.Memory)
	if err != nil {
		slog.Error("Error al inicializar la máquina", "err", err)
		os.Exit(1)
	}

	space, err := services.StartProcess(sys, opts, os.Stdout)
	if err != nil {
		slog.Error("Error al iniciar proceso", "err", err)
		os.Exit(1)
	}
	space.Destroy()
}

func parseAddresses(list string) ([]int, error) {
	if list == "" {
		return nil, nil
	}
	var addresses []int
	for _, field := range strings.Split(list, ",") {
		address, err := strconv.ParseInt(strings.TrimSpace(field), 0, 64)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, int(address))
	}
	return addresses, nil
}

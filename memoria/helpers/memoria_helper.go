package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/config"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/log"
)

// crea un directorio en el path especificado.
func CreateDirectory(dir string) {
	err := os.MkdirAll(dir, os.ModePerm)

	if err != nil {
		slog.Error(fmt.Sprintf("Error al crear el directorio %s: %v", dir, err))
		return
	}

	slog.Debug(fmt.Sprintf("Directorio %s creado o ya existía.", dir))
}

// InitMemory carga la configuración en models.MemoryConfig, aplica los valores por defecto
// y levanta el logger con los flags de debug.
func InitMemory(configPath string, logPath string) {
	config.InitConfig(configPath, &models.MemoryConfig)
	models.MemoryConfig.ApplyDefaults()

	log.InitLogger(logPath, models.MemoryConfig.LogLevel)
	log.InitDebug(models.MemoryConfig.DebugFlags)

	slog.Debug(fmt.Sprintf("Port Memory: %d", models.MemoryConfig.PortMemory))
	slog.Debug("Configuración de memoria",
		"page_size", models.MemoryConfig.PageSize,
		"frames", models.MemoryConfig.NumPhysPages,
		"load_policy", models.MemoryConfig.LoadPolicy,
		"replacement", models.MemoryConfig.Replacement,
		"file_system", models.MemoryConfig.FileSystem)

	CreateDirectory(models.MemoryConfig.DumpPath)
}

func GetDumpName(pid uint) string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("%d-%s.dmp", pid, timestamp)
}

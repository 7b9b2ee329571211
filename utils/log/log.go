package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// InitLogger permite loguear tanto en consola como en archivo según el nivel que se le pase.
// Si logPath está vacío solo se escribe en consola.
//
// Parámetros:
//   - logPath: la ubicación donde se va encontrar el archivo
//   - logLevel: nivel de logueo, este dato viene definido en el archivo de config.
//
// Ejemplo:
//
//	func main() {
//		log.InitLogger("./logs/kernel.log", "INFO")
//	}
func InitLogger(logPath string, logLevel string) {
	var writer io.Writer = os.Stdout

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), os.ModePerm); err != nil {
			panic(err)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			panic(err)
		}
		// Usa io.MultiWriter para escribir a múltiples destinos: consola y archivo.
		writer = io.MultiWriter(os.Stdout, logFile)
	}

	level, err := convertStringToLogLevel(logLevel)

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	// Escribimos en el log el warning que obtenemos por no setear el logLevel
	if err != nil {
		slog.Warn(err.Error())
	}

	slog.Debug("Se ha configurado correctamente el logger", "path", logPath, "level", level.String())
}

// convertStringToLogLevel modifica dinámicamente el nivel de log que deseamos tener en el sistema.
func convertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("no existe el nivel %q, se coloca INFO por defecto", levelStr)
	}
}

// Flags de depuración al estilo Nachos: cada mensaje pertenece a un caracter
// ('a' espacio de direcciones, 'p' paginación) y '+' habilita todos.
var (
	debugMu    sync.RWMutex
	debugFlags string
)

// InitDebug define qué flags de depuración se imprimen.
//
// Ejemplo:
//
//	func main() {
//		log.InitDebug("ap")
//		log.Debug('p', "Página cargada", "page", 3)
//	}
func InitDebug(flags string) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugFlags = flags
}

// DebugEnabled indica si los mensajes del flag están habilitados.
func DebugEnabled(flag byte) bool {
	debugMu.RLock()
	defer debugMu.RUnlock()
	return strings.IndexByte(debugFlags, flag) >= 0 || strings.IndexByte(debugFlags, '+') >= 0
}

// Debug loguea solo si el flag está habilitado. Un flag habilitado sale siempre, sin importar
// el nivel del logger, por eso se escribe en nivel INFO.
func Debug(flag byte, msg string, args ...any) {
	if !DebugEnabled(flag) {
		return
	}
	slog.Info(msg, append([]any{"flag", string(flag)}, args...)...)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Para su uso se debe posicionar en la carpeta scripts. Las claves anidadas se separan con punto.
// > ./update_config ip_memory 192.168.1.100
// > ./update_config port_memory 8010 memory.replacement '"CLOCK"' memory.num_phys_pages 64
// > ./update_config debug_flags ap

// Módulos cuyos configs se actualizan.
var modules = []string{"kernel", "memoria"}

func main() {
	updates, err := parseUpdates(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		fmt.Println("Uso: update_config <clave_1> <valor_1> [<clave_2> <valor_2> ...]")
		fmt.Println("Ejemplo: update_config ip_memory 192.168.0.10 memory.load_policy EAGER")
		return
	}

	fmt.Println("Valores a actualizar:")
	for k, v := range updates {
		fmt.Printf("  %s: %v\n", k, v)
	}

	for _, module := range modules {
		moduleConfigPath := filepath.Join("..", module, "configs")
		fmt.Printf("\nProcesando módulo: %s (en %s)\n", module, moduleConfigPath)

		paths, err := filepath.Glob(filepath.Join(moduleConfigPath, "*.json"))
		if err != nil {
			fmt.Printf("Error al buscar archivos en la carpeta %s: %v\n", moduleConfigPath, err)
			continue
		}
		for _, path := range paths {
			modified, err := updateFile(path, updates)
			switch {
			case err != nil:
				fmt.Printf("  Error en %s: %v\n", path, err)
			case modified:
				fmt.Printf("  El archivo %s ha sido actualizado correctamente.\n", path)
			default:
				fmt.Printf("  No se encontraron claves a actualizar en %s.\n", path)
			}
		}
	}

	fmt.Println("\nProceso de actualización de configuraciones finalizado.")
}

// parseUpdates arma el mapa clave -> valor a partir de argumentos en pares. Cada valor se intenta
// leer como JSON (números, booleanos); si no es JSON válido queda como string.
func parseUpdates(args []string) (map[string]interface{}, error) {
	if len(args) < 2 || len(args)%2 != 0 {
		return nil, fmt.Errorf("se esperaban pares clave valor, llegaron %d argumentos", len(args))
	}

	updates := make(map[string]interface{})
	for i := 0; i < len(args); i += 2 {
		var parsedValue interface{}
		if err := json.Unmarshal([]byte(args[i+1]), &parsedValue); err != nil {
			parsedValue = args[i+1]
		}
		updates[args[i]] = parsedValue
	}
	return updates, nil
}

// applyUpdates reemplaza en data las claves que ya existen. Una clave "a.b" recorre el objeto "a".
// Devuelve si hubo algún cambio.
func applyUpdates(data map[string]interface{}, updates map[string]interface{}) bool {
	modified := false
	for key, value := range updates {
		parts := strings.Split(key, ".")
		node := data
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]interface{})
			if !ok {
				node = nil
				break
			}
			node = child
		}
		if node == nil {
			continue
		}

		last := parts[len(parts)-1]
		if _, ok := node[last]; ok {
			node[last] = value
			modified = true
		}
	}
	return modified
}

func updateFile(path string, updates map[string]interface{}) (bool, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(fileContent, &data); err != nil {
		return false, fmt.Errorf("JSON inválido: %w", err)
	}

	if !applyUpdates(data, updates) {
		return false, nil
	}

	newJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, append(newJSON, '\n'), 0644)
}

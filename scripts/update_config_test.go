package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestParseUpdates(t *testing.T) {
	updates, err := parseUpdates([]string{"ip_memory", "10.0.0.1", "port_memory", "8010", "revision_file", "true"})
	if err != nil {
		t.Fatalf("parseUpdates: %v", err)
	}
	if updates["ip_memory"] != "10.0.0.1" || updates["port_memory"] != float64(8010) || updates["revision_file"] != true {
		t.Errorf("Unexpected updates %v", updates)
	}

	if _, err := parseUpdates([]string{"ip_memory"}); err == nil {
		t.Errorf("Expected an error for an odd number of arguments")
	}
}

func TestUpdateFile_NestedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.json")
	os.WriteFile(path, []byte(`{"ip_memory":"127.0.0.1","memory":{"replacement":"FIFO"}}`), 0644)

	modified, err := updateFile(path, map[string]interface{}{
		"ip_memory":          "10.0.0.1",
		"memory.replacement": "CLOCK",
		"memory.unknown":     1,
		"nope.replacement":   "x",
	})
	if err != nil || !modified {
		t.Fatalf("Expected the file to be modified (err %v)", err)
	}

	content, _ := os.ReadFile(path)
	var data map[string]interface{}
	json.Unmarshal(content, &data)
	memory := data["memory"].(map[string]interface{})
	if data["ip_memory"] != "10.0.0.1" || memory["replacement"] != "CLOCK" {
		t.Errorf("Unexpected content %s", content)
	}
	if _, ok := memory["unknown"]; ok {
		t.Errorf("Unknown keys must not be added")
	}
}

func TestUpdateFile_NoMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memoria.json")
	os.WriteFile(path, []byte(`{"port_memory":8002}`), 0644)

	modified, err := updateFile(path, map[string]interface{}{"ip_cpu": "1.1.1.1"})
	if err != nil || modified {
		t.Errorf("Expected no modification, got %v (err %v)", modified, err)
	}
}

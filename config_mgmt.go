package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// loadConfigurations parses every .json file in dir, in name order. The file name without
// its extension names the configuration.
func loadConfigurations[T any](dir string, kind string, named func(name string) *T) ([]T, error) {
	if err := os.MkdirAll(dir, DefaultDirectoryPermissions); err != nil {
		return nil, fmt.Errorf("failed to ensure %s configuration directory exists: %w", kind, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory listing for %s configurations: %w", kind, err)
	}

	var cfgs []T

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		fullPath := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s configuration file '%s': %w", kind, fullPath, err)
		}

		cfg := named(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))

		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s configuration file '%s': %w", kind, fullPath, err)
		}

		cfgs = append(cfgs, *cfg)
	}

	return cfgs, nil
}

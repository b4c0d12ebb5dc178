// Package fixture decodes record lists from JSON or YAML files.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses data as a list of records. The format follows the file
// extension of name: .json, .yaml or .yml.
func Decode(name string, data []byte) ([]map[string]any, error) {
	var out []map[string]any
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", ext)
	}
	return out, nil
}

// ReadFile reads and decodes a fixture from disk.
func ReadFile(filename string) ([]map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Decode(filename, data)
}

// ReadFS decodes every fixture file in the root of fsys, keyed by file name
// without extension.
func ReadFS(fsys fs.FS) (map[string][]map[string]any, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	out := make(map[string][]map[string]any, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", name, err)
		}
		recs, err := Decode(name, data)
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(name, path.Ext(name))] = recs
	}
	return out, nil
}

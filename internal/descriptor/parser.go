package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ParseModule reads and parses a module descriptor file. JSON and YAML forms
// are both accepted; the codec is chosen by file extension.
func ParseModule(path string) (*Module, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[Module](data, path)
}

// ParseCollection reads and parses a collection descriptor file.
func ParseCollection(path string) (*Collection, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[Collection](data, path)
}

// FindModuleFile returns the path of the module descriptor in dir, respecting
// the lookup priority order (module.json before module.yaml).
func FindModuleFile(dir string) (string, bool) {
	return findFile(dir, ModuleFileNames)
}

// FindCollectionFile returns the path of the collection descriptor in dir.
func FindCollectionFile(dir string) (string, bool) {
	return findFile(dir, CollectionFileNames)
}

func findFile(dir string, names []string) (string, bool) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// parseTyped unmarshals descriptor data into a typed struct, using the JSON
// decoder for .json files and the YAML decoder otherwise.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var d T
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
		}
		return &d, nil
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}
	return &d, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

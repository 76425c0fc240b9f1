package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk shape of a schema file: a mapping of operation
// names to their field lists.
//
//	operations:
//	  light.configure:
//	    fields:
//	      - name: intensity
//	        kind: float
//	        required: true
//	        min: 0
//	        max: 8
//	      - name: shadowMode
//	        kind: enum
//	        members:
//	          - {name: "Off", value: 0}
//	          - {name: "Soft", value: 1}
//	        default: "Off"
type yamlDocument struct {
	Operations map[string]yamlOperation `yaml:"operations"`
}

type yamlOperation struct {
	Fields []Entry `yaml:"fields"`
}

// ParseYAML decodes one schema document and checks every schema's
// invariants. Schemas come back sorted by operation name.
func ParseYAML(raw []byte) ([]Schema, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse yaml: %w", err)
	}
	if len(doc.Operations) == 0 {
		return nil, fmt.Errorf("schema: document declares no operations")
	}

	names := make([]string, 0, len(doc.Operations))
	for name := range doc.Operations {
		names = append(names, name)
	}
	sort.Strings(names)

	schemas := make([]Schema, 0, len(names))
	for _, name := range names {
		s := Schema{Operation: name, Entries: doc.Operations[name].Fields}
		if err := s.Check(); err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// LoadFile reads and parses one YAML schema file.
func LoadFile(path string) ([]Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	schemas, err := ParseYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return schemas, nil
}

// LoadDir parses every .yaml/.yml file in dir and registers the schemas into
// a fresh registry.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("schema: read dir %s: %w", dir, err)
	}
	registry := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		schemas, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, s := range schemas {
			if err := registry.Register(s); err != nil {
				return nil, err
			}
		}
	}
	return registry, nil
}

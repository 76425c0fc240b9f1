// Package testsupport holds fixture and golden-file helpers shared by the
// package tests and by embedders writing tests against their own hosts.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propbind/pkg/schema"
)

// LoadSchemas reads a YAML fixture into a checked schema registry. Testing
// helpers fail the test on error to keep contract tests concise.
func LoadSchemas(t *testing.T, path string) *schema.Registry {
	t.Helper()

	registry, err := LoadSchemasFromPath(path)
	if err != nil {
		t.Fatalf("load schemas: %v", err)
	}
	return registry
}

// LoadSchemasFromPath returns a registry without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadSchemasFromPath(path string) (*schema.Registry, error) {
	if path == "" {
		return nil, errors.New("testsupport: schema path is required")
	}
	schemas, err := schema.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load schemas: %w", err)
	}
	registry := schema.NewRegistry()
	for _, s := range schemas {
		if err := registry.Register(s); err != nil {
			return nil, fmt.Errorf("testsupport: register %q: %w", s.Operation, err)
		}
	}
	return registry, nil
}

// MustSchema fetches one operation schema from a registry.
func MustSchema(t *testing.T, registry *schema.Registry, operation string) schema.Schema {
	t.Helper()

	s, err := registry.Get(operation)
	if err != nil {
		t.Fatalf("get schema: %v", err)
	}
	return s
}

// MustPayload parses a JSON object literal into the payload map validators
// and binders consume.
func MustPayload(t *testing.T, raw string) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	return payload
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set. Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

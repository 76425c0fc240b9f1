package engine

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// PayloadFromJSON parses a JSON object into the payload map Apply expects.
// Numbers decode as float64, nested objects as map[string]any, and arrays as
// []any, matching what the coercion paths accept.
func PayloadFromJSON(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("engine: invalid JSON payload")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("engine: payload must be a JSON object, got %s", parsed.Type)
	}
	payload, ok := parsed.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("engine: payload must be a JSON object")
	}
	return payload, nil
}

// FieldFromJSON extracts one dotted path from a JSON document, for callers
// that apply a single property rather than a whole payload.
func FieldFromJSON(data []byte, path string) (any, bool) {
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

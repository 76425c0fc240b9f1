package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-propbind/pkg/model"
)

// kindExtensionKey overrides the inferred value kind on a property, e.g.
// `x-propbind-kind: vec3` on a number-array property.
const kindExtensionKey = "x-propbind-kind"

// refKindExtensionKey names the reference kind for object-reference
// properties, e.g. `x-propbind-ref: Material` on a string property.
const refKindExtensionKey = "x-propbind-ref"

// FromDocument extracts one schema per operation from an OpenAPI document.
// The JSON request body of each operation with an operation id becomes the
// schema's entry list; properties map onto value kinds by their declared
// type, with the x-propbind-kind extension overriding the inference for
// vector, color, quaternion, enum, and layer-mask properties.
func FromDocument(doc *openapi3.T) ([]Schema, error) {
	if doc == nil || doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, fmt.Errorf("schema: openapi document has no paths")
	}

	byOperation := make(map[string]Schema)
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil || operation.OperationID == "" {
				continue
			}
			s, err := fromOperation(operation)
			if err != nil {
				return nil, fmt.Errorf("schema: %s %s: %w", method, path, err)
			}
			if len(s.Entries) == 0 {
				continue
			}
			byOperation[s.Operation] = s
		}
	}
	if len(byOperation) == 0 {
		return nil, fmt.Errorf("schema: openapi document yields no operation schemas")
	}

	names := make([]string, 0, len(byOperation))
	for name := range byOperation {
		names = append(names, name)
	}
	sort.Strings(names)
	schemas := make([]Schema, 0, len(names))
	for _, name := range names {
		schemas = append(schemas, byOperation[name])
	}
	return schemas, nil
}

func fromOperation(operation *openapi3.Operation) (Schema, error) {
	s := Schema{Operation: operation.OperationID}
	body := requestBodySchema(operation)
	if body == nil {
		return s, nil
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		entry, err := entryFromProperty(name, ref.Value)
		if err != nil {
			return Schema{}, err
		}
		if _, ok := required[name]; ok {
			entry.Required = true
			entry.Default = nil
		}
		s.Entries = append(s.Entries, entry)
	}
	if err := s.Check(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func entryFromProperty(name string, prop *openapi3.Schema) (Entry, error) {
	kind, err := kindFromProperty(name, prop)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Name: name, Kind: kind, Default: prop.Default}
	if kind.Numeric() {
		if prop.Min != nil {
			value := *prop.Min
			entry.Min = &value
		}
		if prop.Max != nil {
			value := *prop.Max
			entry.Max = &value
		}
	}
	if kind == model.KindEnum {
		entry.Enum = enumMembers(prop.Enum)
		if len(entry.Enum) == 0 {
			return Entry{}, fmt.Errorf("property %q: enum kind without enum values", name)
		}
	}
	if kind == model.KindObjectRef {
		refKind, _ := prop.Extensions[refKindExtensionKey].(string)
		if refKind == "" {
			return Entry{}, fmt.Errorf("property %q: object reference without %s", name, refKindExtensionKey)
		}
		entry.RefKind = refKind
	}
	return entry, nil
}

func kindFromProperty(name string, prop *openapi3.Schema) (model.Kind, error) {
	if raw, ok := prop.Extensions[kindExtensionKey]; ok {
		value, ok := raw.(string)
		if !ok {
			return "", fmt.Errorf("property %q: %s must be a string", name, kindExtensionKey)
		}
		kind := model.Kind(strings.ToLower(strings.TrimSpace(value)))
		if !kind.Valid() {
			return "", fmt.Errorf("property %q: unknown kind %q", name, value)
		}
		return kind, nil
	}

	switch firstType(prop.Type) {
	case "number":
		return model.KindFloat, nil
	case "integer":
		return model.KindInt, nil
	case "boolean":
		return model.KindBool, nil
	case "string":
		if len(prop.Enum) > 0 {
			return model.KindEnum, nil
		}
		return model.KindString, nil
	case "object":
		return model.KindObject, nil
	default:
		return "", fmt.Errorf("property %q: no kind mapping for type %q (use %s)", name, firstType(prop.Type), kindExtensionKey)
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// enumMembers derives members from OpenAPI enum values: strings get ordinal
// values, numbers keep their integral value as both name source and value.
func enumMembers(values []any) []model.EnumMember {
	members := make([]model.EnumMember, 0, len(values))
	for i, raw := range values {
		switch v := raw.(type) {
		case string:
			members = append(members, model.EnumMember{Name: v, Value: i})
		case float64:
			members = append(members, model.EnumMember{Name: fmt.Sprintf("%d", int(v)), Value: int(v)})
		}
	}
	return members
}

// Package schema declares and validates the configuration shape of one
// logical operation: which entries are allowed, which are required, their
// value kinds, numeric ranges, and defaults. Validation is exhaustive (every
// problem in the payload is reported in one pass) and returns the merged,
// schema-complete configuration ready for binding.
package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-propbind/pkg/model"
)

// Entry declares one named configuration value.
type Entry struct {
	Name     string     `yaml:"name" json:"name"`
	Kind     model.Kind `yaml:"kind" json:"kind"`
	Required bool       `yaml:"required,omitempty" json:"required,omitempty"`
	// Min and Max are inclusive bounds, only meaningful for numeric kinds.
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	// Default is injected when the payload omits the entry. A required
	// entry carries no default.
	Default any `yaml:"default,omitempty" json:"default,omitempty"`
	// Enum lists the declared members for enum-kind entries.
	Enum []model.EnumMember `yaml:"members,omitempty" json:"members,omitempty"`
	// RefKind names the required reference kind for object-reference
	// entries.
	RefKind string `yaml:"ref,omitempty" json:"ref,omitempty"`
	// TypeName names the nested type for nested-object entries.
	TypeName string `yaml:"type,omitempty" json:"type,omitempty"`
}

// Member converts the entry into the member descriptor shape coercion
// consumes.
func (e Entry) Member() model.MemberDescriptor {
	return model.MemberDescriptor{
		Name:     e.Name,
		Kind:     e.Kind,
		Enum:     e.Enum,
		RefKind:  e.RefKind,
		TypeName: e.TypeName,
	}
}

// Schema is the ordered declaration for one operation or target type.
type Schema struct {
	Operation string  `yaml:"operation" json:"operation"`
	Entries   []Entry `yaml:"fields" json:"fields"`
}

// Entry returns the declared entry with the given name.
func (s Schema) Entry(name string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Check verifies the schema's own invariants: entry names are unique and
// non-empty, kinds are declared, required entries carry no default, and
// ranges appear only on numeric kinds with min <= max.
func (s Schema) Check() error {
	seen := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("schema %q: entry with empty name", s.Operation)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("schema %q: duplicate entry %q", s.Operation, e.Name)
		}
		seen[e.Name] = struct{}{}
		if !e.Kind.Valid() {
			return fmt.Errorf("schema %q: entry %q: unknown kind %q", s.Operation, e.Name, e.Kind)
		}
		if e.Required && e.Default != nil {
			return fmt.Errorf("schema %q: entry %q: required entry carries a default", s.Operation, e.Name)
		}
		if (e.Min != nil || e.Max != nil) && !e.Kind.Numeric() {
			return fmt.Errorf("schema %q: entry %q: range on non-numeric kind %q", s.Operation, e.Name, e.Kind)
		}
		if e.Min != nil && e.Max != nil && *e.Min > *e.Max {
			return fmt.Errorf("schema %q: entry %q: min %v exceeds max %v", s.Operation, e.Name, *e.Min, *e.Max)
		}
		if e.Kind == model.KindEnum && len(e.Enum) == 0 {
			return fmt.Errorf("schema %q: entry %q: enum kind without members", s.Operation, e.Name)
		}
	}
	return nil
}

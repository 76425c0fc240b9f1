package coerce

import (
	"fmt"

	"github.com/goliatone/go-propbind/pkg/model"
)

// CoercionError reports one failed conversion: which field, the kind the
// schema or member declared, the offending raw value, and a human-readable
// reason. It is always returned as a value, never panicked.
type CoercionError struct {
	Field  string
	Kind   model.Kind
	Raw    any
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coerce: field %q: expected %s, got %v: %s", e.Field, e.Kind, e.Raw, e.Reason)
}

func failf(field string, kind model.Kind, raw any, format string, args ...any) error {
	return &CoercionError{
		Field:  field,
		Kind:   kind,
		Raw:    raw,
		Reason: fmt.Sprintf(format, args...),
	}
}

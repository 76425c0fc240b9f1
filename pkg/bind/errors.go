package bind

import (
	"fmt"
	"strings"
)

// Code classifies a binding failure.
type Code string

const (
	// CodeUnknownType marks a target type the universe does not describe.
	CodeUnknownType Code = "unknown-type"
	// CodeUnknownMember marks a path segment with no member on the current
	// object.
	CodeUnknownMember Code = "unknown-member"
	// CodeNilIntermediate marks an unset reference encountered before the
	// terminal segment. The binder never allocates intermediates.
	CodeNilIntermediate Code = "nil-intermediate"
	// CodeNotTraversable marks an intermediate segment whose member is a
	// value kind that cannot be descended into.
	CodeNotTraversable Code = "not-traversable"
	// CodeReadOnly marks a terminal member without a setter.
	CodeReadOnly Code = "read-only"
	// CodeCoercion wraps a conversion failure at the terminal member.
	CodeCoercion Code = "coercion"
	// CodeMutation wraps a host mutator failure.
	CodeMutation Code = "mutation"
)

// Error reports one failed binding: the full path being bound, the segment at
// fault, the classification, optional ranked member suggestions, and the
// underlying cause when one exists.
type Error struct {
	Path        string
	Segment     string
	Code        Code
	Suggestions []string
	Err         error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bind %q", e.Path)
	if e.Segment != "" && e.Segment != e.Path {
		fmt.Fprintf(&b, " at %q", e.Segment)
	}
	fmt.Fprintf(&b, ": %s", e.Code)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

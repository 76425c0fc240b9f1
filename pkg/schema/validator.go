package schema

import (
	"fmt"
	"sort"

	"github.com/jinzhu/copier"

	"github.com/goliatone/go-propbind/pkg/coerce"
)

// Validator validates payloads against schemas, delegating per-value
// conversion to a coercer.
type Validator struct {
	coercer *coerce.Coercer
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithCoercer overrides the coercer used for entry values. Use this to wire
// the host reference resolver, layer table, and named colors into
// validation.
func WithCoercer(c *coerce.Coercer) ValidatorOption {
	return func(v *Validator) { v.coercer = c }
}

// NewValidator returns a validator. Without options it coerces with a bare
// coercer, which is enough for schemas that avoid object-reference and
// layer-mask kinds.
func NewValidator(options ...ValidatorOption) *Validator {
	v := &Validator{coercer: coerce.New()}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// Validate checks payload against s. Every entry is evaluated before
// returning so a caller sees all problems in one response: missing required
// entries, coercion failures, and range violations are errors; payload keys
// with no schema entry are warnings and are dropped. On success the returned
// Result carries the merged configuration: every value, injected default or
// payload-supplied, is coerced to its entry's kind and range-checked, and
// defaults are deep-copied so callers can mutate the result without
// corrupting the schema.
func (v *Validator) Validate(payload map[string]any, s Schema) Result {
	result := Result{}
	merged := make(map[string]any, len(s.Entries))

	for _, entry := range s.Entries {
		raw, present := payload[entry.Name]
		if !present {
			if entry.Required {
				result.Errors = append(result.Errors, Issue{
					Field:   entry.Name,
					Code:    IssueMissingRequired,
					Message: "required entry is missing",
				})
				continue
			}
			if entry.Default == nil {
				continue
			}
			// Defaults go through the same coercion and range checks as
			// payload values, so the merged configuration is typed
			// kind-correctly whichever path filled it.
			coerced, err := v.coercer.Coerce(entry.Name, cloneValue(entry.Default), entry.Member())
			if err != nil {
				result.Errors = append(result.Errors, Issue{
					Field:   entry.Name,
					Code:    IssueCoercion,
					Message: "default: " + err.Error(),
				})
				continue
			}
			if issue, ok := rangeIssue(entry, coerced); ok {
				result.Errors = append(result.Errors, issue)
				continue
			}
			merged[entry.Name] = coerced
			continue
		}

		coerced, err := v.coercer.Coerce(entry.Name, raw, entry.Member())
		if err != nil {
			result.Errors = append(result.Errors, Issue{
				Field:   entry.Name,
				Code:    IssueCoercion,
				Message: err.Error(),
			})
			continue
		}
		if issue, ok := rangeIssue(entry, coerced); ok {
			result.Errors = append(result.Errors, issue)
			continue
		}
		merged[entry.Name] = coerced
	}

	for _, key := range unknownKeys(payload, s) {
		result.Warnings = append(result.Warnings, Issue{
			Field:   key,
			Code:    IssueUnknownField,
			Message: "no such entry in schema; value dropped",
		})
	}

	if len(result.Errors) > 0 {
		return result
	}
	result.Valid = true
	result.Merged = merged
	return result
}

// rangeIssue checks an inclusive numeric range; values at min and max are
// accepted.
func rangeIssue(entry Entry, value any) (Issue, bool) {
	if entry.Min == nil && entry.Max == nil {
		return Issue{}, false
	}
	var num float64
	switch typed := value.(type) {
	case int:
		num = float64(typed)
	case float64:
		num = typed
	default:
		return Issue{}, false
	}
	if entry.Min != nil && num < *entry.Min {
		return Issue{
			Field:   entry.Name,
			Code:    IssueOutOfRange,
			Message: fmt.Sprintf("%v < %v", num, *entry.Min),
		}, true
	}
	if entry.Max != nil && num > *entry.Max {
		return Issue{
			Field:   entry.Name,
			Code:    IssueOutOfRange,
			Message: fmt.Sprintf("%v > %v", num, *entry.Max),
		}, true
	}
	return Issue{}, false
}

func unknownKeys(payload map[string]any, s Schema) []string {
	var unknown []string
	for key := range payload {
		if _, ok := s.Entry(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// cloneValue deep-copies container defaults so the merged configuration never
// aliases the schema's declared default.
func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		if err := copier.CopyWithOption(&out, typed, copier.Option{DeepCopy: true}); err != nil {
			return typed
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		if err := copier.CopyWithOption(&out, typed, copier.Option{DeepCopy: true}); err != nil {
			return typed
		}
		return out
	default:
		return v
	}
}

package schema

import "fmt"

// IssueCode classifies a validation problem.
type IssueCode string

const (
	// IssueMissingRequired marks a required entry absent from the payload.
	IssueMissingRequired IssueCode = "missing-required"
	// IssueOutOfRange marks a numeric value outside its declared range.
	IssueOutOfRange IssueCode = "out-of-range"
	// IssueCoercion marks a value that could not be converted to the
	// entry's kind.
	IssueCoercion IssueCode = "coercion"
	// IssueUnknownField marks a payload key with no schema entry. Unknown
	// fields are warnings, not errors; they are dropped from the merged
	// result.
	IssueUnknownField IssueCode = "unknown-field"
)

// Issue is one validation finding.
type Issue struct {
	Field   string    `json:"field"`
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Field, i.Message, i.Code)
}

// Result is the outcome of validating one payload against one schema. When
// Valid is true, Merged holds the coerced payload overlaid on defaults and is
// schema-complete; when false, Merged is nil and Errors holds every problem
// found. Warnings never fail validation. Results are created and consumed
// within one request and never retained.
type Result struct {
	Valid    bool           `json:"valid"`
	Errors   []Issue        `json:"errors,omitempty"`
	Warnings []Issue        `json:"warnings,omitempty"`
	Merged   map[string]any `json:"-"`
}

// Messages flattens the error list into strings for report formatting.
func (r Result) Messages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for _, issue := range r.Errors {
		out = append(out, issue.String())
	}
	return out
}

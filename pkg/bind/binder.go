// Package bind writes coerced values onto live target instances addressed by
// dot-separated member paths. The binder walks intermediate members through
// the host mutator, refuses to allocate missing intermediates, and coerces at
// the terminal member before assignment. Each bind is independent: a failure
// reports exactly which assignment did not happen and why, and nothing is
// rolled back.
package bind

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-propbind/internal/match"
	"github.com/goliatone/go-propbind/pkg/coerce"
	"github.com/goliatone/go-propbind/pkg/model"
)

// DefaultSuggestions is how many member candidates an unknown-member error
// carries.
const DefaultSuggestions = 3

// Binder resolves dotted member paths against type descriptors and performs
// assignments through the host mutator.
type Binder struct {
	universe    model.Universe
	mutator     model.Mutator
	coercer     *coerce.Coercer
	suggestions int
}

// Option configures a Binder.
type Option func(*Binder)

// WithCoercer overrides the coercer applied at terminal members.
func WithCoercer(c *coerce.Coercer) Option {
	return func(b *Binder) { b.coercer = c }
}

// WithSuggestions overrides how many candidates an unknown-member error
// carries.
func WithSuggestions(n int) Option {
	return func(b *Binder) {
		if n >= 0 {
			b.suggestions = n
		}
	}
}

// New returns a binder over the given universe and mutator.
func New(universe model.Universe, mutator model.Mutator, options ...Option) *Binder {
	b := &Binder{
		universe:    universe,
		mutator:     mutator,
		coercer:     coerce.New(),
		suggestions: DefaultSuggestions,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// Bind assigns value to the member addressed by path on target. Intermediate
// segments must resolve to nested-object members whose current value is set;
// the binder errors rather than allocating. The terminal value is coerced to
// the member's declared kind unless already typed, then written through the
// mutator. All failures return a *Error.
func (b *Binder) Bind(target model.Target, path string, value any) error {
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return &Error{Path: path, Code: CodeUnknownMember, Err: fmt.Errorf("empty path segment")}
		}
	}

	desc, ok := b.universe.Describe(target.Type)
	if !ok {
		return &Error{Path: path, Code: CodeUnknownType, Err: fmt.Errorf("unknown type %q", target.Type)}
	}
	instance := target.Instance

	for i, segment := range segments {
		member, ok := desc.Member(segment)
		if !ok {
			return &Error{
				Path:        path,
				Segment:     segment,
				Code:        CodeUnknownMember,
				Suggestions: match.Closest(segment, desc.MemberNames(), b.suggestions),
				Err:         fmt.Errorf("no member %q on %s", segment, desc.Name),
			}
		}

		terminal := i == len(segments)-1
		if terminal {
			return b.assign(path, segment, instance, member, value)
		}

		if member.Kind != model.KindObject {
			return &Error{
				Path:    path,
				Segment: segment,
				Code:    CodeNotTraversable,
				Err:     fmt.Errorf("cannot descend into %s member %q", member.Kind, segment),
			}
		}
		next, err := b.mutator.Get(instance, member)
		if err != nil {
			return &Error{Path: path, Segment: segment, Code: CodeMutation, Err: err}
		}
		if next == nil {
			return &Error{
				Path:    path,
				Segment: segment,
				Code:    CodeNilIntermediate,
				Err:     fmt.Errorf("member %q is unset; not creating it", segment),
			}
		}
		nextDesc, ok := b.universe.Describe(member.TypeName)
		if !ok {
			return &Error{
				Path:    path,
				Segment: segment,
				Code:    CodeUnknownType,
				Err:     fmt.Errorf("member %q has undescribed type %q", segment, member.TypeName),
			}
		}
		instance = next
		desc = nextDesc
	}
	return nil
}

func (b *Binder) assign(path, segment string, instance any, member model.MemberDescriptor, value any) error {
	if member.ReadOnly {
		return &Error{
			Path:    path,
			Segment: segment,
			Code:    CodeReadOnly,
			Err:     fmt.Errorf("member %q has no setter", segment),
		}
	}
	coerced, err := b.coercer.Coerce(path, value, member)
	if err != nil {
		return &Error{Path: path, Segment: segment, Code: CodeCoercion, Err: err}
	}
	if err := b.mutator.Set(instance, member, coerced); err != nil {
		return &Error{Path: path, Segment: segment, Code: CodeMutation, Err: err}
	}
	return nil
}

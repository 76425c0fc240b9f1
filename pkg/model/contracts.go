package model

// Universe enumerates the host's known types and their member descriptors.
// The engine consults it lazily and caches what it learns; the underlying
// type set must not change after first use.
type Universe interface {
	// TypeNames returns every canonical type name the host knows.
	TypeNames() []string
	// Describe returns the descriptor for an exact canonical name.
	Describe(name string) (TypeDescriptor, bool)
}

// ReferenceResolver resolves a string identifier into an existing live object
// of the requested reference kind. The engine never creates objects; a false
// return is surfaced to the caller as a coercion failure.
type ReferenceResolver interface {
	ResolveReference(id, kind string) (ObjectRef, bool)
}

// Mutator performs the actual reads and writes against a live instance. The
// engine computes what to write and where; the host decides how (direct field
// access, accessor call, main-thread marshaling, and so on).
type Mutator interface {
	// Get reads the current value of a member on target.
	Get(target any, member MemberDescriptor) (any, error)
	// Set writes a coerced value onto a member of target.
	Set(target any, member MemberDescriptor, value any) error
}

// LayerProvider exposes the host's ordered layer-name table. Layer i maps to
// bit i of a LayerMask.
type LayerProvider interface {
	Layers() []string
}

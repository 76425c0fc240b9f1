// Package model defines the typed vocabulary shared by every stage of the
// binding pipeline: value kinds, type and member descriptors, the concrete
// value types coercion produces (vectors, colors, quaternions, layer masks,
// object references), and the collaborator contracts a host embeds the engine
// with. Resolvers, coercers, validators, and binders all consume these types
// but never define their own; hosts implement Universe, ReferenceResolver,
// and Mutator to connect the engine to live objects.
package model

// Package propbind re-exports the property-binding pipeline from the module
// root so embedders can start with one import: register host types, load
// operation schemas, and apply payloads to live targets.
package propbind

import (
	"context"

	"github.com/goliatone/go-propbind/pkg/engine"
	"github.com/goliatone/go-propbind/pkg/model"
	"github.com/goliatone/go-propbind/pkg/reflecthost"
	"github.com/goliatone/go-propbind/pkg/schema"
)

// Kind enumerates the value kinds a member can declare.
type Kind = model.Kind

// TypeDescriptor is the resolved runtime handle for one host type.
type TypeDescriptor = model.TypeDescriptor

// MemberDescriptor describes one assignable member of a host type.
type MemberDescriptor = model.MemberDescriptor

// EnumMember is one declared value of an enum-kind member.
type EnumMember = model.EnumMember

// Target pairs a live instance with its canonical type name.
type Target = model.Target

// Schema is the ordered configuration declaration for one operation.
type Schema = schema.Schema

// Entry declares one named configuration value in a schema.
type Entry = schema.Entry

// Result is the outcome of validating one payload against a schema.
type Result = schema.Result

// Request describes one engine apply.
type Request = engine.Request

// Report is the outcome of one engine apply.
type Report = engine.Report

// NewHost returns an empty reflection-backed host. Register prototype
// structs on it, then hand it to NewEngine.
func NewHost() *reflecthost.Host {
	return reflecthost.New()
}

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(host engine.Host, options ...engine.Option) *engine.Engine {
	return engine.New(host, options...)
}

// LoadSchemas reads every YAML schema document in dir into a checked
// registry, ready for engine.WithSchemas.
func LoadSchemas(dir string) (*schema.Registry, error) {
	return schema.LoadDir(dir)
}

// Apply validates payload against the named operation's schema and binds the
// merged values onto target. It is the simplest entry point for callers that
// configure one object at a time.
func Apply(ctx context.Context, host engine.Host, registry *schema.Registry, req Request) (Report, error) {
	eng := engine.New(host, engine.WithSchemas(registry))
	return eng.Apply(ctx, req)
}

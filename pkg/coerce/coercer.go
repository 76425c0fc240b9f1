// Package coerce converts untyped configuration values into the typed values
// a member's declared kind requires. Dispatch is purely on the target kind;
// every kind has exactly one conversion path and every failure is a
// *CoercionError value identifying the field, the expected kind, and the raw
// input.
package coerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-propbind/pkg/model"
)

// Coercer holds the collaborators and lookup tables coercion needs: the host
// reference resolver for object-reference kinds, an optional type lookup for
// nested objects, the named-color table, and the host layer table.
type Coercer struct {
	refs   model.ReferenceResolver
	lookup func(name string) (model.TypeDescriptor, bool)
	colors map[string]model.Color
	layers model.LayerProvider
}

// Option configures a Coercer.
type Option func(*Coercer)

// WithReferenceResolver wires the host resolver consulted for
// object-reference kinds.
func WithReferenceResolver(refs model.ReferenceResolver) Option {
	return func(c *Coercer) { c.refs = refs }
}

// WithTypeLookup wires a descriptor lookup so nested-object coercion can
// recurse against the nested type's members. Typically resolve.Resolver
// backed.
func WithTypeLookup(lookup func(name string) (model.TypeDescriptor, bool)) Option {
	return func(c *Coercer) { c.lookup = lookup }
}

// WithNamedColors merges additional named colors into the lookup table.
// Names match case-insensitively.
func WithNamedColors(colors map[string]model.Color) Option {
	return func(c *Coercer) {
		for name, color := range colors {
			c.colors[strings.ToLower(name)] = color
		}
	}
}

// WithLayers supplies a fixed ordered layer-name table for layer-mask
// coercion. Layer i maps to bit i.
func WithLayers(layers []string) Option {
	return func(c *Coercer) { c.layers = staticLayers(append([]string(nil), layers...)) }
}

// WithLayerProvider wires a live layer table. The provider is consulted on
// every layer-mask coercion, so layers registered after the coercer is built
// are still visible.
func WithLayerProvider(layers model.LayerProvider) Option {
	return func(c *Coercer) { c.layers = layers }
}

type staticLayers []string

func (s staticLayers) Layers() []string { return s }

// New returns a coercer with the default named-color table.
func New(options ...Option) *Coercer {
	c := &Coercer{colors: defaultColors()}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Coerce converts raw into the value kind member declares. Values that are
// already typed for the kind pass through unchanged.
func (c *Coercer) Coerce(field string, raw any, member model.MemberDescriptor) (any, error) {
	if typed, ok := alreadyTyped(raw, member.Kind); ok {
		return typed, nil
	}
	switch member.Kind {
	case model.KindString:
		return c.coerceString(field, raw)
	case model.KindInt:
		return c.coerceInt(field, raw)
	case model.KindFloat:
		return c.coerceFloat(field, raw)
	case model.KindBool:
		return c.coerceBool(field, raw)
	case model.KindVec2, model.KindVec3, model.KindVec4:
		return c.coerceVector(field, raw, member.Kind)
	case model.KindColor:
		return c.coerceColor(field, raw)
	case model.KindQuaternion:
		return c.coerceQuaternion(field, raw)
	case model.KindEnum:
		return c.coerceEnum(field, raw, member.Enum)
	case model.KindLayerMask:
		return c.coerceLayerMask(field, raw)
	case model.KindObjectRef:
		return c.coerceObjectRef(field, raw, member.RefKind)
	case model.KindObject:
		return c.coerceObject(field, raw, member.TypeName)
	default:
		return nil, failf(field, member.Kind, raw, "unknown value kind")
	}
}

// alreadyTyped reports whether raw is already the typed value for kind, so
// binder callers can pass through values produced by a prior coercion.
func alreadyTyped(raw any, kind model.Kind) (any, bool) {
	switch kind {
	case model.KindVec2:
		v, ok := raw.(model.Vec2)
		return v, ok
	case model.KindVec3:
		v, ok := raw.(model.Vec3)
		return v, ok
	case model.KindVec4:
		v, ok := raw.(model.Vec4)
		return v, ok
	case model.KindColor:
		v, ok := raw.(model.Color)
		return v, ok
	case model.KindQuaternion:
		v, ok := raw.(model.Quaternion)
		return v, ok
	case model.KindEnum:
		v, ok := raw.(model.EnumMember)
		return v, ok
	case model.KindLayerMask:
		v, ok := raw.(model.LayerMask)
		return v, ok
	case model.KindObjectRef:
		v, ok := raw.(model.ObjectRef)
		return v, ok
	}
	return nil, false
}

func (c *Coercer) coerceString(field string, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, failf(field, model.KindString, raw, "not a string")
	}
	return s, nil
}

func (c *Coercer) coerceInt(field string, raw any) (any, error) {
	f, ok := asNumber(raw)
	if !ok {
		return nil, failf(field, model.KindInt, raw, "not a number or numeric string")
	}
	if f != math.Trunc(f) {
		return nil, failf(field, model.KindInt, raw, "not an integer")
	}
	return int(f), nil
}

func (c *Coercer) coerceFloat(field string, raw any) (any, error) {
	f, ok := asNumber(raw)
	if !ok {
		return nil, failf(field, model.KindFloat, raw, "not a number or numeric string")
	}
	return f, nil
}

func (c *Coercer) coerceBool(field string, raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, failf(field, model.KindBool, raw, "not a boolean")
}

// asNumber accepts the numeric shapes JSON and YAML decoders produce, plus
// numeric strings. Booleans do not count as numbers, and neither do NaN or
// the infinities: a non-finite value would slip past every range check.
func asNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, finite(v)
	case float32:
		return float64(v), finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, finite(f)
	}
	return 0, false
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

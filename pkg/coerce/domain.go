package coerce

import (
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-propbind/pkg/model"
)

// coerceEnum accepts the symbolic member name (case-insensitive) or an
// integral value matching a declared member. Failures name the valid members.
func (c *Coercer) coerceEnum(field string, raw any, members []model.EnumMember) (any, error) {
	if len(members) == 0 {
		return nil, failf(field, model.KindEnum, raw, "no enum members declared")
	}
	switch v := raw.(type) {
	case string:
		for _, m := range members {
			if strings.EqualFold(m.Name, strings.TrimSpace(v)) {
				return m, nil
			}
		}
	default:
		if f, ok := asNumber(raw); ok && f == math.Trunc(f) {
			value := int(f)
			for _, m := range members {
				if m.Value == value {
					return m, nil
				}
			}
		}
	}
	return nil, failf(field, model.KindEnum, raw, "valid members: %s", strings.Join(enumNames(members), ", "))
}

func enumNames(members []model.EnumMember) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}

// coerceLayerMask accepts a single layer name, an array of names, or an
// integer bitmask. Unknown names list the valid layer table.
func (c *Coercer) coerceLayerMask(field string, raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return c.maskFromNames(field, raw, []string{v})
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, failf(field, model.KindLayerMask, raw, "layer names must be strings")
			}
			names = append(names, s)
		}
		return c.maskFromNames(field, raw, names)
	default:
		f, ok := asNumber(raw)
		if !ok {
			return nil, failf(field, model.KindLayerMask, raw, "expected layer name, name array, or bitmask")
		}
		if f != math.Trunc(f) || f < 0 || f > math.MaxUint32 {
			return nil, failf(field, model.KindLayerMask, raw, "bitmask must be a 32-bit unsigned integer")
		}
		return model.LayerMask(uint32(f)), nil
	}
}

func (c *Coercer) maskFromNames(field string, raw any, names []string) (any, error) {
	var mask model.LayerMask
	for _, name := range names {
		idx := c.layerIndex(name)
		if idx < 0 {
			return nil, failf(field, model.KindLayerMask, raw, "unknown layer %q (valid: %s)", name, strings.Join(c.sortedLayers(), ", "))
		}
		mask = mask.With(idx)
	}
	return mask, nil
}

func (c *Coercer) layerIndex(name string) int {
	if c.layers == nil {
		return -1
	}
	for i, layer := range c.layers.Layers() {
		if strings.EqualFold(layer, strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func (c *Coercer) sortedLayers() []string {
	if c.layers == nil {
		return nil
	}
	out := append([]string(nil), c.layers.Layers()...)
	sort.Strings(out)
	return out
}

// coerceObjectRef resolves a string identifier through the host reference
// resolver and checks the returned reference is of the declared kind.
func (c *Coercer) coerceObjectRef(field string, raw any, refKind string) (any, error) {
	id, ok := raw.(string)
	if !ok {
		return nil, failf(field, model.KindObjectRef, raw, "expected reference identifier string")
	}
	if c.refs == nil {
		return nil, failf(field, model.KindObjectRef, raw, "no reference resolver configured")
	}
	ref, ok := c.refs.ResolveReference(id, refKind)
	if !ok {
		return nil, failf(field, model.KindObjectRef, raw, "no %s named %q", refKind, id)
	}
	if refKind != "" && !strings.EqualFold(ref.Kind, refKind) {
		return nil, failf(field, model.KindObjectRef, raw, "reference %q is a %s, not a %s", id, ref.Kind, refKind)
	}
	return ref, nil
}

// coerceObject requires a mapping and recurses structurally against the
// nested type's members when a type lookup is wired. It does not walk dotted
// paths; that is the binder's job.
func (c *Coercer) coerceObject(field string, raw any, typeName string) (any, error) {
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, failf(field, model.KindObject, raw, "expected nested mapping")
	}
	if c.lookup == nil || typeName == "" {
		return mapping, nil
	}
	desc, ok := c.lookup(typeName)
	if !ok {
		return nil, failf(field, model.KindObject, raw, "unknown nested type %q", typeName)
	}
	out := make(map[string]any, len(mapping))
	for key, value := range mapping {
		member, ok := desc.Member(key)
		if !ok {
			return nil, failf(field+"."+key, model.KindObject, value, "no member %q on %s", key, desc.Name)
		}
		coerced, err := c.Coerce(field+"."+key, value, member)
		if err != nil {
			return nil, err
		}
		out[key] = coerced
	}
	return out, nil
}

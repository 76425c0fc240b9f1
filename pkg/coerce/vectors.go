package coerce

import (
	"strings"

	"github.com/goliatone/go-propbind/pkg/model"
)

var vectorArity = map[model.Kind]int{
	model.KindVec2: 2,
	model.KindVec3: 3,
	model.KindVec4: 4,
}

// coerceVector accepts either an array of exactly N numbers or a mapping with
// named x/y/z/w components. Missing mapping components default to 0.
func (c *Coercer) coerceVector(field string, raw any, kind model.Kind) (any, error) {
	arity := vectorArity[kind]
	comps, err := components(field, raw, kind, arity)
	if err != nil {
		return nil, err
	}
	switch kind {
	case model.KindVec2:
		return model.Vec2{X: comps[0], Y: comps[1]}, nil
	case model.KindVec3:
		return model.Vec3{X: comps[0], Y: comps[1], Z: comps[2]}, nil
	default:
		return model.Vec4{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}, nil
	}
}

// coerceQuaternion accepts an array of exactly 4 numbers or an x/y/z/w
// mapping, already in normalized quaternion form. No Euler-angle inference.
func (c *Coercer) coerceQuaternion(field string, raw any) (any, error) {
	comps, err := components(field, raw, model.KindQuaternion, 4)
	if err != nil {
		return nil, err
	}
	return model.Quaternion{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}, nil
}

var componentNames = []string{"x", "y", "z", "w"}

// components extracts arity floats from an array or an x/y/z/w mapping.
func components(field string, raw any, kind model.Kind, arity int) ([]float32, error) {
	out := make([]float32, 4)
	switch v := raw.(type) {
	case []any:
		if len(v) != arity {
			return nil, failf(field, kind, raw, "expected %d components, got %d", arity, len(v))
		}
		for i, item := range v {
			f, ok := asNumber(item)
			if !ok {
				return nil, failf(field, kind, raw, "component %d is not a number", i)
			}
			out[i] = float32(f)
		}
		return out[:arity], nil
	case map[string]any:
		for key, item := range v {
			idx := componentIndex(key)
			if idx < 0 || idx >= arity {
				return nil, failf(field, kind, raw, "unknown component %q", key)
			}
			f, ok := asNumber(item)
			if !ok {
				return nil, failf(field, kind, raw, "component %q is not a number", key)
			}
			out[idx] = float32(f)
		}
		return out[:arity], nil
	}
	return nil, failf(field, kind, raw, "expected array or component mapping")
}

func componentIndex(name string) int {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range componentNames {
		if lowered == candidate {
			return i
		}
	}
	return -1
}

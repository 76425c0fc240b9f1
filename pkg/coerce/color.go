package coerce

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-propbind/pkg/model"
)

// defaultColors is the built-in named-color table. Hosts extend it with
// WithNamedColors; names are matched lowercased.
func defaultColors() map[string]model.Color {
	return map[string]model.Color{
		"black":   {R: 0, G: 0, B: 0, A: 1},
		"white":   {R: 1, G: 1, B: 1, A: 1},
		"red":     {R: 1, G: 0, B: 0, A: 1},
		"green":   {R: 0, G: 1, B: 0, A: 1},
		"blue":    {R: 0, G: 0, B: 1, A: 1},
		"yellow":  {R: 1, G: 1, B: 0, A: 1},
		"cyan":    {R: 0, G: 1, B: 1, A: 1},
		"magenta": {R: 1, G: 0, B: 1, A: 1},
		"gray":    {R: 0.5, G: 0.5, B: 0.5, A: 1},
		"grey":    {R: 0.5, G: 0.5, B: 0.5, A: 1},
		"orange":  {R: 1, G: 0.5, B: 0, A: 1},
		"purple":  {R: 0.5, G: 0, B: 0.5, A: 1},
		"clear":   {R: 0, G: 0, B: 0, A: 0},
	}
}

// coerceColor accepts an array or r/g/b/a mapping of 3-4 floats in [0,1], a
// named color from the lookup table, or a hex string. Out-of-range components
// are clamped, not rejected. Alpha defaults to 1.
func (c *Coercer) coerceColor(field string, raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return c.colorFromString(field, v)
	case []any:
		if len(v) < 3 || len(v) > 4 {
			return nil, failf(field, model.KindColor, raw, "expected 3 or 4 components, got %d", len(v))
		}
		color := model.Color{A: 1}
		comps := []*float32{&color.R, &color.G, &color.B, &color.A}
		for i, item := range v {
			f, ok := asNumber(item)
			if !ok {
				return nil, failf(field, model.KindColor, raw, "component %d is not a number", i)
			}
			*comps[i] = float32(f)
		}
		return color.Clamped(), nil
	case map[string]any:
		color := model.Color{A: 1}
		for key, item := range v {
			f, ok := asNumber(item)
			if !ok {
				return nil, failf(field, model.KindColor, raw, "component %q is not a number", key)
			}
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "r":
				color.R = float32(f)
			case "g":
				color.G = float32(f)
			case "b":
				color.B = float32(f)
			case "a":
				color.A = float32(f)
			default:
				return nil, failf(field, model.KindColor, raw, "unknown component %q", key)
			}
		}
		return color.Clamped(), nil
	}
	return nil, failf(field, model.KindColor, raw, "expected color components or name")
}

func (c *Coercer) colorFromString(field, value string) (any, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	if color, ok := c.colors[name]; ok {
		return color.Clamped(), nil
	}
	hex := name
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return nil, failf(field, model.KindColor, value, "unknown color name")
	}
	return model.Color{R: float32(parsed.R), G: float32(parsed.G), B: float32(parsed.B), A: 1}, nil
}

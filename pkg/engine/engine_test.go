package engine_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propbind/pkg/engine"
	"github.com/goliatone/go-propbind/pkg/model"
	"github.com/goliatone/go-propbind/pkg/reflecthost"
	"github.com/goliatone/go-propbind/pkg/resolve"
	"github.com/goliatone/go-propbind/pkg/schema"
	"github.com/goliatone/go-propbind/pkg/testsupport"
)

type gameObject struct {
	Name     string
	Position model.Vec3
	Layers   model.LayerMask
}

type material struct {
	Color    model.Color
	Metallic float32
}

type renderer struct {
	Enabled  bool
	Material *material
}

type light struct {
	Intensity float32
	Color     model.Color
	Shadows   int
	Enabled   bool
}

func lightShadows() []model.EnumMember {
	return []model.EnumMember{
		{Name: "Off", Value: 0},
		{Name: "Hard", Value: 1},
		{Name: "Soft", Value: 2},
	}
}

func newLightEngine(t *testing.T) (*engine.Engine, *reflecthost.Host) {
	t.Helper()
	host := reflecthost.New()
	host.MustRegister("Light", light{}, reflecthost.WithEnum("shadows", lightShadows()...))

	registry := schema.NewRegistry()
	min, max := 0.0, 10.0
	registry.MustRegister(schema.Schema{
		Operation: "light.configure",
		Entries: []schema.Entry{
			{Name: "intensity", Kind: model.KindFloat, Required: true, Min: &min, Max: &max},
			{Name: "color", Kind: model.KindColor, Default: "white"},
			{Name: "shadows", Kind: model.KindEnum, Enum: lightShadows(), Default: "Off"},
			{Name: "enabled", Kind: model.KindBool, Default: true},
		},
	})
	return engine.New(host, engine.WithSchemas(registry)), host
}

func TestApplyBindsMergedPayload(t *testing.T) {
	eng, _ := newLightEngine(t)
	target := &light{}

	report, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "light.configure",
		TargetType: "Light",
		Target:     target,
		Payload:    map[string]any{"intensity": float64(2.5), "shadows": "Soft"},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !report.OK() {
		t.Fatalf("report not ok: %+v", report)
	}
	if diff := cmp.Diff([]string{"intensity", "color", "shadows", "enabled"}, report.Applied); diff != "" {
		t.Fatalf("applied mismatch (-want +got):\n%s", diff)
	}

	if target.Intensity != 2.5 {
		t.Fatalf("intensity = %v", target.Intensity)
	}
	if target.Shadows != 2 {
		t.Fatalf("shadows = %v", target.Shadows)
	}
	if !target.Enabled {
		t.Fatal("enabled default not applied")
	}
	if diff := cmp.Diff(model.Color{R: 1, G: 1, B: 1, A: 1}, target.Color); diff != "" {
		t.Fatalf("color mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyStopsOnValidationFailure(t *testing.T) {
	eng, _ := newLightEngine(t)
	target := &light{}

	report, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "light.configure",
		TargetType: "Light",
		Target:     target,
		Payload:    map[string]any{"intensity": float64(99)},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if report.OK() || report.Result.Valid {
		t.Fatalf("expected validation failure: %+v", report)
	}
	if len(report.Applied) != 0 {
		t.Fatalf("nothing should bind after validation failure: %v", report.Applied)
	}
	if target.Intensity != 0 {
		t.Fatalf("target mutated despite rejection: %v", target.Intensity)
	}
}

func TestApplyResolvesAliasedTypeNames(t *testing.T) {
	host := reflecthost.New()
	host.MustRegister("Light", light{})
	registry := schema.NewRegistry()
	registry.MustRegister(schema.Schema{
		Operation: "light.configure",
		Entries:   []schema.Entry{{Name: "intensity", Kind: model.KindFloat}},
	})
	eng := engine.New(host,
		engine.WithSchemas(registry),
		engine.WithResolver(resolve.New(host, resolve.WithAliases(map[string]string{"Lamp": "Light"}))),
	)

	target := &light{}
	report, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "light.configure",
		TargetType: "Lamp",
		Target:     target,
		Payload:    map[string]any{"intensity": float64(1)},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if report.Type != "Light" {
		t.Fatalf("type = %q", report.Type)
	}
}

func TestApplyUnknownOperation(t *testing.T) {
	eng, _ := newLightEngine(t)
	_, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "light.destroy",
		TargetType: "Light",
		Target:     &light{},
	})
	if err == nil {
		t.Fatal("expected unknown-operation error")
	}
}

func TestApplyUnknownTypeCarriesSuggestions(t *testing.T) {
	eng, _ := newLightEngine(t)
	_, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "light.configure",
		TargetType: "Lighr",
		Target:     &light{},
		Payload:    map[string]any{"intensity": float64(1)},
	})
	var nferr *resolve.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected *resolve.NotFoundError, got %v", err)
	}
	if len(nferr.Suggestions) == 0 || nferr.Suggestions[0] != "Light" {
		t.Fatalf("expected Light suggested, got %v", nferr.Suggestions)
	}
}

func TestApplyCollectsBindFailures(t *testing.T) {
	// schema declares a member the host type does not have
	host := reflecthost.New()
	host.MustRegister("Light", light{})
	registry := schema.NewRegistry()
	registry.MustRegister(schema.Schema{
		Operation: "light.configure",
		Entries: []schema.Entry{
			{Name: "intensity", Kind: model.KindFloat},
			{Name: "radius", Kind: model.KindFloat},
		},
	})
	eng := engine.New(host, engine.WithSchemas(registry))

	target := &light{}
	report, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "light.configure",
		TargetType: "Light",
		Target:     target,
		Payload:    map[string]any{"intensity": float64(3), "radius": float64(7)},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if report.OK() {
		t.Fatal("expected bind failure in report")
	}
	if diff := cmp.Diff([]string{"intensity"}, report.Applied); diff != "" {
		t.Fatalf("applied mismatch (-want +got):\n%s", diff)
	}
	if len(report.Failures) != 1 || report.Failures[0].Field != "radius" {
		t.Fatalf("failures = %+v", report.Failures)
	}
	if target.Intensity != 3 {
		t.Fatalf("surviving binds should still apply: %v", target.Intensity)
	}
}

func TestApplyRequiresContext(t *testing.T) {
	eng, _ := newLightEngine(t)
	if _, err := eng.Apply(nil, engine.Request{Operation: "light.configure", TargetType: "Light"}); err == nil { //nolint:staticcheck
		t.Fatal("expected error for nil context")
	}
}

func TestApplySchemaFixture(t *testing.T) {
	host := reflecthost.New()
	host.MustRegister("GameObject", gameObject{})
	host.SetLayers("Default", "UI", "Water")
	registry := testsupport.LoadSchemas(t, filepath.Join("testdata", "spawn.yaml"))
	eng := engine.New(host, engine.WithSchemas(registry))

	target := &gameObject{}
	report, err := eng.Apply(testsupport.Context(), engine.Request{
		Operation:  "object.spawn",
		TargetType: "GameObject",
		Target:     target,
		Payload:    testsupport.MustPayload(t, `{"name": "crate", "position": [1, 2, 3], "layers": ["UI", "Water"]}`),
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !report.OK() {
		t.Fatalf("report not ok: %+v", report)
	}
	if target.Name != "crate" {
		t.Fatalf("name = %q", target.Name)
	}
	if diff := cmp.Diff(model.Vec3{X: 1, Y: 2, Z: 3}, target.Position); diff != "" {
		t.Fatalf("position mismatch (-want +got):\n%s", diff)
	}
	if !target.Layers.Has(1) || !target.Layers.Has(2) || target.Layers.Has(0) {
		t.Fatalf("layers = %b", target.Layers)
	}
}

func TestApplySeesLayersAddedAfterConstruction(t *testing.T) {
	host := reflecthost.New()
	host.MustRegister("GameObject", gameObject{})
	registry := schema.NewRegistry()
	registry.MustRegister(schema.Schema{
		Operation: "object.spawn",
		Entries:   []schema.Entry{{Name: "layers", Kind: model.KindLayerMask}},
	})
	eng := engine.New(host, engine.WithSchemas(registry))

	// layers registered only after the engine was built
	host.SetLayers("Default", "UI", "Water")

	target := &gameObject{}
	report, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "object.spawn",
		TargetType: "GameObject",
		Target:     target,
		Payload:    map[string]any{"layers": []any{"Water"}},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !report.OK() {
		t.Fatalf("report not ok: %+v", report)
	}
	if !target.Layers.Has(2) {
		t.Fatalf("layers = %b", target.Layers)
	}
}

func TestApplyBindsDottedEntries(t *testing.T) {
	host := reflecthost.New()
	host.MustRegister("Renderer", renderer{})
	host.MustRegister("Material", material{})
	registry := schema.NewRegistry()
	registry.MustRegister(schema.Schema{
		Operation: "renderer.configure",
		Entries: []schema.Entry{
			{Name: "enabled", Kind: model.KindBool, Default: true},
			{Name: "material.color", Kind: model.KindColor, Required: true},
		},
	})
	eng := engine.New(host, engine.WithSchemas(registry))

	target := &renderer{Material: &material{}}
	report, err := eng.Apply(context.Background(), engine.Request{
		Operation:  "renderer.configure",
		TargetType: "Renderer",
		Target:     target,
		Payload:    map[string]any{"material.color": "red"},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !report.OK() {
		t.Fatalf("report not ok: %+v", report)
	}
	if diff := cmp.Diff([]string{"enabled", "material.color"}, report.Applied); diff != "" {
		t.Fatalf("applied mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.Color{R: 1, A: 1}, target.Material.Color); diff != "" {
		t.Fatalf("nested color mismatch (-want +got):\n%s", diff)
	}
	if !target.Enabled {
		t.Fatal("enabled default not applied")
	}
}

func TestPayloadFromJSON(t *testing.T) {
	payload, err := engine.PayloadFromJSON([]byte(`{"intensity": 2.5, "shadows": "Soft", "tags": ["a", "b"]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]any{
		"intensity": float64(2.5),
		"shadows":   "Soft",
		"tags":      []any{"a", "b"},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	if _, err := engine.PayloadFromJSON([]byte(`[1, 2]`)); err == nil {
		t.Fatal("expected error for non-object payload")
	}
	if _, err := engine.PayloadFromJSON([]byte(`{"broken`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestFieldFromJSON(t *testing.T) {
	value, ok := engine.FieldFromJSON([]byte(`{"material": {"color": "red"}}`), "material.color")
	if !ok || value != "red" {
		t.Fatalf("got %v %v", value, ok)
	}
	if _, ok := engine.FieldFromJSON([]byte(`{}`), "missing"); ok {
		t.Fatal("missing path should not exist")
	}
}

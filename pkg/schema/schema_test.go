package schema_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-propbind/pkg/model"
	"github.com/goliatone/go-propbind/pkg/schema"
)

func TestCheckRejectsRequiredWithDefault(t *testing.T) {
	s := schema.Schema{
		Operation: "bad",
		Entries: []schema.Entry{
			{Name: "speed", Kind: model.KindFloat, Required: true, Default: float64(1)},
		},
	}
	if err := s.Check(); err == nil {
		t.Fatalf("expected invariant violation")
	}
}

func TestCheckRejectsRangeOnNonNumeric(t *testing.T) {
	s := schema.Schema{
		Operation: "bad",
		Entries: []schema.Entry{
			{Name: "name", Kind: model.KindString, Min: floatPtr(0)},
		},
	}
	err := s.Check()
	if err == nil {
		t.Fatalf("expected invariant violation")
	}
	if !strings.Contains(err.Error(), "range") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestCheckRejectsUnknownKind(t *testing.T) {
	s := schema.Schema{
		Operation: "bad",
		Entries:   []schema.Entry{{Name: "x", Kind: model.Kind("matrix")}},
	}
	if err := s.Check(); err == nil {
		t.Fatalf("expected invariant violation")
	}
}

func TestCheckRejectsDuplicateAndEmptyNames(t *testing.T) {
	dup := schema.Schema{
		Operation: "bad",
		Entries: []schema.Entry{
			{Name: "x", Kind: model.KindFloat},
			{Name: "x", Kind: model.KindFloat},
		},
	}
	if err := dup.Check(); err == nil {
		t.Fatalf("expected duplicate entry error")
	}
	empty := schema.Schema{
		Operation: "bad",
		Entries:   []schema.Entry{{Name: "  ", Kind: model.KindFloat}},
	}
	if err := empty.Check(); err == nil {
		t.Fatalf("expected empty name error")
	}
}

func TestCheckRejectsInvertedRange(t *testing.T) {
	s := schema.Schema{
		Operation: "bad",
		Entries: []schema.Entry{
			{Name: "x", Kind: model.KindFloat, Min: floatPtr(10), Max: floatPtr(1)},
		},
	}
	if err := s.Check(); err == nil {
		t.Fatalf("expected inverted range error")
	}
}

func TestCheckRejectsEnumWithoutMembers(t *testing.T) {
	s := schema.Schema{
		Operation: "bad",
		Entries:   []schema.Entry{{Name: "mode", Kind: model.KindEnum}},
	}
	if err := s.Check(); err == nil {
		t.Fatalf("expected enum invariant violation")
	}
}

func TestRegistry(t *testing.T) {
	registry := schema.NewRegistry()
	registry.MustRegister(speedLoopSchema())

	if !registry.Has("Animation.Configure") {
		t.Fatalf("expected case-insensitive lookup")
	}
	s, err := registry.Get("animation.configure")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(s.Entries) != 2 {
		t.Fatalf("unexpected schema: %#v", s)
	}
	if err := registry.Register(speedLoopSchema()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if got := registry.List(); len(got) != 1 || got[0] != "animation.configure" {
		t.Fatalf("unexpected list: %v", got)
	}
}

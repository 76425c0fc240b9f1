package resolve_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propbind/pkg/model"
	"github.com/goliatone/go-propbind/pkg/resolve"
)

type stubUniverse struct {
	types map[string]model.TypeDescriptor
	order []string
}

func newStubUniverse(names ...string) *stubUniverse {
	u := &stubUniverse{types: make(map[string]model.TypeDescriptor)}
	for _, name := range names {
		u.types[name] = model.TypeDescriptor{
			Name:    name,
			Members: []model.MemberDescriptor{{Name: "enabled", Kind: model.KindBool, Access: model.AccessField}},
		}
		u.order = append(u.order, name)
	}
	return u
}

func (u *stubUniverse) TypeNames() []string { return append([]string(nil), u.order...) }

func (u *stubUniverse) Describe(name string) (model.TypeDescriptor, bool) {
	desc, ok := u.types[name]
	return desc, ok
}

func TestResolveExactAndCaseInsensitive(t *testing.T) {
	r := resolve.New(newStubUniverse("Rigidbody", "BoxCollider", "Light"))

	desc, err := r.Resolve("Rigidbody")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if desc.Name != "Rigidbody" {
		t.Fatalf("expected canonical name, got %q", desc.Name)
	}

	desc, err = r.Resolve("rigidbody")
	if err != nil {
		t.Fatalf("case-insensitive resolve: %v", err)
	}
	if desc.Name != "Rigidbody" {
		t.Fatalf("expected canonical descriptor for lowercase query, got %q", desc.Name)
	}
}

func TestResolveMisspellingSuggestsClosest(t *testing.T) {
	r := resolve.New(newStubUniverse("Rigidbody", "BoxCollider", "Light", "Camera"))

	_, err := r.Resolve("Rigidboddy")
	if err == nil {
		t.Fatalf("expected resolution failure")
	}
	var notFound *resolve.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if len(notFound.Suggestions) == 0 || notFound.Suggestions[0] != "Rigidbody" {
		t.Fatalf("expected Rigidbody ranked first, got %v", notFound.Suggestions)
	}
	if len(notFound.Suggestions) > resolve.DefaultSuggestions {
		t.Fatalf("expected at most %d suggestions, got %v", resolve.DefaultSuggestions, notFound.Suggestions)
	}
}

func TestResolveAlias(t *testing.T) {
	r := resolve.New(
		newStubUniverse("BoxCollider", "SphereCollider"),
		resolve.WithAliases(map[string]string{"Collider": "BoxCollider"}),
	)

	desc, err := r.Resolve("collider")
	if err != nil {
		t.Fatalf("alias resolve: %v", err)
	}
	if desc.Name != "BoxCollider" {
		t.Fatalf("expected alias to resolve to BoxCollider, got %q", desc.Name)
	}
}

func TestResolveAliasToUnknownTypeFails(t *testing.T) {
	r := resolve.New(
		newStubUniverse("Light"),
		resolve.WithAliases(map[string]string{"Lamp": "PointLight"}),
	)

	_, err := r.Resolve("Lamp")
	var notFound *resolve.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError for dangling alias, got %v", err)
	}
}

func TestResolveCachesFirstResult(t *testing.T) {
	u := newStubUniverse("Transform")
	r := resolve.New(u)

	first, err := r.Resolve("Transform")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Mutating the universe after first use must not change what the
	// resolver returns; the cache is write-once per key.
	u.types["Transform"] = model.TypeDescriptor{Name: "Mutated"}

	again, err := r.Resolve("transform")
	if err != nil {
		t.Fatalf("cached resolve: %v", err)
	}
	if diff := cmp.Diff(first, again); diff != "" {
		t.Fatalf("cache returned different descriptor (-first +again):\n%s", diff)
	}
}

func TestResolveEmptyName(t *testing.T) {
	r := resolve.New(newStubUniverse("Light"))
	if _, err := r.Resolve("  "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

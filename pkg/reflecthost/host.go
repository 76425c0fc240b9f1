// Package reflecthost adapts plain Go structs into a host: registered struct
// types become type descriptors, and reads and writes go through reflection.
// It implements the model.Universe, model.Mutator, model.ReferenceResolver,
// and model.LayerProvider contracts, which makes it both the default host for
// tools that configure in-process objects and the reference host for tests.
package reflecthost

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-propbind/pkg/model"
)

// Host is a reflection-backed object universe. Types are registered once,
// up front, from prototype struct values; objects and layers can be added at
// any point before binding starts.
type Host struct {
	mu      sync.RWMutex
	types   map[string]model.TypeDescriptor
	order   []string
	objects map[string]model.ObjectRef
	layers  []string
}

// New returns an empty host.
func New() *Host {
	return &Host{
		types:   map[string]model.TypeDescriptor{},
		objects: map[string]model.ObjectRef{},
	}
}

// TypeOption adjusts the descriptor built for one registered type.
type TypeOption func(*model.TypeDescriptor) error

// WithEnum declares member as an enum with the given members. The backing Go
// field or accessor must be integer-typed.
func WithEnum(member string, members ...model.EnumMember) TypeOption {
	return func(d *model.TypeDescriptor) error {
		m, err := memberRef(d, member)
		if err != nil {
			return err
		}
		if m.Kind != model.KindInt && m.Kind != model.KindEnum {
			return fmt.Errorf("reflecthost: enum member %q must be integer-backed, is %s", member, m.Kind)
		}
		if len(members) == 0 {
			return fmt.Errorf("reflecthost: enum member %q declares no members", member)
		}
		m.Kind = model.KindEnum
		m.Enum = append([]model.EnumMember(nil), members...)
		return nil
	}
}

// WithReference declares which reference kind member accepts. The backing Go
// field must be of type model.ObjectRef.
func WithReference(member, refKind string) TypeOption {
	return func(d *model.TypeDescriptor) error {
		m, err := memberRef(d, member)
		if err != nil {
			return err
		}
		if m.Kind != model.KindObjectRef {
			return fmt.Errorf("reflecthost: reference member %q must be ObjectRef-backed, is %s", member, m.Kind)
		}
		m.RefKind = refKind
		return nil
	}
}

// WithReadOnly marks the named members as not assignable.
func WithReadOnly(members ...string) TypeOption {
	return func(d *model.TypeDescriptor) error {
		for _, name := range members {
			m, err := memberRef(d, name)
			if err != nil {
				return err
			}
			m.ReadOnly = true
		}
		return nil
	}
}

func memberRef(d *model.TypeDescriptor, name string) (*model.MemberDescriptor, error) {
	for i := range d.Members {
		if strings.EqualFold(d.Members[i].Name, name) {
			return &d.Members[i], nil
		}
	}
	return nil, fmt.Errorf("reflecthost: %s has no member %q", d.Name, name)
}

// Register builds a descriptor for prototype's struct type and stores it
// under name. Exported fields become field-backed members; Get/Set method
// pairs become accessor-backed members; getters without a setter are
// read-only. A `propbind:"-"` tag skips a field, any other tag value renames
// the member.
func (h *Host) Register(name string, prototype any, options ...TypeOption) error {
	rt := reflect.TypeOf(prototype)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return fmt.Errorf("reflecthost: prototype for %q must be a struct, got %T", name, prototype)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("reflecthost: type name is required")
	}

	desc, err := describeStruct(name, rt)
	if err != nil {
		return err
	}
	for _, opt := range options {
		if err := opt(&desc); err != nil {
			return err
		}
	}

	key := strings.ToLower(name)
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.types[key]; exists {
		return fmt.Errorf("reflecthost: type %q already registered", name)
	}
	h.types[key] = desc
	h.order = append(h.order, name)
	return nil
}

// MustRegister is Register, panicking on error. Intended for init-time
// registration of a fixed type set.
func (h *Host) MustRegister(name string, prototype any, options ...TypeOption) {
	if err := h.Register(name, prototype, options...); err != nil {
		panic(err)
	}
}

// AddObject makes a live object resolvable by id for reference coercion.
func (h *Host) AddObject(id, kind string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects[strings.ToLower(id)] = model.ObjectRef{ID: id, Kind: kind, Value: value}
}

// SetLayers installs the ordered layer-name table. Layer i maps to bit i.
func (h *Host) SetLayers(names ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layers = append([]string(nil), names...)
}

// TypeNames returns the registered type names in registration order.
func (h *Host) TypeNames() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.order...)
}

// Describe returns the descriptor registered under name, matched
// case-insensitively.
func (h *Host) Describe(name string) (model.TypeDescriptor, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	desc, ok := h.types[strings.ToLower(name)]
	return desc, ok
}

// ResolveReference returns the object added under id when its kind matches.
func (h *Host) ResolveReference(id, kind string) (model.ObjectRef, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ref, ok := h.objects[strings.ToLower(id)]
	if !ok {
		return model.ObjectRef{}, false
	}
	if kind != "" && !strings.EqualFold(ref.Kind, kind) {
		return model.ObjectRef{}, false
	}
	return ref, true
}

// Layers returns the installed layer-name table.
func (h *Host) Layers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.layers...)
}

// Lookup is a model.TypeDescriptor lookup suitable for coerce.WithTypeLookup.
func (h *Host) Lookup(name string) (model.TypeDescriptor, bool) {
	return h.Describe(name)
}

func describeStruct(name string, rt reflect.Type) (model.TypeDescriptor, error) {
	desc := model.TypeDescriptor{Name: name}
	seen := map[string]bool{}

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		memberName := memberNameFor(field)
		if memberName == "" {
			continue
		}
		kind, typeName, err := inferKind(field.Type)
		if err != nil {
			return desc, fmt.Errorf("reflecthost: %s.%s: %w", name, field.Name, err)
		}
		desc.Members = append(desc.Members, model.MemberDescriptor{
			Name:     memberName,
			Kind:     kind,
			Access:   model.AccessField,
			TypeName: typeName,
		})
		seen[strings.ToLower(memberName)] = true
	}

	desc.Members = append(desc.Members, accessorMembers(rt, seen)...)
	return desc, nil
}

func memberNameFor(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("propbind"); ok {
		if tag == "-" {
			return ""
		}
		return tag
	}
	return lowerFirst(field.Name)
}

// accessorMembers collects getter/setter method pairs on *T. A getter is a
// niladic single-result method; its setter, when present, is Set<Name> taking
// exactly the getter's result type.
func accessorMembers(rt reflect.Type, seen map[string]bool) []model.MemberDescriptor {
	pt := reflect.PointerTo(rt)
	var members []model.MemberDescriptor
	for i := 0; i < pt.NumMethod(); i++ {
		method := pt.Method(i)
		if isSetterFor(pt, method.Name) {
			continue
		}
		// receiver counts as the first input
		if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
			continue
		}
		memberName := lowerFirst(method.Name)
		if seen[strings.ToLower(memberName)] {
			continue
		}
		kind, typeName, err := inferKind(method.Type.Out(0))
		if err != nil {
			// methods that return non-member types are not members
			continue
		}
		readOnly := true
		if setter, ok := pt.MethodByName("Set" + method.Name); ok {
			if setter.Type.NumIn() == 2 && setter.Type.In(1) == method.Type.Out(0) {
				readOnly = false
			}
		}
		members = append(members, model.MemberDescriptor{
			Name:     memberName,
			Kind:     kind,
			Access:   model.AccessAccessor,
			ReadOnly: readOnly,
			TypeName: typeName,
		})
		seen[strings.ToLower(memberName)] = true
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members
}

// isSetterFor reports whether name is the setter half of an accessor pair:
// Set<Getter> where <Getter> exists on pt with getter shape. A method that
// merely starts with "Set", like Settings, is a getter in its own right.
func isSetterFor(pt reflect.Type, name string) bool {
	rest, ok := strings.CutPrefix(name, "Set")
	if !ok || rest == "" {
		return false
	}
	getter, ok := pt.MethodByName(rest)
	if !ok {
		return false
	}
	return getter.Type.NumIn() == 1 && getter.Type.NumOut() == 1
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

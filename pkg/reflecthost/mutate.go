package reflecthost

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-propbind/pkg/model"
)

// Get reads member off target. Targets must be pointers to structs so that
// nested objects stay addressable. Nested-object members are returned as
// pointers; an unset pointer member reads as a plain nil.
func (h *Host) Get(target any, member model.MemberDescriptor) (any, error) {
	if member.Access == model.AccessAccessor {
		return h.callGetter(target, member)
	}
	sv, err := structValue(target)
	if err != nil {
		return nil, err
	}
	field, err := fieldFor(sv, member.Name)
	if err != nil {
		return nil, err
	}
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return nil, nil
		}
		return field.Interface(), nil
	}
	if member.Kind == model.KindObject && field.CanAddr() {
		return field.Addr().Interface(), nil
	}
	return field.Interface(), nil
}

// Set writes a coerced value onto member of target. Numeric widths are
// converted to the backing Go type; enum members are unwrapped to their
// integer value when the backing type is integral; nested-object mappings
// are applied member by member onto the existing nested instance.
func (h *Host) Set(target any, member model.MemberDescriptor, value any) error {
	if member.Kind == model.KindObject {
		if mapping, ok := value.(map[string]any); ok {
			return h.setObject(target, member, mapping)
		}
	}
	if member.Access == model.AccessAccessor {
		return h.callSetter(target, member, value)
	}
	sv, err := structValue(target)
	if err != nil {
		return err
	}
	field, err := fieldFor(sv, member.Name)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("reflecthost: member %q is not settable", member.Name)
	}
	converted, err := convertTo(field.Type(), value)
	if err != nil {
		return fmt.Errorf("reflecthost: member %q: %w", member.Name, err)
	}
	field.Set(converted)
	return nil
}

// setObject applies a coerced nested mapping onto the member's current
// instance. The instance must already exist.
func (h *Host) setObject(target any, member model.MemberDescriptor, mapping map[string]any) error {
	nested, err := h.Get(target, member)
	if err != nil {
		return err
	}
	if nested == nil {
		return fmt.Errorf("reflecthost: member %q is unset", member.Name)
	}
	desc, ok := h.Describe(member.TypeName)
	if !ok {
		return fmt.Errorf("reflecthost: unknown nested type %q", member.TypeName)
	}
	for key, value := range mapping {
		sub, ok := desc.Member(key)
		if !ok {
			return fmt.Errorf("reflecthost: no member %q on %s", key, desc.Name)
		}
		if err := h.Set(nested, sub, value); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) callGetter(target any, member model.MemberDescriptor) (any, error) {
	method := reflect.ValueOf(target).MethodByName(exportName(member.Name))
	if !method.IsValid() {
		return nil, fmt.Errorf("reflecthost: %T has no getter for %q", target, member.Name)
	}
	out := method.Call(nil)
	result := out[0]
	if result.Kind() == reflect.Pointer && result.IsNil() {
		return nil, nil
	}
	return result.Interface(), nil
}

func (h *Host) callSetter(target any, member model.MemberDescriptor, value any) error {
	method := reflect.ValueOf(target).MethodByName("Set" + exportName(member.Name))
	if !method.IsValid() {
		return fmt.Errorf("reflecthost: %T has no setter for %q", target, member.Name)
	}
	converted, err := convertTo(method.Type().In(0), value)
	if err != nil {
		return fmt.Errorf("reflecthost: member %q: %w", member.Name, err)
	}
	method.Call([]reflect.Value{converted})
	return nil
}

func structValue(target any) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("reflecthost: target must be a non-nil struct pointer, got %T", target)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("reflecthost: target must point to a struct, got %T", target)
	}
	return rv, nil
}

func fieldFor(sv reflect.Value, memberName string) (reflect.Value, error) {
	rt := sv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if strings.EqualFold(memberNameFor(field), memberName) {
			return sv.Field(i), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("reflecthost: %s has no field for member %q", rt, memberName)
}

// convertTo adapts a coerced value to the backing Go type: exact assignments
// pass through, numeric widths convert, and enum members unwrap to their
// declared integer value.
func convertTo(want reflect.Type, value any) (reflect.Value, error) {
	if em, ok := value.(model.EnumMember); ok && want != reflect.TypeOf(model.EnumMember{}) {
		value = em.Value
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return reflect.Value{}, fmt.Errorf("cannot assign nil")
	}
	if rv.Type().AssignableTo(want) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(want) && compatibleKinds(rv.Kind(), want.Kind()) {
		return rv.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", value, want)
}

// compatibleKinds restricts reflect conversion to numeric widening and
// narrowing, keeping surprises like string(int) out.
func compatibleKinds(got, want reflect.Kind) bool {
	return numericKind(got) && numericKind(want)
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func exportName(memberName string) string {
	if memberName == "" {
		return memberName
	}
	return strings.ToUpper(memberName[:1]) + memberName[1:]
}

package reflecthost

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-propbind/pkg/model"
)

var valueTypes = map[reflect.Type]model.Kind{
	reflect.TypeOf(model.Vec2{}):       model.KindVec2,
	reflect.TypeOf(model.Vec3{}):       model.KindVec3,
	reflect.TypeOf(model.Vec4{}):       model.KindVec4,
	reflect.TypeOf(model.Color{}):      model.KindColor,
	reflect.TypeOf(model.Quaternion{}): model.KindQuaternion,
	reflect.TypeOf(model.LayerMask(0)): model.KindLayerMask,
	reflect.TypeOf(model.ObjectRef{}):  model.KindObjectRef,
	reflect.TypeOf(model.EnumMember{}): model.KindEnum,
}

// inferKind maps a Go type to a member kind. Structs and struct pointers
// that are not value types become nested objects named after the Go type;
// descending into one requires the name to be registered on the host.
func inferKind(t reflect.Type) (model.Kind, string, error) {
	if kind, ok := valueTypes[t]; ok {
		return kind, "", nil
	}
	switch t.Kind() {
	case reflect.String:
		return model.KindString, "", nil
	case reflect.Bool:
		return model.KindBool, "", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return model.KindInt, "", nil
	case reflect.Float32, reflect.Float64:
		return model.KindFloat, "", nil
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return model.KindObject, t.Elem().Name(), nil
		}
	case reflect.Struct:
		return model.KindObject, t.Name(), nil
	}
	return "", "", fmt.Errorf("unsupported member type %s", t)
}

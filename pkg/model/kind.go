package model

// Kind is the closed set of value kinds the engine can coerce and bind. New
// kinds require an explicit coercion case.
type Kind string

const (
	KindString     Kind = "string"
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindBool       Kind = "bool"
	KindVec2       Kind = "vec2"
	KindVec3       Kind = "vec3"
	KindVec4       Kind = "vec4"
	KindColor      Kind = "color"
	KindQuaternion Kind = "quaternion"
	KindEnum       Kind = "enum"
	KindLayerMask  Kind = "layermask"
	KindObjectRef  Kind = "objectref"
	KindObject     Kind = "object"
)

var kinds = map[Kind]struct{}{
	KindString:     {},
	KindInt:        {},
	KindFloat:      {},
	KindBool:       {},
	KindVec2:       {},
	KindVec3:       {},
	KindVec4:       {},
	KindColor:      {},
	KindQuaternion: {},
	KindEnum:       {},
	KindLayerMask:  {},
	KindObjectRef:  {},
	KindObject:     {},
}

// Valid reports whether k is one of the declared value kinds.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Numeric reports whether k is a scalar numeric kind. Range constraints are
// only meaningful for numeric kinds.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Kinds returns the declared value kinds in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindString, KindInt, KindFloat, KindBool,
		KindVec2, KindVec3, KindVec4,
		KindColor, KindQuaternion,
		KindEnum, KindLayerMask, KindObjectRef, KindObject,
	}
}

package model

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 is a two-component float vector.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Vec3 is a three-component float vector.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Vec4 is a four-component float vector.
type Vec4 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Length returns the Euclidean length of the vector.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Length returns the Euclidean length of the vector.
func (v Vec4) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W)
}

// Components returns the vector as an ordered slice, matching the array form
// accepted by coercion.
func (v Vec2) Components() []float32 { return []float32{v.X, v.Y} }

// Components returns the vector as an ordered slice, matching the array form
// accepted by coercion.
func (v Vec3) Components() []float32 { return []float32{v.X, v.Y, v.Z} }

// Components returns the vector as an ordered slice, matching the array form
// accepted by coercion.
func (v Vec4) Components() []float32 { return []float32{v.X, v.Y, v.Z, v.W} }

// Color is an RGBA color with components in [0,1]. Coercion clamps rather
// than rejects out-of-range components.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// Components returns the color as an ordered RGBA slice.
func (c Color) Components() []float32 { return []float32{c.R, c.G, c.B, c.A} }

// Clamped returns a copy with every component clamped into [0,1].
func (c Color) Clamped() Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

func clamp01(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}

// Quaternion is a rotation in already-normalized quaternion form. No
// Euler-angle inference is attempted anywhere in the engine.
type Quaternion struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// Identity returns the identity rotation.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// Normalized returns the quaternion scaled to unit length. The zero
// quaternion normalizes to the identity.
func (q Quaternion) Normalized() Quaternion {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length == 0 {
		return Identity()
	}
	return Quaternion{X: q.X / length, Y: q.Y / length, Z: q.Z / length, W: q.W / length}
}

// LayerMask is a bitmask over the host's named layer table. Bit i corresponds
// to the i-th layer name.
type LayerMask uint32

// Has reports whether the bit for layer index i is set.
func (m LayerMask) Has(i int) bool {
	if i < 0 || i > 31 {
		return false
	}
	return m&(1<<uint(i)) != 0
}

// With returns the mask with the bit for layer index i set.
func (m LayerMask) With(i int) LayerMask {
	if i < 0 || i > 31 {
		return m
	}
	return m | 1<<uint(i)
}

// ObjectRef is a resolved reference to a live host object. The engine never
// creates the referenced object; it only validates that the host resolved one
// of the declared kind.
type ObjectRef struct {
	ID    string
	Kind  string
	Value any
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s(%s)", r.Kind, r.ID)
}

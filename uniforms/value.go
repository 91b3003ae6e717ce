// Package uniforms models the typed values passed from host code into
// a shader program and the per-surface registry that tracks their
// resolved locations.
package uniforms

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glshade/glshade/gldriver"
)

// Kind identifies the GLSL type of a Value.
type Kind uint8

const (
	KindFloat Kind = iota
	KindVec2
	KindVec3
	KindVec4
	KindInt
	KindIVec2
	KindIVec3
	KindIVec4
)

var kindNames = [...]string{"float", "vec2", "vec3", "vec4", "int", "ivec2", "ivec3", "ivec4"}

// GLSLType returns the GLSL type name for the kind.
func (k Kind) GLSLType() string {
	return kindNames[k]
}

// Value is a uniform value: one of the eight supported GLSL scalar and
// vector types. The zero Value is float 0.
type Value struct {
	kind Kind
	f    [4]float32
	i    [4]int32
}

// Float returns a float uniform value.
func Float(v float32) Value {
	return Value{kind: KindFloat, f: [4]float32{v}}
}

// Vec2 returns a vec2 uniform value.
func Vec2(v mgl32.Vec2) Value {
	return Value{kind: KindVec2, f: [4]float32{v.X(), v.Y()}}
}

// Vec3 returns a vec3 uniform value.
func Vec3(v mgl32.Vec3) Value {
	return Value{kind: KindVec3, f: [4]float32{v.X(), v.Y(), v.Z()}}
}

// Vec4 returns a vec4 uniform value.
func Vec4(v mgl32.Vec4) Value {
	return Value{kind: KindVec4, f: [4]float32{v.X(), v.Y(), v.Z(), v.W()}}
}

// Int returns an int uniform value.
func Int(v int32) Value {
	return Value{kind: KindInt, i: [4]int32{v}}
}

// IVec2 returns an ivec2 uniform value.
func IVec2(v [2]int32) Value {
	return Value{kind: KindIVec2, i: [4]int32{v[0], v[1]}}
}

// IVec3 returns an ivec3 uniform value.
func IVec3(v [3]int32) Value {
	return Value{kind: KindIVec3, i: [4]int32{v[0], v[1], v[2]}}
}

// IVec4 returns an ivec4 uniform value.
func IVec4(v [4]int32) Value {
	return Value{kind: KindIVec4, i: v}
}

// FromFloat64s narrows a slice of doubles into a float-typed Value.
// Only arities 1 through 4 exist in GLSL; anything else is rejected.
func FromFloat64s(vals []float64) (Value, error) {
	var f [4]float32
	for i, v := range vals {
		if i < len(f) {
			f[i] = float32(v)
		}
	}
	switch len(vals) {
	case 1:
		return Float(f[0]), nil
	case 2:
		return Vec2(mgl32.Vec2{f[0], f[1]}), nil
	case 3:
		return Vec3(mgl32.Vec3{f[0], f[1], f[2]}), nil
	case 4:
		return Vec4(mgl32.Vec4{f[0], f[1], f[2], f[3]}), nil
	}
	return Value{}, fmt.Errorf("unsupported uniform arity %d, want 1-4", len(vals))
}

// FromInt32s narrows a slice of 32-bit integers into an int-typed
// Value, with the same arity rule as FromFloat64s.
func FromInt32s(vals []int32) (Value, error) {
	var i [4]int32
	copy(i[:], vals)
	switch len(vals) {
	case 1:
		return Int(i[0]), nil
	case 2:
		return IVec2([2]int32{i[0], i[1]}), nil
	case 3:
		return IVec3([3]int32{i[0], i[1], i[2]}), nil
	case 4:
		return IVec4(i), nil
	}
	return Value{}, fmt.Errorf("unsupported uniform arity %d, want 1-4", len(vals))
}

// Kind returns the GLSL type tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Floats returns the float components for float-typed kinds. The slice
// length equals the kind's arity.
func (v Value) Floats() []float32 {
	switch v.kind {
	case KindFloat:
		return v.f[:1]
	case KindVec2:
		return v.f[:2]
	case KindVec3:
		return v.f[:3]
	case KindVec4:
		return v.f[:4]
	}
	return nil
}

// Ints returns the integer components for int-typed kinds.
func (v Value) Ints() []int32 {
	switch v.kind {
	case KindInt:
		return v.i[:1]
	case KindIVec2:
		return v.i[:2]
	case KindIVec3:
		return v.i[:3]
	case KindIVec4:
		return v.i[:4]
	}
	return nil
}

func (v Value) String() string {
	var parts []string
	for _, f := range v.Floats() {
		parts = append(parts, fmt.Sprintf("%g", f))
	}
	for _, i := range v.Ints() {
		parts = append(parts, fmt.Sprintf("%d", i))
	}
	return fmt.Sprintf("%s(%s)", v.kind.GLSLType(), strings.Join(parts, ", "))
}

// upload issues the GL uniform call matching the value's kind.
func (v Value) upload(g gldriver.Funcs, location int32) {
	switch v.kind {
	case KindFloat:
		g.Uniform1f(location, v.f[0])
	case KindVec2:
		g.Uniform2f(location, v.f[0], v.f[1])
	case KindVec3:
		g.Uniform3f(location, v.f[0], v.f[1], v.f[2])
	case KindVec4:
		g.Uniform4f(location, v.f[0], v.f[1], v.f[2], v.f[3])
	case KindInt:
		g.Uniform1i(location, v.i[0])
	case KindIVec2:
		g.Uniform2i(location, v.i[0], v.i[1])
	case KindIVec3:
		g.Uniform3i(location, v.i[0], v.i[1], v.i[2])
	case KindIVec4:
		g.Uniform4i(location, v.i[0], v.i[1], v.i[2], v.i[3])
	}
}

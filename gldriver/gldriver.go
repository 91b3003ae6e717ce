// Package gldriver loads the OpenGL entry points and exposes the narrow
// slice of the GL API that the surface lifecycle uses. The Funcs
// interface exists so the rendering core can be exercised against the
// recording Fake driver without a live context.
package gldriver

import (
	"fmt"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Funcs is the driver contract. Calls map one-to-one onto GL, except
// that info logs come back as strings and object creation returns the
// new handle directly.
type Funcs interface {
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname uint32) int32
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname uint32) int32
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32

	CreateVertexArray() uint32
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)

	CreateTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	DeleteTexture(texture uint32)

	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v0 int32)
	Uniform2i(location int32, v0, v1 int32)
	Uniform3i(location int32, v0, v1, v2 int32)
	Uniform4i(location int32, v0, v1, v2, v3 int32)

	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	DrawArrays(mode uint32, first, count int32)
	Flush()
}

// onceLoader latches the result of a one-time initialization so every
// later call observes the first call's outcome.
type onceLoader struct {
	once sync.Once
	err  error
}

func (l *onceLoader) do(init func() error) error {
	l.once.Do(func() {
		l.err = init()
	})
	return l.err
}

var procs onceLoader

// Load resolves all required OpenGL entry points. It is safe to call
// any number of times; the entry points are loaded exactly once per
// process and every call returns the result of that first load. A
// current GL context is required on the calling thread.
//
// A non-nil error means the platform GL library could not be located:
// nothing in this module can render, and callers should treat it as
// fatal rather than as a per-surface problem.
func Load() error {
	if err := procs.do(gl.Init); err != nil {
		return fmt.Errorf("failed to load OpenGL entry points: %w", err)
	}
	return nil
}

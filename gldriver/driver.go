package gldriver

import (
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// driver is the go-gl backed implementation of Funcs. It is stateless;
// all state lives in the GL context current on the calling thread.
type driver struct{}

var _ Funcs = driver{}

// Driver returns the real OpenGL driver. Load must have succeeded
// before any method is called.
func Driver() Funcs {
	return driver{}
}

func (driver) CreateShader(xtype uint32) uint32 {
	return gl.CreateShader(xtype)
}

func (driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (driver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (driver) GetShaderi(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (driver) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	buf := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (driver) GetProgrami(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (driver) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	buf := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (driver) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (driver) BindVertexArray(array uint32) {
	gl.BindVertexArray(array)
}

func (driver) DeleteVertexArray(array uint32) {
	gl.DeleteVertexArrays(1, &array)
}

func (driver) CreateTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (driver) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (driver) BindTexture(target, texture uint32) {
	gl.BindTexture(target, texture)
}

func (driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, gl.Ptr(pixels))
}

func (driver) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (driver) Uniform1f(location int32, v0 float32) {
	gl.Uniform1f(location, v0)
}

func (driver) Uniform2f(location int32, v0, v1 float32) {
	gl.Uniform2f(location, v0, v1)
}

func (driver) Uniform3f(location int32, v0, v1, v2 float32) {
	gl.Uniform3f(location, v0, v1, v2)
}

func (driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (driver) Uniform1i(location int32, v0 int32) {
	gl.Uniform1i(location, v0)
}

func (driver) Uniform2i(location int32, v0, v1 int32) {
	gl.Uniform2i(location, v0, v1)
}

func (driver) Uniform3i(location int32, v0, v1, v2 int32) {
	gl.Uniform3i(location, v0, v1, v2)
}

func (driver) Uniform4i(location int32, v0, v1, v2, v3 int32) {
	gl.Uniform4i(location, v0, v1, v2, v3)
}

func (driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (driver) Clear(mask uint32) {
	gl.Clear(mask)
}

func (driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (driver) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (driver) Flush() {
	gl.Flush()
}

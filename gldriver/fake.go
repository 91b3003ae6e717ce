package gldriver

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// TextureBinding records one BindTexture call and the texture unit that
// was active when it happened.
type TextureBinding struct {
	Target  uint32
	Texture uint32
	Unit    uint32
}

// TexImage records one TexImage2D upload.
type TexImage struct {
	Target         uint32
	Level          int32
	InternalFormat int32
	Width, Height  int32
	Format         uint32
	Type           uint32
	Pixels         []byte
}

// TexParam records one TexParameteri call.
type TexParam struct {
	Target uint32
	Pname  uint32
	Param  int32
}

// UniformUpload records one typed uniform upload. Exactly one of Floats
// and Ints is non-nil, with length equal to the call arity.
type UniformUpload struct {
	Location int32
	Floats   []float32
	Ints     []int32
}

// DrawCall records one DrawArrays call.
type DrawCall struct {
	Mode         uint32
	First, Count int32
}

// Fake is a recording in-memory driver for tests. Object handles are
// handed out from a single counter, so allocation order is observable.
// By default every shader compiles, every program links, and every
// uniform name is unresolved; tests script deviations through the
// exported fields.
type Fake struct {
	// FailCompile makes GetShaderi report COMPILE_STATUS false for
	// shaders of the given type (gl.VERTEX_SHADER, gl.FRAGMENT_SHADER).
	FailCompile map[uint32]bool
	// FailLink makes GetProgrami report LINK_STATUS false.
	FailLink bool
	// InfoLog is returned by ShaderInfoLog and ProgramInfoLog.
	InfoLog string
	// Locations maps uniform names to locations. Absent names resolve
	// to -1.
	Locations map[string]int32

	nextID      uint32
	shaderTypes map[uint32]uint32
	activeUnit  uint32

	ShadersCreated  []uint32
	ShadersDeleted  []uint32
	ShaderSources   map[uint32]string
	ProgramsCreated []uint32
	ProgramsDeleted []uint32
	Attached        map[uint32][]uint32
	LinkedPrograms  []uint32
	UsedPrograms    []uint32
	LookedUp        []string

	VertexArraysCreated []uint32
	VertexArraysDeleted []uint32
	BoundVertexArrays   []uint32

	TexturesCreated []uint32
	TexturesDeleted []uint32
	Bindings        []TextureBinding
	Images          []TexImage
	Params          []TexParam

	Uploads     []UniformUpload
	ClearColors [][4]float32
	ClearCount  int
	Viewports   [][4]int32
	Draws       []DrawCall
	FlushCount  int
}

var _ Funcs = (*Fake)(nil)

// NewFake returns an empty fake driver.
func NewFake() *Fake {
	return &Fake{
		shaderTypes:   make(map[uint32]uint32),
		ShaderSources: make(map[uint32]string),
		Attached:      make(map[uint32][]uint32),
	}
}

func (f *Fake) newID() uint32 {
	f.nextID++
	return f.nextID
}

func (f *Fake) CreateShader(xtype uint32) uint32 {
	id := f.newID()
	f.shaderTypes[id] = xtype
	f.ShadersCreated = append(f.ShadersCreated, id)
	return id
}

func (f *Fake) ShaderSource(shader uint32, source string) {
	f.ShaderSources[shader] = source
}

func (f *Fake) CompileShader(uint32) {}

func (f *Fake) GetShaderi(shader, pname uint32) int32 {
	if pname == gl.COMPILE_STATUS && f.FailCompile[f.shaderTypes[shader]] {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *Fake) ShaderInfoLog(uint32) string {
	return f.InfoLog
}

func (f *Fake) DeleteShader(shader uint32) {
	f.ShadersDeleted = append(f.ShadersDeleted, shader)
}

func (f *Fake) CreateProgram() uint32 {
	id := f.newID()
	f.ProgramsCreated = append(f.ProgramsCreated, id)
	return id
}

func (f *Fake) AttachShader(program, shader uint32) {
	f.Attached[program] = append(f.Attached[program], shader)
}

func (f *Fake) LinkProgram(program uint32) {
	f.LinkedPrograms = append(f.LinkedPrograms, program)
}

func (f *Fake) GetProgrami(_ uint32, pname uint32) int32 {
	if pname == gl.LINK_STATUS && f.FailLink {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *Fake) ProgramInfoLog(uint32) string {
	return f.InfoLog
}

func (f *Fake) DeleteProgram(program uint32) {
	f.ProgramsDeleted = append(f.ProgramsDeleted, program)
}

func (f *Fake) UseProgram(program uint32) {
	f.UsedPrograms = append(f.UsedPrograms, program)
}

func (f *Fake) GetUniformLocation(_ uint32, name string) int32 {
	f.LookedUp = append(f.LookedUp, name)
	if loc, ok := f.Locations[name]; ok {
		return loc
	}
	return -1
}

func (f *Fake) CreateVertexArray() uint32 {
	id := f.newID()
	f.VertexArraysCreated = append(f.VertexArraysCreated, id)
	return id
}

func (f *Fake) BindVertexArray(array uint32) {
	f.BoundVertexArrays = append(f.BoundVertexArrays, array)
}

func (f *Fake) DeleteVertexArray(array uint32) {
	f.VertexArraysDeleted = append(f.VertexArraysDeleted, array)
}

func (f *Fake) CreateTexture() uint32 {
	id := f.newID()
	f.TexturesCreated = append(f.TexturesCreated, id)
	return id
}

func (f *Fake) ActiveTexture(unit uint32) {
	f.activeUnit = unit
}

func (f *Fake) BindTexture(target, texture uint32) {
	f.Bindings = append(f.Bindings, TextureBinding{
		Target:  target,
		Texture: texture,
		Unit:    f.activeUnit,
	})
}

func (f *Fake) TexParameteri(target, pname uint32, param int32) {
	f.Params = append(f.Params, TexParam{Target: target, Pname: pname, Param: param})
}

func (f *Fake) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	f.Images = append(f.Images, TexImage{
		Target:         target,
		Level:          level,
		InternalFormat: internalFormat,
		Width:          width,
		Height:         height,
		Format:         format,
		Type:           xtype,
		Pixels:         pixels,
	})
}

func (f *Fake) DeleteTexture(texture uint32) {
	f.TexturesDeleted = append(f.TexturesDeleted, texture)
}

func (f *Fake) Uniform1f(location int32, v0 float32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Floats: []float32{v0}})
}

func (f *Fake) Uniform2f(location int32, v0, v1 float32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Floats: []float32{v0, v1}})
}

func (f *Fake) Uniform3f(location int32, v0, v1, v2 float32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Floats: []float32{v0, v1, v2}})
}

func (f *Fake) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Floats: []float32{v0, v1, v2, v3}})
}

func (f *Fake) Uniform1i(location int32, v0 int32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Ints: []int32{v0}})
}

func (f *Fake) Uniform2i(location int32, v0, v1 int32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Ints: []int32{v0, v1}})
}

func (f *Fake) Uniform3i(location int32, v0, v1, v2 int32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Ints: []int32{v0, v1, v2}})
}

func (f *Fake) Uniform4i(location int32, v0, v1, v2, v3 int32) {
	f.Uploads = append(f.Uploads, UniformUpload{Location: location, Ints: []int32{v0, v1, v2, v3}})
}

func (f *Fake) ClearColor(r, g, b, a float32) {
	f.ClearColors = append(f.ClearColors, [4]float32{r, g, b, a})
}

func (f *Fake) Clear(uint32) {
	f.ClearCount++
}

func (f *Fake) Viewport(x, y, width, height int32) {
	f.Viewports = append(f.Viewports, [4]int32{x, y, width, height})
}

func (f *Fake) DrawArrays(mode uint32, first, count int32) {
	f.Draws = append(f.Draws, DrawCall{Mode: mode, First: first, Count: count})
}

func (f *Fake) Flush() {
	f.FlushCount++
}

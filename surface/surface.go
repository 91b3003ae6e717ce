// Package surface owns the create→render→destroy lifecycle of one
// shader-rendered drawable. A Surface is driven by its host context's
// realize, render and unrealize callbacks, all on the single thread
// that owns the GL context.
package surface

import (
	"context"
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glshade/glshade/gldriver"
	"github.com/glshade/glshade/graphics"
	"github.com/glshade/glshade/inputs"
	"github.com/glshade/glshade/shader"
	"github.com/glshade/glshade/uniforms"
)

// Config is the construction input for a surface.
type Config struct {
	// Fragment is the user-supplied GLSL fragment shader. It receives a
	// `uv` interpolant in [0,1]² and sampler uniforms tex0, tex1, … for
	// the loaded textures.
	Fragment string

	// Textures are loaded in order during realization. Sources that
	// fail to decode are skipped and the survivors are renumbered onto
	// consecutive texture units.
	Textures []inputs.Source

	// Uniforms are the initial uniform values, seeded at realization.
	// Names must be non-empty; names the program does not declare are
	// dropped with a warning.
	Uniforms map[string]uniforms.Value

	// TranslateWebGL runs the fragment source through the
	// WebGL2→GLSL 330 translator before compiling, for Shadertoy-style
	// shaders.
	TranslateWebGL bool

	// GL overrides the driver, for tests. Nil selects the real one.
	GL gldriver.Funcs
}

// renderState holds the GPU handles for one realized surface. It
// exists exactly while the surface is realized and is created and torn
// down atomically: a render call never observes a partial state.
type renderState struct {
	program  uint32
	vao      uint32
	textures []uint32
	registry *uniforms.Registry
}

// Surface renders a fragment shader over a fullscreen quad. Its
// zero-value is not usable; construct with New.
type Surface struct {
	cfg Config
	gl  gldriver.Funcs
	ctx graphics.Context

	state *renderState

	// pending holds uniform writes issued before realization; they are
	// flushed over the initial uniforms when the surface is realized.
	pending map[string]uniforms.Value
}

// New creates an unrealized surface. Everything GL-side waits for
// Realize.
func New(cfg Config) *Surface {
	g := cfg.GL
	if g == nil {
		g = gldriver.Driver()
	}
	return &Surface{
		cfg:     cfg,
		gl:      g,
		pending: make(map[string]uniforms.Value),
	}
}

// Realized reports whether the surface currently owns GPU resources.
func (s *Surface) Realized() bool {
	return s.state != nil
}

// Realize builds the surface's GPU state on the given context:
// compiles and links the program, creates the vertex array, uploads
// the textures and seeds the uniform registry. If the context reports
// an error no state is created at all and the surface stays inactive.
//
// A failed shader compile or link is not fatal here: the driver's
// handle is kept and the surface becomes active anyway, rendering
// nothing or garbage, with the diagnostics in the log.
func (s *Surface) Realize(ctx graphics.Context) {
	if s.state != nil {
		slog.Warn("realize on an already realized surface")
		return
	}
	s.ctx = ctx

	if err := ctx.MakeCurrent(); err != nil {
		slog.Error("failed to switch GL context", "err", err)
		return
	}
	if s.cfg.GL == nil {
		if err := gldriver.Load(); err != nil {
			slog.Error("GL unavailable", "err", err)
			return
		}
	}
	g := s.gl

	frag := shader.FragmentSource(s.cfg.Fragment, ctx.IsGLES())
	if s.cfg.TranslateWebGL {
		translated, err := shader.Translate(context.Background(), s.cfg.Fragment)
		if err != nil {
			slog.Error("shader translation failed, compiling source as-is", "err", err)
		} else {
			frag = translated
		}
	}
	program := shader.CompileAndLink(g, frag, ctx.IsGLES())

	// Core profiles require a bound VAO even with no vertex attributes.
	vao := g.CreateVertexArray()
	g.BindVertexArray(vao)
	g.UseProgram(program)

	textures := s.loadTextures(program)

	registry := uniforms.NewRegistry()
	for name, value := range s.cfg.Uniforms {
		if name == "" {
			slog.Warn("dropping uniform with empty name")
			continue
		}
		if _, queued := s.pending[name]; queued {
			continue
		}
		registry.Seed(g, program, name, value)
	}
	// Writes queued before realization override the initial values.
	for name, value := range s.pending {
		registry.Seed(g, program, name, value)
	}
	s.pending = make(map[string]uniforms.Value)

	s.state = &renderState{
		program:  program,
		vao:      vao,
		textures: textures,
		registry: registry,
	}
}

// loadTextures decodes and uploads the configured sources in order.
// Failed sources are skipped, so k survivors occupy units 0..k-1 and
// samplers tex0..tex{k-1}.
func (s *Surface) loadTextures(program uint32) []uint32 {
	g := s.gl
	var textures []uint32
	for _, src := range s.cfg.Textures {
		rgba, err := inputs.Decode(src)
		if err != nil {
			slog.Warn("skipping texture", "source", src.Name(), "err", err)
			continue
		}
		unit := len(textures)
		textures = append(textures, inputs.Upload(g, unit, rgba))

		name := fmt.Sprintf("tex%d", unit)
		if loc := g.GetUniformLocation(program, name); loc >= 0 {
			g.Uniform1i(loc, int32(unit))
		} else {
			slog.Warn("texture not used in shader", "source", src.Name(), "sampler", name)
		}
	}
	return textures
}

// Render draws one frame. It always reports the frame as handled;
// a context error or an unrealized surface just means nothing was
// drawn.
func (s *Surface) Render() bool {
	if s.ctx == nil || s.state == nil {
		return true
	}
	if err := s.ctx.MakeCurrent(); err != nil {
		slog.Error("failed to switch GL context", "err", err)
		return true
	}
	g := s.gl
	st := s.state

	g.ClearColor(0, 0, 0, 0)
	g.Clear(gl.COLOR_BUFFER_BIT)

	st.registry.ApplyAll(g, st.program)
	g.BindVertexArray(st.vao)
	for i, id := range st.textures {
		g.ActiveTexture(gl.TEXTURE0 + uint32(i))
		g.BindTexture(gl.TEXTURE_2D, id)
	}
	g.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	g.Flush()
	return true
}

// Unrealize releases all GPU handles and returns the surface to the
// inactive state. If the context reports an error the handles are
// leaked rather than deleted on a dead context.
func (s *Surface) Unrealize() {
	if s.state == nil {
		return
	}
	st := s.state
	s.state = nil

	if err := s.ctx.MakeCurrent(); err != nil {
		slog.Error("failed to switch GL context, leaking GPU resources", "err", err)
		return
	}
	g := s.gl
	g.DeleteProgram(st.program)
	g.DeleteVertexArray(st.vao)
	for _, id := range st.textures {
		g.DeleteTexture(id)
	}
}

// SetUniform updates a named uniform. On a realized surface the value
// takes effect on the next frame and a redraw is requested. On an
// unrealized surface the write is queued and applied at realization.
// A name the program does not declare is dropped with a warning.
func (s *Surface) SetUniform(name string, value uniforms.Value) {
	if name == "" {
		slog.Warn("ignoring uniform with empty name")
		return
	}
	if s.state == nil {
		slog.Debug("queueing uniform for unrealized surface", "name", name, "value", value)
		s.pending[name] = value
		return
	}
	if err := s.ctx.MakeCurrent(); err != nil {
		slog.Error("failed to switch GL context", "err", err)
		return
	}
	if s.state.registry.Set(s.gl, s.state.program, name, value) {
		s.ctx.QueueRender()
	}
}

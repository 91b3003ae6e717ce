package surface

import (
	"errors"
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glshade/glshade/gldriver"
	"github.com/glshade/glshade/inputs"
	"github.com/glshade/glshade/uniforms"
)

type fakeContext struct {
	err    error
	gles   bool
	queued int
}

func (c *fakeContext) MakeCurrent() error { return c.err }
func (c *fakeContext) IsGLES() bool       { return c.gles }
func (c *fakeContext) QueueRender()       { c.queued++ }

const whiteShader = "void main() { out_color = vec4(1.0); }"

func rawTexture(w, h int) inputs.Source {
	return inputs.Source{Pixels: make([]byte, w*h*4), Width: w, Height: h}
}

func TestLifecycleSymmetry(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{
		Fragment: whiteShader,
		Textures: []inputs.Source{rawTexture(2, 2), rawTexture(4, 4)},
		GL:       g,
	})
	ctx := &fakeContext{}

	s.Realize(ctx)
	require.True(t, s.Realized())
	s.Render()
	s.Render()
	s.Unrealize()
	assert.False(t, s.Realized())

	assert.ElementsMatch(t, g.ProgramsCreated, g.ProgramsDeleted)
	assert.ElementsMatch(t, g.VertexArraysCreated, g.VertexArraysDeleted)
	assert.ElementsMatch(t, g.TexturesCreated, g.TexturesDeleted)
	assert.Len(t, g.TexturesCreated, 2)
	// The intermediate shader stages were not retained either.
	assert.ElementsMatch(t, g.ShadersCreated, g.ShadersDeleted)
}

func TestContextErrorAbortsActivation(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{Fragment: whiteShader, GL: g})

	s.Realize(&fakeContext{err: errors.New("context lost")})

	assert.False(t, s.Realized())
	assert.Empty(t, g.ProgramsCreated, "no partial state may be created")
	assert.Empty(t, g.VertexArraysCreated)
}

func TestContextErrorShortCircuitsRender(t *testing.T) {
	g := gldriver.NewFake()
	ctx := &fakeContext{}
	s := New(Config{Fragment: whiteShader, GL: g})
	s.Realize(ctx)

	ctx.err = errors.New("context lost")
	draws := len(g.Draws)
	programs := len(g.UsedPrograms)

	assert.True(t, s.Render(), "render is handled even when nothing is drawn")
	assert.Len(t, g.Draws, draws)
	assert.Len(t, g.UsedPrograms, programs, "apply_all must not run")
}

func TestContextErrorSkipsCleanup(t *testing.T) {
	g := gldriver.NewFake()
	ctx := &fakeContext{}
	s := New(Config{Fragment: whiteShader, Textures: []inputs.Source{rawTexture(1, 1)}, GL: g})
	s.Realize(ctx)

	ctx.err = errors.New("context lost")
	s.Unrealize()

	// Handles leak rather than being deleted on a dead context, but the
	// surface still ends up inactive.
	assert.False(t, s.Realized())
	assert.Empty(t, g.ProgramsDeleted)
	assert.Empty(t, g.TexturesDeleted)
}

func TestOpaqueWhiteScenario(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{Fragment: whiteShader, GL: g})

	s.Realize(&fakeContext{})
	require.True(t, s.Realized())

	assert.True(t, s.Render())

	require.Len(t, g.ClearColors, 1)
	assert.Equal(t, [4]float32{0, 0, 0, 0}, g.ClearColors[0])
	require.Len(t, g.Draws, 1)
	assert.Equal(t, gldriver.DrawCall{Mode: gl.TRIANGLE_STRIP, First: 0, Count: 4}, g.Draws[0])
	assert.Equal(t, 1, g.FlushCount)
	assert.Empty(t, g.Uploads, "no uniforms declared, none uploaded")
	assert.Empty(t, g.Bindings, "no textures configured, none bound")
}

func TestTextureRenumberingSkipsFailedLoads(t *testing.T) {
	g := gldriver.NewFake()
	g.Locations = map[string]int32{"tex0": 1, "tex1": 2}
	s := New(Config{
		Fragment: whiteShader,
		Textures: []inputs.Source{
			rawTexture(2, 2),
			{Pixels: []byte{1, 2, 3}, Width: 8, Height: 8}, // bad length, skipped
			rawTexture(4, 4),
		},
		GL: g,
	})

	s.Realize(&fakeContext{})

	// The two survivors occupy units 0 and 1 with no gap.
	require.Len(t, g.TexturesCreated, 2)
	require.Len(t, g.Bindings, 2)
	assert.Equal(t, uint32(gl.TEXTURE0), g.Bindings[0].Unit)
	assert.Equal(t, uint32(gl.TEXTURE0+1), g.Bindings[1].Unit)

	samplerUploads := map[int32][]int32{}
	for _, u := range g.Uploads {
		samplerUploads[u.Location] = u.Ints
	}
	assert.Equal(t, []int32{0}, samplerUploads[1], "tex0 bound to unit 0")
	assert.Equal(t, []int32{1}, samplerUploads[2], "tex1 bound to unit 1")
	assert.NotContains(t, g.LookedUp, "tex2")
}

func TestAbsentSamplerLeavesTextureUploaded(t *testing.T) {
	g := gldriver.NewFake() // no locations: tex0 unresolved
	s := New(Config{Fragment: whiteShader, Textures: []inputs.Source{rawTexture(2, 2)}, GL: g})

	s.Realize(&fakeContext{})

	assert.Len(t, g.TexturesCreated, 1)
	assert.Empty(t, g.Uploads, "no sampler uniform to bind")
}

func TestRenderBindsTexturesToTheirUnits(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{
		Fragment: whiteShader,
		Textures: []inputs.Source{rawTexture(1, 1), rawTexture(1, 1)},
		GL:       g,
	})
	s.Realize(&fakeContext{})

	uploads := len(g.Bindings)
	s.Render()

	frame := g.Bindings[uploads:]
	require.Len(t, frame, 2)
	assert.Equal(t, uint32(gl.TEXTURE0), frame[0].Unit)
	assert.Equal(t, uint32(gl.TEXTURE0+1), frame[1].Unit)
	assert.Equal(t, g.TexturesCreated[0], frame[0].Texture)
	assert.Equal(t, g.TexturesCreated[1], frame[1].Texture)
}

func TestUniformRoundTrip(t *testing.T) {
	g := gldriver.NewFake()
	g.Locations = map[string]int32{"x": 5}
	ctx := &fakeContext{}
	s := New(Config{Fragment: whiteShader, GL: g})
	s.Realize(ctx)

	s.SetUniform("x", uniforms.Vec3(mgl32.Vec3{1, 2, 3}))
	assert.Equal(t, 1, ctx.queued, "a stored uniform requests a redraw")

	s.Render()

	var found bool
	for _, u := range g.Uploads {
		if u.Location == 5 {
			assert.Equal(t, []float32{1, 2, 3}, u.Floats)
			found = true
		}
	}
	assert.True(t, found, "vec3 upload with exactly [1,2,3]")
}

func TestSetUnknownUniformHasNoEffect(t *testing.T) {
	g := gldriver.NewFake()
	ctx := &fakeContext{}
	s := New(Config{Fragment: whiteShader, GL: g})
	s.Realize(ctx)

	s.SetUniform("nope", uniforms.Float(1))

	assert.Zero(t, ctx.queued)
	s.Render()
	assert.Empty(t, g.Uploads)
}

func TestSeedingUnknownUniformEndsWithoutEntry(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{
		Fragment: whiteShader,
		Uniforms: map[string]uniforms.Value{"ghost": uniforms.Float(1)},
		GL:       g,
	})
	s.Realize(&fakeContext{})
	require.True(t, s.Realized())

	s.Render()
	assert.Empty(t, g.Uploads)
}

func TestUniformSetBeforeRealizeIsFlushed(t *testing.T) {
	g := gldriver.NewFake()
	g.Locations = map[string]int32{"x": 5}
	s := New(Config{
		Fragment: whiteShader,
		Uniforms: map[string]uniforms.Value{"x": uniforms.Float(1)},
		GL:       g,
	})

	// Queued before realization; overrides the initial value.
	s.SetUniform("x", uniforms.Float(2))
	assert.Empty(t, g.LookedUp, "no GL traffic before realization")

	s.Realize(&fakeContext{})
	s.Render()

	var values [][]float32
	for _, u := range g.Uploads {
		if u.Location == 5 {
			values = append(values, u.Floats)
		}
	}
	require.Len(t, values, 1)
	assert.Equal(t, []float32{2}, values[0])
}

func TestEmptyUniformNamesRejected(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{
		Fragment: whiteShader,
		Uniforms: map[string]uniforms.Value{"": uniforms.Float(1)},
		GL:       g,
	})
	s.Realize(&fakeContext{})
	assert.NotContains(t, g.LookedUp, "")

	s.SetUniform("", uniforms.Float(1))
	assert.NotContains(t, g.LookedUp, "")
}

func TestRealizeTwiceIsRejected(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{Fragment: whiteShader, GL: g})
	s.Realize(&fakeContext{})
	created := len(g.ProgramsCreated)

	s.Realize(&fakeContext{})
	assert.Len(t, g.ProgramsCreated, created)
}

func TestUnrealizedSurfaceIsInert(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{Fragment: whiteShader, GL: g})

	assert.True(t, s.Render(), "render is handled even before realization")
	s.Unrealize()
	assert.Empty(t, g.Draws)
	assert.Empty(t, g.ProgramsDeleted)
}

func TestBrokenShaderStillActivates(t *testing.T) {
	g := gldriver.NewFake()
	g.FailCompile = map[uint32]bool{gl.FRAGMENT_SHADER: true}
	g.FailLink = true
	g.InfoLog = "0:1: syntax error"
	s := New(Config{Fragment: "garbage", GL: g})

	s.Realize(&fakeContext{})

	assert.True(t, s.Realized(), "a broken program is still linked into the active state")
	s.Render()
	assert.Len(t, g.Draws, 1)
}

func TestGLESHeaderSelectedFromContext(t *testing.T) {
	g := gldriver.NewFake()
	s := New(Config{Fragment: whiteShader, GL: g})
	s.Realize(&fakeContext{gles: true})

	require.Len(t, g.ShaderSources, 2)
	for _, src := range g.ShaderSources {
		assert.Contains(t, src, "#version 300 es")
	}
}

package shader

import (
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glshade/glshade/gldriver"
)

func TestCompileAndLinkBuildsProgram(t *testing.T) {
	g := gldriver.NewFake()
	frag := FragmentSource("void main() { out_color = vec4(1.0); }", false)

	program := CompileAndLink(g, frag, false)

	require.NotZero(t, program)
	assert.Equal(t, []uint32{program}, g.LinkedPrograms)
	require.Len(t, g.ShadersCreated, 2)
	assert.ElementsMatch(t, g.ShadersCreated, g.Attached[program])

	// Both sources reach the driver with the desktop header.
	for _, src := range g.ShaderSources {
		assert.Contains(t, src, "#version 330 core")
	}
}

func TestIntermediateStagesAlwaysDeleted(t *testing.T) {
	ok := gldriver.NewFake()
	CompileAndLink(ok, FragmentSource("void main() {}", false), false)
	assert.ElementsMatch(t, ok.ShadersCreated, ok.ShadersDeleted)

	broken := gldriver.NewFake()
	broken.FailCompile = map[uint32]bool{gl.FRAGMENT_SHADER: true}
	broken.FailLink = true
	broken.InfoLog = "0:1: syntax error"
	CompileAndLink(broken, FragmentSource("not glsl", false), false)
	assert.ElementsMatch(t, broken.ShadersCreated, broken.ShadersDeleted)
}

func TestCompileFailureStillReturnsDriverHandle(t *testing.T) {
	g := gldriver.NewFake()
	g.FailCompile = map[uint32]bool{gl.FRAGMENT_SHADER: true}
	g.FailLink = true
	g.InfoLog = "0:1: 'main' : syntax error"

	program := CompileAndLink(g, FragmentSource("garbage", false), false)

	// Whatever the driver produced is handed back; the caller decides.
	assert.Equal(t, g.ProgramsCreated[0], program)
	assert.NotContains(t, g.ProgramsDeleted, program)
}

func TestGLESSourcesUseESHeader(t *testing.T) {
	g := gldriver.NewFake()
	CompileAndLink(g, FragmentSource("void main() {}", true), true)

	for _, src := range g.ShaderSources {
		assert.Contains(t, src, "#version 300 es")
	}
}

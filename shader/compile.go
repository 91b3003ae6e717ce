package shader

import (
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glshade/glshade/gldriver"
)

// CompileAndLink compiles the synthesized vertex stage and the given
// fragment source (already carrying its version header) and links them
// into one program. Compile and link diagnostics are logged in full but
// never abort: the driver's program handle is returned as-is, possibly
// 0 or unlinked, and the caller decides what to do with a broken
// program. The intermediate stage objects are always deleted.
func CompileAndLink(g gldriver.Funcs, fragment string, gles bool) uint32 {
	vert := compileStage(g, VertexSource(gles), gl.VERTEX_SHADER, "vertex")
	frag := compileStage(g, fragment, gl.FRAGMENT_SHADER, "fragment")

	program := g.CreateProgram()
	g.AttachShader(program, vert)
	g.AttachShader(program, frag)
	g.LinkProgram(program)

	if g.GetProgrami(program, gl.LINK_STATUS) == gl.FALSE {
		slog.Error("shader program link failed", "log", g.ProgramInfoLog(program))
	}

	g.DeleteShader(vert)
	g.DeleteShader(frag)
	return program
}

func compileStage(g gldriver.Funcs, source string, xtype uint32, stage string) uint32 {
	shader := g.CreateShader(xtype)
	g.ShaderSource(shader, source)
	g.CompileShader(shader)

	if g.GetShaderi(shader, gl.COMPILE_STATUS) == gl.FALSE {
		slog.Error("shader compile failed", "stage", stage, "log", g.ShaderInfoLog(shader))
	}
	return shader
}

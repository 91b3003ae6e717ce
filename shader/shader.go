// Package shader turns GLSL fragment source into a linked program. The
// vertex stage is always synthesized: it derives a fullscreen
// triangle-strip quad and a [0,1]² uv interpolant from gl_VertexID, so
// no vertex buffer is ever needed.
package shader

const headerGL = "#version 330 core\n"
const headerGLES = "#version 300 es\nprecision highp float;\n"

// The four strip vertices map index 0→(0,0), 1→(1,0), 2→(0,1), 3→(1,1).
const vertexBody = `
out vec2 uv;
void main() {
    vec2 pos = vec2(float(gl_VertexID & 1),
                    float((gl_VertexID >> 1) & 1));
    uv          = pos;
    gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
`

// Header returns the GLSL version and precision preamble for the
// active GL flavor. Fragment sources compiled without the matching
// header fail to compile.
func Header(gles bool) string {
	if gles {
		return headerGLES
	}
	return headerGL
}

// VertexSource returns the synthesized fullscreen-quad vertex stage for
// the active GL flavor.
func VertexSource(gles bool) string {
	return Header(gles) + vertexBody
}

// FragmentSource prefixes the user-supplied fragment stage with the
// flavor header.
func FragmentSource(user string, gles bool) string {
	return Header(gles) + user
}

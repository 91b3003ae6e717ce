package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderMatchesFlavor(t *testing.T) {
	assert.Equal(t, "#version 330 core\n", Header(false))
	assert.Equal(t, "#version 300 es\nprecision highp float;\n", Header(true))
}

func TestVertexSourceNeedsNoVertexBuffer(t *testing.T) {
	src := VertexSource(false)

	assert.True(t, strings.HasPrefix(src, Header(false)))
	assert.Contains(t, src, "gl_VertexID")
	assert.Contains(t, src, "out vec2 uv;")
	assert.NotContains(t, src, "layout", "vertex stage must not declare attributes")
}

func TestFragmentSourcePrefixesHeader(t *testing.T) {
	user := "void main() { out_color = vec4(1.0); }"

	desktop := FragmentSource(user, false)
	assert.True(t, strings.HasPrefix(desktop, "#version 330 core\n"))
	assert.True(t, strings.HasSuffix(desktop, user))

	es := FragmentSource(user, true)
	assert.True(t, strings.HasPrefix(es, "#version 300 es\n"))
	assert.Contains(t, es, "precision highp float;")
}

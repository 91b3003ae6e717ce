package shader

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
)

var translator *gst.ShaderTranslator

// Translate converts a WebGL2-flavored fragment source (the dialect
// Shadertoy shaders are written in) to desktop GLSL 330. The translated
// source carries its own version header, so it must be compiled
// without prefixing another one. The underlying translator is created
// lazily and reused for the life of the process.
func Translate(ctx context.Context, source string) (string, error) {
	if translator == nil {
		t, err := gst.NewShaderTranslator(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to create shader translator: %w", err)
		}
		translator = t
	}

	out, err := translator.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return "", fmt.Errorf("fragment shader translation failed: %w", err)
	}
	return out.Code, nil
}

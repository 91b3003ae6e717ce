// glshade renders a GLSL fragment shader file in a window, with
// optional image textures and uniform values set from the command line.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/glshade/glshade/glfwcontext"
	"github.com/glshade/glshade/inputs"
	"github.com/glshade/glshade/options"
	"github.com/glshade/glshade/surface"
	"github.com/glshade/glshade/uniforms"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Options{
		ShaderPath: flag.String("shader", "", "Path to the GLSL fragment shader file (required)"),
		Title:      flag.String("title", "glshade", "Window title"),
		Width:      flag.Int("width", 1280, "Window width"),
		Height:     flag.Int("height", 720, "Window height"),
		WebGL:      flag.Bool("webgl", false, "Translate the shader from WebGL2 GLSL before compiling"),
		FlipV:      flag.Bool("flipv", false, "Flip textures vertically on load"),
	}
	flag.Var(&opts.Textures, "texture", "Image file to load as a texture (repeatable; bound as tex0, tex1, ...)")
	flag.Var(&opts.Uniforms, "uniform", "Initial uniform as name=v1[,v2[,v3[,v4]]] (repeatable)")
	flag.Parse()

	if *opts.ShaderPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	fragment, err := os.ReadFile(*opts.ShaderPath)
	if err != nil {
		log.Fatalf("Failed to read shader: %v", err)
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(*opts.Title, *opts.Width, *opts.Height)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	sources := make([]inputs.Source, 0, len(opts.Textures))
	for _, path := range opts.Textures {
		sources = append(sources, inputs.Source{Path: path, FlipV: *opts.FlipV})
	}

	s := surface.New(surface.Config{
		Fragment:       string(fragment),
		Textures:       sources,
		Uniforms:       parseUniforms(opts.Uniforms),
		TranslateWebGL: *opts.WebGL,
	})
	win.Run(s)
}

// parseUniforms converts name=v1,v2,... specs into uniform values.
// Malformed entries are reported and skipped, never fatal.
func parseUniforms(specs []string) map[string]uniforms.Value {
	vals := make(map[string]uniforms.Value)
	for _, spec := range specs {
		name, rest, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			log.Printf("Warning: ignoring malformed uniform %q", spec)
			continue
		}

		parts := strings.Split(rest, ",")
		floats := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				log.Printf("Warning: ignoring uniform %q: %v", name, err)
				floats = nil
				break
			}
			floats = append(floats, v)
		}
		if floats == nil {
			continue
		}

		value, err := uniforms.FromFloat64s(floats)
		if err != nil {
			log.Printf("Warning: ignoring uniform %q: %v", name, err)
			continue
		}
		vals[name] = value
	}
	return vals
}

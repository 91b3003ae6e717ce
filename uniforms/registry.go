package uniforms

import (
	"log/slog"

	"github.com/glshade/glshade/gldriver"
)

type entry struct {
	location int32
	value    Value
}

// Registry maps uniform names to their resolved location and current
// value for one linked program. Locations are resolved at most once per
// name and cached; a name the program does not declare is never stored,
// so a stored location is always >= 0.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Seed resolves name in program and stores the value. Called once per
// initial uniform during surface activation. An unresolved name is
// dropped with a warning and will not be retried.
func (r *Registry) Seed(g gldriver.Funcs, program uint32, name string, value Value) {
	loc := g.GetUniformLocation(program, name)
	if loc < 0 {
		slog.Warn("uniform not used in shader", "name", name)
		return
	}
	r.entries[name] = entry{location: loc, value: value}
}

// Set replaces the value stored under name, resolving its location on
// first use. It reports whether the value was stored; false means the
// program does not declare the uniform and the registry is unchanged.
func (r *Registry) Set(g gldriver.Funcs, program uint32, name string, value Value) bool {
	loc := int32(-1)
	if e, ok := r.entries[name]; ok {
		loc = e.location
	} else {
		loc = g.GetUniformLocation(program, name)
	}
	if loc < 0 {
		slog.Warn("uniform not used in shader", "name", name)
		return false
	}
	r.entries[name] = entry{location: loc, value: value}
	return true
}

// ApplyAll binds the program and uploads every stored value with the
// GL call matching its type. Called once per frame before drawing.
func (r *Registry) ApplyAll(g gldriver.Funcs, program uint32) {
	g.UseProgram(program)
	for _, e := range r.entries {
		e.value.upload(g, e.location)
	}
}

// Len returns the number of stored uniforms.
func (r *Registry) Len() int {
	return len(r.entries)
}

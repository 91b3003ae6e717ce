package options

import "strings"

// StringList is a repeatable flag value.
type StringList []string

func (l *StringList) String() string {
	return strings.Join(*l, ",")
}

func (l *StringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Options holds the viewer's command-line options. Pointer fields are
// bound directly to flags.
type Options struct {
	ShaderPath *string
	Title      *string
	Width      *int
	Height     *int
	WebGL      *bool
	FlipV      *bool
	Textures   StringList
	Uniforms   StringList
}

// Package graphics defines the boundary between the rendering core and
// the host toolkit that owns the window system.
package graphics

// Context is the GL context a host hands to a surface. The host
// guarantees that realize, render and unrealize callbacks for one
// surface are never invoked concurrently.
type Context interface {
	// MakeCurrent binds the context to the calling thread. A non-nil
	// error means the context is unusable for this operation; callers
	// must not issue any GL calls.
	MakeCurrent() error

	// IsGLES reports whether the context is an OpenGL ES profile, which
	// selects the GLSL version header used for shader compilation.
	IsGLES() bool

	// QueueRender asks the host to schedule a redraw of the surface.
	QueueRender()
}

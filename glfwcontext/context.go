// Package glfwcontext hosts a shader surface in a GLFW window. It is
// the reference embedding of the surface lifecycle: the window's event
// loop plays the role a widget toolkit's realize/render/unrealize
// signals play elsewhere.
package glfwcontext

import (
	"fmt"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glshade/glshade/gldriver"
	"github.com/glshade/glshade/graphics"
	"github.com/glshade/glshade/surface"
)

// Window is a GLFW window that implements graphics.Context and drives
// one surface. All methods must be called from the thread that ran
// InitGraphics.
type Window struct {
	window *glfw.Window
	dirty  bool

	keyCallbacks map[glfw.Key]func()
}

var _ graphics.Context = (*Window)(nil)

// New creates a desktop GL 4.1 core-profile window. The window starts
// dirty so the first loop iteration renders a frame.
func New(title string, width, height int) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{
		window:       win,
		dirty:        true,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(w.glfwKeyCallback)
	win.SetRefreshCallback(func(*glfw.Window) { w.dirty = true })
	win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { w.dirty = true })
	return w, nil
}

// RegisterKeyCallback registers a function to run when a key is
// pressed. Escape always closes the window.
func (w *Window) RegisterKeyCallback(key glfw.Key, f func()) {
	w.keyCallbacks[key] = f
}

func (w *Window) glfwKeyCallback(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		win.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := w.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// MakeCurrent implements graphics.Context.
func (w *Window) MakeCurrent() error {
	if w.window == nil {
		return fmt.Errorf("window has been destroyed")
	}
	w.window.MakeContextCurrent()
	return nil
}

// IsGLES implements graphics.Context. GLFW is only asked for desktop
// core profiles here.
func (w *Window) IsGLES() bool {
	return false
}

// QueueRender implements graphics.Context. It marks the window dirty
// and wakes the event loop.
func (w *Window) QueueRender() {
	w.dirty = true
	glfw.PostEmptyEvent()
}

// Run realizes the surface on this window, renders whenever the window
// is dirty until it is closed, then unrealizes and destroys the
// window. Redraws are event-driven: uniform updates, resizes and
// expose events each schedule one frame.
func (w *Window) Run(s *surface.Surface) {
	s.Realize(w)

	for !w.window.ShouldClose() {
		if w.dirty {
			w.dirty = false
			if s.Realized() {
				w.window.MakeContextCurrent()
				fbWidth, fbHeight := w.window.GetFramebufferSize()
				gldriver.Driver().Viewport(0, 0, int32(fbWidth), int32(fbHeight))
				s.Render()
				w.window.SwapBuffers()
			}
		}
		glfw.WaitEvents()
	}

	s.Unrealize()
	w.window.Destroy()
	w.window = nil
}

// InitGraphics initializes GLFW and pins the calling goroutine to its
// OS thread. Must be called from the main goroutine before any window
// is created.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the same
// thread as InitGraphics.
func TerminateGraphics() {
	glfw.Terminate()
}

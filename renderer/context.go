package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/polyfloyd/shaderprep/egl"
)

// Backend selects the way an OpenGL context is obtained.
type Backend string

const (
	// BackendEGL creates a headless context, no display server is required.
	BackendEGL Backend = "egl"
	// BackendGLFW creates a hidden window.
	BackendGLFW Backend = "glfw"
)

// Context is an OpenGL 3.3 core context which is current on the calling
// thread. Callers should lock the goroutine to its thread.
type Context struct {
	close func()
}

func NewContext(backend Backend) (*Context, error) {
	var ctx *Context
	var err error
	switch backend {
	case BackendEGL:
		ctx, err = newEGLContext()
	case BackendGLFW:
		ctx, err = newGLFWContext()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		ctx.Close()
		return nil, fmt.Errorf("error initializing OpenGL: %v", err)
	}
	return ctx, nil
}

func newEGLContext() (*Context, error) {
	display, err := egl.GetDisplay(egl.DefaultDisplay)
	if err != nil {
		return nil, err
	}
	surface, err := display.CreateSurface(1, 1)
	if err != nil {
		display.Destroy()
		return nil, err
	}
	if err := display.BindAPI(egl.OpenGLAPI); err != nil {
		display.Destroy()
		return nil, err
	}
	glContext, err := display.CreateContext(surface, 3, 3)
	if err != nil {
		display.Destroy()
		return nil, err
	}
	if err := glContext.MakeCurrent(); err != nil {
		glContext.Destroy()
		display.Destroy()
		return nil, err
	}
	return &Context{close: func() {
		glContext.Destroy()
		display.Destroy()
	}}, nil
}

func newGLFWContext() (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(1, 1, "shaderprep", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	return &Context{close: func() {
		win.Destroy()
		glfw.Terminate()
	}}, nil
}

func (ctx *Context) Close() {
	ctx.close()
}

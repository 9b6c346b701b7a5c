// Package egl creates headless OpenGL contexts backed by a pixel buffer
// surface.
package egl

// #cgo LDFLAGS: -lEGL
// #include <EGL/egl.h>
import "C"
import (
	"errors"
	"fmt"
	"strings"
)

var DefaultDisplay = NativeDisplayType(nil) // C.EGL_DEFAULT_DISPLAY

type NativeDisplayType C.EGLNativeDisplayType

type API C.EGLenum

const (
	OpenGLAPI   = API(C.EGL_OPENGL_API)
	OpenGLESAPI = API(C.EGL_OPENGL_ES_API)
)

type Display struct {
	dpy C.EGLDisplay
}

type Surface struct {
	conf C.EGLConfig
	surf C.EGLSurface
}

type Context struct {
	Display Display
	Surface Surface

	context C.EGLContext
}

func GetDisplay(dtype NativeDisplayType) (Display, error) {
	dpy := C.eglGetDisplay(C.EGLNativeDisplayType(dtype))
	if dpy == 0 {
		return Display{}, fmt.Errorf("no EGL display available")
	}
	if C.eglInitialize(dpy, nil, nil) == C.EGL_FALSE {
		return Display{}, fmt.Errorf("error initializing display: %v", getError())
	}
	return Display{dpy: dpy}, nil
}

// ClientAPIs retrieves a list of supported client APIs.
func (d Display) ClientAPIs() []string {
	return d.queryList(C.EGL_CLIENT_APIS)
}

// Extensions retrieves a list of supported extensions.
func (d Display) Extensions() []string {
	return d.queryList(C.EGL_EXTENSIONS)
}

// Vendor retrieves the EGL vendor string.
func (d Display) Vendor() string {
	return C.GoString(C.eglQueryString(d.dpy, C.EGL_VENDOR))
}

func (d Display) queryList(name C.EGLint) []string {
	return strings.Fields(C.GoString(C.eglQueryString(d.dpy, name)))
}

func (d Display) Destroy() {
	C.eglTerminate(d.dpy)
}

func (d Display) BindAPI(api API) error {
	if C.eglBindAPI(C.EGLenum(api)) == C.EGL_FALSE {
		return fmt.Errorf("error binding API: %v", getError())
	}
	return nil
}

// CreateSurface creates an offscreen surface of the specified size.
func (d Display) CreateSurface(width, height uint) (Surface, error) {
	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_NONE,
	}
	var numConfigs C.EGLint
	var conf C.EGLConfig
	if C.eglChooseConfig(d.dpy, &configAttribs[0], &conf, 1, &numConfigs) == C.EGL_FALSE {
		return Surface{}, fmt.Errorf("error choosing config: %v", getError())
	}
	if numConfigs == 0 {
		return Surface{}, fmt.Errorf("no suitable EGL config")
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(width),
		C.EGL_HEIGHT, C.EGLint(height),
		C.EGL_NONE,
	}
	surf := C.eglCreatePbufferSurface(d.dpy, conf, &pbufferAttribs[0])
	if surf == nil {
		return Surface{}, fmt.Errorf("error creating surface: %v", getError())
	}
	return Surface{conf: conf, surf: surf}, nil
}

// CreateContext creates a core profile context of the requested OpenGL
// version.
func (d Display) CreateContext(surface Surface, major, minor int) (Context, error) {
	attribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, C.EGLint(major),
		C.EGL_CONTEXT_MINOR_VERSION, C.EGLint(minor),
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	context := C.eglCreateContext(d.dpy, surface.conf, nil, &attribs[0])
	if context == nil {
		return Context{}, fmt.Errorf("error creating context: %v", getError())
	}
	return Context{Display: d, Surface: surface, context: context}, nil
}

func (cx Context) MakeCurrent() error {
	if C.eglMakeCurrent(cx.Display.dpy, cx.Surface.surf, cx.Surface.surf, cx.context) == C.EGL_FALSE {
		return fmt.Errorf("error making context current: %v", getError())
	}
	return nil
}

// Destroy releases the context and its surface.
func (cx Context) Destroy() {
	C.eglMakeCurrent(cx.Display.dpy, nil, nil, nil)
	C.eglDestroyContext(cx.Display.dpy, cx.context)
	C.eglDestroySurface(cx.Display.dpy, cx.Surface.surf)
}

var errorMessages = map[C.EGLint]string{
	C.EGL_NOT_INITIALIZED:     "EGL is not initialized, or could not be initialized, for the specified display",
	C.EGL_BAD_ACCESS:          "EGL cannot access a requested resource",
	C.EGL_BAD_ALLOC:           "EGL failed to allocate resources for the requested operation",
	C.EGL_BAD_ATTRIBUTE:       "an unrecognized attribute or attribute value was passed in the attribute list",
	C.EGL_BAD_CONTEXT:         "an EGLContext argument does not name a valid EGL rendering context",
	C.EGL_BAD_CONFIG:          "an EGLConfig argument does not name a valid EGL frame buffer configuration",
	C.EGL_BAD_CURRENT_SURFACE: "the current surface of the calling thread is no longer valid",
	C.EGL_BAD_DISPLAY:         "an EGLDisplay argument does not name a valid EGL display connection",
	C.EGL_BAD_SURFACE:         "an EGLSurface argument does not name a valid surface configured for GL rendering",
	C.EGL_BAD_MATCH:           "arguments are inconsistent",
	C.EGL_BAD_PARAMETER:       "one or more argument values are invalid",
	C.EGL_CONTEXT_LOST:        "a power management event has occurred, the context was lost",
}

func getError() error {
	code := C.eglGetError()
	if code == C.EGL_SUCCESS {
		return nil
	}
	if msg, ok := errorMessages[code]; ok {
		return errors.New(msg)
	}
	return fmt.Errorf("unknown EGL error: %#x", int(code))
}

package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW handle and the close flag for an engineWindow.
type glfwWindow struct {
	handle  *glfw.Window
	running bool
}

// errWindowNotInitialized is returned when a platform call is made before the GLFW window exists.
var errWindowNotInitialized = errors.New("window is not initialized")

// newPlatformWindow initializes GLFW, opens a window without a client API and routes its
// input events to the engineWindow callbacks.
//
// Parameters:
//   - w: the engineWindow to attach the GLFW window to
//
// Returns:
//   - error: error if GLFW or the window could not be created
func newPlatformWindow(w *engineWindow) error {
	// GLFW calls must come from the thread that initialized it.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, boolHint(w.resizable))

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("glfw create window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, sizeLimit(w.maxWidth), sizeLimit(w.maxHeight))

	gw := &glfwWindow{handle: win, running: true}
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		switch action {
		case glfw.Press:
			if w.onMouseDown != nil {
				w.onMouseDown(int(button), int32(x), int32(y))
			}
		case glfw.Release:
			if w.onMouseUp != nil {
				w.onMouseUp(int(button), int32(x), int32(y))
			}
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(x), int32(y))
		}
	})

	// Framebuffer size is in pixels, which is what the surface needs on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

func platformWindow(w *engineWindow) (*glfwWindow, bool) {
	gw, ok := w.internalWindow.(*glfwWindow)
	return gw, ok && gw != nil
}

// platformGetSurfaceDescriptor builds the surface descriptor for the GLFW window through wgpuglfw.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := platformWindow(w)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := platformWindow(w)
	if !ok {
		return false
	}
	return gw.running && !gw.handle.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates GLFW.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: errWindowNotInitialized if no window was created
func platformCloseWindow(w *engineWindow) error {
	gw, ok := platformWindow(w)
	if !ok {
		return errWindowNotInitialized
	}
	if !gw.running {
		return nil
	}
	gw.running = false
	gw.handle.SetShouldClose(true)
	gw.handle.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls pending GLFW events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-flipper/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsAPI selects the client API a window is created for.
type GraphicsAPI int

const (
	// GraphicsAPIOpenGL creates the window with a current OpenGL 4.1 core context.
	GraphicsAPIOpenGL GraphicsAPI = iota

	// GraphicsAPIWebGPU creates the window without a client API so a WebGPU surface
	// can be attached to it.
	GraphicsAPIWebGPU
)

// String returns the API name.
func (a GraphicsAPI) String() string {
	switch a {
	case GraphicsAPIOpenGL:
		return "opengl"
	case GraphicsAPIWebGPU:
		return "webgpu"
	default:
		return "unknown"
	}
}

// Window provides a platform window, either with an OpenGL context or ready for a
// WebGPU surface, and feeds its input events into an input.Tracker.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Input returns the tracker receiving this window's key, mouse, cursor, scroll and
	// resize events. Call Snapshot on it once per frame.
	//
	// Returns:
	//   - *input.Tracker: the input tracker
	Input() *input.Tracker

	// SetCursorCaptured hides and locks the cursor to the window when true, giving
	// unbounded relative motion for mouse-look.
	//
	// Parameters:
	//   - captured: whether to capture the cursor
	SetCursorCaptured(captured bool)

	// GraphicsAPI returns the client API the window was created for.
	GraphicsAPI() GraphicsAPI

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if the
	//     window is not initialized or owns an OpenGL context
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SwapBuffers presents the OpenGL back buffer. WebGPU windows present through
	// their surface, so this is a no-op for them.
	SwapBuffers()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	// The window stays valid until Close.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// size limits applied to the platform window.
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer size in pixels.
	width  int
	height int

	// vsync sets the swap interval to 1 when true.
	vsync bool

	// api is the client API the platform window is created for.
	api GraphicsAPI

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	tracker *input.Tracker

	onUpdate func()
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order. Panics if the platform
// window or its GL context cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window; OpenGL windows have a current GL context
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-flipper",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     800,
		height:    600,
		vsync:     true,
	}
	for _, opt := range options {
		opt(w)
	}
	w.tracker = input.NewTracker(w.width, w.height)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Input() *input.Tracker {
	return w.tracker
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	platformSetCursorCaptured(w, captured)
}

func (w *engineWindow) GraphicsAPI() GraphicsAPI {
	return w.api
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleResize records a new framebuffer size and forwards it to the tracker and
// the resize callback. Zero sizes (minimized windows) are ignored.
func (w *engineWindow) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width = width
	w.height = height
	w.tracker.Resized(width, height)
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

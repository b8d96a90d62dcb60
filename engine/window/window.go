package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/orbit-go/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// Every Window is also an input.Source, so a camera controller can attach
// to it directly.
type Window interface {
	input.Source

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
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

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// doubleClickWindow is the maximum gap between two primary clicks for
	// onDoubleClick synthesis.
	doubleClickWindow time.Duration

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)

	// onKeyUp is called when a key is released.
	onKeyUp func(keyCode uint32)

	// onScroll is called for mouse wheel events.
	// Positive delta = scroll up (zoom in), negative = scroll down (zoom out).
	onScroll func(delta float32)

	// onPointerDown is called when the primary mouse button is pressed.
	onPointerDown func(id input.PointerID, x, y float32, device input.DeviceClass)

	// onPointerMove is called when the cursor moves while the primary
	// button is held.
	onPointerMove func(id input.PointerID, x, y float32)

	// onPointerUp is called when the primary mouse button is released.
	onPointerUp func(id input.PointerID)

	// onPointerCancel is called when the platform cuts a pointer sequence.
	onPointerCancel func(id input.PointerID)

	// onDoubleClick is called for two primary clicks within doubleClickWindow.
	onDoubleClick func()

	// onBlur is called on focus loss and on the context-menu button, both of
	// which must abort any in-flight gesture.
	onBlur func()
}

var _ Window = &engineWindow{}
var _ input.Source = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window (not yet spawned)
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:             "Default Window Title",
		maxWidth:          1600,
		maxHeight:         1200,
		minWidth:          600,
		minHeight:         200,
		width:             1280,
		height:            720,
		doubleClickWindow: 400 * time.Millisecond,
	}
	for _, opt := range options {
		opt(w)
	}
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

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(id input.PointerID, x, y float32, device input.DeviceClass)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(id input.PointerID, x, y float32)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(id input.PointerID)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerCancelCallback(callback func(id input.PointerID)) {
	w.onPointerCancel = callback
}

func (w *engineWindow) SetDoubleClickCallback(callback func()) {
	w.onDoubleClick = callback
}

func (w *engineWindow) SetBlurCallback(callback func()) {
	w.onBlur = callback
}

func (w *engineWindow) CapturePointer(id input.PointerID) error {
	return platformCapturePointer(w, id)
}

func (w *engineWindow) ReleasePointer(id input.PointerID) {
	// GLFW keeps delivering cursor events while a button is held, so there
	// is nothing to release.
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
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

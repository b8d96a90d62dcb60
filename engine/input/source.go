package input

// Source is an input event producer: a platform window, or a test harness
// driving events by hand. A controller registers its handlers through the
// Set*Callback methods and detaches by setting them back to nil, so its
// lifetime is never tied to ambient globals.
//
// Pointer capture is an exclusive per-pointer resource. Capture failure is
// expected to be tolerated by callers: losing capture only means events
// outside the surface bounds may be missed.
type Source interface {
	// SetPointerDownCallback sets the callback for pointer press events.
	//
	// Parameters:
	//   - callback: function receiving the pointer id, surface position, and device class (or nil to disable)
	SetPointerDownCallback(callback func(id PointerID, x, y float32, device DeviceClass))

	// SetPointerMoveCallback sets the callback for pointer movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer id and surface position (or nil to disable)
	SetPointerMoveCallback(callback func(id PointerID, x, y float32))

	// SetPointerUpCallback sets the callback for pointer release events.
	//
	// Parameters:
	//   - callback: function receiving the pointer id (or nil to disable)
	SetPointerUpCallback(callback func(id PointerID))

	// SetPointerCancelCallback sets the callback for pointer cancellation,
	// e.g. the platform claiming a touch sequence for its own gestures.
	//
	// Parameters:
	//   - callback: function receiving the pointer id (or nil to disable)
	SetPointerCancelCallback(callback func(id PointerID))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetDoubleClickCallback sets the callback for double-click / double-tap
	// events synthesized by the source.
	//
	// Parameters:
	//   - callback: function to call on double-click (or nil to disable)
	SetDoubleClickCallback(callback func())

	// SetBlurCallback sets the callback for focus loss and other hard input
	// interruptions (context menu). Consumers must treat this as "abort all
	// gestures": the event stream may have been cut mid-gesture.
	//
	// Parameters:
	//   - callback: function to call on blur (or nil to disable)
	SetBlurCallback(callback func())

	// CapturePointer attempts exclusive capture of a pointer id so events
	// keep flowing while the pointer leaves the surface bounds.
	//
	// Parameters:
	//   - id: the pointer to capture
	//
	// Returns:
	//   - error: error if capture is unavailable for this pointer; callers degrade gracefully
	CapturePointer(id PointerID) error

	// ReleasePointer releases a previously captured pointer. Releasing an
	// uncaptured pointer is a no-op.
	//
	// Parameters:
	//   - id: the pointer to release
	ReleasePointer(id PointerID)
}

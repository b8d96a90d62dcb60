package camera

import (
	"github.com/Carmen-Shannon/orbit-go/engine/input"
)

// ModeChangedPayload is the event payload published when the distance mode
// label changes (discrete cycle, pinch-end snap, or far-limit force).
type ModeChangedPayload struct {
	// Mode is the new distance mode label.
	Mode DistanceMode
}

// PanChangedPayload is the event payload published when a two-finger pan
// moves the orbit target.
type PanChangedPayload struct {
	// X, Y, Z is the new world-space orbit target.
	X, Y, Z float32
}

// OrbitController drives an orbiting camera around a fixed target point. It
// multiplexes mouse-drag orbiting, single-touch orbiting, two-touch
// pan+pinch, wheel/double-tap discrete zoom cycling, and idle auto-rotation
// into one damped spherical-coordinate state, and exposes the resulting pose
// for the camera to consume each frame.
//
// Input callbacks only accumulate pointer and gesture state; Update is the
// sole writer of the integrated pose. The controller never renders and never
// owns geometry.
type OrbitController interface {
	// Position returns the camera's world-space position as of the last Update.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the orbit target (look-at point).
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget moves the orbit target and re-derives azimuth, polar angle,
	// and radius from the current camera position relative to it. Resets
	// idle time.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates of the new target
	SetTarget(x, y, z float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Polar returns the current tilt from the vertical axis, always inside
	// (epsilon, π−epsilon).
	//
	// Returns:
	//   - float32: polar angle in radians
	Polar() float32

	// Radius returns the resolved orbit radius as of the last Update.
	//
	// Returns:
	//   - float32: distance from target
	Radius() float32

	// DistanceMode returns the current advisory distance label.
	//
	// Returns:
	//   - DistanceMode: the current mode
	DistanceMode() DistanceMode

	// CycleDistance advances the discrete distance mode (near → at → far →
	// near), discarding any pinch override, and notifies subscribers.
	CycleDistance()

	// SetDistanceMode jumps to an explicit distance mode, discarding any
	// pinch override, and notifies subscribers if the label changed.
	//
	// Parameters:
	//   - mode: the requested mode
	SetDistanceMode(mode DistanceMode)

	// FarLimit returns the current dynamic upper bound on radius.
	//
	// Returns:
	//   - float32: the radius ceiling
	FarLimit() float32

	// SetFarLimit moves the dynamic radius ceiling. If the camera currently
	// sits beyond the new ceiling it is pulled in to exactly the ceiling,
	// the mode label is forced to far, and one mode-change notification
	// fires.
	//
	// Parameters:
	//   - limit: the new ceiling in world units
	SetFarLimit(limit float32)

	// PointerDown feeds a pointer press. Attempts exclusive capture of the
	// pointer through the attached source; capture failure is tolerated.
	//
	// Parameters:
	//   - id: the pointer identifier
	//   - x, y: press position in surface pixels
	//   - device: the pointer's device class
	PointerDown(id input.PointerID, x, y float32, device input.DeviceClass)

	// PointerMove feeds a pointer move sample. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the pointer identifier
	//   - x, y: new position in surface pixels
	PointerMove(id input.PointerID, x, y float32)

	// PointerUp feeds a pointer release.
	//
	// Parameters:
	//   - id: the pointer identifier
	PointerUp(id input.PointerID)

	// PointerCancel feeds a pointer cancellation (platform claimed the
	// touch sequence). Equivalent to PointerUp for gesture accounting.
	//
	// Parameters:
	//   - id: the pointer identifier
	PointerCancel(id input.PointerID)

	// Wheel feeds a scroll wheel event. Deltas below the configured
	// threshold are rejected as trackpad noise; accepted events cycle the
	// distance mode, subject to the cooldown window.
	//
	// Parameters:
	//   - delta: scroll delta in source units
	Wheel(delta float32)

	// DoubleTap feeds a double-click/double-tap, cycling the distance mode.
	DoubleTap()

	// Abort unconditionally clears all pointers and gesture flags. The
	// universal reset path for focus loss, context menus, and any other
	// interruption of the input stream.
	Abort()

	// Attach registers the controller's handlers on an input source and
	// returns a disposer that unregisters them and aborts any gesture in
	// progress.
	//
	// Parameters:
	//   - src: the input source to attach to
	//
	// Returns:
	//   - func(): detach disposer
	Attach(src input.Source) func()

	// Update advances the controller by one frame: integrates and damps
	// pending rotation, applies idle auto-rotation, resolves the radius,
	// recomputes the pose, and pushes position and mode into the save
	// draft. Should be called once per tick.
	//
	// Parameters:
	//   - dt: seconds since the previous update
	Update(dt float32)
}

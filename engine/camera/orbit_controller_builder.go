package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/orbit-go/engine/config"
	"github.com/Carmen-Shannon/orbit-go/engine/event"
	"github.com/Carmen-Shannon/orbit-go/engine/save"
)

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithConfig supplies the full tuning configuration. A nil config keeps the
// defaults.
//
// Parameters:
//   - cfg: the configuration to use
//
// Returns:
//   - OrbitControllerOption: functional option to set the configuration
func WithConfig(cfg *config.Config) OrbitControllerOption {
	return func(c *orbitControllerImpl) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithTarget sets the initial orbit target (look-at point).
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - OrbitControllerOption: functional option to set the target
func WithTarget(x, y, z float32) OrbitControllerOption {
	return func(c *orbitControllerImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - OrbitControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) OrbitControllerOption {
	return func(c *orbitControllerImpl) {
		c.azimuth = azimuth
	}
}

// WithPolar sets the initial tilt from the vertical axis. The value is
// clamped off the poles at construction.
//
// Parameters:
//   - polar: polar angle in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set the polar angle
func WithPolar(polar float32) OrbitControllerOption {
	return func(c *orbitControllerImpl) {
		c.polar = polar
	}
}

// WithDistanceMode sets the starting distance mode, used when no persisted
// state overrides it.
//
// Parameters:
//   - mode: the starting mode
//
// Returns:
//   - OrbitControllerOption: functional option to set the mode
func WithDistanceMode(mode DistanceMode) OrbitControllerOption {
	return func(c *orbitControllerImpl) {
		c.initialMode = mode
	}
}

// WithStore attaches the persistence collaborator. The controller reads the
// restored state once at construction and writes the pose draft every frame
// and on every explicit mode change.
//
// Parameters:
//   - store: the save store
//
// Returns:
//   - OrbitControllerOption: functional option to set the store
func WithStore(store save.Store) OrbitControllerOption {
	return func(c *orbitControllerImpl) {
		c.store = store
	}
}

// WithBus attaches the notification bus for distance-mode and pan events.
//
// Parameters:
//   - bus: the event bus
//
// Returns:
//   - OrbitControllerOption: functional option to set the bus
func WithBus(bus *event.Bus) OrbitControllerOption {
	return func(c *orbitControllerImpl) {
		c.bus = bus
	}
}

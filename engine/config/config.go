// Package config supplies the static per-session tuning constants for the
// orbit camera: canonical distances, sensitivities, damping factors, and
// timing windows. Values are read once at construction and never mutated by
// the engine.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/orbit-go/common"
)

const (
	DefaultAtRadius   = 10.0
	DefaultNearRadius = 50.0
	DefaultFarRadius  = 300.0

	DefaultPolarEpsilon    = 0.05
	DefaultRotateDamping   = 0.85
	DefaultAutoRotateDelay = 12000 // ms
	DefaultAutoRotateSpeed = 0.05  // rad/s

	DefaultMouseRotateSpeed     = 0.005
	DefaultTouchRotateSpeed     = 0.0015
	DefaultPanSpeed             = 0.05
	DefaultPinchZoomSpeed       = 0.079
	DefaultPinchActiveThreshold = 2.0
	DefaultPinchPanDamping      = 0.25
	DefaultWheelCooldown        = 500 // ms
	DefaultWheelThreshold       = 2.0
	DefaultDoubleClickWindow    = 400 // ms
)

// Config is the root configuration document.
type Config struct {
	Camera CameraConfig `yaml:"camera"`
	Input  InputConfig  `yaml:"input"`
}

// CameraConfig holds the orbit model and distance-mode constants.
type CameraConfig struct {
	// AtRadius, NearRadius, FarRadius are the canonical radii bound to the
	// three distance modes. AtRadius doubles as the global minimum radius.
	AtRadius   float32 `yaml:"at_radius"`
	NearRadius float32 `yaml:"near_radius"`
	FarRadius  float32 `yaml:"far_radius"`

	// FarLimit is the initial dynamic upper bound on radius. Zero means
	// "use the far canonical radius".
	FarLimit float32 `yaml:"far_limit"`

	// PolarEpsilon keeps the polar angle out of (0, π) by this margin so
	// the camera never flips at the poles.
	PolarEpsilon float32 `yaml:"polar_epsilon"`

	// RotateDamping is the per-frame retention factor for pending rotation
	// deltas; values below 1 give a brief glide after a drag ends.
	RotateDamping float32 `yaml:"rotate_damping"`

	// AutoRotateDelayMS is how long the scene must stay untouched before
	// idle auto-rotation starts.
	AutoRotateDelayMS int `yaml:"auto_rotate_delay_ms"`

	// AutoRotateSpeed is the idle azimuth drift rate in radians per second.
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

// InputConfig holds gesture sensitivities and timing windows.
type InputConfig struct {
	// MouseRotateSpeed and TouchRotateSpeed are rotation sensitivities in
	// radians per pixel. Touch is tuned much lower than mouse.
	MouseRotateSpeed float32 `yaml:"mouse_rotate_speed"`
	TouchRotateSpeed float32 `yaml:"touch_rotate_speed"`

	// PanSpeed converts two-finger midpoint movement in pixels to world
	// units of target translation.
	PanSpeed float32 `yaml:"pan_speed"`

	// PinchZoomSpeed converts pinch distance change in pixels to radius
	// change in world units.
	PinchZoomSpeed float32 `yaml:"pinch_zoom_speed"`

	// PinchActiveThreshold and PinchPanDamping are the empirically tuned
	// pinch-priority constants: past the threshold, pan is scaled by the
	// damping factor.
	PinchActiveThreshold float32 `yaml:"pinch_active_threshold"`
	PinchPanDamping      float32 `yaml:"pinch_pan_damping"`

	// WheelCooldownMS and WheelThreshold gate wheel-driven distance cycling
	// against noisy trackpad scroll streams.
	WheelCooldownMS int     `yaml:"wheel_cooldown_ms"`
	WheelThreshold  float32 `yaml:"wheel_threshold"`

	// DoubleClickMS is the maximum interval between presses for the window
	// to synthesize a double-click.
	DoubleClickMS int `yaml:"double_click_ms"`
}

// DefaultConfig returns a Config populated with the default tuning.
//
// Returns:
//   - *Config: the default configuration
func DefaultConfig() *Config {
	return &Config{
		Camera: CameraConfig{
			AtRadius:          DefaultAtRadius,
			NearRadius:        DefaultNearRadius,
			FarRadius:         DefaultFarRadius,
			FarLimit:          DefaultFarRadius,
			PolarEpsilon:      DefaultPolarEpsilon,
			RotateDamping:     DefaultRotateDamping,
			AutoRotateDelayMS: DefaultAutoRotateDelay,
			AutoRotateSpeed:   DefaultAutoRotateSpeed,
		},
		Input: InputConfig{
			MouseRotateSpeed:     DefaultMouseRotateSpeed,
			TouchRotateSpeed:     DefaultTouchRotateSpeed,
			PanSpeed:             DefaultPanSpeed,
			PinchZoomSpeed:       DefaultPinchZoomSpeed,
			PinchActiveThreshold: DefaultPinchActiveThreshold,
			PinchPanDamping:      DefaultPinchPanDamping,
			WheelCooldownMS:      DefaultWheelCooldown,
			WheelThreshold:       DefaultWheelThreshold,
			DoubleClickMS:        DefaultDoubleClickWindow,
		},
	}
}

// Load reads a yaml config file over the defaults and silently clamps
// out-of-range values into physically sensible bounds. Interactive input
// must never hard-fail over a tuning value, so only IO and parse errors are
// reported.
//
// Parameters:
//   - path: the yaml file to read
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file cannot be read or parsed
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// Sanitize clamps every field into its sensible range, substituting defaults
// for non-positive values that have no meaningful zero.
func (c *Config) Sanitize() {
	if c.Camera.AtRadius <= 0 {
		c.Camera.AtRadius = DefaultAtRadius
	}
	if c.Camera.NearRadius <= 0 {
		c.Camera.NearRadius = DefaultNearRadius
	}
	if c.Camera.FarRadius <= 0 {
		c.Camera.FarRadius = DefaultFarRadius
	}
	if c.Camera.FarLimit <= 0 {
		c.Camera.FarLimit = c.Camera.FarRadius
	}
	c.Camera.FarLimit = max(c.Camera.FarLimit, c.Camera.AtRadius)
	c.Camera.PolarEpsilon = common.Clamp(c.Camera.PolarEpsilon, 1e-4, float32(math.Pi/4))
	c.Camera.RotateDamping = common.Clamp(c.Camera.RotateDamping, 0, 0.999)
	c.Camera.AutoRotateDelayMS = max(c.Camera.AutoRotateDelayMS, 0)

	c.Input.MouseRotateSpeed = common.Clamp(c.Input.MouseRotateSpeed, 0, 1)
	c.Input.TouchRotateSpeed = common.Clamp(c.Input.TouchRotateSpeed, 0, 1)
	c.Input.PanSpeed = max(c.Input.PanSpeed, 0)
	c.Input.PinchZoomSpeed = max(c.Input.PinchZoomSpeed, 0)
	c.Input.PinchActiveThreshold = max(c.Input.PinchActiveThreshold, 0)
	c.Input.PinchPanDamping = common.Clamp(c.Input.PinchPanDamping, 0, 1)
	c.Input.WheelCooldownMS = max(c.Input.WheelCooldownMS, 0)
	c.Input.WheelThreshold = max(c.Input.WheelThreshold, 0)
	if c.Input.DoubleClickMS <= 0 {
		c.Input.DoubleClickMS = DefaultDoubleClickWindow
	}
}

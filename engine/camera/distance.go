package camera

import (
	"github.com/Carmen-Shannon/orbit-go/common"
)

// DistanceMode is the discrete camera distance label. It is advisory
// metadata attached to the resolved radius: while a pinch override is live
// the actual radius may sit anywhere between the canonical values.
//
// Enumeration order matters: nearest-canonical snapping breaks ties in favor
// of the first enumerated mode.
type DistanceMode int

const (
	// DistanceAt is the closest preset.
	DistanceAt DistanceMode = iota
	// DistanceNear is the middle preset.
	DistanceNear
	// DistanceFar is the farthest preset.
	DistanceFar

	distanceModeCount
)

// String returns the persisted/displayed label for the mode.
//
// Returns:
//   - string: "at", "near", or "far"
func (m DistanceMode) String() string {
	switch m {
	case DistanceAt:
		return "at"
	case DistanceFar:
		return "far"
	default:
		return "near"
	}
}

// ParseDistanceMode parses a persisted mode label.
//
// Parameters:
//   - s: the label to parse
//
// Returns:
//   - DistanceMode: the parsed mode (DistanceNear when unrecognized)
//   - bool: true if the label was recognized
func ParseDistanceMode(s string) (DistanceMode, bool) {
	switch s {
	case "at":
		return DistanceAt, true
	case "near":
		return DistanceNear, true
	case "far":
		return DistanceFar, true
	default:
		return DistanceNear, false
	}
}

// next returns the successor in the discrete cycle near → at → far → near.
//
// Returns:
//   - DistanceMode: the next mode in the cycle
func (m DistanceMode) next() DistanceMode {
	switch m {
	case DistanceNear:
		return DistanceAt
	case DistanceAt:
		return DistanceFar
	default:
		return DistanceNear
	}
}

// distanceState is the tagged radius source: either the canonical radius of
// a fixed mode, or a continuous pinch-driven override carrying its advisory
// label. Making the override a distinct type keeps "is a pinch in progress"
// a type-level question rather than a sentinel check.
type distanceState interface {
	label() DistanceMode
}

type fixedDistance struct {
	mode DistanceMode
}

func (f fixedDistance) label() DistanceMode { return f.mode }

type overriddenDistance struct {
	mode   DistanceMode
	radius float32
}

func (o overriddenDistance) label() DistanceMode { return o.mode }

// distanceResolver reconciles the discrete distance mode, the continuous
// pinch override, and the dynamic far limit into the frame's radius.
type distanceResolver struct {
	state     distanceState
	canonical [distanceModeCount]float32
	farLimit  float32
}

// newDistanceResolver creates a resolver with the given canonical radii.
//
// Parameters:
//   - at, near, far: canonical radii per mode (at doubles as the minimum radius)
//   - farLimit: initial dynamic upper bound on radius
//   - initial: the starting mode
//
// Returns:
//   - *distanceResolver: the newly created resolver
func newDistanceResolver(at, near, far, farLimit float32, initial DistanceMode) *distanceResolver {
	r := &distanceResolver{
		state:    fixedDistance{mode: initial},
		farLimit: max(farLimit, at),
	}
	r.canonical[DistanceAt] = at
	r.canonical[DistanceNear] = near
	r.canonical[DistanceFar] = far
	return r
}

// Mode returns the current advisory distance label.
func (r *distanceResolver) Mode() DistanceMode {
	return r.state.label()
}

// Overridden reports whether a continuous radius override is live.
func (r *distanceResolver) Overridden() bool {
	_, ok := r.state.(overriddenDistance)
	return ok
}

// FarLimit returns the current dynamic radius ceiling.
func (r *distanceResolver) FarLimit() float32 {
	return r.farLimit
}

// raw returns the unclamped radius the current state asks for.
func (r *distanceResolver) raw() float32 {
	if o, ok := r.state.(overriddenDistance); ok {
		return o.radius
	}
	return r.canonical[r.state.label()]
}

// Resolve computes the frame's radius: the override if present, otherwise
// the current mode's canonical radius, clamped into [at canonical, farLimit].
//
// Returns:
//   - float32: the resolved radius
func (r *distanceResolver) Resolve() float32 {
	return common.Clamp(r.raw(), r.canonical[DistanceAt], r.farLimit)
}

// Cycle advances to the next discrete mode, discarding any override.
//
// Returns:
//   - DistanceMode: the new mode
func (r *distanceResolver) Cycle() DistanceMode {
	next := r.state.label().next()
	r.state = fixedDistance{mode: next}
	return next
}

// Set jumps to an explicit mode, discarding any override.
//
// Parameters:
//   - m: the requested mode
//
// Returns:
//   - bool: true if the label changed
func (r *distanceResolver) Set(m DistanceMode) bool {
	changed := r.state.label() != m
	r.state = fixedDistance{mode: m}
	return changed
}

// BeginOverride seeds the continuous override with the given radius, keeping
// the current label. No-op if an override is already live, so a pinch that
// re-forms without an intervening cycle keeps its radius.
//
// Parameters:
//   - radius: the seed radius, clamped into the valid range
func (r *distanceResolver) BeginOverride(radius float32) {
	if r.Overridden() {
		return
	}
	r.state = overriddenDistance{
		mode:   r.state.label(),
		radius: common.Clamp(radius, r.canonical[DistanceAt], r.farLimit),
	}
}

// SetOverride replaces the override radius unconditionally, keeping the
// current label. Used when re-targeting derives a continuous radius from the
// existing camera position.
//
// Parameters:
//   - radius: the new override radius, clamped into the valid range
func (r *distanceResolver) SetOverride(radius float32) {
	r.state = overriddenDistance{
		mode:   r.state.label(),
		radius: common.Clamp(radius, r.canonical[DistanceAt], r.farLimit),
	}
}

// AdjustOverride moves the override radius by a pinch distance delta. A
// shrinking pinch (negative delta) backs the camera away; a growing pinch
// pulls it in. No-op when no override is live.
//
// Parameters:
//   - pinchDelta: change of the two-pointer distance in pixels
//   - zoomSpeed: world units of radius per pixel of pinch
func (r *distanceResolver) AdjustOverride(pinchDelta, zoomSpeed float32) {
	o, ok := r.state.(overriddenDistance)
	if !ok {
		return
	}
	o.radius = common.Clamp(o.radius-pinchDelta*zoomSpeed, r.canonical[DistanceAt], r.farLimit)
	r.state = o
}

// SnapLabel re-labels a live override with whichever mode's canonical radius
// is nearest the override value, by absolute difference; ties go to the
// first enumerated mode. The radius itself is preserved exactly — only the
// advisory label moves.
//
// Returns:
//   - DistanceMode: the resulting label
//   - bool: true if the label changed
func (r *distanceResolver) SnapLabel() (DistanceMode, bool) {
	o, ok := r.state.(overriddenDistance)
	if !ok {
		return r.state.label(), false
	}

	best := DistanceAt
	bestDiff := common.Abs(o.radius - r.canonical[DistanceAt])
	for m := DistanceAt + 1; m < distanceModeCount; m++ {
		if d := common.Abs(o.radius - r.canonical[m]); d < bestDiff {
			best = m
			bestDiff = d
		}
	}

	changed := o.mode != best
	o.mode = best
	r.state = o
	return best, changed
}

// SetFarLimit moves the dynamic radius ceiling. When the currently requested
// radius exceeds the new ceiling the camera is pulled in: the override is
// forced to the ceiling and the label to far.
//
// Parameters:
//   - limit: the new ceiling, clamped to at least the minimum radius
//
// Returns:
//   - bool: true if the camera was pulled in (callers notify on this)
func (r *distanceResolver) SetFarLimit(limit float32) bool {
	r.farLimit = max(limit, r.canonical[DistanceAt])
	if r.raw() <= r.farLimit {
		return false
	}
	r.state = overriddenDistance{mode: DistanceFar, radius: r.farLimit}
	return true
}

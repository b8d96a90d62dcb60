package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/orbit-go/common"
)

// Gesture identifies which input gesture is currently active.
type Gesture int

const (
	// GestureIdle means no pointers are down.
	GestureIdle Gesture = iota
	// GestureMouseDrag means the primary mouse button is held with exactly one mouse pointer.
	GestureMouseDrag
	// GestureTouchOrbit means exactly one touch contact is active.
	GestureTouchOrbit
	// GestureTouchPanPinch means two or more touch contacts are active; the
	// first two by arrival order drive the pan and pinch deltas.
	GestureTouchPanPinch
)

// String returns a short human-readable name for the gesture.
//
// Returns:
//   - string: the gesture name
func (g Gesture) String() string {
	switch g {
	case GestureMouseDrag:
		return "mouse-drag"
	case GestureTouchOrbit:
		return "touch-orbit"
	case GestureTouchPanPinch:
		return "touch-pan-pinch"
	default:
		return "idle"
	}
}

// Sample is the set of normalized deltas produced by one pointer-move event.
// At most one of Rotate or Pan/Pinch is populated, depending on the active
// gesture.
type Sample struct {
	// Rotate is the rotation delta in radians (sensitivity already applied).
	// X is the azimuth component, Y the polar component.
	Rotate mgl32.Vec2

	// Pan is the two-pointer midpoint movement in surface pixels since the
	// previous sample, already scaled down when a pinch is simultaneously
	// active.
	Pan mgl32.Vec2

	// Pinch is the change of the two-pointer distance in surface pixels
	// since the previous sample (incremental, not absolute).
	Pinch float32

	// PinchActive reports whether |Pinch| met the activity threshold, in
	// which case Pan was damped.
	PinchActive bool
}

// Transition describes the outcome of reclassifying the pointer set after it
// changed size.
type Transition struct {
	// From is the gesture that was active before reclassification.
	From Gesture

	// To is the gesture that is active after reclassification.
	To Gesture

	// SeedOverride is true when the pan/pinch gesture was just entered and
	// the continuous radius override should be seeded from the currently
	// resolved radius.
	SeedOverride bool
}

// Changed reports whether the transition switched gestures.
//
// Returns:
//   - bool: true if From differs from To
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Classifier decides which gesture is active from the tracked pointer set and
// turns raw move samples into normalized rotation/pan/pinch deltas.
//
// The classifier holds the pinch reference distance and pan reference
// midpoint for the pan/pinch gesture; both are snapshotted on entry and
// replaced after every sample so that tracking is incremental.
type Classifier struct {
	tracker *Tracker
	gesture Gesture

	pinchRefDist float32
	panRefMid    mgl32.Vec2

	// Tuning. Touch rotate sensitivity is deliberately far below the mouse
	// sensitivity: finger displacement on a touch surface is much larger
	// than the equivalent mouse movement for the same intent.
	mouseRotateSpeed     float32
	touchRotateSpeed     float32
	pinchActiveThreshold float32
	pinchPanDamping      float32
}

// ClassifierOption is a functional option for configuring a Classifier.
type ClassifierOption func(*Classifier)

// WithMouseRotateSpeed sets the rotation sensitivity for mouse drags, in
// radians per pixel.
//
// Parameters:
//   - speed: radians of rotation per pixel of drag
//
// Returns:
//   - ClassifierOption: option function to apply
func WithMouseRotateSpeed(speed float32) ClassifierOption {
	return func(c *Classifier) {
		c.mouseRotateSpeed = speed
	}
}

// WithTouchRotateSpeed sets the rotation sensitivity for single-touch drags,
// in radians per pixel.
//
// Parameters:
//   - speed: radians of rotation per pixel of drag
//
// Returns:
//   - ClassifierOption: option function to apply
func WithTouchRotateSpeed(speed float32) ClassifierOption {
	return func(c *Classifier) {
		c.touchRotateSpeed = speed
	}
}

// WithPinchActiveThreshold sets the minimum per-sample pinch distance change,
// in pixels, above which the pinch is considered active and pan is damped.
//
// Parameters:
//   - threshold: pinch activity threshold in pixels
//
// Returns:
//   - ClassifierOption: option function to apply
func WithPinchActiveThreshold(threshold float32) ClassifierOption {
	return func(c *Classifier) {
		c.pinchActiveThreshold = threshold
	}
}

// WithPinchPanDamping sets the factor applied to the pan delta while a pinch
// is active, so pinch intent wins over simultaneous pan jitter.
//
// Parameters:
//   - factor: pan scale factor in [0, 1] applied during an active pinch
//
// Returns:
//   - ClassifierOption: option function to apply
func WithPinchPanDamping(factor float32) ClassifierOption {
	return func(c *Classifier) {
		c.pinchPanDamping = factor
	}
}

// NewClassifier creates a Classifier over the given tracker with default
// tuning.
//
// Parameters:
//   - tracker: the pointer tracker whose set drives classification
//   - options: functional options to adjust sensitivities and thresholds
//
// Returns:
//   - *Classifier: the newly created classifier
func NewClassifier(tracker *Tracker, options ...ClassifierOption) *Classifier {
	c := &Classifier{
		tracker:              tracker,
		gesture:              GestureIdle,
		mouseRotateSpeed:     0.005,
		touchRotateSpeed:     0.0015,
		pinchActiveThreshold: 2.0,
		pinchPanDamping:      0.25,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Gesture returns the currently active gesture.
//
// Returns:
//   - Gesture: the active gesture
func (c *Classifier) Gesture() Gesture {
	return c.gesture
}

// Reclassify re-derives the active gesture from the tracked pointer set.
// Must be called whenever the set's size changes, since gesture semantics
// change discretely at the {0,1,2+} boundaries. Entering the pan/pinch
// gesture snapshots the pinch reference distance and the pan reference
// midpoint from the first two pointers by arrival order.
//
// Returns:
//   - Transition: the gesture transition that occurred (possibly unchanged)
func (c *Classifier) Reclassify() Transition {
	prev := c.gesture

	switch {
	case c.tracker.CountOf(DeviceTouch) >= 2:
		c.gesture = GestureTouchPanPinch
	case c.tracker.Count() == 1 && c.tracker.First().Device == DeviceMouse:
		c.gesture = GestureMouseDrag
	case c.tracker.Count() == 1:
		c.gesture = GestureTouchOrbit
	default:
		c.gesture = GestureIdle
	}

	tr := Transition{From: prev, To: c.gesture}
	if c.gesture == GestureTouchPanPinch && prev != GestureTouchPanPinch {
		a, b, ok := c.tracker.Pair()
		if ok {
			c.pinchRefDist = a.Current.Sub(b.Current).Len()
			c.panRefMid = a.Current.Add(b.Current).Mul(0.5)
			tr.SeedOverride = true
		}
	}
	return tr
}

// Reset forces the classifier back to idle without consulting the tracker.
// Pairs with Tracker.Clear on the abort path.
func (c *Classifier) Reset() {
	c.gesture = GestureIdle
}

// SampleMove feeds one pointer-move event through the tracker and derives
// the gesture deltas for it. Unknown pointer ids produce a zero sample.
//
// In the pan/pinch gesture the pinch delta is incremental: the reference
// distance is replaced with the current distance after every sample, so a
// pinch-in followed by an equal pinch-out sums to zero.
//
// Parameters:
//   - id: the moving pointer's identifier
//   - pos: the new position in surface pixels
//
// Returns:
//   - Sample: the normalized deltas for this move event
func (c *Classifier) SampleMove(id PointerID, pos mgl32.Vec2) Sample {
	if !c.tracker.Move(id, pos) {
		return Sample{}
	}

	var s Sample
	switch c.gesture {
	case GestureMouseDrag:
		rec, _ := c.tracker.Get(id)
		s.Rotate = rec.Current.Sub(rec.Previous).Mul(c.mouseRotateSpeed)

	case GestureTouchOrbit:
		rec, _ := c.tracker.Get(id)
		s.Rotate = rec.Current.Sub(rec.Previous).Mul(c.touchRotateSpeed)

	case GestureTouchPanPinch:
		a, b, ok := c.tracker.Pair()
		if !ok {
			return Sample{}
		}
		dist := a.Current.Sub(b.Current).Len()
		s.Pinch = dist - c.pinchRefDist
		c.pinchRefDist = dist

		mid := a.Current.Add(b.Current).Mul(0.5)
		s.Pan = mid.Sub(c.panRefMid)
		c.panRefMid = mid

		if common.Abs(s.Pinch) >= c.pinchActiveThreshold {
			s.PinchActive = true
			s.Pan = s.Pan.Mul(c.pinchPanDamping)
		}
	}
	return s
}

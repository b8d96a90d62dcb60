package camera

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/orbit-go/common"
	"github.com/Carmen-Shannon/orbit-go/engine/config"
	"github.com/Carmen-Shannon/orbit-go/engine/event"
	"github.com/Carmen-Shannon/orbit-go/engine/input"
	"github.com/Carmen-Shannon/orbit-go/engine/save"
)

// orbitControllerImpl is the single implementation of OrbitController.
//
// Input callbacks may arrive between frame ticks (the window polls on the
// main thread, the tick runs on the engine goroutine); they only mutate
// pointer records, pending deltas, and the distance state. Update is the
// sole writer of the integrated azimuth/polar/radius and the applied pose,
// so a partially integrated pose can never be observed.
type orbitControllerImpl struct {
	mu *sync.Mutex

	cfg *config.Config

	// Orbit state. Pending deltas decay geometrically each frame, giving a
	// brief glide after a drag ends rather than an instant stop.
	target         mgl32.Vec3
	azimuth        float32
	polar          float32
	pendingAzimuth float32
	pendingPolar   float32

	// Derived each Update.
	radius   float32
	position mgl32.Vec3

	// Idle auto-rotate bookkeeping. dragging covers the whole span of a
	// gesture, including frames where no move sample arrives.
	idleTime float32
	dragging bool

	// lastCycle anchors the wheel cooldown window.
	lastCycle time.Time

	initialMode DistanceMode

	tracker    *input.Tracker
	classifier *input.Classifier
	distance   *distanceResolver

	store save.Store
	bus   *event.Bus
	src   input.Source

	// queued collects events while the mutex is held; they are published
	// after unlock so handlers may safely re-enter the controller.
	queued []event.Event
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller with default tuning. When a
// save store is supplied, the last persisted camera position and distance
// mode are restored at construction: angles are re-derived from the stored
// position, and the radius snaps back to the restored mode's canonical value
// (the pinch override is transient and never persisted).
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	c := &orbitControllerImpl{
		mu:          &sync.Mutex{},
		cfg:         config.DefaultConfig(),
		target:      mgl32.Vec3{0, 0, 0},
		azimuth:     0,
		polar:       float32(math.Pi / 3),
		initialMode: DistanceNear,
	}

	for _, option := range options {
		option(c)
	}

	cam := c.cfg.Camera
	c.distance = newDistanceResolver(cam.AtRadius, cam.NearRadius, cam.FarRadius, cam.FarLimit, c.initialMode)
	c.tracker = input.NewTracker()
	c.classifier = input.NewClassifier(c.tracker,
		input.WithMouseRotateSpeed(c.cfg.Input.MouseRotateSpeed),
		input.WithTouchRotateSpeed(c.cfg.Input.TouchRotateSpeed),
		input.WithPinchActiveThreshold(c.cfg.Input.PinchActiveThreshold),
		input.WithPinchPanDamping(c.cfg.Input.PinchPanDamping),
	)

	c.restore()
	c.polar = c.clampPolar(c.polar)
	c.radius = c.distance.Resolve()
	c.updatePositionLocked()
	return c
}

// --- internal helpers ---

// restore pulls the last persisted state from the save store. The store
// guarantees a usable default; an unrecognized mode label simply leaves the
// configured initial mode in place.
func (c *orbitControllerImpl) restore() {
	if c.store == nil {
		return
	}
	st := c.store.Get()
	if m, ok := ParseDistanceMode(st.DistanceMode); ok {
		c.distance.Set(m)
	}
	pos := mgl32.Vec3{st.Camera.X, st.Camera.Y, st.Camera.Z}
	c.deriveFromPosition(pos)
}

// deriveFromPosition re-derives azimuth and polar from a world-space camera
// position relative to the current target. Degenerate offsets (camera on the
// target) keep the existing angles.
//
// Parameters:
//   - pos: world-space camera position
//
// Returns:
//   - float32: the offset length (0 when degenerate)
func (c *orbitControllerImpl) deriveFromPosition(pos mgl32.Vec3) float32 {
	offset := pos.Sub(c.target)
	r := offset.Len()
	if r < 1e-6 {
		return 0
	}
	c.polar = c.clampPolar(float32(math.Acos(float64(common.Clamp(offset.Y()/r, -1, 1)))))
	c.azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	return r
}

// clampPolar keeps the polar angle off the poles so the view never flips.
func (c *orbitControllerImpl) clampPolar(polar float32) float32 {
	eps := c.cfg.Camera.PolarEpsilon
	return common.Clamp(polar, eps, float32(math.Pi)-eps)
}

// updatePositionLocked recomputes the camera position from spherical
// coordinates. Caller must hold the mutex.
func (c *orbitControllerImpl) updatePositionLocked() {
	sinA, cosA := math.Sincos(float64(c.azimuth))
	sinP, cosP := math.Sincos(float64(c.polar))
	dir := mgl32.Vec3{
		float32(sinP * sinA),
		float32(cosP),
		float32(sinP * cosA),
	}
	c.position = c.target.Add(dir.Mul(c.radius))
}

// localAxes returns the camera's right and up axes derived from the current
// spherical angles. Well-defined because polar is clamped off the poles.
// Caller must hold the mutex.
func (c *orbitControllerImpl) localAxes() (right, up mgl32.Vec3) {
	sinA, cosA := math.Sincos(float64(c.azimuth))
	sinP, cosP := math.Sincos(float64(c.polar))
	backward := mgl32.Vec3{
		float32(sinP * sinA),
		float32(cosP),
		float32(sinP * cosA),
	}
	right = mgl32.Vec3{0, 1, 0}.Cross(backward).Normalize()
	up = backward.Cross(right).Normalize()
	return right, up
}

// reclassifyLocked re-derives the active gesture after the pointer set
// changed size. Any gesture entry resets the idle timer; entering pan/pinch
// seeds the radius override from the currently resolved radius. Caller must
// hold the mutex.
func (c *orbitControllerImpl) reclassifyLocked() {
	tr := c.classifier.Reclassify()
	if tr.To != input.GestureIdle {
		c.idleTime = 0
		c.dragging = true
	}
	if tr.SeedOverride {
		c.distance.BeginOverride(c.distance.Resolve())
	}
}

// endGestureLocked runs when the pointer count returns to zero. If a pinch
// override is live, the mode label snaps to the nearest canonical radius;
// the radius itself stays exactly at the override value. Caller must hold
// the mutex.
func (c *orbitControllerImpl) endGestureLocked() {
	c.dragging = false
	if !c.distance.Overridden() {
		return
	}
	if m, changed := c.distance.SnapLabel(); changed {
		c.queueMode(m)
		c.persistLocked()
	}
}

// releaseLocked removes one pointer and reconciles gesture state. Shared by
// PointerUp and PointerCancel. Caller must hold the mutex.
func (c *orbitControllerImpl) releaseLocked(id input.PointerID) {
	if !c.tracker.Release(id) {
		return
	}
	if c.src != nil {
		c.src.ReleasePointer(id)
	}
	c.reclassifyLocked()
	if c.tracker.Count() == 0 {
		c.endGestureLocked()
	}
}

// panLocked translates the orbit target along the camera's local right/up
// axes and queues the pan notification. Caller must hold the mutex.
func (c *orbitControllerImpl) panLocked(pan mgl32.Vec2) {
	right, up := c.localAxes()
	speed := c.cfg.Input.PanSpeed
	offset := right.Mul(-pan.X() * speed).Add(up.Mul(pan.Y() * speed))
	c.target = c.target.Add(offset)
	c.queue(event.Event{
		Type:    event.PanChanged,
		Payload: PanChangedPayload{X: c.target.X(), Y: c.target.Y(), Z: c.target.Z()},
	})
}

// cycleLocked advances the discrete distance mode and notifies. Caller must
// hold the mutex.
func (c *orbitControllerImpl) cycleLocked() {
	m := c.distance.Cycle()
	c.idleTime = 0
	c.lastCycle = time.Now()
	c.queueMode(m)
	c.persistLocked()
}

// persistLocked writes the current pose and mode label into the save draft.
// The store owns flush timing. A panicking store must never break the
// interactive loop, so failures are logged and swallowed. Caller must hold
// the mutex.
func (c *orbitControllerImpl) persistLocked() {
	if c.store == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("camera state save failed: %v", r)
		}
	}()
	x, y, z := c.position.X(), c.position.Y(), c.position.Z()
	mode := c.distance.Mode().String()
	c.store.Update(func(s *save.State) {
		s.Camera = save.Position{X: x, Y: y, Z: z}
		s.DistanceMode = mode
	})
}

// queue collects an event for publication after the mutex is released.
func (c *orbitControllerImpl) queue(e event.Event) {
	c.queued = append(c.queued, e)
}

func (c *orbitControllerImpl) queueMode(m DistanceMode) {
	c.queue(event.Event{
		Type:    event.DistanceModeChanged,
		Payload: ModeChangedPayload{Mode: m},
	})
}

// takeQueuedLocked hands back the queued events for publication. Caller must
// hold the mutex.
func (c *orbitControllerImpl) takeQueuedLocked() []event.Event {
	evs := c.queued
	c.queued = nil
	return evs
}

// publish delivers queued events outside the mutex so handlers may re-enter
// the controller.
func (c *orbitControllerImpl) publish(evs []event.Event) {
	if c.bus == nil {
		return
	}
	for _, e := range evs {
		c.bus.Publish(e)
	}
}

// --- pose accessors ---

func (c *orbitControllerImpl) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position.X(), c.position.Y(), c.position.Z()
}

func (c *orbitControllerImpl) Target() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target.X(), c.target.Y(), c.target.Z()
}

func (c *orbitControllerImpl) Azimuth() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.azimuth
}

func (c *orbitControllerImpl) Polar() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polar
}

func (c *orbitControllerImpl) Radius() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radius
}

func (c *orbitControllerImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = mgl32.Vec3{x, y, z}
	if r := c.deriveFromPosition(c.position); r > 0 {
		// The existing camera position defines a continuous radius relative
		// to the new target; carry it as an override so the pose does not
		// jump. The label reconciles on the next snap or cycle.
		c.distance.SetOverride(r)
	}
	c.idleTime = 0
}

// --- distance operations ---

func (c *orbitControllerImpl) DistanceMode() DistanceMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance.Mode()
}

func (c *orbitControllerImpl) FarLimit() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance.FarLimit()
}

func (c *orbitControllerImpl) CycleDistance() {
	c.mu.Lock()
	c.cycleLocked()
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

func (c *orbitControllerImpl) SetDistanceMode(mode DistanceMode) {
	c.mu.Lock()
	if c.distance.Set(mode) {
		c.queueMode(mode)
	}
	c.idleTime = 0
	c.lastCycle = time.Now()
	c.persistLocked()
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

func (c *orbitControllerImpl) SetFarLimit(limit float32) {
	c.mu.Lock()
	if c.distance.SetFarLimit(limit) {
		c.queueMode(DistanceFar)
		c.persistLocked()
	}
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

// --- input entry points ---

func (c *orbitControllerImpl) PointerDown(id input.PointerID, x, y float32, device input.DeviceClass) {
	c.mu.Lock()
	if c.tracker.Down(id, mgl32.Vec2{x, y}, device) {
		if c.src != nil {
			if err := c.src.CapturePointer(id); err != nil {
				// Degraded but correct: events outside the surface bounds
				// may be missed for this pointer.
				log.Printf("pointer capture failed for %d: %v", id, err)
			}
		}
		c.reclassifyLocked()
	}
	c.mu.Unlock()
}

func (c *orbitControllerImpl) PointerMove(id input.PointerID, x, y float32) {
	c.mu.Lock()
	s := c.classifier.SampleMove(id, mgl32.Vec2{x, y})
	c.pendingAzimuth -= s.Rotate.X()
	c.pendingPolar -= s.Rotate.Y()
	if s.Pinch != 0 {
		c.distance.AdjustOverride(s.Pinch, c.cfg.Input.PinchZoomSpeed)
	}
	if s.Pan.X() != 0 || s.Pan.Y() != 0 {
		c.panLocked(s.Pan)
	}
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

func (c *orbitControllerImpl) PointerUp(id input.PointerID) {
	c.mu.Lock()
	c.releaseLocked(id)
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

func (c *orbitControllerImpl) PointerCancel(id input.PointerID) {
	c.mu.Lock()
	c.releaseLocked(id)
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

func (c *orbitControllerImpl) Wheel(delta float32) {
	c.mu.Lock()
	if common.Abs(delta) < c.cfg.Input.WheelThreshold {
		c.mu.Unlock()
		return
	}
	cooldown := time.Duration(c.cfg.Input.WheelCooldownMS) * time.Millisecond
	if time.Since(c.lastCycle) < cooldown {
		c.mu.Unlock()
		return
	}
	c.cycleLocked()
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

func (c *orbitControllerImpl) DoubleTap() {
	c.CycleDistance()
}

func (c *orbitControllerImpl) Abort() {
	c.mu.Lock()
	c.tracker.Clear()
	c.classifier.Reset()
	c.endGestureLocked()
	evs := c.takeQueuedLocked()
	c.mu.Unlock()
	c.publish(evs)
}

// --- lifecycle ---

func (c *orbitControllerImpl) Attach(src input.Source) func() {
	c.mu.Lock()
	c.src = src
	c.mu.Unlock()

	src.SetPointerDownCallback(c.PointerDown)
	src.SetPointerMoveCallback(c.PointerMove)
	src.SetPointerUpCallback(c.PointerUp)
	src.SetPointerCancelCallback(c.PointerCancel)
	src.SetScrollCallback(c.Wheel)
	src.SetDoubleClickCallback(c.DoubleTap)
	src.SetBlurCallback(c.Abort)

	var once sync.Once
	return func() {
		once.Do(func() {
			src.SetPointerDownCallback(nil)
			src.SetPointerMoveCallback(nil)
			src.SetPointerUpCallback(nil)
			src.SetPointerCancelCallback(nil)
			src.SetScrollCallback(nil)
			src.SetDoubleClickCallback(nil)
			src.SetBlurCallback(nil)
			c.mu.Lock()
			c.src = nil
			c.mu.Unlock()
			c.Abort()
		})
	}
}

func (c *orbitControllerImpl) Update(dt float32) {
	c.mu.Lock()

	// Integrate pending rotation and let it glide out.
	c.azimuth += c.pendingAzimuth
	c.polar = c.clampPolar(c.polar + c.pendingPolar)
	damping := c.cfg.Camera.RotateDamping
	c.pendingAzimuth *= damping
	c.pendingPolar *= damping

	// Idle auto-rotate is mutually exclusive with any active gesture.
	if c.tracker.Count() == 0 && !c.dragging {
		c.idleTime += dt
		if c.idleTime >= float32(c.cfg.Camera.AutoRotateDelayMS)/1000 {
			c.azimuth += c.cfg.Camera.AutoRotateSpeed * dt
		}
	} else {
		c.idleTime = 0
	}

	c.radius = c.distance.Resolve()
	c.updatePositionLocked()
	c.persistLocked()

	c.mu.Unlock()
}

package camera

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/orbit-go/common"
	"github.com/Carmen-Shannon/orbit-go/engine/config"
	"github.com/Carmen-Shannon/orbit-go/engine/event"
	"github.com/Carmen-Shannon/orbit-go/engine/input"
	"github.com/Carmen-Shannon/orbit-go/engine/save"
)

func approx(a, b, eps float32) bool {
	return common.Abs(a-b) <= eps
}

func TestControllerDefaults(t *testing.T) {
	c := NewOrbitController()

	if c.DistanceMode() != DistanceNear {
		t.Errorf("expected default mode near, got %s", c.DistanceMode())
	}
	c.Update(0.016)
	if got := c.Radius(); got != 50 {
		t.Errorf("expected near canonical radius 50, got %v", got)
	}

	// polar pi/3, azimuth 0 places the camera up and back along +z.
	x, y, z := c.Position()
	if !approx(x, 0, 1e-4) || !approx(y, 25, 1e-3) || !approx(z, 43.301, 1e-2) {
		t.Errorf("unexpected default position (%v, %v, %v)", x, y, z)
	}
}

func TestMouseDragRotates(t *testing.T) {
	c := NewOrbitController()
	a0 := c.Azimuth()

	c.PointerDown(input.MousePointerID, 100, 100, input.DeviceMouse)
	c.PointerMove(input.MousePointerID, 140, 100)
	c.Update(0.016)

	// 40px at 0.005 rad/px, applied opposite to the drag direction.
	if got := c.Azimuth(); !approx(got, a0-0.2, 1e-4) {
		t.Errorf("expected azimuth %v, got %v", a0-0.2, got)
	}
}

func TestRotationGlidesAfterRelease(t *testing.T) {
	c := NewOrbitController()

	c.PointerDown(input.MousePointerID, 100, 100, input.DeviceMouse)
	c.PointerMove(input.MousePointerID, 140, 100)
	c.PointerUp(input.MousePointerID)

	c.Update(0.016)
	first := c.Azimuth()
	c.Update(0.016)
	second := c.Azimuth()

	carried := second - first
	if carried == 0 {
		t.Fatal("expected residual rotation on the frame after release")
	}
	// The residual is the damped remainder of the first frame's delta.
	if !approx(carried, (first-0)*0.85, 1e-4) {
		t.Errorf("expected glide %v, got %v", first*0.85, carried)
	}
}

func TestPolarClampedOffPoles(t *testing.T) {
	c := NewOrbitController()

	c.PointerDown(input.MousePointerID, 0, 0, input.DeviceMouse)
	c.PointerMove(input.MousePointerID, 0, 100000)
	for i := 0; i < 10; i++ {
		c.Update(0.016)
	}

	eps := config.DefaultConfig().Camera.PolarEpsilon
	if got := c.Polar(); !approx(got, eps, 1e-4) {
		t.Errorf("expected polar clamped to %v, got %v", eps, got)
	}

	c.PointerMove(input.MousePointerID, 0, -200000)
	for i := 0; i < 10; i++ {
		c.Update(0.016)
	}
	if got := c.Polar(); !approx(got, float32(math.Pi)-eps, 1e-4) {
		t.Errorf("expected polar clamped to %v, got %v", float32(math.Pi)-eps, got)
	}
}

func TestPinchAdjustsRadiusSymmetrically(t *testing.T) {
	c := NewOrbitController()

	c.PointerDown(1, 0, 0, input.DeviceTouch)
	c.PointerDown(2, 200, 0, input.DeviceTouch)

	// Fingers close by 100px: the camera backs away.
	c.PointerMove(2, 100, 0)
	c.Update(0.016)
	if got := c.Radius(); !approx(got, 57.9, 1e-3) {
		t.Errorf("expected radius 57.9 after pinch-in, got %v", got)
	}

	// The inverse spread returns exactly to the seed radius.
	c.PointerMove(2, 200, 0)
	c.Update(0.016)
	if got := c.Radius(); !approx(got, 50, 1e-3) {
		t.Errorf("expected radius 50 after pinch-out, got %v", got)
	}
}

func TestPinchEndSnapsLabelKeepsRadius(t *testing.T) {
	bus := event.NewBus()
	var modes []DistanceMode
	bus.Subscribe(event.DistanceModeChanged, func(e event.Event) {
		modes = append(modes, e.Payload.(ModeChangedPayload).Mode)
	})

	c := NewOrbitController(WithBus(bus))

	c.PointerDown(1, 0, 0, input.DeviceTouch)
	c.PointerDown(2, 3000, 0, input.DeviceTouch)
	// Close by 2600px: radius moves from 50 to 255.4, nearest far.
	c.PointerMove(2, 400, 0)
	c.PointerUp(1)
	c.PointerUp(2)
	c.Update(0.016)

	if c.DistanceMode() != DistanceFar {
		t.Errorf("expected snap to far, got %s", c.DistanceMode())
	}
	if got := c.Radius(); !approx(got, 255.4, 1e-2) {
		t.Errorf("expected radius preserved at 255.4, got %v", got)
	}
	if len(modes) != 1 || modes[0] != DistanceFar {
		t.Errorf("expected one far notification, got %v", modes)
	}
}

func TestPanMovesTargetAndNotifies(t *testing.T) {
	bus := event.NewBus()
	var pans []PanChangedPayload
	bus.Subscribe(event.PanChanged, func(e event.Event) {
		pans = append(pans, e.Payload.(PanChangedPayload))
	})

	c := NewOrbitController(WithBus(bus))
	tx0, _, _ := c.Target()

	c.PointerDown(1, 100, 100, input.DeviceTouch)
	c.PointerDown(2, 200, 100, input.DeviceTouch)
	// Translate both contacts together in sub-threshold steps.
	c.PointerMove(1, 101, 100)
	c.PointerMove(2, 201, 100)
	c.Update(0.016)

	if len(pans) == 0 {
		t.Fatal("expected pan notifications")
	}
	tx, _, _ := c.Target()
	if tx == tx0 {
		t.Error("expected the orbit target to move")
	}
	last := pans[len(pans)-1]
	if last.X != tx {
		t.Errorf("expected last pan payload x %v to match target, got %v", tx, last.X)
	}
}

func TestWheelThresholdAndCooldown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Input.WheelCooldownMS = 30
	c := NewOrbitController(WithConfig(cfg))

	c.Wheel(1.0)
	if c.DistanceMode() != DistanceNear {
		t.Errorf("sub-threshold wheel must not cycle, got %s", c.DistanceMode())
	}

	c.Wheel(3.0)
	if c.DistanceMode() != DistanceAt {
		t.Errorf("expected cycle to at, got %s", c.DistanceMode())
	}

	c.Wheel(3.0)
	if c.DistanceMode() != DistanceAt {
		t.Errorf("wheel inside cooldown must not cycle, got %s", c.DistanceMode())
	}

	time.Sleep(40 * time.Millisecond)
	c.Wheel(-3.0)
	if c.DistanceMode() != DistanceFar {
		t.Errorf("expected cycle to far after cooldown, got %s", c.DistanceMode())
	}
}

func TestDoubleTapCycles(t *testing.T) {
	c := NewOrbitController()
	c.DoubleTap()
	if c.DistanceMode() != DistanceAt {
		t.Errorf("expected double tap to cycle near to at, got %s", c.DistanceMode())
	}
}

func TestCycleNotifies(t *testing.T) {
	bus := event.NewBus()
	var modes []DistanceMode
	bus.Subscribe(event.DistanceModeChanged, func(e event.Event) {
		modes = append(modes, e.Payload.(ModeChangedPayload).Mode)
	})

	c := NewOrbitController(WithBus(bus))
	c.CycleDistance()
	c.CycleDistance()
	c.CycleDistance()

	want := []DistanceMode{DistanceAt, DistanceFar, DistanceNear}
	if len(modes) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(modes))
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("notification %d: expected %s, got %s", i, want[i], modes[i])
		}
	}
}

func TestIdleAutoRotate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Camera.AutoRotateDelayMS = 100
	cfg.Camera.AutoRotateSpeed = 1.0
	c := NewOrbitController(WithConfig(cfg))

	c.Update(0.2)
	if got := c.Azimuth(); !approx(got, 0.2, 1e-4) {
		t.Errorf("expected auto-rotate by 0.2 rad, got %v", got)
	}

	// Any gesture suspends auto-rotation and resets the idle clock.
	c.PointerDown(input.MousePointerID, 0, 0, input.DeviceMouse)
	before := c.Azimuth()
	c.Update(0.2)
	if got := c.Azimuth(); got != before {
		t.Errorf("expected no auto-rotate while dragging, got delta %v", got-before)
	}
}

func TestSetFarLimitNotifiesOnce(t *testing.T) {
	bus := event.NewBus()
	var modes []DistanceMode
	bus.Subscribe(event.DistanceModeChanged, func(e event.Event) {
		modes = append(modes, e.Payload.(ModeChangedPayload).Mode)
	})

	c := NewOrbitController(WithBus(bus), WithDistanceMode(DistanceFar))
	c.SetFarLimit(120)
	c.Update(0.016)

	if got := c.Radius(); got != 120 {
		t.Errorf("expected radius exactly at the limit 120, got %v", got)
	}
	if c.DistanceMode() != DistanceFar {
		t.Errorf("expected mode far, got %s", c.DistanceMode())
	}
	if len(modes) != 1 || modes[0] != DistanceFar {
		t.Errorf("expected exactly one far notification, got %v", modes)
	}

	// A second limit with headroom stays silent.
	c.SetFarLimit(500)
	if len(modes) != 1 {
		t.Errorf("expected no further notifications, got %v", modes)
	}
}

func TestSetTargetKeepsPoseContinuous(t *testing.T) {
	c := NewOrbitController()
	c.Update(0.016)
	x0, y0, z0 := c.Position()
	mode := c.DistanceMode()

	c.SetTarget(10, 0, 0)
	c.Update(0.016)

	x, y, z := c.Position()
	if !approx(x, x0, 1e-2) || !approx(y, y0, 1e-2) || !approx(z, z0, 1e-2) {
		t.Errorf("expected position carried across re-target, got (%v, %v, %v) want (%v, %v, %v)", x, y, z, x0, y0, z0)
	}
	if c.DistanceMode() != mode {
		t.Errorf("expected label unchanged across re-target, got %s", c.DistanceMode())
	}
}

func TestAbortClearsGesture(t *testing.T) {
	c := NewOrbitController()

	c.PointerDown(1, 0, 0, input.DeviceTouch)
	c.PointerDown(2, 200, 0, input.DeviceTouch)
	c.PointerMove(2, 100, 0)
	c.Abort()
	c.Update(0.016)

	// The override survives the abort with a snapped label; a fresh pointer
	// starts a brand new gesture.
	if got := c.Radius(); !approx(got, 57.9, 1e-3) {
		t.Errorf("expected radius preserved across abort, got %v", got)
	}
	c.PointerDown(1, 0, 0, input.DeviceTouch)
	c.PointerUp(1)
}

func TestPersistenceDraftsOnUpdate(t *testing.T) {
	store := save.NewMemoryStore()
	c := NewOrbitController(WithStore(store))

	c.CycleDistance()
	c.Update(0.016)

	st := store.Get()
	if st.DistanceMode != "at" {
		t.Errorf("expected persisted mode at, got %q", st.DistanceMode)
	}
	x, y, z := c.Position()
	if st.Camera.X != x || st.Camera.Y != y || st.Camera.Z != z {
		t.Errorf("expected persisted position (%v, %v, %v), got %+v", x, y, z, st.Camera)
	}
}

func TestRestoreFromStore(t *testing.T) {
	store := save.NewMemoryStore()
	store.Update(func(s *save.State) {
		s.Camera = save.Position{X: 100, Y: 0, Z: 0}
		s.DistanceMode = "far"
	})

	c := NewOrbitController(WithStore(store))
	c.Update(0.016)

	if c.DistanceMode() != DistanceFar {
		t.Errorf("expected restored mode far, got %s", c.DistanceMode())
	}
	// Angles come from the stored position; the radius snaps to the restored
	// mode's canonical value, not the stored offset length.
	if got := c.Radius(); got != 300 {
		t.Errorf("expected canonical far radius 300, got %v", got)
	}
	if got := c.Azimuth(); !approx(got, float32(math.Pi/2), 1e-4) {
		t.Errorf("expected azimuth pi/2, got %v", got)
	}
	if got := c.Polar(); !approx(got, float32(math.Pi/2), 1e-4) {
		t.Errorf("expected polar pi/2, got %v", got)
	}
}

func TestRestoreBadModeFallsBack(t *testing.T) {
	store := save.NewMemoryStore()
	store.Update(func(s *save.State) {
		s.DistanceMode = "corrupt"
	})

	c := NewOrbitController(WithStore(store))
	if c.DistanceMode() != DistanceNear {
		t.Errorf("expected default mode near for a corrupt label, got %s", c.DistanceMode())
	}
}

// fakeSource is a hand-driven input.Source for attachment tests.
type fakeSource struct {
	onDown   func(id input.PointerID, x, y float32, device input.DeviceClass)
	onMove   func(id input.PointerID, x, y float32)
	onUp     func(id input.PointerID)
	onCancel func(id input.PointerID)
	onScroll func(delta float32)
	onDouble func()
	onBlur   func()

	captured map[input.PointerID]bool
}

var _ input.Source = &fakeSource{}

func newFakeSource() *fakeSource {
	return &fakeSource{captured: make(map[input.PointerID]bool)}
}

func (f *fakeSource) SetPointerDownCallback(cb func(id input.PointerID, x, y float32, device input.DeviceClass)) {
	f.onDown = cb
}
func (f *fakeSource) SetPointerMoveCallback(cb func(id input.PointerID, x, y float32)) { f.onMove = cb }
func (f *fakeSource) SetPointerUpCallback(cb func(id input.PointerID))                 { f.onUp = cb }
func (f *fakeSource) SetPointerCancelCallback(cb func(id input.PointerID))             { f.onCancel = cb }
func (f *fakeSource) SetScrollCallback(cb func(delta float32))                         { f.onScroll = cb }
func (f *fakeSource) SetDoubleClickCallback(cb func())                                 { f.onDouble = cb }
func (f *fakeSource) SetBlurCallback(cb func())                                        { f.onBlur = cb }

func (f *fakeSource) CapturePointer(id input.PointerID) error {
	f.captured[id] = true
	return nil
}

func (f *fakeSource) ReleasePointer(id input.PointerID) {
	delete(f.captured, id)
}

func TestAttachRoutesEvents(t *testing.T) {
	src := newFakeSource()
	c := NewOrbitController()

	detach := c.Attach(src)

	src.onDown(1, 100, 100, input.DeviceTouch)
	if !src.captured[1] {
		t.Error("expected pointer 1 to be captured on down")
	}
	src.onMove(1, 200, 100)
	c.Update(0.016)
	if c.Azimuth() == 0 {
		t.Error("expected attached move events to rotate the camera")
	}
	src.onUp(1)
	if src.captured[1] {
		t.Error("expected pointer 1 to be released on up")
	}

	src.onScroll(5)
	if c.DistanceMode() != DistanceAt {
		t.Errorf("expected scroll to cycle, got %s", c.DistanceMode())
	}

	detach()
	if src.onDown != nil || src.onScroll != nil || src.onBlur != nil {
		t.Error("expected detach to clear all callbacks")
	}
	// Detaching twice is safe.
	detach()
}

func TestBlurAbortsGesture(t *testing.T) {
	src := newFakeSource()
	c := NewOrbitController()
	c.Attach(src)

	src.onDown(1, 0, 0, input.DeviceTouch)
	src.onDown(2, 200, 0, input.DeviceTouch)
	src.onMove(2, 100, 0)
	src.onBlur()
	c.Update(0.016)

	if got := c.Radius(); !approx(got, 57.9, 1e-3) {
		t.Errorf("expected pinch radius preserved across blur, got %v", got)
	}
}

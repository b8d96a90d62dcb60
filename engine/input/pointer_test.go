package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTrackerDownSeedsPrevious(t *testing.T) {
	tr := NewTracker()

	if !tr.Down(1, mgl32.Vec2{10, 20}, DeviceTouch) {
		t.Fatal("expected first down to be accepted")
	}

	rec, ok := tr.Get(1)
	if !ok {
		t.Fatal("expected pointer 1 to be tracked")
	}
	if rec.Previous != rec.Current {
		t.Errorf("expected previous seeded to current, got prev=%v cur=%v", rec.Previous, rec.Current)
	}
	if rec.Device != DeviceTouch {
		t.Errorf("expected touch device, got %v", rec.Device)
	}
}

func TestTrackerDuplicateDownIgnored(t *testing.T) {
	tr := NewTracker()

	tr.Down(1, mgl32.Vec2{10, 20}, DeviceTouch)
	if tr.Down(1, mgl32.Vec2{99, 99}, DeviceTouch) {
		t.Error("expected duplicate down to be rejected")
	}
	if tr.Count() != 1 {
		t.Errorf("expected count 1, got %d", tr.Count())
	}

	rec, _ := tr.Get(1)
	if rec.Current.X() != 10 {
		t.Errorf("duplicate down should not move the pointer, got %v", rec.Current)
	}
}

func TestTrackerCapacity(t *testing.T) {
	tr := NewTracker()

	for i := 0; i < MaxPointers; i++ {
		if !tr.Down(PointerID(i), mgl32.Vec2{float32(i), 0}, DeviceTouch) {
			t.Fatalf("expected pointer %d to be accepted", i)
		}
	}
	if tr.Down(PointerID(MaxPointers), mgl32.Vec2{0, 0}, DeviceTouch) {
		t.Error("expected down beyond capacity to be rejected")
	}
	if tr.Count() != MaxPointers {
		t.Errorf("expected count %d, got %d", MaxPointers, tr.Count())
	}
}

func TestTrackerMoveUnknownPointer(t *testing.T) {
	tr := NewTracker()

	if tr.Move(42, mgl32.Vec2{1, 1}) {
		t.Error("expected move of unknown pointer to be a no-op")
	}
}

func TestTrackerMoveUpdatesPrevious(t *testing.T) {
	tr := NewTracker()
	tr.Down(1, mgl32.Vec2{10, 10}, DeviceTouch)

	tr.Move(1, mgl32.Vec2{15, 10})
	rec, _ := tr.Get(1)
	if rec.Previous.X() != 10 || rec.Current.X() != 15 {
		t.Errorf("expected prev x=10 cur x=15, got prev=%v cur=%v", rec.Previous, rec.Current)
	}

	tr.Move(1, mgl32.Vec2{20, 10})
	rec, _ = tr.Get(1)
	if rec.Previous.X() != 15 || rec.Current.X() != 20 {
		t.Errorf("expected prev x=15 cur x=20, got prev=%v cur=%v", rec.Previous, rec.Current)
	}
}

func TestTrackerReleaseAndClear(t *testing.T) {
	tr := NewTracker()
	tr.Down(1, mgl32.Vec2{0, 0}, DeviceTouch)
	tr.Down(2, mgl32.Vec2{5, 5}, DeviceTouch)

	if !tr.Release(1) {
		t.Error("expected release of tracked pointer to succeed")
	}
	if tr.Release(1) {
		t.Error("expected double release to be a no-op")
	}
	if tr.Count() != 1 {
		t.Errorf("expected count 1 after release, got %d", tr.Count())
	}

	tr.Clear()
	if tr.Count() != 0 {
		t.Errorf("expected count 0 after clear, got %d", tr.Count())
	}
}

func TestTrackerPairArrivalOrder(t *testing.T) {
	tr := NewTracker()
	tr.Down(7, mgl32.Vec2{0, 0}, DeviceTouch)
	tr.Down(3, mgl32.Vec2{10, 0}, DeviceTouch)
	tr.Down(5, mgl32.Vec2{20, 0}, DeviceTouch)

	a, b, ok := tr.Pair()
	if !ok {
		t.Fatal("expected a pair with three pointers down")
	}
	if a.ID != 7 || b.ID != 3 {
		t.Errorf("expected first two by arrival (7, 3), got (%d, %d)", a.ID, b.ID)
	}

	// Releasing the first promotes the third into the pair.
	tr.Release(7)
	a, b, ok = tr.Pair()
	if !ok {
		t.Fatal("expected a pair with two pointers down")
	}
	if a.ID != 3 || b.ID != 5 {
		t.Errorf("expected pair (3, 5) after release, got (%d, %d)", a.ID, b.ID)
	}
}

func TestTrackerCountOf(t *testing.T) {
	tr := NewTracker()
	tr.Down(MousePointerID, mgl32.Vec2{0, 0}, DeviceMouse)
	tr.Down(1, mgl32.Vec2{0, 0}, DeviceTouch)
	tr.Down(2, mgl32.Vec2{0, 0}, DeviceTouch)

	if got := tr.CountOf(DeviceTouch); got != 2 {
		t.Errorf("expected 2 touch pointers, got %d", got)
	}
	if got := tr.CountOf(DeviceMouse); got != 1 {
		t.Errorf("expected 1 mouse pointer, got %d", got)
	}
}

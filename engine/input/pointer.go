package input

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointers is the capacity of the tracker's pointer table.
// Pointer 0 is reserved for the mouse; touch contacts use ids assigned by the
// input source.
const MaxPointers = 10

// MousePointerID is the well-known pointer id used for the single mouse cursor.
const MousePointerID PointerID = 0

// PointerID is an opaque identifier for one input point (mouse cursor or
// touch contact), assigned by the input source.
type PointerID int64

// DeviceClass distinguishes the kind of device a pointer originates from.
// Gesture semantics differ between classes: a single mouse pointer orbits
// only while its button is held, while touch contacts orbit or pan/pinch
// based on how many are active.
type DeviceClass int

const (
	// DeviceMouse is a mouse (or mouse-like) pointer.
	DeviceMouse DeviceClass = iota
	// DeviceTouch is a touch contact.
	DeviceTouch
)

// PointerRecord is the tracked state of one active pointer.
type PointerRecord struct {
	// ID is the pointer's opaque identifier.
	ID PointerID

	// Current is the most recent position in surface pixels.
	Current mgl32.Vec2

	// Previous is the position before the most recent move sample.
	Previous mgl32.Vec2

	// Device is the pointer's device class.
	Device DeviceClass
}

// Tracker maintains the set of currently active pointers in arrival order.
// Arrival order is significant: when more than two touch contacts are active,
// the first two by arrival drive the pan/pinch gesture.
//
// The tracker owns PointerRecords exclusively; records exist from Down until
// Release or Clear.
type Tracker struct {
	records []PointerRecord
}

// NewTracker creates an empty pointer tracker.
//
// Returns:
//   - *Tracker: the newly created tracker
func NewTracker() *Tracker {
	return &Tracker{
		records: make([]PointerRecord, 0, MaxPointers),
	}
}

// Down inserts a record for a newly pressed pointer. Both Current and
// Previous are seeded with pos so the first move sample produces a sane
// delta. A duplicate id or a full table is ignored.
//
// Parameters:
//   - id: the pointer's identifier
//   - pos: the press position in surface pixels
//   - device: the pointer's device class
//
// Returns:
//   - bool: true if a record was inserted
func (t *Tracker) Down(id PointerID, pos mgl32.Vec2, device DeviceClass) bool {
	if len(t.records) >= MaxPointers {
		return false
	}
	if _, ok := t.Get(id); ok {
		return false
	}
	t.records = append(t.records, PointerRecord{
		ID:       id,
		Current:  pos,
		Previous: pos,
		Device:   device,
	})
	return true
}

// Move updates a tracked pointer's position, shifting Current into Previous.
// Unknown ids are a no-op: the mouse cursor moves constantly while hovering
// and only matters while its button is held.
//
// Parameters:
//   - id: the pointer's identifier
//   - pos: the new position in surface pixels
//
// Returns:
//   - bool: true if a record was updated
func (t *Tracker) Move(id PointerID, pos mgl32.Vec2) bool {
	for i := range t.records {
		if t.records[i].ID == id {
			t.records[i].Previous = t.records[i].Current
			t.records[i].Current = pos
			return true
		}
	}
	return false
}

// Release removes a pointer's record, preserving the arrival order of the
// remaining pointers. Used for both pointer-up and pointer-cancel.
//
// Parameters:
//   - id: the pointer's identifier
//
// Returns:
//   - bool: true if a record was removed
func (t *Tracker) Release(id PointerID) bool {
	for i := range t.records {
		if t.records[i].ID == id {
			t.records = append(t.records[:i], t.records[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every record. This is the universal abort path for focus
// loss, context menus, and any other interruption of the input stream.
func (t *Tracker) Clear() {
	t.records = t.records[:0]
}

// Count returns the number of active pointers.
//
// Returns:
//   - int: the active pointer count
func (t *Tracker) Count() int {
	return len(t.records)
}

// CountOf returns the number of active pointers of one device class.
//
// Parameters:
//   - device: the device class to count
//
// Returns:
//   - int: the number of active pointers of that class
func (t *Tracker) CountOf(device DeviceClass) int {
	n := 0
	for i := range t.records {
		if t.records[i].Device == device {
			n++
		}
	}
	return n
}

// Get looks up a pointer's record by id.
//
// Parameters:
//   - id: the pointer's identifier
//
// Returns:
//   - *PointerRecord: the record, or nil if not tracked
//   - bool: true if the pointer is tracked
func (t *Tracker) Get(id PointerID) (*PointerRecord, bool) {
	for i := range t.records {
		if t.records[i].ID == id {
			return &t.records[i], true
		}
	}
	return nil, false
}

// First returns the earliest-arrived active pointer, or nil if none.
//
// Returns:
//   - *PointerRecord: the first pointer by arrival order, or nil
func (t *Tracker) First() *PointerRecord {
	if len(t.records) == 0 {
		return nil
	}
	return &t.records[0]
}

// Pair returns the first two active pointers by arrival order. These are the
// reference pointers for the pan/pinch gesture even when more contacts are
// down.
//
// Returns:
//   - *PointerRecord: the first pointer by arrival order
//   - *PointerRecord: the second pointer by arrival order
//   - bool: true if at least two pointers are active
func (t *Tracker) Pair() (*PointerRecord, *PointerRecord, bool) {
	if len(t.records) < 2 {
		return nil, nil, false
	}
	return &t.records[0], &t.records[1], true
}

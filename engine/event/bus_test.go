package event

import "testing"

func TestPublishReachesSubscribers(t *testing.T) {
	b := NewBus()

	var got []Event
	b.Subscribe(DistanceModeChanged, func(e Event) {
		got = append(got, e)
	})

	b.Publish(Event{Type: DistanceModeChanged, Payload: "near"})
	b.Publish(Event{Type: PanChanged, Payload: nil})

	if len(got) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(got))
	}
	if got[0].Payload != "near" {
		t.Errorf("unexpected payload %v", got[0].Payload)
	}
}

func TestMultipleSubscribers(t *testing.T) {
	b := NewBus()

	count := 0
	b.Subscribe(PanChanged, func(Event) { count++ })
	b.Subscribe(PanChanged, func(Event) { count++ })

	b.Publish(Event{Type: PanChanged})
	if count != 2 {
		t.Errorf("expected both subscribers to fire, got %d", count)
	}
}

func TestDisposerIsIdempotent(t *testing.T) {
	b := NewBus()

	count := 0
	dispose := b.Subscribe(PanChanged, func(Event) { count++ })

	b.Publish(Event{Type: PanChanged})
	dispose()
	dispose()
	b.Publish(Event{Type: PanChanged})

	if count != 1 {
		t.Errorf("expected 1 delivery after dispose, got %d", count)
	}
}

func TestHandlerMayResubscribe(t *testing.T) {
	b := NewBus()

	// Handlers run outside the bus lock, so subscribing from inside a
	// handler must not deadlock.
	fired := false
	b.Subscribe(DistanceModeChanged, func(Event) {
		b.Subscribe(PanChanged, func(Event) { fired = true })
	})

	b.Publish(Event{Type: DistanceModeChanged})
	b.Publish(Event{Type: PanChanged})

	if !fired {
		t.Error("expected handler registered from a handler to fire")
	}
}

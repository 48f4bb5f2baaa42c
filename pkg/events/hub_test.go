package events

import "testing"

func TestEventHubPublish(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Publish(PowerChanged, PowerChangedEvent{From: "ac", To: "battery", IsLaptop: true, Ts: 42})

	ev := <-ch
	if ev.Name != PowerChanged {
		t.Fatalf("event name = %q", ev.Name)
	}
	got, err := DecodeAs[PowerChangedEvent](ev)
	if err != nil {
		t.Fatalf("DecodeAs: %v", err)
	}
	if got.From != "ac" || got.To != "battery" || got.OnACPower || !got.IsLaptop || got.Ts != 42 {
		t.Errorf("payload = %+v", got)
	}
}

func TestEventHubDropsForSlowSubscriber(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()

	for i := 0; i < cap(ch)+5; i++ {
		h.Publish(PowerChanged, PowerChangedEvent{Ts: int64(i)})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered %d events, want %d", len(ch), cap(ch))
	}

	h.Unsubscribe(ch)
	for range ch {
	}
	// Unsubscribing twice must not panic on a closed channel.
	h.Unsubscribe(ch)
}

func TestNilHubPublish(t *testing.T) {
	var h *EventHub
	h.Publish(PowerChanged, nil)
}

func TestDecodeAsEmpty(t *testing.T) {
	got, err := DecodeAs[PowerChangedEvent](Event{Name: PowerChanged})
	if err != nil || got != (PowerChangedEvent{}) {
		t.Errorf("DecodeAs(empty) = %+v, %v", got, err)
	}
}

func TestEventHubReplaysLatestToNewSubscriber(t *testing.T) {
	h := NewEventHub()
	h.Publish(PowerChanged, PowerChangedEvent{From: "ac", To: "battery", Ts: 1})
	h.Publish(PowerChanged, PowerChangedEvent{From: "battery", To: "ac", OnACPower: true, Ts: 2})

	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	if len(ch) != 1 {
		t.Fatalf("replayed %d events, want 1", len(ch))
	}
	got, err := DecodeAs[PowerChangedEvent](<-ch)
	if err != nil {
		t.Fatal(err)
	}
	if got.Ts != 2 || got.To != "ac" || !got.OnACPower {
		t.Errorf("replayed event = %+v, want the latest one", got)
	}
}

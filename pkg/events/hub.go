package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

type EventHub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
	// last holds the most recent event of each name.
	last map[string]Event
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs: make(map[chan Event]struct{}),
		last: make(map[string]Event),
	}
}

// Subscribe returns a channel that first receives the latest event of
// each name, then everything published afterwards.
func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	for _, ev := range h.last {
		ch <- ev
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish sends payload to every subscriber. Slow subscribers miss it.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Errorf("failed to marshal %s event", name)
		return
	}
	msg := Event{Name: name, Data: b}
	h.mu.Lock()
	h.last[name] = msg
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			logrus.Debugf("dropping %s event for slow subscriber", name)
		}
	}
	h.mu.Unlock()
}

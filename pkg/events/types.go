package events

import "encoding/json"

// Event name constants
const (
	PowerChanged = "power.changed"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// PowerChangedEvent is the typed payload for power.changed.
type PowerChangedEvent struct {
	From      string `json:"from"`
	To        string `json:"to"`
	OnACPower bool   `json:"onACPower"`
	IsLaptop  bool   `json:"isLaptop"`
	Ts        int64  `json:"ts"`
}

// DecodeAs decodes the event payload into T. An empty payload gives the
// zero value of T.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}

package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charlie0129/powerstate/pkg/events"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// fakeInspector returns queued records, repeating the last one.
type fakeInspector struct {
	mu      sync.Mutex
	records []powerinfo.Record
	calls   int
}

func (f *fakeInspector) Inspect() *powerinfo.Record {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.calls
	if idx >= len(f.records) {
		idx = len(f.records) - 1
	}
	f.calls++
	rec := f.records[idx]
	return &rec
}

func (f *fakeInspector) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var (
	onACLaptop = powerinfo.Record{
		ACPowerLineStatus:    powerinfo.ACLineOnline,
		BatteryChargeStatus:  powerinfo.BatteryHigh | powerinfo.BatteryCharging,
		BatteryLifePercent:   0.9,
		BatteryLifeRemaining: -1,
		BatteryFullLifetime:  -1,
		IsUsingACPower:       true,
		IsLaptop:             true,
	}
	onBatteryLaptop = powerinfo.Record{
		ACPowerLineStatus:    powerinfo.ACLineOffline,
		BatteryChargeStatus:  powerinfo.BatteryHigh,
		BatteryLifePercent:   0.9,
		BatteryLifeRemaining: 7200,
		BatteryFullLifetime:  -1,
		IsUsingACPower:       false,
		IsLaptop:             true,
	}
)

func doGet(t *testing.T, d *Daemon, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	d.setupRoutes().ServeHTTP(w, req)
	return w
}

func TestGetPowerStatus(t *testing.T) {
	insp := &fakeInspector{records: []powerinfo.Record{onACLaptop}}
	d := New(insp, time.Minute)

	w := doGet(t, d, "/power-status")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body.String())
	}

	var got powerinfo.Record
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode body %s: %v", w.Body.String(), err)
	}
	if got.ACPowerLineStatus != onACLaptop.ACPowerLineStatus ||
		got.BatteryChargeStatus != onACLaptop.BatteryChargeStatus ||
		!got.IsUsingACPower || !got.IsLaptop {
		t.Errorf("record = %+v", got)
	}
}

func TestGetBooleans(t *testing.T) {
	insp := &fakeInspector{records: []powerinfo.Record{onBatteryLaptop}}
	d := New(insp, time.Minute)

	tests := []struct {
		path string
		want bool
	}{
		{"/ac-power", false},
		{"/laptop", true},
	}
	for _, tt := range tests {
		w := doGet(t, d, tt.path)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status code = %d", tt.path, w.Code)
		}
		var got bool
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("%s = %v, want %v", tt.path, got, tt.want)
		}
	}

	if insp.Calls() != 1 {
		t.Errorf("cached record should be reused, inspector called %d times", insp.Calls())
	}
}

func TestGetWithRefresh(t *testing.T) {
	insp := &fakeInspector{records: []powerinfo.Record{onACLaptop, onBatteryLaptop}}
	d := New(insp, time.Minute)
	d.Refresh()

	w := doGet(t, d, "/ac-power?refresh=true")
	if w.Body.String() != "false" {
		t.Errorf("refreshed ac-power = %s, want false", w.Body.String())
	}

	w = doGet(t, d, "/ac-power?refresh=maybe")
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid refresh value gave %d", w.Code)
	}
}

func TestGetVersion(t *testing.T) {
	d := New(&fakeInspector{records: []powerinfo.Record{onACLaptop}}, time.Minute)
	if w := doGet(t, d, "/version"); w.Code != http.StatusOK {
		t.Errorf("status code = %d", w.Code)
	}
}

func TestRefreshPublishesPowerChanges(t *testing.T) {
	insp := &fakeInspector{records: []powerinfo.Record{onACLaptop, onACLaptop, onBatteryLaptop}}
	d := New(insp, time.Minute)

	ch := d.Events().Subscribe()
	defer d.Events().Unsubscribe(ch)

	d.Refresh()
	d.Refresh()
	if len(ch) != 0 {
		t.Fatalf("no event expected while the source is unchanged")
	}

	d.Refresh()
	select {
	case ev := <-ch:
		got, err := events.DecodeAs[events.PowerChangedEvent](ev)
		if err != nil {
			t.Fatal(err)
		}
		if got.From != "ac" || got.To != "battery" || got.OnACPower || !got.IsLaptop {
			t.Errorf("event = %+v", got)
		}
	default:
		t.Fatalf("expected a power.changed event")
	}
}

func TestPollLoop(t *testing.T) {
	insp := &fakeInspector{records: []powerinfo.Record{onACLaptop}}
	d := New(insp, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.pollLoop(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for insp.Calls() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if insp.Calls() < 3 {
		t.Errorf("poll loop inspected %d times", insp.Calls())
	}
}

func TestPollLoopDisabled(t *testing.T) {
	insp := &fakeInspector{records: []powerinfo.Record{onACLaptop}}
	d := New(insp, 0)
	d.pollLoop(context.Background())
	if insp.Calls() != 0 {
		t.Errorf("disabled loop should not inspect")
	}
}

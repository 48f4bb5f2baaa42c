package daemon

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/events"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func (d *Daemon) pollLoop(ctx context.Context) {
	interval := d.interval
	if interval <= 0 {
		logrus.Warnf("poll interval %s is not positive, polling disabled", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case iv := <-d.intervalc:
			if iv <= 0 || iv == interval {
				continue
			}
			logrus.Infof("poll interval changed from %s to %s", interval, iv)
			interval = iv
			ticker.Reset(iv)
		case <-ticker.C:
			d.Refresh()
		}
	}
}

// SetPollInterval changes the interval of a running poll loop. Only the
// most recent value is kept if the loop has not picked up the previous one.
func (d *Daemon) SetPollInterval(iv time.Duration) {
	for {
		select {
		case d.intervalc <- iv:
			return
		default:
		}
		select {
		case <-d.intervalc:
		default:
		}
	}
}

// Refresh inspects the host, caches the record and publishes a
// power.changed event if the power source flipped since the last record.
func (d *Daemon) Refresh() *powerinfo.Record {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	rec := d.inspector.Inspect()

	d.mu.Lock()
	prev := d.latest
	d.latest = rec
	d.mu.Unlock()

	if prev != nil && prev.IsUsingACPower != rec.IsUsingACPower {
		logrus.WithFields(logrus.Fields{
			"from": powerSourceName(prev.IsUsingACPower),
			"to":   powerSourceName(rec.IsUsingACPower),
		}).Info("power source changed")

		d.hub.Publish(events.PowerChanged, events.PowerChangedEvent{
			From:      powerSourceName(prev.IsUsingACPower),
			To:        powerSourceName(rec.IsUsingACPower),
			OnACPower: rec.IsUsingACPower,
			IsLaptop:  rec.IsLaptop,
			Ts:        time.Now().Unix(),
		})
	}

	return rec
}

// Latest returns the cached record, inspecting the host if there is none.
func (d *Daemon) Latest() *powerinfo.Record {
	d.mu.RLock()
	rec := d.latest
	d.mu.RUnlock()

	if rec == nil {
		return d.Refresh()
	}
	return rec
}

func powerSourceName(onAC bool) string {
	if onAC {
		return "ac"
	}
	return "battery"
}

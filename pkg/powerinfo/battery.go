package powerinfo

import (
	"math"

	"github.com/distatus/battery"
)

const (
	highChargeThreshold     = 0.66
	lowChargeThreshold      = 0.33
	criticalChargeThreshold = 0.05
)

// FromBatteries aggregates the batteries reported by the OS into a single
// Status, deriving the flags the same way Windows does.
func FromBatteries(batteries []*battery.Battery) Status {
	ret := UnknownStatus()

	var current, full, rate float64
	var count, charging, discharging, fullBatteries int
	for _, bat := range batteries {
		if bat == nil {
			continue
		}
		count++

		capacity := bat.Full
		if capacity <= 0 {
			capacity = bat.Design
		}
		current += bat.Current
		full += capacity
		rate += math.Abs(bat.ChargeRate)

		switch bat.State {
		case battery.Charging:
			charging++
		case battery.Discharging:
			discharging++
		case battery.Full:
			fullBatteries++
		}
	}

	if count == 0 {
		ret.BatteryChargeStatus = BatteryNoSystemBattery
		return ret
	}

	if full <= 0 {
		// Batteries are present but report nothing useful.
		if charging > 0 || fullBatteries > 0 {
			ret.ACLineStatus = ACLineOnline
		}
		return ret
	}

	percent := current / full
	if percent > 1 {
		percent = 1
	}
	if percent < 0 {
		percent = 0
	}
	ret.BatteryLifePercent = percent

	var flags BatteryChargeStatus
	switch {
	case percent > highChargeThreshold:
		flags |= BatteryHigh
	case percent < criticalChargeThreshold:
		flags |= BatteryCritical
	case percent < lowChargeThreshold:
		flags |= BatteryLow
	}
	if charging > 0 {
		flags |= BatteryCharging
	}
	ret.BatteryChargeStatus = flags

	switch {
	case charging > 0 || fullBatteries > 0:
		ret.ACLineStatus = ACLineOnline
	case discharging == count:
		ret.ACLineStatus = ACLineOffline
		if rate > 0 {
			ret.BatteryLifeRemaining = int(current / rate * 3600)
			ret.BatteryFullLifetime = int(full / rate * 3600)
		}
	}

	return ret
}

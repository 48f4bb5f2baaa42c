package powerinfo

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ACLineStatus is the power source reported by the host.
type ACLineStatus uint8

const (
	// ACLineOffline indicates the host is running on battery.
	ACLineOffline ACLineStatus = 0
	// ACLineOnline indicates the host is on mains power.
	ACLineOnline ACLineStatus = 1
	// ACLineUnknown indicates the host could not tell.
	ACLineUnknown ACLineStatus = 255
)

func (s ACLineStatus) String() string {
	switch s {
	case ACLineOffline:
		return "Offline"
	case ACLineOnline:
		return "Online"
	default:
		return "Unknown"
	}
}

func (s ACLineStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ACLineStatus) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "offline":
		*s = ACLineOffline
	case "online":
		*s = ACLineOnline
	case "unknown":
		*s = ACLineUnknown
	default:
		return pkgerrors.Errorf("invalid AC line status %q", string(b))
	}
	return nil
}

// BatteryChargeStatus is a set of battery flags, laid out like the
// BatteryFlag member of the Win32 SYSTEM_POWER_STATUS structure.
type BatteryChargeStatus uint8

const (
	BatteryHigh            BatteryChargeStatus = 1
	BatteryLow             BatteryChargeStatus = 2
	BatteryCritical        BatteryChargeStatus = 4
	BatteryCharging        BatteryChargeStatus = 8
	BatteryNoSystemBattery BatteryChargeStatus = 128
	BatteryUnknown         BatteryChargeStatus = 255
)

var batteryFlagNames = []struct {
	flag BatteryChargeStatus
	name string
}{
	{BatteryHigh, "High"},
	{BatteryLow, "Low"},
	{BatteryCritical, "Critical"},
	{BatteryCharging, "Charging"},
	{BatteryNoSystemBattery, "NoSystemBattery"},
}

// IsMissingOrUnknown reports whether the status is exactly NoSystemBattery
// or Unknown. Battery percentages are not trustworthy in that case.
func (s BatteryChargeStatus) IsMissingOrUnknown() bool {
	return s == BatteryNoSystemBattery || s == BatteryUnknown
}

// Has reports whether all bits of flag are set.
func (s BatteryChargeStatus) Has(flag BatteryChargeStatus) bool {
	return flag != 0 && s&flag == flag
}

func (s BatteryChargeStatus) String() string {
	if s == BatteryUnknown {
		return "Unknown"
	}
	if s == 0 {
		// Windows reports 0 for a battery that is neither high, low nor critical.
		return "0"
	}

	var names []string
	rest := s
	for _, f := range batteryFlagNames {
		if s.Has(f.flag) {
			names = append(names, f.name)
			rest &^= f.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("%d", uint8(rest)))
	}
	return strings.Join(names, ", ")
}

func (s BatteryChargeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BatteryChargeStatus) UnmarshalText(b []byte) error {
	str := strings.TrimSpace(string(b))
	if strings.EqualFold(str, "unknown") {
		*s = BatteryUnknown
		return nil
	}

	var ret BatteryChargeStatus
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		found := false
		for _, f := range batteryFlagNames {
			if strings.EqualFold(part, f.name) {
				ret |= f.flag
				found = true
				break
			}
		}
		if found {
			continue
		}
		var n uint8
		if _, err := fmt.Sscanf(part, "%d", &n); err != nil {
			return pkgerrors.Errorf("invalid battery charge status %q", str)
		}
		ret |= BatteryChargeStatus(n)
	}
	*s = ret
	return nil
}

// Status is a point-in-time snapshot of the host power telemetry.
type Status struct {
	ACLineStatus        ACLineStatus
	BatteryChargeStatus BatteryChargeStatus
	// BatteryLifePercent is a fraction in [0, 1].
	BatteryLifePercent float64
	// BatteryLifeRemaining is in seconds, -1 if unknown.
	BatteryLifeRemaining int
	// BatteryFullLifetime is in seconds, -1 if unknown.
	BatteryFullLifetime int
}

// UnknownStatus is what we report when the host cannot be queried.
func UnknownStatus() Status {
	return Status{
		ACLineStatus:         ACLineUnknown,
		BatteryChargeStatus:  BatteryUnknown,
		BatteryLifePercent:   0,
		BatteryLifeRemaining: -1,
		BatteryFullLifetime:  -1,
	}
}

// Record is the power status record handed to callers. It is built once
// per inspection and never mutated afterwards.
type Record struct {
	ACPowerLineStatus    ACLineStatus        `json:"ACPowerLineStatus"`
	BatteryChargeStatus  BatteryChargeStatus `json:"BatteryChargeStatus"`
	BatteryLifePercent   float64             `json:"BatteryLifePercent"`
	BatteryLifeRemaining int                 `json:"BatteryLifeRemaining"`
	BatteryFullLifetime  int                 `json:"BatteryFullLifetime"`
	IsUsingACPower       bool                `json:"IsUsingACPower"`
	IsLaptop             bool                `json:"IsLaptop"`
	// ChassisTypes are the enclosure codes that were considered.
	ChassisTypes []ChassisType `json:"ChassisTypes,omitempty"`
}

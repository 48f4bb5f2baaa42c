package powerinfo

// SystemPowerStatus mirrors the Win32 SYSTEM_POWER_STATUS structure.
type SystemPowerStatus struct {
	ACLineStatus        byte
	BatteryFlag         byte
	BatteryLifePercent  byte
	SystemStatusFlag    byte
	BatteryLifeTime     uint32
	BatteryFullLifeTime uint32
}

const (
	win32UnknownPercent  = 255
	win32UnknownLifetime = 0xFFFFFFFF
)

// FromSystemPowerStatus converts the Win32 structure to a Status.
func FromSystemPowerStatus(s SystemPowerStatus) Status {
	ret := Status{
		BatteryChargeStatus:  BatteryChargeStatus(s.BatteryFlag),
		BatteryLifeRemaining: win32Lifetime(s.BatteryLifeTime),
		BatteryFullLifetime:  win32Lifetime(s.BatteryFullLifeTime),
	}

	switch s.ACLineStatus {
	case 0:
		ret.ACLineStatus = ACLineOffline
	case 1:
		ret.ACLineStatus = ACLineOnline
	default:
		ret.ACLineStatus = ACLineUnknown
	}

	if s.BatteryLifePercent != win32UnknownPercent {
		ret.BatteryLifePercent = float64(s.BatteryLifePercent) / 100
		if ret.BatteryLifePercent > 1 {
			ret.BatteryLifePercent = 1
		}
	}

	return ret
}

func win32Lifetime(v uint32) int {
	if v == win32UnknownLifetime {
		return -1
	}
	return int(v)
}

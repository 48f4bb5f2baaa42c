package powerinfo

import (
	"github.com/charlie0129/gosmc"
	"github.com/sirupsen/logrus"
)

// acPowerKey is the SMC key set while an adapter supplies power.
const acPowerKey = "AC-W"

// IOKit only reports a battery as discharging when no external power is
// connected, so a battery held at a charge limit (neither charging nor
// full) still means AC power.
const idleBatteryMeansAC = true

// hostACOnline reads the adapter state from the SMC.
func hostACOnline() (bool, bool) {
	conn := gosmc.New()
	if err := conn.Open(); err != nil {
		logrus.WithError(err).Debug("failed to open SMC, relying on battery state")
		return false, false
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Debug("failed to close SMC")
		}
	}()

	return smcACOnline(conn)
}

func smcACOnline(conn gosmc.Connection) (bool, bool) {
	v, err := conn.Read(acPowerKey)
	if err != nil {
		logrus.WithError(err).Debugf("failed to read SMC key %s", acPowerKey)
		return false, false
	}
	if len(v.Bytes) != 1 {
		logrus.Debugf("unexpected SMC data length %d for key %s", len(v.Bytes), acPowerKey)
		return false, false
	}

	online := int8(v.Bytes[0]) > 0
	logrus.Tracef("SMC %s returned %t", acPowerKey, online)
	return online, true
}

type noChassisProvider struct{}

// NewChassisInfoProvider returns a provider that reports no enclosure
// codes. Macs have no SMBIOS tables; the battery decides.
func NewChassisInfoProvider() ChassisInfoProvider {
	return noChassisProvider{}
}

func (noChassisProvider) ChassisTypes() ([]ChassisType, error) {
	return nil, nil
}

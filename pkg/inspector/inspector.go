// Package inspector classifies the host as laptop or desktop and tells
// whether it is running on AC power.
package inspector

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// LogSource tags every log line written by the inspector.
const LogSource = "powerstate.inspect"

// Inspector reads a snapshot from the host providers and derives the
// power status record. It holds no state between calls.
type Inspector struct {
	power   powerinfo.PowerInfoProvider
	chassis powerinfo.ChassisInfoProvider
	policy  ChassisPolicy
	logger  logrus.FieldLogger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(i *Inspector) {
		i.logger = l
	}
}

// WithChassisPolicy sets how conflicting chassis codes are resolved.
func WithChassisPolicy(p ChassisPolicy) Option {
	return func(i *Inspector) {
		i.policy = p
	}
}

// New returns an Inspector reading from the given providers.
func New(power powerinfo.PowerInfoProvider, chassis powerinfo.ChassisInfoProvider, opts ...Option) *Inspector {
	i := &Inspector{
		power:   power,
		chassis: chassis,
		policy:  PolicyLastMatch,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewHost returns an Inspector reading from this machine.
func NewHost(opts ...Option) *Inspector {
	return New(powerinfo.NewPowerInfoProvider(), powerinfo.NewChassisInfoProvider(), opts...)
}

// OnACPower reports whether the host is using AC power.
func (i *Inspector) OnACPower() bool {
	return i.Inspect().IsUsingACPower
}

// Inspect queries the host and returns the full record. Provider failures
// are logged and fall back to unknown values.
func (i *Inspector) Inspect() *powerinfo.Record {
	log := i.logger.WithField("source", LogSource)

	status := powerinfo.UnknownStatus()
	if i.power != nil {
		s, err := i.power.PowerStatus()
		if err != nil {
			log.WithError(err).Warn("failed to query power status, assuming unknown")
		} else {
			status = s
		}
	}

	// Some platforms report 100% for a missing or damaged battery.
	if status.BatteryChargeStatus.IsMissingOrUnknown() {
		status.BatteryLifePercent = 0
	}

	onAC := DeriveACPower(status)
	switch status.ACLineStatus {
	case powerinfo.ACLineOnline:
		log.Info("system is using AC power")
	case powerinfo.ACLineOffline:
		log.Info("system is using battery power")
	default:
		if onAC {
			log.Infof("system power source is [%s] and battery status is [%s], assuming AC power since the battery is missing or damaged",
				status.ACLineStatus, status.BatteryChargeStatus)
		} else {
			log.Infof("system power source is [%s] and battery status is [%s], assuming battery power",
				status.ACLineStatus, status.BatteryChargeStatus)
		}
	}

	var codes []powerinfo.ChassisType
	if i.chassis != nil {
		c, err := i.chassis.ChassisTypes()
		if err != nil {
			log.WithError(err).Warn("failed to query chassis types, relying on battery status")
		} else {
			codes = c
		}
	}

	seed := SeedIsLaptop(status.BatteryChargeStatus)
	if seed {
		log.Debugf("battery status is [%s], assuming laptop", status.BatteryChargeStatus)
	} else {
		log.Debugf("battery status is [%s], assuming desktop", status.BatteryChargeStatus)
	}

	if hasConflict(codes) {
		log.WithField("chassisTypes", codes).Warnf("chassis reports both laptop and desktop codes, resolving with policy %s", i.policy)
	}

	isLaptop := ApplyChassis(seed, codes, i.policy)
	if isLaptop {
		log.WithField("chassisTypes", codes).Info("system type is laptop")
	} else {
		log.WithField("chassisTypes", codes).Info("system type is desktop")
	}

	return &powerinfo.Record{
		ACPowerLineStatus:    status.ACLineStatus,
		BatteryChargeStatus:  status.BatteryChargeStatus,
		BatteryLifePercent:   status.BatteryLifePercent,
		BatteryLifeRemaining: status.BatteryLifeRemaining,
		BatteryFullLifetime:  status.BatteryFullLifetime,
		IsUsingACPower:       onAC,
		IsLaptop:             isLaptop,
		ChassisTypes:         codes,
	}
}

// DeriveACPower decides whether the host is on AC power. When the line
// status is unknown, a missing or unknown battery is taken as a sign of
// mains power.
func DeriveACPower(s powerinfo.Status) bool {
	switch s.ACLineStatus {
	case powerinfo.ACLineOnline:
		return true
	case powerinfo.ACLineOffline:
		return false
	default:
		return s.BatteryChargeStatus.IsMissingOrUnknown()
	}
}

// SeedIsLaptop is the laptop guess before chassis codes are considered.
func SeedIsLaptop(s powerinfo.BatteryChargeStatus) bool {
	return !s.IsMissingOrUnknown()
}

// ApplyChassis overrides seed with the chassis codes according to policy.
// Codes that are neither laptop-class nor desktop-class are ignored.
func ApplyChassis(seed bool, codes []powerinfo.ChassisType, policy ChassisPolicy) bool {
	isLaptop := seed
	var sawLaptop, sawDesktop bool
	for _, code := range codes {
		switch {
		case code.IsLaptopClass():
			isLaptop = true
			sawLaptop = true
		case code.IsDesktopClass():
			isLaptop = false
			sawDesktop = true
		}
	}

	if sawLaptop && sawDesktop {
		switch policy {
		case PolicyLaptopWins:
			return true
		case PolicyDesktopWins:
			return false
		}
	}

	return isLaptop
}

func hasConflict(codes []powerinfo.ChassisType) bool {
	var laptop, desktop bool
	for _, code := range codes {
		laptop = laptop || code.IsLaptopClass()
		desktop = desktop || code.IsDesktopClass()
	}
	return laptop && desktop
}

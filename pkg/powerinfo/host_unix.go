//go:build !windows

package powerinfo

import (
	"errors"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type batteryPowerProvider struct {
	getAll func() ([]*battery.Battery, error)
	// acOnline reports the mains adapter state. ok is false when the
	// platform has no way to tell.
	acOnline func() (online bool, ok bool)
	// idleMeansAC treats batteries that are present but not discharging
	// as running from the adapter.
	idleMeansAC bool
}

// NewPowerInfoProvider returns a provider backed by the OS battery
// interfaces.
func NewPowerInfoProvider() PowerInfoProvider {
	return &batteryPowerProvider{
		getAll:      battery.GetAll,
		acOnline:    hostACOnline,
		idleMeansAC: idleBatteryMeansAC,
	}
}

func (p *batteryPowerProvider) PowerStatus() (Status, error) {
	batteries, err := p.getAll()
	if err != nil {
		var partial battery.Errors
		if !errors.As(err, &partial) || len(batteries) == 0 {
			return UnknownStatus(), pkgerrors.Wrap(err, "failed to get battery info")
		}
		logrus.WithError(err).Debug("some battery fields could not be read")
	}

	s := FromBatteries(batteries)
	if p.idleMeansAC && s.ACLineStatus == ACLineUnknown && noneDischarging(batteries) {
		s.ACLineStatus = ACLineOnline
	}

	if p.acOnline != nil {
		if online, ok := p.acOnline(); ok {
			if online {
				s.ACLineStatus = ACLineOnline
			} else {
				s.ACLineStatus = ACLineOffline
			}
		}
	}

	return s, nil
}

func noneDischarging(batteries []*battery.Battery) bool {
	found := false
	for _, bat := range batteries {
		if bat == nil {
			continue
		}
		if bat.State == battery.Discharging {
			return false
		}
		found = true
	}
	return found
}

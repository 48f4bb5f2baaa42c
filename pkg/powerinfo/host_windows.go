//go:build windows

package powerinfo

import (
	"unsafe"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
)

var (
	modkernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemPowerStatus = modkernel32.NewProc("GetSystemPowerStatus")
)

type win32PowerProvider struct{}

// NewPowerInfoProvider returns a provider backed by GetSystemPowerStatus.
func NewPowerInfoProvider() PowerInfoProvider {
	return win32PowerProvider{}
}

func (win32PowerProvider) PowerStatus() (Status, error) {
	logrus.Tracef("GetSystemPowerStatus called")

	if err := procGetSystemPowerStatus.Find(); err != nil {
		return UnknownStatus(), pkgerrors.Wrap(err, "GetSystemPowerStatus is not available")
	}

	var s SystemPowerStatus
	r1, _, e1 := procGetSystemPowerStatus.Call(uintptr(unsafe.Pointer(&s)))
	if r1 == 0 {
		return UnknownStatus(), pkgerrors.Wrap(e1, "GetSystemPowerStatus failed")
	}

	logrus.WithFields(logrus.Fields{
		"acLineStatus":       s.ACLineStatus,
		"batteryFlag":        s.BatteryFlag,
		"batteryLifePercent": s.BatteryLifePercent,
	}).Trace("GetSystemPowerStatus returned")

	return FromSystemPowerStatus(s), nil
}

// Win32_SystemEnclosure WMI class
type win32SystemEnclosure struct {
	ChassisTypes []int32
}

type wmiChassisProvider struct{}

// NewChassisInfoProvider returns a provider backed by Win32_SystemEnclosure.
func NewChassisInfoProvider() ChassisInfoProvider {
	return wmiChassisProvider{}
}

func (wmiChassisProvider) ChassisTypes() ([]ChassisType, error) {
	var enclosures []win32SystemEnclosure
	if err := wmi.Query("SELECT ChassisTypes FROM Win32_SystemEnclosure", &enclosures); err != nil {
		return nil, pkgerrors.Wrap(err, "wmi Win32_SystemEnclosure query failed")
	}

	var ret []ChassisType
	for _, e := range enclosures {
		for _, code := range e.ChassisTypes {
			ret = append(ret, ChassisType(code))
		}
	}
	return ret, nil
}

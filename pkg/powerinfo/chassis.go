package powerinfo

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ChassisType is an SMBIOS enclosure type code, as reported by
// Win32_SystemEnclosure.ChassisTypes or /sys/class/dmi/id/chassis_type.
type ChassisType int

const (
	ChassisOther             ChassisType = 1
	ChassisUnknown           ChassisType = 2
	ChassisDesktop           ChassisType = 3
	ChassisLowProfileDesktop ChassisType = 4
	ChassisPizzaBox          ChassisType = 5
	ChassisMiniTower         ChassisType = 6
	ChassisTower             ChassisType = 7
	ChassisPortable          ChassisType = 8
	ChassisLaptop            ChassisType = 9
	ChassisNotebook          ChassisType = 10
	ChassisHandHeld          ChassisType = 11
	ChassisDockingStation    ChassisType = 12
	ChassisAllInOne          ChassisType = 13
	ChassisSubNotebook       ChassisType = 14
	ChassisSpaceSaving       ChassisType = 15
	ChassisLunchBox          ChassisType = 16
	ChassisMainSystem        ChassisType = 17
	ChassisExpansion         ChassisType = 18
	ChassisSubChassis        ChassisType = 19
	ChassisBusExpansion      ChassisType = 20
	ChassisPeripheral        ChassisType = 21
	ChassisRAID              ChassisType = 22
	ChassisRackMount         ChassisType = 23
	ChassisSealedCasePC      ChassisType = 24
	ChassisMultiSystem       ChassisType = 25
	ChassisCompactPCI        ChassisType = 26
	ChassisAdvancedTCA       ChassisType = 27
	ChassisBlade             ChassisType = 28
	ChassisBladeEnclosure    ChassisType = 29
	ChassisTablet            ChassisType = 30
	ChassisConvertible       ChassisType = 31
	ChassisDetachable        ChassisType = 32
	ChassisIoTGateway        ChassisType = 33
	ChassisEmbeddedPC        ChassisType = 34
	ChassisMiniPC            ChassisType = 35
	ChassisStickPC           ChassisType = 36
)

var chassisNames = map[ChassisType]string{
	ChassisOther:             "Other",
	ChassisUnknown:           "Unknown",
	ChassisDesktop:           "Desktop",
	ChassisLowProfileDesktop: "Low Profile Desktop",
	ChassisPizzaBox:          "Pizza Box",
	ChassisMiniTower:         "Mini Tower",
	ChassisTower:             "Tower",
	ChassisPortable:          "Portable",
	ChassisLaptop:            "Laptop",
	ChassisNotebook:          "Notebook",
	ChassisHandHeld:          "Hand Held",
	ChassisDockingStation:    "Docking Station",
	ChassisAllInOne:          "All in One",
	ChassisSubNotebook:       "Sub Notebook",
	ChassisSpaceSaving:       "Space-Saving",
	ChassisLunchBox:          "Lunch Box",
	ChassisMainSystem:        "Main System Chassis",
	ChassisExpansion:         "Expansion Chassis",
	ChassisSubChassis:        "SubChassis",
	ChassisBusExpansion:      "Bus Expansion Chassis",
	ChassisPeripheral:        "Peripheral Chassis",
	ChassisRAID:              "Storage Chassis",
	ChassisRackMount:         "Rack Mount Chassis",
	ChassisSealedCasePC:      "Sealed-Case PC",
	ChassisMultiSystem:       "Multi-system Chassis",
	ChassisCompactPCI:        "Compact PCI",
	ChassisAdvancedTCA:       "Advanced TCA",
	ChassisBlade:             "Blade",
	ChassisBladeEnclosure:    "Blade Enclosure",
	ChassisTablet:            "Tablet",
	ChassisConvertible:       "Convertible",
	ChassisDetachable:        "Detachable",
	ChassisIoTGateway:        "IoT Gateway",
	ChassisEmbeddedPC:        "Embedded PC",
	ChassisMiniPC:            "Mini PC",
	ChassisStickPC:           "Stick PC",
}

func (c ChassisType) String() string {
	if name, ok := chassisNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ChassisType(%d)", int(c))
}

// IsLaptopClass reports whether the code marks the machine as a laptop.
// Only Laptop, Notebook and Sub Notebook count; Portable, Convertible and
// friends are left to the battery heuristic.
func (c ChassisType) IsLaptopClass() bool {
	switch c {
	case ChassisLaptop, ChassisNotebook, ChassisSubNotebook:
		return true
	}
	return false
}

// IsDesktopClass reports whether the code marks the machine as a desktop.
func (c ChassisType) IsDesktopClass() bool {
	return c == ChassisDesktop
}

// ParseChassisType parses a DMI chassis_type value. Most kernels expose the
// numeric code, a few expose the name.
func ParseChassisType(s string) (ChassisType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, pkgerrors.New("empty chassis type")
	}

	if num, err := strconv.Atoi(s); err == nil {
		if num <= 0 {
			return 0, pkgerrors.Errorf("invalid chassis type %d", num)
		}
		return ChassisType(num), nil
	}

	normalized := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(s))
	for code, name := range chassisNames {
		if strings.ToLower(strings.ReplaceAll(name, "-", " ")) == normalized {
			return code, nil
		}
	}

	return 0, pkgerrors.Errorf("unrecognized chassis type %q", s)
}

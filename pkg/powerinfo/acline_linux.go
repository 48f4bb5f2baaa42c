package powerinfo

import (
	"os"
	"path/filepath"
	"strings"
)

// Linux reports the adapter in sysfs, see hostACOnline.
const idleBatteryMeansAC = false

var powerSupplyPath = "/sys/class/power_supply"

// hostACOnline checks every Mains supply under /sys/class/power_supply.
func hostACOnline() (bool, bool) {
	matches, err := filepath.Glob(filepath.Join(powerSupplyPath, "*", "type"))
	if err != nil {
		return false, false
	}

	found := false
	for _, typePath := range matches {
		typ, err := os.ReadFile(typePath)
		if err != nil || strings.TrimSpace(string(typ)) != "Mains" {
			continue
		}
		online, err := os.ReadFile(filepath.Join(filepath.Dir(typePath), "online"))
		if err != nil {
			continue
		}
		found = true
		if strings.TrimSpace(string(online)) == "1" {
			return true, true
		}
	}

	return false, found
}

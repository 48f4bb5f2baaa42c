//go:build !windows && !linux && !darwin

package powerinfo

// The battery state alone decides; an idle battery says nothing about the
// adapter here.
const idleBatteryMeansAC = false

// hostACOnline has no portable implementation outside Linux and macOS; the battery
// state decides.
func hostACOnline() (bool, bool) {
	return false, false
}

type noChassisProvider struct{}

// NewChassisInfoProvider returns a provider that reports no enclosure
// codes, leaving the decision to the battery heuristic.
func NewChassisInfoProvider() ChassisInfoProvider {
	return noChassisProvider{}
}

func (noChassisProvider) ChassisTypes() ([]ChassisType, error) {
	return nil, nil
}

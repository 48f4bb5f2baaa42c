package inspector

import pkgerrors "github.com/pkg/errors"

// ChassisPolicy decides how enclosure codes override the battery-based
// laptop guess.
type ChassisPolicy string

const (
	// PolicyLastMatch applies codes in the order the host reports them;
	// the last laptop-class or desktop-class code wins.
	PolicyLastMatch ChassisPolicy = "last-match"
	// PolicyLaptopWins makes any laptop-class code win over desktop codes.
	PolicyLaptopWins ChassisPolicy = "laptop-wins"
	// PolicyDesktopWins makes any desktop code win over laptop-class codes.
	PolicyDesktopWins ChassisPolicy = "desktop-wins"
)

// ParseChassisPolicy validates a policy name. An empty name selects
// PolicyLastMatch.
func ParseChassisPolicy(s string) (ChassisPolicy, error) {
	switch p := ChassisPolicy(s); p {
	case "":
		return PolicyLastMatch, nil
	case PolicyLastMatch, PolicyLaptopWins, PolicyDesktopWins:
		return p, nil
	default:
		return "", pkgerrors.Errorf("unknown chassis policy %q, must be one of %s, %s, %s",
			s, PolicyLastMatch, PolicyLaptopWins, PolicyDesktopWins)
	}
}

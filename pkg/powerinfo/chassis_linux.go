package powerinfo

import (
	"os"

	pkgerrors "github.com/pkg/errors"
)

const dmiPathEnvVarOverride = "POWERSTATE_DMI_PATH"

var dmiPath = "/sys/class/dmi/id/chassis_type"

type dmiChassisProvider struct{}

// NewChassisInfoProvider returns a provider backed by the DMI tables
// exposed in sysfs.
func NewChassisInfoProvider() ChassisInfoProvider {
	return dmiChassisProvider{}
}

func (dmiChassisProvider) ChassisTypes() ([]ChassisType, error) {
	path, ok := os.LookupEnv(dmiPathEnvVarOverride)
	if !ok {
		path = dmiPath
	}

	//nolint:gosec
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Some VMs and ARM boards have no DMI tables.
			return nil, nil
		}
		return nil, pkgerrors.Wrapf(err, "can't read chassis type from %s", path)
	}

	code, err := ParseChassisType(string(b))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "can't parse chassis type from %s", path)
	}

	return []ChassisType{code}, nil
}

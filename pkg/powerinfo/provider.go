package powerinfo

// PowerInfoProvider reads the host power telemetry.
type PowerInfoProvider interface {
	PowerStatus() (Status, error)
}

// ChassisInfoProvider reads the host enclosure type codes. An empty result
// is valid and means the host did not report any.
type ChassisInfoProvider interface {
	ChassisTypes() ([]ChassisType, error)
}

// PowerInfoFunc adapts a plain function to PowerInfoProvider.
type PowerInfoFunc func() (Status, error)

func (f PowerInfoFunc) PowerStatus() (Status, error) {
	return f()
}

// ChassisInfoFunc adapts a plain function to ChassisInfoProvider.
type ChassisInfoFunc func() ([]ChassisType, error)

func (f ChassisInfoFunc) ChassisTypes() ([]ChassisType, error) {
	return f()
}

package config

import "github.com/charlie0129/powerstate/pkg/inspector"

type Config interface {
	LogLevel() string
	ListenAddr() string
	PollIntervalSeconds() int
	ChassisPolicy() inspector.ChassisPolicy

	// Load reads the configuration from the source.
	Load() error
}

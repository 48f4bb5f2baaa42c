package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/inspector"
	"github.com/charlie0129/powerstate/pkg/utils/ptr"
)

const (
	minPollIntervalSeconds = 1
	maxPollIntervalSeconds = 3600
)

var (
	defaultFileConfig = &RawFileConfig{
		LogLevel:            ptr.To("info"),
		ListenAddr:          ptr.To("127.0.0.1:7575"),
		PollIntervalSeconds: ptr.To(10),
		ChassisPolicy:       ptr.To(string(inspector.PolicyLastMatch)),
	}
)

var _ Config = &File{}

// DefaultPath is where the config file lives unless --config says otherwise.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		base := os.Getenv("ProgramData")
		if base == "" {
			base = `C:\ProgramData`
		}
		return filepath.Join(base, "powerstate", "powerstate.toml")
	}
	return "/etc/powerstate.toml"
}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// RawFileConfig is the on-disk form. Unset keys fall back to defaults.
type RawFileConfig struct {
	LogLevel            *string `toml:"log_level,omitempty"`
	ListenAddr          *string `toml:"listen_addr,omitempty"`
	PollIntervalSeconds *int    `toml:"poll_interval_seconds,omitempty"`
	ChassisPolicy       *string `toml:"chassis_policy,omitempty"`
}

func (f *File) LogLevel() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LogLevel != nil {
		return *f.c.LogLevel
	}
	return *defaultFileConfig.LogLevel
}

func (f *File) ListenAddr() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ListenAddr != nil {
		return *f.c.ListenAddr
	}
	return *defaultFileConfig.ListenAddr
}

func (f *File) PollIntervalSeconds() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.PollIntervalSeconds != nil {
		return *f.c.PollIntervalSeconds
	}
	return *defaultFileConfig.PollIntervalSeconds
}

func (f *File) ChassisPolicy() inspector.ChassisPolicy {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ChassisPolicy != nil {
		return inspector.ChassisPolicy(*f.c.ChassisPolicy)
	}
	return inspector.ChassisPolicy(*defaultFileConfig.ChassisPolicy)
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing file means defaults. Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	md, err := toml.Decode(string(b), &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to decode config from file %s", f.filepath)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logrus.WithField("keys", undecoded).Warnf("unknown keys in config file %s", f.filepath)
	}

	if err := conf.validate(); err != nil {
		return pkgerrors.Wrapf(err, "invalid config file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (c *RawFileConfig) validate() error {
	if c.LogLevel != nil {
		if _, err := logrus.ParseLevel(*c.LogLevel); err != nil {
			return pkgerrors.Wrap(err, "log_level")
		}
	}
	if c.ListenAddr != nil && strings.TrimSpace(*c.ListenAddr) == "" {
		return pkgerrors.New("listen_addr must not be empty")
	}
	if c.PollIntervalSeconds != nil {
		if v := *c.PollIntervalSeconds; v < minPollIntervalSeconds || v > maxPollIntervalSeconds {
			return pkgerrors.Errorf("poll_interval_seconds must be between %d and %d, got %d",
				minPollIntervalSeconds, maxPollIntervalSeconds, v)
		}
	}
	if c.ChassisPolicy != nil {
		if _, err := inspector.ParseChassisPolicy(*c.ChassisPolicy); err != nil {
			return pkgerrors.Wrap(err, "chassis_policy")
		}
	}
	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"logLevel":            f.LogLevel(),
		"listenAddr":          f.ListenAddr(),
		"pollIntervalSeconds": f.PollIntervalSeconds(),
		"chassisPolicy":       f.ChassisPolicy(),
	}
}

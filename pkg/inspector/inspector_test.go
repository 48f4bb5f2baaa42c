package inspector

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func staticPower(s powerinfo.Status) powerinfo.PowerInfoProvider {
	return powerinfo.PowerInfoFunc(func() (powerinfo.Status, error) { return s, nil })
}

func staticChassis(codes ...powerinfo.ChassisType) powerinfo.ChassisInfoProvider {
	return powerinfo.ChassisInfoFunc(func() ([]powerinfo.ChassisType, error) { return codes, nil })
}

func newTestInspector(power powerinfo.PowerInfoProvider, chassis powerinfo.ChassisInfoProvider, opts ...Option) (*Inspector, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(power, chassis, append([]Option{WithLogger(logger)}, opts...)...), hook
}

func TestInspectBatteryLifePercentNormalized(t *testing.T) {
	for _, cs := range []powerinfo.BatteryChargeStatus{powerinfo.BatteryNoSystemBattery, powerinfo.BatteryUnknown} {
		for _, raw := range []float64{0, 0.5, 1, 2.55} {
			i, _ := newTestInspector(staticPower(powerinfo.Status{
				ACLineStatus:        powerinfo.ACLineOnline,
				BatteryChargeStatus: cs,
				BatteryLifePercent:  raw,
			}), staticChassis())

			if got := i.Inspect().BatteryLifePercent; got != 0 {
				t.Errorf("charge status %s, raw %v: BatteryLifePercent = %v, want 0", cs, raw, got)
			}
		}
	}

	i, _ := newTestInspector(staticPower(powerinfo.Status{
		ACLineStatus:        powerinfo.ACLineOffline,
		BatteryChargeStatus: powerinfo.BatteryHigh,
		BatteryLifePercent:  0.9,
	}), staticChassis())
	if got := i.Inspect().BatteryLifePercent; got != 0.9 {
		t.Errorf("BatteryLifePercent = %v, want 0.9", got)
	}
}

func TestDeriveACPower(t *testing.T) {
	tests := []struct {
		name   string
		line   powerinfo.ACLineStatus
		charge powerinfo.BatteryChargeStatus
		want   bool
	}{
		{"online", powerinfo.ACLineOnline, powerinfo.BatteryHigh, true},
		{"online without battery", powerinfo.ACLineOnline, powerinfo.BatteryNoSystemBattery, true},
		{"offline", powerinfo.ACLineOffline, powerinfo.BatteryLow, false},
		{"offline with unknown battery", powerinfo.ACLineOffline, powerinfo.BatteryUnknown, false},
		{"unknown line, no battery", powerinfo.ACLineUnknown, powerinfo.BatteryNoSystemBattery, true},
		{"unknown line, unknown battery", powerinfo.ACLineUnknown, powerinfo.BatteryUnknown, true},
		{"unknown line, high battery", powerinfo.ACLineUnknown, powerinfo.BatteryHigh, false},
		{"unknown line, charging", powerinfo.ACLineUnknown, powerinfo.BatteryCharging, false},
		{"unknown line, critical", powerinfo.ACLineUnknown, powerinfo.BatteryCritical, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := powerinfo.Status{ACLineStatus: tt.line, BatteryChargeStatus: tt.charge}
			if got := DeriveACPower(s); got != tt.want {
				t.Errorf("DeriveACPower() = %v, want %v", got, tt.want)
			}

			i, _ := newTestInspector(staticPower(s), staticChassis())
			if got := i.Inspect().IsUsingACPower; got != tt.want {
				t.Errorf("Inspect().IsUsingACPower = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInspectIsLaptop(t *testing.T) {
	tests := []struct {
		name   string
		charge powerinfo.BatteryChargeStatus
		codes  []powerinfo.ChassisType
		policy ChassisPolicy
		want   bool
	}{
		{"desktop code", powerinfo.BatteryHigh, []powerinfo.ChassisType{3}, PolicyLastMatch, false},
		{"laptop code", powerinfo.BatteryNoSystemBattery, []powerinfo.ChassisType{9}, PolicyLastMatch, true},
		{"notebook code", powerinfo.BatteryUnknown, []powerinfo.ChassisType{10}, PolicyLastMatch, true},
		{"sub notebook code", powerinfo.BatteryNoSystemBattery, []powerinfo.ChassisType{14}, PolicyLastMatch, true},
		{"desktop then laptop", powerinfo.BatteryHigh, []powerinfo.ChassisType{3, 9}, PolicyLastMatch, true},
		{"laptop then desktop", powerinfo.BatteryHigh, []powerinfo.ChassisType{9, 3}, PolicyLastMatch, false},
		{"no codes, high battery", powerinfo.BatteryHigh, nil, PolicyLastMatch, true},
		{"no codes, no battery", powerinfo.BatteryNoSystemBattery, nil, PolicyLastMatch, false},
		{"no codes, unknown battery", powerinfo.BatteryUnknown, nil, PolicyLastMatch, false},
		{"unrelated codes keep seed", powerinfo.BatteryLow, []powerinfo.ChassisType{7, 8, 31}, PolicyLastMatch, true},
		{"laptop wins", powerinfo.BatteryHigh, []powerinfo.ChassisType{9, 3}, PolicyLaptopWins, true},
		{"desktop wins", powerinfo.BatteryHigh, []powerinfo.ChassisType{3, 9}, PolicyDesktopWins, false},
		{"desktop wins without conflict", powerinfo.BatteryHigh, []powerinfo.ChassisType{10}, PolicyDesktopWins, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, _ := newTestInspector(
				staticPower(powerinfo.Status{ACLineStatus: powerinfo.ACLineOnline, BatteryChargeStatus: tt.charge}),
				staticChassis(tt.codes...),
				WithChassisPolicy(tt.policy),
			)
			if got := i.Inspect().IsLaptop; got != tt.want {
				t.Errorf("IsLaptop = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnACPowerMatchesRecord(t *testing.T) {
	for _, line := range []powerinfo.ACLineStatus{powerinfo.ACLineOnline, powerinfo.ACLineOffline, powerinfo.ACLineUnknown} {
		s := powerinfo.Status{ACLineStatus: line, BatteryChargeStatus: powerinfo.BatteryLow}
		i, _ := newTestInspector(staticPower(s), staticChassis())
		if got, want := i.OnACPower(), i.Inspect().IsUsingACPower; got != want {
			t.Errorf("line %s: OnACPower() = %v, record says %v", line, got, want)
		}
	}
}

func TestInspectFullRecord(t *testing.T) {
	i, _ := newTestInspector(staticPower(powerinfo.Status{
		ACLineStatus:         powerinfo.ACLineOffline,
		BatteryChargeStatus:  powerinfo.BatteryLow,
		BatteryLifePercent:   0.3,
		BatteryLifeRemaining: 3600,
		BatteryFullLifetime:  10800,
	}), staticChassis(powerinfo.ChassisNotebook))

	got := i.Inspect()
	want := powerinfo.Record{
		ACPowerLineStatus:    powerinfo.ACLineOffline,
		BatteryChargeStatus:  powerinfo.BatteryLow,
		BatteryLifePercent:   0.3,
		BatteryLifeRemaining: 3600,
		BatteryFullLifetime:  10800,
		IsUsingACPower:       false,
		IsLaptop:             true,
	}
	if got.ACPowerLineStatus != want.ACPowerLineStatus ||
		got.BatteryChargeStatus != want.BatteryChargeStatus ||
		got.BatteryLifePercent != want.BatteryLifePercent ||
		got.BatteryLifeRemaining != want.BatteryLifeRemaining ||
		got.BatteryFullLifetime != want.BatteryFullLifetime ||
		got.IsUsingACPower != want.IsUsingACPower ||
		got.IsLaptop != want.IsLaptop {
		t.Errorf("Inspect() = %+v, want %+v", *got, want)
	}
	if len(got.ChassisTypes) != 1 || got.ChassisTypes[0] != powerinfo.ChassisNotebook {
		t.Errorf("ChassisTypes = %v", got.ChassisTypes)
	}

	if i.Inspect() == got {
		t.Errorf("each inspection must return a fresh record")
	}
}

func TestInspectProviderErrors(t *testing.T) {
	failingPower := powerinfo.PowerInfoFunc(func() (powerinfo.Status, error) {
		return powerinfo.Status{ACLineStatus: powerinfo.ACLineOffline}, errors.New("no power api")
	})
	failingChassis := powerinfo.ChassisInfoFunc(func() ([]powerinfo.ChassisType, error) {
		return []powerinfo.ChassisType{powerinfo.ChassisLaptop}, errors.New("no wmi")
	})

	i, hook := newTestInspector(failingPower, failingChassis)
	got := i.Inspect()

	if got.ACPowerLineStatus != powerinfo.ACLineUnknown || got.BatteryChargeStatus != powerinfo.BatteryUnknown {
		t.Errorf("failed query should fall back to unknown values, got %+v", *got)
	}
	if !got.IsUsingACPower {
		t.Errorf("unknown line and battery should assume AC power")
	}
	if got.IsLaptop {
		t.Errorf("unknown battery without chassis codes should be a desktop")
	}
	if got.BatteryLifeRemaining != -1 || got.BatteryFullLifetime != -1 {
		t.Errorf("lifetimes should be unknown, got %+v", *got)
	}

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Data["source"] != LogSource {
			t.Errorf("log entry %q has source %v", e.Message, e.Data["source"])
		}
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Errorf("expected 2 warnings, got %d", warnings)
	}
}

func TestInspectNilProviders(t *testing.T) {
	i, _ := newTestInspector(nil, nil)
	got := i.Inspect()
	if !got.IsUsingACPower || got.IsLaptop {
		t.Errorf("Inspect() with no providers = %+v", *got)
	}
}

func TestInspectLogsConflict(t *testing.T) {
	i, hook := newTestInspector(
		staticPower(powerinfo.Status{ACLineStatus: powerinfo.ACLineOnline, BatteryChargeStatus: powerinfo.BatteryHigh}),
		staticChassis(powerinfo.ChassisDesktop, powerinfo.ChassisLaptop),
	)
	i.Inspect()

	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about conflicting chassis codes")
	}
}

func TestParseChassisPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ChassisPolicy
		wantErr bool
	}{
		{"", PolicyLastMatch, false},
		{"last-match", PolicyLastMatch, false},
		{"laptop-wins", PolicyLaptopWins, false},
		{"desktop-wins", PolicyDesktopWins, false},
		{"first-match", "", true},
	}
	for _, tt := range tests {
		got, err := ParseChassisPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseChassisPolicy(%q) = %q, %v", tt.in, got, err)
		}
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/charlie0129/powerstate/pkg/client"
	"github.com/charlie0129/powerstate/pkg/inspector"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

type statusOptions struct {
	passThru bool
	json     bool
	exitCode bool
	remote   string
}

func (o *statusOptions) addFlags(f *pflag.FlagSet) {
	f.BoolVarP(&o.passThru, "pass-thru", "p", false, "print the full power status record instead of only the AC power state")
	f.BoolVar(&o.json, "json", false, "print the result as JSON")
	f.BoolVar(&o.exitCode, "exit-code", false, "exit with code 0 on AC power and 1 on battery power")
	f.StringVar(&o.remote, "remote", "", "query a running powerstate daemon at this address instead of this machine")
}

func NewStatusCommand() *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Tell whether this machine runs on AC power",
		Long: `Tell whether this machine runs on AC power.

By default only the AC power state is printed (true or false). With
--pass-thru the full record is printed, including the battery state and
whether the machine is a laptop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, opts)
		},
	}

	opts.addFlags(cmd.Flags())

	return cmd
}

func runStatus(cmd *cobra.Command, opts *statusOptions) error {
	rec, err := fetchRecord(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.json && opts.passThru:
		err = writeJSON(out, rec)
	case opts.json:
		err = writeJSON(out, rec.IsUsingACPower)
	case opts.passThru:
		printRecord(out, rec)
	default:
		fmt.Fprintln(out, rec.IsUsingACPower)
	}
	if err != nil {
		return err
	}

	if opts.exitCode && !rec.IsUsingACPower {
		return errOnBattery
	}
	return nil
}

func fetchRecord(opts *statusOptions) (*powerinfo.Record, error) {
	if opts.remote != "" {
		rec, err := client.NewClient(opts.remote).GetPowerStatus(true)
		if err != nil {
			return nil, fmt.Errorf("failed to get power status from %s: %w", opts.remote, err)
		}
		return rec, nil
	}

	policy, err := inspector.ParseChassisPolicy(string(conf.ChassisPolicy()))
	if err != nil {
		return nil, err
	}
	return inspector.NewHost(inspector.WithChassisPolicy(policy)).Inspect(), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecord(w io.Writer, rec *powerinfo.Record) {
	fmt.Fprintln(w, bold("Power source:"))
	fmt.Fprintf(w, "  Using AC power: %s\n", bool2Text(rec.IsUsingACPower))
	fmt.Fprintf(w, "  AC line status: %s\n", bold("%s", rec.ACPowerLineStatus))

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Battery:"))
	fmt.Fprintf(w, "  Charge status: %s\n", bold("%s", rec.BatteryChargeStatus))
	if rec.BatteryChargeStatus.IsMissingOrUnknown() {
		fmt.Fprintf(w, "  Charge: %s\n", bold("n/a"))
	} else {
		fmt.Fprintf(w, "  Charge: %s\n", chargeText(rec.BatteryLifePercent))
	}
	fmt.Fprintf(w, "  Remaining: %s\n", bold("%s", secondsText(rec.BatteryLifeRemaining)))
	fmt.Fprintf(w, "  Full lifetime: %s\n", bold("%s", secondsText(rec.BatteryFullLifetime)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Hardware:"))
	fmt.Fprintf(w, "  Laptop: %s\n", bool2Text(rec.IsLaptop))
	if len(rec.ChassisTypes) > 0 {
		names := make([]string, 0, len(rec.ChassisTypes))
		for _, c := range rec.ChassisTypes {
			names = append(names, fmt.Sprintf("%s (%d)", c, int(c)))
		}
		fmt.Fprintf(w, "  Chassis: %s\n", bold("%s", strings.Join(names, ", ")))
	}
}

func chargeText(fraction float64) string {
	pct := fraction * 100
	switch {
	case pct < 10:
		return color.New(color.Bold, color.FgRed).Sprintf("%.0f%%", pct)
	case pct < 33:
		return color.New(color.Bold, color.FgYellow).Sprintf("%.0f%%", pct)
	default:
		return color.New(color.Bold, color.FgGreen).Sprintf("%.0f%%", pct)
	}
}

func secondsText(s int) string {
	if s < 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dh%02dm", s/3600, (s%3600)/60)
}

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/powerstate/pkg/client"
	"github.com/charlie0129/powerstate/pkg/config"
)

var (
	logLevel   = "info"
	configPath = config.DefaultPath()
	conf       *config.File
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

// errOnBattery makes the process exit with code 1 without printing anything.
var errOnBattery = errors.New("system is running on battery power")

func setupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: powerstate daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'powerstate serve' or drop the --remote flag.")
	} else if errors.Is(err, client.ErrNotFound) {
		fmt.Fprintln(os.Stderr, "\nError: the daemon does not support this request")
		fmt.Fprintln(os.Stderr, "Make sure client and daemon are the same version.")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		// errOnBattery is an answer, not a failure.
		if !errors.Is(err, errOnBattery) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			handleCmdError(err)
		}
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	statusOpts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "powerstate",
		Short: "powerstate tells whether this machine runs on AC power and whether it is a laptop",
		Long: `powerstate tells whether this machine runs on AC power and whether it is a laptop.

Without a subcommand it behaves like 'powerstate status'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			conf, err = config.NewFile(configPath)
			if err != nil {
				return err
			}

			level := conf.LogLevel()
			if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
				level = logLevel
			}
			if err := setupLogger(level); err != nil {
				return err
			}
			logrus.WithFields(conf.LogrusFields()).Debug("config loaded")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, statusOpts)
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")

	statusOpts.addFlags(cmd.Flags())

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewStatusCommand(),
		NewServeCommand(),
		NewVersionCommand(),
	)

	return cmd
}

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/powerstate/pkg/daemon"
	"github.com/charlie0129/powerstate/pkg/inspector"
	"github.com/charlie0129/powerstate/pkg/version"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the power status over HTTP in the foreground",
		GroupID: gAdvanced,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("powerstate daemon starting")

			policy, err := inspector.ParseChassisPolicy(string(conf.ChassisPolicy()))
			if err != nil {
				return err
			}
			insp := inspector.NewHost(inspector.WithChassisPolicy(policy))

			return daemon.Run(cmd.Context(), conf, insp)
		},
	}

	return cmd
}

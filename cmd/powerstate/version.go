package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/powerstate/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: gBasic,
		Short:   "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Version, version.GitCommit)
		},
	}
}

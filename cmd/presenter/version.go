package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/presenter"
)

// Set by the linker.
var (
	version = ""
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version
			if v == "" {
				v = presenter.Version
			}
			fmt.Fprintf(cmd.OutOrStdout(), "presenter %s\ncommit: %s\nbuilt: %s\n", v, commit, date)
			return nil
		},
	}
}

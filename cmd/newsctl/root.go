package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "newsctl",
		Short:         "Operator tools for the news rating app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newHashCommand())
	root.AddCommand(newCheckUsersCommand())
	root.AddCommand(newCheckModelCommand())

	return root
}

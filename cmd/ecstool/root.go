package main

import "github.com/spf13/cobra"

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ecstool",
		Short:         "Entity store code generation and snapshot inspection",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		NewGenCmd(),
		NewInspectCmd(),
	)
	return rootCmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkg.world.dev/world-engine/entitystore/schemagen"
)

const (
	flagSchema = "schema"
	flagOut    = "out"
)

func NewGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen",
		Short:   "Generate a component set from a YAML declaration",
		Example: "ecstool gen --schema schema.yaml --out components_generated.go",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemaPath, err := cmd.Flags().GetString(flagSchema)
			if err != nil {
				return err
			}
			outPath, err := cmd.Flags().GetString(flagOut)
			if err != nil {
				return err
			}
			if err := schemagen.GenerateFile(schemaPath, outPath); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return err
		},
	}
	cmd.Flags().String(flagSchema, "", "path to the YAML component declaration")
	cmd.Flags().String(flagOut, "components_generated.go", "path of the generated Go file")
	_ = cmd.MarkFlagRequired(flagSchema)
	return cmd
}

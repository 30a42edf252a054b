package main

import (
	"github.com/spf13/cobra"

	"vellum/internal/project"
)

func newLowerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lower <file.vellum>",
		Short: "Print the lowered IR of a schema (msgpack or JSON)",
		Long: `Print the lowered IR of a schema: ordered items, their layout dependencies
and helper names, with types as mangled names. Use --ir-encoding json for a
readable form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSingleTarget(cmd, args[0], project.TargetIR)
		},
	}
	cmd.Flags().String("ir-encoding", "", "IR encoding (msgpack|json)")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"vellum/internal/driver"
	"vellum/internal/project"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols <file.vellum>",
		Short: "Print the functions a schema exports",
		Args:  cobra.ExactArgs(1),
		RunE:  runSymbols,
	}
	cmd.Flags().StringP("symbols-format", "f", "", "output format (list|gnu)")
	return cmd
}

func runSymbols(cmd *cobra.Command, args []string) error {
	return printSingleTarget(cmd, args[0], project.TargetSymbols)
}

// printSingleTarget compiles one target in memory and writes its files to
// stdout.
func printSingleTarget(cmd *cobra.Command, path, target string) error {
	cleanup, err := startRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, path, g)
	if err != nil {
		return err
	}
	opts.Targets = []string{target}
	opts.OutDir = ""

	res, err := driver.Compile(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	if err := report(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, g); err != nil {
		return err
	}
	for _, f := range res.Files {
		if _, err := cmd.OutOrStdout().Write(f.Content); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vellum/internal/driver"
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file.vellum>",
		Short: "Generate bindings for a schema",
		Long: `Generate bindings for a schema. Settings come from the nearest vellum.toml
and are overridden by flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runCompile,
	}
	addBuildFlags(cmd)
	cmd.Flags().BoolP("quiet", "q", false, "do not list written files")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	cleanup, err := startRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	opts, err := driverOptions(cmd, args[0], g)
	if err != nil {
		return err
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	res, err := driver.Compile(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if err := report(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, g); err != nil {
		return err
	}
	if !quiet {
		for _, path := range res.Written {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	}
	return nil
}

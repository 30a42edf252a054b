package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vellum/internal/driver"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.vellum>",
		Short: "Check a schema and its imports without generating output",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup, err := startRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, args[0], g)
	if err != nil {
		return err
	}
	res, err := driver.Check(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if err := report(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, g); err != nil {
		return err
	}
	if g.format != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d items ok\n", args[0], itemCount(res))
	}
	return nil
}

// itemCount is zero when the run stopped before items were ordered.
func itemCount(res *driver.Result) int {
	if res == nil || res.Unit == nil {
		return 0
	}
	return len(res.Unit.Items)
}

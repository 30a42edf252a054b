package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vellum/internal/prof"
)

// setupProfiling starts the profilers requested by persistent flags. The
// returned cleanup is safe to call multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()
	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}

	session, err := prof.Start(prof.Config{CPUPath: cpuProfile, MemPath: memProfile})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}

// startRun enables profiling and tracing for one command run.
func startRun(cmd *cobra.Command) (func(), error) {
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		stopProf()
		return nil, err
	}
	return func() {
		stopTrace()
		stopProf()
	}, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vellum/internal/trace"
)

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. The returned cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: traceOutput})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(ctx, tracer))

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

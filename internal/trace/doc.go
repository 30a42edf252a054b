// Package trace records what the vellum pipeline is doing.
//
// Enable tracing via command-line flags:
//
//	vellum check --trace=- --trace-level=phase main.vellum
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-item events (one struct, one output file)
//   - LevelDebug: everything
//
// # Context Propagation
//
// Tracers travel through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "check")
//	defer span.End("")
package trace

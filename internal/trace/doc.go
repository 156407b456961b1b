// Package trace is the logging layer of the cdoc tool.
//
// The trace package records driver activity, per-file work and, at the most
// detailed level, every event produced by the comment parser. It is used to
// diagnose slow batches and to see exactly where a comment body stopped
// parsing.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	cdoc render --trace=- --trace-level=detail docs/
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a batch fails
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps on failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including parser events
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "render", parentID)
//	defer span.End("")
package trace

// Package trace is the checker's tracing subsystem. It stands in for a
// logging library: every component emits structured events to a Tracer
// carried in context.Context, filtered by level.
//
// # Usage
//
//	vischeck check --trace=- --trace-level=detail build/app.vsnap
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-unit and per-module events
//   - LevelDebug: everything, including individual privacy checks
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "privacy", 0)
//	defer span.End("")
package trace

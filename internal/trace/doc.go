// Package trace records what acc is doing while it compiles and proves.
//
// Events form a tree of spans: one driver span per command, one stage span
// per pipeline stage, one func span per compiled function. Engine-level
// events use ScopeStep and only show up at LevelDebug.
//
//	acc --trace=- --trace-level=detail -i ./src main
//	acc --trace=run.ndjson main          # phase level, NDJSON by extension
//	acc --trace-mode=ring main           # dump the tail only if the run fails
//
// Producers never hold a Tracer directly; they take it from the context:
//
//	ctx, span := trace.StartSpan(ctx, trace.ScopeStage, "compile")
//	defer span.End("")
//	trace.Mark(ctx, trace.ScopeFunc, "fn", "main")
//
// When no tracer is attached every call is a cheap no-op.
package trace

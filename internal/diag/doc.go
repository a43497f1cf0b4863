// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Every failure the pipeline can report is a typed error implementing Coded;
// the concrete types live next to the phase that raises them (locator,
// compiler, emit, tvm, inputs, prover). Codes are grouped by phase:
//
//   - LEX1xxx, SYN2xxx – lexing and parsing of ashlang sources
//   - SEM3xxx – name resolution, arity and scoping
//   - GEN4xxx – code generation and emitter consistency
//   - ASM5xxx – external assembler/linker
//   - INP6xxx – public/secret input literals
//   - PRV7xxx – proving engine
//   - PRJ8xxx – project manifest and include roots
//
// FromError flattens a wrapped error chain into a Diagnostic; rendering lives
// in internal/diagfmt.
package diag

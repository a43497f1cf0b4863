// Package tvm is a small Triton-style stack machine: it parses and links the
// textual assembly produced by the emitter, executes it, and packages the run
// as STARK-shaped artifacts (parameters, claim, proof).
//
// The engine is a reference stand-in for a real prover. It executes the
// program faithfully and commits to the execution trace with a SHA3-256
// Merkle root, but it makes no zero-knowledge claim.
package tvm

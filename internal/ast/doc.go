// Package ast holds the syntax tree of ashlang sources: one File per source
// unit, each carrying one or more Func definitions.
package ast

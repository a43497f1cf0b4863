package compiler

// builtin is a reserved function lowered to a fixed instruction sequence
// applied to its already evaluated arguments.
type builtin struct {
	arity   int
	returns int
	code    []Instruction
}

var builtins = map[string]builtin{
	"read":      {arity: 0, returns: 1, code: []Instruction{opN(OpReadIO, 1)}},
	"secret":    {arity: 0, returns: 1, code: []Instruction{opN(OpDivine, 1)}},
	"write":     {arity: 1, returns: 0, code: []Instruction{opN(OpWriteIO, 1)}},
	"assert":    {arity: 1, returns: 0, code: []Instruction{op(OpAssert)}},
	"assert_eq": {arity: 2, returns: 0, code: []Instruction{op(OpEq), op(OpAssert)}},
	"inv":       {arity: 1, returns: 1, code: []Instruction{op(OpInvert)}},
}

// IsBuiltin reports whether name is reserved for a builtin.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

package compiler

import "fmt"

type LabelKind uint8

const (
	FuncEntry LabelKind = iota
	Then
	Else
	Loop
)

func (k LabelKind) String() string {
	switch k {
	case FuncEntry:
		return "fn"
	case Then:
		return "then"
	case Else:
		return "else"
	case Loop:
		return "loop"
	default:
		return "label"
	}
}

// Label names a jump target. IDs are unique within one Compile run.
type Label struct {
	ID   uint32
	Kind LabelKind
	Hint string // owning function name
}

// String renders the label as it appears in assembly: <kind>_<id>_<hint>.
func (l Label) String() string {
	return fmt.Sprintf("%s_%d_%s", l.Kind, l.ID, l.Hint)
}

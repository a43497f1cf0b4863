package tvm

import (
	"fmt"
	"strconv"
	"strings"

	"ashlang/internal/field"
)

// LineKind distinguishes label definitions from instructions.
type LineKind uint8

const (
	LineInstr LineKind = iota
	LineLabel
)

// Line is one parsed element of the assembly text. A single source line may
// produce several elements, e.g. `main: push 1`.
type Line struct {
	Kind   LineKind
	Number int // 1-based source line
	Col    int // 1-based column of the first token
	Label  string
	Op     Opcode
	Arg    field.Element
	Target string
}

func (l Line) String() string {
	if l.Kind == LineLabel {
		return l.Label + ":"
	}
	switch l.Op.Arg() {
	case ArgNone:
		return l.Op.String()
	case ArgLabel:
		return l.Op.String() + " " + l.Target
	case ArgField:
		return l.Op.String() + " " + l.Arg.String()
	default:
		return l.Op.String() + " " + strconv.FormatUint(l.Arg.Uint64(), 10)
	}
}

type word struct {
	text string
	col  int
}

// Parse reads assembly text. `//` starts a comment running to the end of the
// line.
func Parse(text string) ([]Line, error) {
	var out []Line
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		if idx := strings.Index(raw, "//"); idx >= 0 {
			raw = raw[:idx]
		}
		words := splitWords(raw)
		for j := 0; j < len(words); j++ {
			w := words[j]
			if name, ok := strings.CutSuffix(w.text, ":"); ok {
				if !validLabel(name) {
					return nil, &SyntaxError{Line: lineNo, Col: w.col, Msg: fmt.Sprintf("invalid label %q", name)}
				}
				out = append(out, Line{Kind: LineLabel, Number: lineNo, Col: w.col, Label: name})
				continue
			}
			op, ok := Lookup(w.text)
			if !ok {
				return nil, &SyntaxError{Line: lineNo, Col: w.col, Msg: fmt.Sprintf("unknown instruction %q", w.text)}
			}
			ln := Line{Kind: LineInstr, Number: lineNo, Col: w.col, Op: op}
			if op.Arg() != ArgNone {
				if j+1 >= len(words) {
					return nil, &SyntaxError{Line: lineNo, Col: w.col, Msg: fmt.Sprintf("%s expects an argument", op)}
				}
				j++
				if err := parseArg(&ln, words[j]); err != nil {
					return nil, err
				}
			}
			out = append(out, ln)
		}
	}
	return out, nil
}

func parseArg(ln *Line, w word) error {
	op := ln.Op
	switch op.Arg() {
	case ArgLabel:
		if !validLabel(w.text) {
			return &SyntaxError{Line: ln.Number, Col: w.col, Msg: fmt.Sprintf("invalid label %q", w.text)}
		}
		ln.Target = w.text
	case ArgField:
		v, err := field.Parse(w.text)
		if err != nil {
			return &SyntaxError{Line: ln.Number, Col: w.col, Msg: fmt.Sprintf("%s: %v", op, err)}
		}
		ln.Arg = v
	case ArgCount, ArgStackIndex:
		info := op.info()
		n, err := strconv.ParseUint(w.text, 10, 8)
		if err != nil || n < info.min || n > info.max {
			return &SyntaxError{
				Line: ln.Number,
				Col:  w.col,
				Msg:  fmt.Sprintf("%s argument must be in %d..%d, got %q", op, info.min, info.max, w.text),
			}
		}
		ln.Arg = field.New(n)
	}
	return nil
}

func splitWords(s string) []word {
	var out []word
	start := -1
	for i := 0; i <= len(s); i++ {
		space := i == len(s) || s[i] == ' ' || s[i] == '\t' || s[i] == '\r'
		switch {
		case space && start >= 0:
			out = append(out, word{text: s[start:i], col: start + 1})
			start = -1
		case !space && start < 0:
			start = i
		}
	}
	return out
}

func validLabel(s string) bool {
	if s == "" {
		return false
	}
	if _, isOp := Lookup(s); isOp {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case i > 0 && (c == '-' || (c >= '0' && c <= '9')):
		default:
			return false
		}
	}
	return true
}

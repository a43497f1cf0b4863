// Package emit renders an Instruction Stream as assembly text.
package emit

import (
	"errors"
	"fmt"
	"strings"

	"ashlang/internal/compiler"
	"ashlang/internal/diag"
)

// ConsistencyError reports a stream whose labels do not line up. It points at
// a compiler fault, not at user input.
type ConsistencyError struct {
	Label  string
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("internal consistency fault: label %s %s", e.Label, e.Reason)
}

func (e *ConsistencyError) Code() diag.Code { return diag.GenInconsistency }

var errUnsealed = errors.New("instruction stream is not sealed")

// Options tweaks the text layout. The zero value is the canonical form.
type Options struct {
	// Indent prefixes every non-label line.
	Indent string
}

// Emit renders the prelude followed by the stream, one instruction per line.
func Emit(s *compiler.Stream) (string, error) {
	return EmitWith(s, Options{Indent: "    "})
}

func EmitWith(s *compiler.Stream, opts Options) (string, error) {
	if s == nil || !s.Sealed() {
		return "", errUnsealed
	}
	prelude := s.Prelude()
	body := s.Instructions()
	if err := checkLabels(prelude, body); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow((len(prelude) + len(body)) * 12)
	for _, part := range [][]compiler.Instruction{prelude, body} {
		for _, in := range part {
			if in.Op != compiler.OpLabel {
				sb.WriteString(opts.Indent)
			}
			sb.WriteString(in.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// checkLabels verifies every call target is defined exactly once.
func checkLabels(parts ...[]compiler.Instruction) error {
	defined := make(map[string]int)
	var referenced []string
	for _, part := range parts {
		for _, in := range part {
			switch in.Op {
			case compiler.OpLabel:
				defined[in.Target.String()]++
			case compiler.OpCall:
				referenced = append(referenced, in.Target.String())
			}
		}
	}
	for name, n := range defined {
		if n > 1 {
			return &ConsistencyError{Label: name, Reason: fmt.Sprintf("is defined %d times", n)}
		}
	}
	for _, name := range referenced {
		if defined[name] == 0 {
			return &ConsistencyError{Label: name, Reason: "is referenced but never defined"}
		}
	}
	return nil
}

// Package inputs turns comma-separated command-line values into field
// element sequences for the public and secret input tapes.
package inputs

import (
	"errors"
	"fmt"
	"strings"

	"ashlang/internal/diag"
	"ashlang/internal/field"
)

// Sequence is an ordered list of field elements.
type Sequence []field.Element

// InvalidLiteralError reports a token that is not a canonical field literal.
type InvalidLiteralError struct {
	Token string
	// Position is the 0-based index among the non-empty tokens.
	Position int
	Err      error
}

func (e *InvalidLiteralError) Error() string {
	reason := "not a decimal field element"
	if errors.Is(e.Err, field.ErrNotCanonical) {
		reason = "not below the field modulus"
	}
	return fmt.Sprintf("invalid input literal %q at position %d: %s", e.Token, e.Position, reason)
}

func (e *InvalidLiteralError) Unwrap() error { return e.Err }

func (e *InvalidLiteralError) Code() diag.Code { return diag.InputInvalidLiteral }

// Pack splits raw on ',' and parses every non-empty token. Whitespace around
// tokens is ignored; `-n` denotes the additive inverse of n.
func Pack(raw string) (Sequence, error) {
	out := Sequence{}
	pos := 0
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := field.Parse(tok)
		if err != nil {
			return nil, &InvalidLiteralError{Token: tok, Position: pos, Err: err}
		}
		out = append(out, v)
		pos++
	}
	return out, nil
}

// PackOptional is Pack for a value that may be absent.
func PackOptional(raw *string) (Sequence, error) {
	if raw == nil {
		return Sequence{}, nil
	}
	return Pack(*raw)
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

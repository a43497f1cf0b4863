// Package field implements arithmetic over the Goldilocks prime field
// p = 2^64 - 2^32 + 1, the value domain of the target machine.
//
// Element values are always kept in canonical form (0 <= v < P).
package field

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// P is the field modulus.
const P uint64 = 0xFFFF_FFFF_0000_0001

// epsilon is 2^64 mod P.
const epsilon uint64 = 0xFFFF_FFFF

var (
	// ErrNotCanonical reports a literal whose magnitude is not below P.
	ErrNotCanonical = errors.New("value is not a canonical field element")
	// ErrInverseOfZero reports an attempt to invert zero.
	ErrInverseOfZero = errors.New("inverse of zero")
)

// Element is a canonical field element.
type Element uint64

// Common constants.
const (
	Zero Element = 0
	One  Element = 1
)

// MinusOne is P-1.
var MinusOne = Element(P - 1)

// New reduces v into the field.
func New(v uint64) Element {
	if v >= P {
		v -= P
	}
	return Element(v)
}

// FromInt64 maps a signed integer into the field; negative values wrap around P.
func FromInt64(v int64) Element {
	if v >= 0 {
		return New(uint64(v))
	}
	return New(uint64(-(v + 1))).Neg().Sub(One)
}

// Uint64 returns the canonical representative.
func (e Element) Uint64() uint64 { return uint64(e) }

// IsZero reports whether e == 0.
func (e Element) IsZero() bool { return e == 0 }

// IsU32 reports whether the canonical value fits into 32 bits.
func (e Element) IsU32() bool { return uint64(e) <= 0xFFFF_FFFF }

// Add returns e + o.
func (e Element) Add(o Element) Element {
	s, carry := bits.Add64(uint64(e), uint64(o), 0)
	if carry != 0 {
		// true sum is s + 2^64; subtracting P leaves s + epsilon, which fits
		return Element(s + epsilon)
	}
	if s >= P {
		s -= P
	}
	return Element(s)
}

// Neg returns -e.
func (e Element) Neg() Element {
	if e == 0 {
		return 0
	}
	return Element(P - uint64(e))
}

// Sub returns e - o.
func (e Element) Sub(o Element) Element {
	return e.Add(o.Neg())
}

// Mul returns e * o.
func (e Element) Mul(o Element) Element {
	hi, lo := bits.Mul64(uint64(e), uint64(o))
	return Element(bits.Rem64(hi, lo, P))
}

// Pow returns e^exp.
func (e Element) Pow(exp uint64) Element {
	result := One
	base := e
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// Inverse returns the multiplicative inverse of e.
func (e Element) Inverse() (Element, error) {
	if e == 0 {
		return 0, ErrInverseOfZero
	}
	return e.Pow(P - 2), nil
}

// String renders the canonical decimal representation.
func (e Element) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Parse reads a decimal literal. A leading '-' denotes the additive inverse,
// so "-1" parses to P-1. Magnitudes >= P are rejected with ErrNotCanonical.
func Parse(s string) (Element, error) {
	neg := false
	digits := s
	if strings.HasPrefix(digits, "-") {
		neg = true
		digits = digits[1:]
	}
	if digits == "" || strings.HasPrefix(digits, "+") {
		return 0, fmt.Errorf("parse %q: invalid syntax", s)
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("parse %q: %w", s, ErrNotCanonical)
		}
		return 0, fmt.Errorf("parse %q: invalid syntax", s)
	}
	if v >= P {
		return 0, fmt.Errorf("parse %q: %w", s, ErrNotCanonical)
	}
	e := Element(v)
	if neg {
		e = e.Neg()
	}
	return e, nil
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) Element {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Elements converts raw values into field elements.
func Elements(vs ...uint64) []Element {
	out := make([]Element, len(vs))
	for i, v := range vs {
		out[i] = New(v)
	}
	return out
}

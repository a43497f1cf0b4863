package field

import (
	"errors"
	"testing"
)

func TestAddWrapsAroundModulus(t *testing.T) {
	cases := []struct {
		a, b, want Element
	}{
		{2, 3, 5},
		{MinusOne, 1, 0},
		{MinusOne, MinusOne, Element(P - 2)},
		{Element(P - 10), 20, 10},
	}
	for _, tc := range cases {
		if got := tc.a.Add(tc.b); got != tc.want {
			t.Errorf("%d + %d = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSubAndNeg(t *testing.T) {
	if got := Element(3).Sub(5); got != Element(P-2) {
		t.Fatalf("3 - 5 = %d, want %d", got, P-2)
	}
	if got := Zero.Neg(); got != 0 {
		t.Fatalf("-0 = %d", got)
	}
	if got := One.Neg(); got != MinusOne {
		t.Fatalf("-1 = %d, want %d", got, MinusOne)
	}
}

func TestMul(t *testing.T) {
	if got := Element(6).Mul(7); got != 42 {
		t.Fatalf("6 * 7 = %d", got)
	}
	// (-1)*(-1) = 1
	if got := MinusOne.Mul(MinusOne); got != One {
		t.Fatalf("(-1)^2 = %d", got)
	}
	// 2^32 * 2^32 = 2^64 = 2^32 - 1 (mod p)
	if got := Element(1 << 32).Mul(1 << 32); got != Element(epsilon) {
		t.Fatalf("2^64 mod p = %d, want %d", got, epsilon)
	}
}

func TestInverse(t *testing.T) {
	for _, v := range []Element{1, 2, 7, 1 << 40, MinusOne} {
		inv, err := v.Inverse()
		if err != nil {
			t.Fatalf("inverse(%d): %v", v, err)
		}
		if got := v.Mul(inv); got != One {
			t.Fatalf("%d * inverse = %d, want 1", v, got)
		}
	}
	if _, err := Zero.Inverse(); !errors.Is(err, ErrInverseOfZero) {
		t.Fatalf("expected ErrInverseOfZero, got %v", err)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Element
		wantErr bool
	}{
		{"0", 0, false},
		{"3", 3, false},
		{"18446744069414584320", MinusOne, false},
		{"-1", MinusOne, false},
		{"-0", 0, false},
		{"18446744069414584321", 0, true},
		{"99999999999999999999999", 0, true},
		{"", 0, true},
		{"-", 0, true},
		{"+5", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) = %d, expected error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsNonCanonical(t *testing.T) {
	_, err := Parse("18446744069414584321")
	if !errors.Is(err, ErrNotCanonical) {
		t.Fatalf("expected ErrNotCanonical, got %v", err)
	}
}

func TestFromInt64(t *testing.T) {
	if got := FromInt64(-5); got != Element(P-5) {
		t.Fatalf("FromInt64(-5) = %d", got)
	}
	if got := FromInt64(12); got != 12 {
		t.Fatalf("FromInt64(12) = %d", got)
	}
}

func TestIsU32(t *testing.T) {
	if !Element(0xFFFF_FFFF).IsU32() {
		t.Fatal("2^32-1 must be u32")
	}
	if Element(1 << 32).IsU32() {
		t.Fatal("2^32 must not be u32")
	}
}

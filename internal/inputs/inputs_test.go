package inputs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ashlang/internal/diag"
	"ashlang/internal/field"
)

func TestPack(t *testing.T) {
	cases := []struct {
		raw  string
		want Sequence
	}{
		{"", Sequence{}},
		{",,,", Sequence{}},
		{"1,2,3", Sequence(field.Elements(1, 2, 3))},
		{"1,,2,", Sequence(field.Elements(1, 2))},
		{" 7 , 8 ", Sequence(field.Elements(7, 8))},
		{"-1", Sequence{field.MinusOne}},
		{"18446744069414584320", Sequence{field.MinusOne}},
		{"0", Sequence{field.Zero}},
	}
	for _, tc := range cases {
		got, err := Pack(tc.raw)
		if err != nil {
			t.Fatalf("Pack(%q): %v", tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Pack(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestPackRejects(t *testing.T) {
	cases := []struct {
		raw      string
		token    string
		position int
		modulus  bool
	}{
		{"1,x,3", "x", 1, false},
		{",,abc", "abc", 0, false},
		{"1,18446744069414584321", "18446744069414584321", 1, true},
		{"99999999999999999999999", "99999999999999999999999", 0, true},
		{"1.5", "1.5", 0, false},
		{"--1", "--1", 0, false},
	}
	for _, tc := range cases {
		_, err := Pack(tc.raw)
		var ile *InvalidLiteralError
		if !errors.As(err, &ile) {
			t.Fatalf("Pack(%q): expected InvalidLiteralError, got %v", tc.raw, err)
		}
		if ile.Token != tc.token || ile.Position != tc.position {
			t.Fatalf("Pack(%q): got token %q at %d", tc.raw, ile.Token, ile.Position)
		}
		if errors.Is(err, field.ErrNotCanonical) != tc.modulus {
			t.Fatalf("Pack(%q): modulus error = %v", tc.raw, !tc.modulus)
		}
		if ile.Code() != diag.InputInvalidLiteral {
			t.Fatalf("code = %v", ile.Code())
		}
	}
}

func TestPackOptional(t *testing.T) {
	got, err := PackOptional(nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("PackOptional(nil) = %v, %v", got, err)
	}
	raw := "4,5"
	got, err = PackOptional(&raw)
	if err != nil || got.String() != "4,5" {
		t.Fatalf("PackOptional(%q) = %v, %v", raw, got, err)
	}
}

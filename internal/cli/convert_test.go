package cli

import (
	"errors"
	"testing"

	"github.com/agbru/bitcalc/bits"
	apperrors "github.com/agbru/bitcalc/internal/errors"
)

func TestConvertLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		literal string
		radixes []int
		maxFrac int
		bw      uint
		signed  bool
		forms   map[int]string
	}{
		{
			name:    "Unsigned hex",
			literal: "0x1fu16",
			radixes: []int{2, 10, 16},
			bw:      16,
			forms:   map[int]string{2: "11111", 10: "31", 16: "1f"},
		},
		{
			name:    "Negative signed decimal",
			literal: "-123i64",
			radixes: []int{10, 16},
			bw:      64,
			signed:  true,
			forms:   map[int]string{10: "-123", 16: "-7b"},
		},
		{
			name:    "Implicit binary",
			literal: "1010",
			radixes: []int{10},
			bw:      4,
			forms:   map[int]string{10: "10"},
		},
		{
			name:    "Fixed point",
			literal: "1.5u8f1",
			radixes: []int{10},
			maxFrac: 4,
			bw:      8,
			forms:   map[int]string{10: "1.5"},
		},
		{
			name:    "Negative fixed point",
			literal: "-3.25i8f2",
			radixes: []int{10},
			maxFrac: 4,
			bw:      8,
			signed:  true,
			forms:   map[int]string{10: "-3.25"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := ConvertLiteral(tt.literal, tt.radixes, tt.maxFrac)
			if err != nil {
				t.Fatalf("ConvertLiteral(%q) failed: %v", tt.literal, err)
			}
			if c.Bw != tt.bw {
				t.Errorf("Bw = %d, want %d", c.Bw, tt.bw)
			}
			if c.Signed != tt.signed {
				t.Errorf("Signed = %v, want %v", c.Signed, tt.signed)
			}
			for radix, want := range tt.forms {
				if got := c.Forms[radix]; got != want {
					t.Errorf("Forms[%d] = %q, want %q", radix, got, want)
				}
			}
		})
	}
}

func TestConvertLiteralParseFailure(t *testing.T) {
	t.Parallel()

	_, err := ConvertLiteral("12x34u8", DefaultRadixes, 0)
	if err == nil {
		t.Fatal("expected an error for a malformed literal")
	}

	var evalErr apperrors.EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error %v is not an EvalError", err)
	}
	var perr *bits.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("EvalError should wrap a *bits.ParseError, got %v", err)
	}
	if perr.Kind != bits.KindInvalidChar {
		t.Errorf("Kind = %v, want KindInvalidChar", perr.Kind)
	}
}

func TestConvertLiteralPattern(t *testing.T) {
	t.Parallel()

	// The hex pattern is the raw two's complement bits, not the signed
	// magnitude.
	c, err := ConvertLiteral("-1i8", []int{10}, 0)
	if err != nil {
		t.Fatalf("ConvertLiteral failed: %v", err)
	}
	if c.Hex != "ff" {
		t.Errorf("Hex = %q, want %q", c.Hex, "ff")
	}
	if got := c.Forms[10]; got != "-1" {
		t.Errorf("Forms[10] = %q, want %q", got, "-1")
	}
}

package bits

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		in     string
		u64    uint64
		bw     uint
		signed bool
		hasFp  bool
		fp     int
	}{
		{"0u1", 0, 1, false, false, 0},
		{"123u32", 123, 32, false, false, 0},
		{"-123i64", 0xffffffffffffff85, 64, true, false, 0},
		{"0xffu8", 0xff, 8, false, false, 0},
		{"0xFFu8", 0xff, 8, false, false, 0},
		{"0o17u8", 15, 8, false, false, 0},
		{"0b1010u8", 10, 8, false, false, 0},
		{"1_000u16", 1000, 16, false, false, 0},
		{"0x_ab_cdu16", 0xabcd, 16, false, false, 0},
		{"1e3u16", 1000, 16, false, false, 0},
		{"0x1p2u16", 256, 16, false, false, 0},
		{"1.5e1u8", 15, 8, false, false, 0},
		{"1.5u8f1", 3, 8, false, true, 1},
		{"0.25u8f4", 4, 8, false, true, 4},
		{"-0.5i8f3", 0xfc, 8, true, true, 3},
		// A negative position scales the stored pattern down: 7 * 2^-2
		// rounds to 2.
		{"7i8f-2", 2, 8, true, true, -2},
		{"-128i8", 0x80, 8, true, false, 0},
		{"127i8", 127, 8, true, false, 0},
		// Implicit binary mode: only 0, 1 and _ characters, no suffix.
		{"1010", 10, 4, false, false, 0},
		{"1", 1, 1, false, false, 0},
		{"1_0000_0000", 256, 9, false, false, 0},
	}
	for _, tc := range cases {
		p, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tc.in, err)
			continue
		}
		v, _ := p.Val.Bits().ToU64()
		if v != tc.u64 || p.Val.Bw() != tc.bw {
			t.Errorf("Parse(%q) = %#x at bw %d, want %#x at %d",
				tc.in, v, p.Val.Bw(), tc.u64, tc.bw)
		}
		if p.Signed != tc.signed || p.HasFp != tc.hasFp || p.Fp != tc.fp {
			t.Errorf("Parse(%q) meta = (%v,%v,%d), want (%v,%v,%d)",
				tc.in, p.Signed, p.HasFp, p.Fp, tc.signed, tc.hasFp, tc.fp)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		off  int
	}{
		{"", KindEmpty, 0},
		{"-", KindEmptyInteger, 1},
		{"u8", KindEmptyInteger, 0},
		{"1.u8", KindEmptyFraction, 2},
		{"1eu8", KindEmptyExponent, 2},
		{"1u", KindEmptyBitwidth, 2},
		{"123", KindEmptyBitwidth, 3},
		{"1i8f", KindEmptyFixedPoint, 4},
		{"12xu8", KindInvalidChar, 2},
		{"1.2.3u8", KindInvalidChar, 3},
		{"1u0", KindZeroBitwidth, 2},
		{"-5u8", KindNegativeUnsigned, 0},
		{"1.5u8", KindFractional, 0},
		{"1e-1u8", KindFractional, 0},
		// Exactly integral values still need an f suffix once a fraction
		// or negative exponent appears.
		{"1.0u8", KindFractional, 0},
		{"10e-1u8", KindFractional, 0},
		{"2u1", KindOverflow, 0},
		{"256u8", KindOverflow, 0},
		{"128i8", KindOverflow, 0},
		{"-129i8", KindOverflow, 0},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) err = %v, want *ParseError", tc.in, err)
			continue
		}
		if pe.Kind != tc.kind {
			t.Errorf("Parse(%q) kind = %v, want %v", tc.in, pe.Kind, tc.kind)
		}
		if pe.Off != tc.off {
			t.Errorf("Parse(%q) offset = %d, want %d", tc.in, pe.Off, tc.off)
		}
	}
}

func TestParseRejectsAbsurdWidth(t *testing.T) {
	_, err := Parse("1u99999999999")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != KindOverflow {
		t.Fatalf("absurd width err = %v, want KindOverflow", err)
	}
}

func TestStringRadixAgainstBig(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("StringRadix matches big.Int.Text", prop.ForAll(
		func(bw uint, radix int, seed int64) bool {
			if bw == 0 {
				bw = 1
			}
			rng := rand.New(rand.NewSource(seed))
			x := randExt(rng, bw).Bits()
			got, err := x.StringRadix(radix)
			if err != nil {
				return false
			}
			return got == toBig(x).Text(radix)
		},
		gen.UIntRange(1, 400), gen.IntRange(2, 36), gen.Int64(),
	))

	properties.Property("String round-trips through Parse", prop.ForAll(
		func(bw uint, seed int64) bool {
			if bw == 0 {
				bw = 1
			}
			rng := rand.New(rand.NewSource(seed))
			x := randExt(rng, bw).Bits()
			p, err := Parse(x.String())
			if err != nil {
				return false
			}
			if p.Val.Bw() != bw || p.Signed || p.HasFp {
				return false
			}
			eq, _ := p.Val.Bits().Eq(x)
			return eq
		},
		gen.UIntRange(1, 400), gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestStringRadixRejectsBadRadix(t *testing.T) {
	x := NewExt(8).Bits()
	for _, r := range []int{-1, 0, 1, 37, 100} {
		if _, err := x.StringRadix(r); err == nil {
			t.Errorf("radix %d must be rejected", r)
		}
	}
}

func TestFormatVerbs(t *testing.T) {
	x := ExtFromU64(12, 0xabc).Bits()
	cases := []struct {
		format string
		want   string
	}{
		{"%b", new(big.Int).SetInt64(0xabc).Text(2)},
		{"%o", "5274"},
		{"%d", "2748"},
		{"%x", "abc"},
		{"%X", "ABC"},
		{"%s", "0xabcu12"},
		{"%v", "0xabcu12"},
	}
	for _, tc := range cases {
		if got := fmt.Sprintf(tc.format, x); got != tc.want {
			t.Errorf("Sprintf(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestAssembleRounding(t *testing.T) {
	// Ties round to even: 0.5 at one fraction bit is exactly between 0 and
	// 1 after scaling by 2^0.
	cases := []struct {
		in   string
		want uint64
	}{
		{"0.5u8f0", 0},  // tie, rounds to even 0
		{"1.5u8f0", 2},  // tie, rounds to even 2
		{"0.75u8f1", 2}, // 1.5 after scaling, tie to even 2
		{"0.26u8f2", 1}, // 1.04 rounds down
		{"0.3u8f3", 2},  // 2.4 rounds down
		{"0.7u8f2", 3},  // 2.8 rounds up
	}
	for _, tc := range cases {
		p, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tc.in, err)
			continue
		}
		if v, _ := p.Val.Bits().ToU64(); v != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, v, tc.want)
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add("123u32")
	f.Add("-0.5i8f3")
	f.Add("0x1p2u16")
	f.Add("1010")
	f.Add("0b1_01u7")
	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > 1<<10 {
			t.Skip()
		}
		p, err := Parse(s)
		if err != nil {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) returned a non-taxonomy error: %v", s, err)
			}
			if pe.Off < 0 || pe.Off > len(s) {
				t.Fatalf("Parse(%q) offset %d outside input", s, pe.Off)
			}
			return
		}
		if p.Val == nil || p.Val.Bw() == 0 {
			t.Fatalf("Parse(%q) succeeded with no value", s)
		}
		p.Val.Bits().assertCleared()
	})
}

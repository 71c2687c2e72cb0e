package fp

import (
	stdbits "math/bits"

	abits "github.com/agbru/bitcalc/bits"
)

// StringRadix renders f in the given radix (2 to 36) with exactly maxFrac
// fraction digits. The hidden fraction beyond maxFrac is rounded away with
// ties to even. A negative value gets a leading minus sign; no radix prefix
// or width suffix is attached.
func (f *FP) StringRadix(radix int, maxFrac int) (string, error) {
	if radix < 2 || radix > 36 {
		return "", &abits.ParseError{Kind: abits.KindInvalidRadix}
	}
	if maxFrac < 0 {
		maxFrac = 0
	}
	m := f.bits.Clone()
	mb := m.Bits()
	neg := f.Sign()
	mb.NegAssign(neg)

	// Width for |f| * radix^maxFrac * 2^max(-fp,0), plus headroom for the
	// rounding increment.
	perDigit := uint(stdbits.Len(uint(radix - 1)))
	w := f.Bw() + uint(maxFrac)*perDigit + 2
	if f.fp < 0 {
		w += uint(-f.fp)
	} else if uint(f.fp)+2 > w {
		w = uint(f.fp) + 2
	}
	m.ZeroResize(w)
	if f.fp < 0 {
		mb.ShlAssign(uint(-f.fp))
	}
	for i := 0; i < maxFrac; i++ {
		mb.DigitMulAssign(abits.Digit(radix))
	}
	if f.fp > 0 {
		s := uint(f.fp)
		half, _ := mb.Get(s - 1)
		up := false
		if half {
			odd, _ := mb.Get(s)
			up = odd || mb.Tz() < s-1
		}
		mb.LshrAssign(s)
		mb.IncAssign(up)
	}

	digits, err := mb.StringRadix(radix)
	if err != nil {
		return "", err
	}
	if maxFrac > 0 {
		for len(digits) < maxFrac+1 {
			digits = "0" + digits
		}
		cut := len(digits) - maxFrac
		digits = digits[:cut] + "." + digits[cut:]
	}
	if neg {
		digits = "-" + digits
	}
	return digits, nil
}

// String renders f in decimal with the fraction length implied by the
// fixed point position: enough digits to be exact for binary points, and
// zero digits for non-positive positions.
func (f *FP) String() string {
	frac := 0
	if f.fp > 0 {
		frac = f.fp
	}
	s, err := f.StringRadix(10, frac)
	if err != nil {
		return "<invalid>"
	}
	return s
}

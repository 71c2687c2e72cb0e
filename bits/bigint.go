package bits

import stdbits "math/bits"

// Unbounded little-endian digit-slice helpers backing literal assembly.
// These grow as needed and are only used on the parse path; the view
// operations themselves never allocate beyond documented scratch.

// bigMulAddDigit returns u*m + a, growing u by at most one digit.
func bigMulAddDigit(u []Digit, m, a Digit) []Digit {
	carry := a
	for i := range u {
		lo, hi := widenMulAdd(u[i], m, carry)
		u[i] = lo
		carry = hi
	}
	if carry != 0 {
		u = append(u, carry)
	}
	return u
}

// bigShl returns u << s.
func bigShl(u []Digit, s uint) []Digit {
	u = sigDigits(u)
	if len(u) == 0 || s == 0 {
		return u
	}
	d := int(s / DigitBits)
	b := s % DigitBits
	out := make([]Digit, len(u)+d+1)
	for i := len(u) - 1; i >= 0; i-- {
		out[i+d] |= u[i] << b
		if b != 0 {
			out[i+d+1] |= u[i] >> (DigitBits - b)
		}
	}
	return sigDigits(out)
}

// bigMul returns u*v by schoolbook multiplication.
func bigMul(u, v []Digit) []Digit {
	u = sigDigits(u)
	v = sigDigits(v)
	if len(u) == 0 || len(v) == 0 {
		return nil
	}
	out := make([]Digit, len(u)+len(v))
	for i, d := range u {
		mulDigitAddTrunc(out, i, d, v)
	}
	return sigDigits(out)
}

// bigPow returns radix^n.
func bigPow(radix Digit, n uint) []Digit {
	out := []Digit{1}
	for ; n > 0; n-- {
		out = bigMulAddDigit(out, radix, 0)
	}
	return out
}

// bigCmp compares two magnitudes.
func bigCmp(u, v []Digit) int {
	u = sigDigits(u)
	v = sigDigits(v)
	switch {
	case len(u) < len(v):
		return -1
	case len(u) > len(v):
		return 1
	}
	for i := len(u) - 1; i >= 0; i-- {
		switch {
		case u[i] < v[i]:
			return -1
		case u[i] > v[i]:
			return 1
		}
	}
	return 0
}

// bigSig returns the number of significant bits.
func bigSig(u []Digit) uint {
	u = sigDigits(u)
	if len(u) == 0 {
		return 0
	}
	return uint(len(u)-1)*DigitBits + uint(stdbits.Len(uint(u[len(u)-1])))
}

// bigIsPow2 reports whether u is an exact power of two.
func bigIsPow2(u []Digit) bool {
	ones := 0
	for _, d := range u {
		ones += stdbits.OnesCount(uint(d))
	}
	return ones == 1
}

// bigInc returns u + 1.
func bigInc(u []Digit) []Digit {
	for i := range u {
		u[i]++
		if u[i] != 0 {
			return u
		}
	}
	return append(u, 1)
}

// bigDivRound returns num/den rounded to nearest, ties to even.
// Requires den > 0.
func bigDivRound(num, den []Digit) []Digit {
	num = sigDigits(num)
	den = sigDigits(den)
	var quo, rem []Digit
	switch {
	case bigCmp(num, den) < 0:
		quo = nil
		rem = num
	case len(den) == 1:
		quo = make([]Digit, len(num))
		copy(quo, num)
		rem = []Digit{divDigitInPlace(quo, den[0])}
	default:
		quo = make([]Digit, len(num)-len(den)+1)
		rem = make([]Digit, len(den))
		knuthDivide(quo, rem, num, den)
	}
	// Round half to even on the discarded fraction.
	r2 := bigShl(rem, 1)
	c := bigCmp(r2, den)
	odd := len(quo) > 0 && quo[0]&1 != 0
	if c > 0 || (c == 0 && odd) {
		quo = bigInc(quo)
	}
	return sigDigits(quo)
}

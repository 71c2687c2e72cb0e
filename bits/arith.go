package bits

import stdbits "math/bits"

// Digit is the machine word used for storage and computation. All loops in
// this package operate a digit at a time, never a bit at a time.
type Digit uint

const (
	// DigitBits is the width of a Digit in bits.
	DigitBits = uint(stdbits.UintSize)
	// digitBytes is the width of a Digit in bytes.
	digitBytes = DigitBits / 8
	// maxDigit is the all-ones digit.
	maxDigit = ^Digit(0)
)

// extDigits returns the number of digits needed to store bw bits.
func extDigits(bw uint) int {
	return int((bw + DigitBits - 1) / DigitBits)
}

// widenAdd returns the low digit of x + y + cin together with the carry past
// the digit width. The carry is returned as a full digit (at most 2) so that
// chained accumulation loops never convert through bool.
func widenAdd(x, y, cin Digit) (sum, carry Digit) {
	s, c0 := stdbits.Add(uint(x), uint(y), 0)
	s, c1 := stdbits.Add(s, uint(cin), 0)
	return Digit(s), Digit(c0 + c1)
}

// widenMulAdd returns x*y + add as a (low, high) digit pair. The result
// cannot overflow: (2^W-1)^2 + (2^W-1) < 2^2W.
func widenMulAdd(x, y, add Digit) (lo, hi Digit) {
	h, l := stdbits.Mul(uint(x), uint(y))
	l, c := stdbits.Add(l, uint(add), 0)
	return Digit(l), Digit(h + c)
}

// dDivide divides the double digit (duoLo, duoHi) by the double digit
// (divLo, divHi), returning the quotient and remainder pairs. It panics on a
// zero divisor; callers are expected to have excluded that case.
func dDivide(duoLo, duoHi, divLo, divHi Digit) (quoLo, quoHi, remLo, remHi Digit) {
	if divHi == 0 {
		if divLo == 0 {
			panic("bits: dDivide by zero")
		}
		// Two chained single-digit divisions. bits.Div requires the high
		// input to be less than the divisor, which qHi's remainder ensures.
		qHi := uint(duoHi) / uint(divLo)
		r := uint(duoHi) % uint(divLo)
		qLo, rem := stdbits.Div(r, uint(duoLo), uint(divLo))
		return Digit(qLo), Digit(qHi), Digit(rem), 0
	}
	// divHi != 0: the quotient fits in a single digit. Estimate it from the
	// normalized top digit of the divisor and correct by at most one.
	if duoHi < divHi || (duoHi == divHi && duoLo < divLo) {
		return 0, 0, duoLo, duoHi
	}
	n := uint(stdbits.LeadingZeros(uint(divHi)))
	v1 := divHi<<n | divLo>>1>>(DigitBits-1-n)
	// duo>>1 keeps the dividend high digit strictly below v1.
	tq, _ := stdbits.Div(uint(duoHi)>>1, uint(duoHi)<<(DigitBits-1)|uint(duoLo)>>1, uint(v1))
	tq >>= DigitBits - 1 - n
	if tq != 0 {
		tq--
	}
	// rem = duo - div*tq, then one correction step.
	pHi, pLo := stdbits.Mul(uint(divLo), tq)
	pHi += uint(divHi) * tq
	rLo, b := stdbits.Sub(uint(duoLo), pLo, 0)
	rHi, _ := stdbits.Sub(uint(duoHi), pHi, b)
	if rHi > uint(divHi) || (rHi == uint(divHi) && rLo >= uint(divLo)) {
		tq++
		rLo, b = stdbits.Sub(rLo, uint(divLo), 0)
		rHi, _ = stdbits.Sub(rHi, uint(divHi), b)
	}
	return Digit(tq), 0, Digit(rLo), Digit(rHi)
}

// maskRange returns a digit with bits [lo, hi) set, 0 <= lo <= hi <= DigitBits.
func maskRange(lo, hi uint) Digit {
	if lo >= hi {
		return 0
	}
	m := maxDigit >> (DigitBits - (hi - lo))
	return m << lo
}

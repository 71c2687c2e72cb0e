package bits

import stdbits "math/bits"

// mulDigitAddTrunc adds d * y, shifted left by i digits, into acc,
// truncating everything at or past len(acc). This is the schoolbook inner
// loop shared by all multiply-accumulate operations.
func mulDigitAddTrunc(acc []Digit, i int, d Digit, y []Digit) {
	if d == 0 {
		return
	}
	var carry Digit
	j := 0
	for ; j < len(y) && i+j < len(acc); j++ {
		hi, lo := stdbits.Mul(uint(d), uint(y[j]))
		s, c0 := stdbits.Add(lo, uint(acc[i+j]), 0)
		s, c1 := stdbits.Add(s, uint(carry), 0)
		acc[i+j] = Digit(s)
		// hi <= 2^W-2, so adding both carries cannot overflow.
		carry = Digit(hi + c0 + c1)
	}
	for ; carry != 0 && i+j < len(acc); j++ {
		s, c := stdbits.Add(uint(acc[i+j]), uint(carry), 0)
		acc[i+j] = Digit(s)
		carry = Digit(c)
	}
}

// MulAdd multiply-accumulates: x += lhs * rhs, truncated to Bw. All three
// views must have equal bitwidths. lhs may alias rhs, but x must not alias
// either operand; that fails with ErrAliased.
func (x *Bits) MulAdd(lhs, rhs *Bits) error {
	if x.bw != lhs.bw || x.bw != rhs.bw {
		return ErrWidthMismatch
	}
	if x.sameStorage(lhs) || x.sameStorage(rhs) {
		return ErrAliased
	}
	// Digit pairs whose index sum reaches len(x.raw) cannot contribute and
	// are skipped inside mulDigitAddTrunc.
	for i := range lhs.raw {
		if i >= len(x.raw) {
			break
		}
		mulDigitAddTrunc(x.raw, i, lhs.raw[i], rhs.raw)
	}
	x.clearUnusedBits()
	return nil
}

// ArbUMulAdd multiply-accumulates x += lhs * rhs where lhs, rhs and x may
// all have different bitwidths, treating the operands as unsigned. Neither
// operand needs to be resized to the destination width first, which avoids
// the allocation and copy a pre-extension would cost. x must not alias an
// operand.
func (x *Bits) ArbUMulAdd(lhs, rhs *Bits) error {
	if x.sameStorage(lhs) || x.sameStorage(rhs) {
		return ErrAliased
	}
	// The narrower operand drives the outer loop, bounded additionally by
	// the destination length; the inner loop bounds itself per operand.
	a, b := lhs, rhs
	if len(b.raw) < len(a.raw) {
		a, b = b, a
	}
	for i := range a.raw {
		if i >= len(x.raw) {
			break
		}
		mulDigitAddTrunc(x.raw, i, a.raw[i], b.raw)
	}
	x.clearUnusedBits()
	return nil
}

// ArbIMulAdd is ArbUMulAdd with signed operands. Negative operands are
// negated in place to their magnitudes for the unsigned routine and restored
// bit-for-bit before returning, so lhs and rhs must be mutable for the
// duration of the call but come back unchanged. x must not alias an operand.
func (x *Bits) ArbIMulAdd(lhs, rhs *Bits) error {
	if x.sameStorage(lhs) || x.sameStorage(rhs) {
		return ErrAliased
	}
	same := lhs.sameStorage(rhs) && lhs.bw == rhs.bw
	ls := lhs.Sign()
	rs := rhs.Sign()
	lhs.NegAssign(ls)
	if !same {
		rhs.NegAssign(rs)
	}
	neg := ls != rs
	// x += -p is computed as x = -((-x) + p).
	x.NegAssign(neg)
	err := x.ArbUMulAdd(lhs, rhs)
	x.NegAssign(neg)
	lhs.NegAssign(ls)
	if !same {
		rhs.NegAssign(rs)
	}
	return err
}

// DigitMulAssign multiplies x by the single digit d in place and returns the
// low digit of the overflow, the first DigitBits bits shifted out past Bw.
func (x *Bits) DigitMulAssign(d Digit) Digit {
	var carry Digit
	for i := range x.raw {
		lo, hi := widenMulAdd(x.raw[i], d, carry)
		x.raw[i] = lo
		carry = hi
	}
	if e := x.extra(); e != 0 {
		last := x.raw[len(x.raw)-1]
		carry = carry<<(DigitBits-e) | last>>e
	}
	x.clearUnusedBits()
	return carry
}

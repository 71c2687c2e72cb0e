package bits

// NotAssign inverts every bit.
func (x *Bits) NotAssign() {
	for i := range x.raw {
		x.raw[i] = ^x.raw[i]
	}
	x.clearUnusedBits()
}

// And sets x to x & rhs. Fails with ErrWidthMismatch on unequal bitwidths.
// Because both operands satisfy the unused-bits invariant, the result does
// too and needs no re-clearing; the same holds for Or and Xor.
func (x *Bits) And(rhs *Bits) error {
	if x.bw != rhs.bw {
		return ErrWidthMismatch
	}
	for i := range x.raw {
		x.raw[i] &= rhs.raw[i]
	}
	return nil
}

// Or sets x to x | rhs. Fails with ErrWidthMismatch on unequal bitwidths.
func (x *Bits) Or(rhs *Bits) error {
	if x.bw != rhs.bw {
		return ErrWidthMismatch
	}
	for i := range x.raw {
		x.raw[i] |= rhs.raw[i]
	}
	return nil
}

// Xor sets x to x ^ rhs. Fails with ErrWidthMismatch on unequal bitwidths.
func (x *Bits) Xor(rhs *Bits) error {
	if x.bw != rhs.bw {
		return ErrWidthMismatch
	}
	for i := range x.raw {
		x.raw[i] ^= rhs.raw[i]
	}
	return nil
}

// RangeAnd zeroes every bit outside [start, end). A reversed or empty range
// (start >= end) zeroes the whole value. Fails with ErrOutOfBounds if start
// or end exceeds Bw.
func (x *Bits) RangeAnd(start, end uint) error {
	if start > x.bw || end > x.bw {
		return ErrOutOfBounds
	}
	if start >= end {
		x.ZeroAssign()
		return nil
	}
	for i := range x.raw {
		base := uint(i) * DigitBits
		switch {
		case end <= base || start >= base+DigitBits:
			x.raw[i] = 0
		default:
			lo := uint(0)
			if start > base {
				lo = start - base
			}
			hi := DigitBits
			if end < base+DigitBits {
				hi = end - base
			}
			x.raw[i] &= maskRange(lo, hi)
		}
	}
	return nil
}

// rangeOr sets every bit in [start, end). Internal; bounds are the caller's
// responsibility.
func (x *Bits) rangeOr(start, end uint) {
	for i := range x.raw {
		base := uint(i) * DigitBits
		if end <= base || start >= base+DigitBits {
			continue
		}
		lo := uint(0)
		if start > base {
			lo = start - base
		}
		hi := DigitBits
		if end < base+DigitBits {
			hi = end - base
		}
		x.raw[i] |= maskRange(lo, hi)
	}
	x.clearUnusedBits()
}

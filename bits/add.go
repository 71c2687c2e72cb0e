package bits

// CinSum sets x to lhs + rhs + cin and reports unsigned and signed overflow.
// This is the summation primitive the other additive operations derive from.
// Unsigned overflow is the carry past bit Bw-1. Signed overflow is true only
// when lhs and rhs share a sign and the result's sign differs from it.
// All three views must have equal bitwidths; any of them may alias.
func (x *Bits) CinSum(cin bool, lhs, rhs *Bits) (uof, iof bool, err error) {
	if x.bw != lhs.bw || x.bw != rhs.bw {
		return false, false, ErrWidthMismatch
	}
	// Operand signs are sampled before any digit of x is written, so full
	// self-aliasing (x == lhs == rhs) stays correct.
	ls, rs := lhs.Sign(), rhs.Sign()
	var carry Digit
	if cin {
		carry = 1
	}
	for i := range x.raw {
		x.raw[i], carry = widenAdd(lhs.raw[i], rhs.raw[i], carry)
	}
	if e := x.extra(); e != 0 {
		// Both operands have clean unused bits, so the sum of the top
		// digits is at most 2^(e+1)-1 and the overflow is exactly bit e.
		uof = x.raw[len(x.raw)-1]>>e&1 != 0
	} else {
		uof = carry != 0
	}
	x.clearUnusedBits()
	if ls == rs {
		iof = x.Sign() != ls
	}
	return uof, iof, nil
}

// AddAssign sets x to x + rhs, discarding overflow.
func (x *Bits) AddAssign(rhs *Bits) error {
	_, _, err := x.CinSum(false, x, rhs)
	return err
}

// SubAssign sets x to x - rhs, wrapping on underflow.
func (x *Bits) SubAssign(rhs *Bits) error {
	if x.bw != rhs.bw {
		return ErrWidthMismatch
	}
	// x + ^rhs + 1.
	carry := Digit(1)
	for i := range x.raw {
		x.raw[i], carry = widenAdd(x.raw[i], ^rhs.raw[i], carry)
	}
	x.clearUnusedBits()
	return nil
}

// RsbAssign reverse-subtracts: x = rhs - x.
func (x *Bits) RsbAssign(rhs *Bits) error {
	if x.bw != rhs.bw {
		return ErrWidthMismatch
	}
	carry := Digit(1)
	for i := range x.raw {
		x.raw[i], carry = widenAdd(^x.raw[i], rhs.raw[i], carry)
	}
	x.clearUnusedBits()
	return nil
}

// IncAssign adds cin to x and returns the carry past bit Bw-1.
func (x *Bits) IncAssign(cin bool) bool {
	if !cin {
		return false
	}
	carry := Digit(1)
	for i := 0; carry != 0 && i < len(x.raw); i++ {
		x.raw[i], carry = widenAdd(x.raw[i], 0, carry)
	}
	var out bool
	if e := x.extra(); e != 0 {
		out = x.raw[len(x.raw)-1]>>e&1 != 0
	} else {
		out = carry != 0
	}
	x.clearUnusedBits()
	return out
}

// DecAssign subtracts bin from x and returns the borrow past bit Bw-1, true
// exactly when x wrapped around from zero.
func (x *Bits) DecAssign(bin bool) bool {
	if !bin {
		return false
	}
	wrap := x.IsZero()
	for i := range x.raw {
		if x.raw[i] != 0 {
			x.raw[i]--
			return wrap
		}
		x.raw[i] = maxDigit
	}
	x.clearUnusedBits()
	return wrap
}

// NegAssign two's-complement negates x if neg is true. Negating the signed
// minimum wraps back to itself silently; that is standard two's complement
// behavior and deliberately not reported.
func (x *Bits) NegAssign(neg bool) {
	if !neg {
		return
	}
	x.NotAssign()
	x.IncAssign(true)
}

// AbsAssign replaces x with its two's complement absolute value. The signed
// minimum stays itself, as with NegAssign.
func (x *Bits) AbsAssign() {
	x.NegAssign(x.Sign())
}

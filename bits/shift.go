package bits

// ShlAssign shifts left by s bits, filling with zeros. Fails with
// ErrOutOfBounds if s >= Bw; shift amounts are never clamped.
func (x *Bits) ShlAssign(s uint) error {
	if s >= x.bw {
		return ErrOutOfBounds
	}
	if s == 0 {
		return nil
	}
	d := int(s / DigitBits)
	b := s % DigitBits
	for i := len(x.raw) - 1; i >= 0; i-- {
		var v Digit
		if j := i - d; j >= 0 {
			v = x.raw[j] << b
			if b > 0 && j > 0 {
				v |= x.raw[j-1] >> (DigitBits - b)
			}
		}
		x.raw[i] = v
	}
	x.clearUnusedBits()
	return nil
}

// LshrAssign shifts right logically by s bits. Fails with ErrOutOfBounds if
// s >= Bw.
func (x *Bits) LshrAssign(s uint) error {
	if s >= x.bw {
		return ErrOutOfBounds
	}
	if s == 0 {
		return nil
	}
	d := int(s / DigitBits)
	b := s % DigitBits
	for i := 0; i < len(x.raw); i++ {
		var v Digit
		if j := i + d; j < len(x.raw) {
			v = x.raw[j] >> b
			if b > 0 && j+1 < len(x.raw) {
				v |= x.raw[j+1] << (DigitBits - b)
			}
		}
		x.raw[i] = v
	}
	// A logical shift of a clean view cannot set unused bits.
	x.assertCleared()
	return nil
}

// AshrAssign shifts right arithmetically by s bits, filling with the sign
// bit. Fails with ErrOutOfBounds if s >= Bw.
func (x *Bits) AshrAssign(s uint) error {
	sign := x.Sign()
	if err := x.LshrAssign(s); err != nil {
		return err
	}
	if sign && s > 0 {
		x.rangeOr(x.bw-s, x.bw)
	}
	return nil
}

// RotlAssign rotates left by s bits. Fails with ErrOutOfBounds if s >= Bw.
func (x *Bits) RotlAssign(s uint) error {
	if s >= x.bw {
		return ErrOutOfBounds
	}
	if s == 0 {
		return nil
	}
	tmp := make([]Digit, len(x.raw))
	copy(tmp, x.raw)
	t := Bits{raw: tmp, bw: x.bw}
	// x = (x << s) | (x >> (bw-s)), both shifts in bounds since 0 < s < bw.
	_ = x.ShlAssign(s)
	_ = t.LshrAssign(x.bw - s)
	for i := range x.raw {
		x.raw[i] |= t.raw[i]
	}
	return nil
}

// RotrAssign rotates right by s bits. Fails with ErrOutOfBounds if s >= Bw.
func (x *Bits) RotrAssign(s uint) error {
	if s >= x.bw {
		return ErrOutOfBounds
	}
	if s == 0 {
		return nil
	}
	return x.RotlAssign(x.bw - s)
}

// Funnel performs a funnel shift: it copies Bw consecutive bits starting at
// bit position shift out of the double-width source src into x. The width
// relations are strict preconditions, not clamped: Bw must be a power of two
// with src.Bw == 2*Bw and 1 << shift.Bw == Bw exactly; otherwise the
// operation fails with ErrWidthMismatch. Any representable shift amount is
// therefore in bounds by construction.
func (x *Bits) Funnel(src, shift *Bits) error {
	if shift.bw >= DigitBits || uint(1)<<shift.bw != x.bw || src.bw != 2*x.bw {
		return ErrWidthMismatch
	}
	s, _ := shift.ToUsize()
	x.fieldCopy(0, src, s, x.bw)
	x.clearUnusedBits()
	return nil
}

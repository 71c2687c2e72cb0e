package bits

// Resize copies src into x, which may have any bitwidth. Widening fills the
// new high bits with extension; narrowing truncates silently. This is the
// one operation family that takes differing widths by definition, so there
// is no failure signal and no overflow report.
func (x *Bits) Resize(src *Bits, extension bool) {
	if x.bw <= src.bw {
		copy(x.raw, src.raw[:len(x.raw)])
		x.clearUnusedBits()
		return
	}
	n := copy(x.raw, src.raw)
	if !extension {
		for i := n; i < len(x.raw); i++ {
			x.raw[i] = 0
		}
		return
	}
	if e := src.extra(); e != 0 {
		x.raw[n-1] |= maxDigit << e
	}
	for i := n; i < len(x.raw); i++ {
		x.raw[i] = maxDigit
	}
	x.clearUnusedBits()
}

// lostAbove reports whether any bit of x at position >= p is set, for p in
// [0, bw].
func (x *Bits) lostAbove(p uint) bool {
	if p >= x.bw {
		return false
	}
	i := int(p / DigitBits)
	if off := p % DigitBits; off != 0 {
		if x.raw[i]>>off != 0 {
			return true
		}
		i++
	}
	for ; i < len(x.raw); i++ {
		if x.raw[i] != 0 {
			return true
		}
	}
	return false
}

// ZeroResize copies src into x zero-extending on widening, and returns true
// if narrowing discarded a set bit.
func (x *Bits) ZeroResize(src *Bits) bool {
	var overflow bool
	if x.bw < src.bw {
		overflow = src.lostAbove(x.bw)
	}
	x.Resize(src, false)
	return overflow
}

// SignResize copies src into x sign-extending on widening, and returns true
// if narrowing changed the value's two's complement interpretation, that is,
// if any discarded bit disagreed with the preserved sign bit.
func (x *Bits) SignResize(src *Bits) bool {
	var overflow bool
	if x.bw < src.bw {
		// The value fits iff bits [x.bw-1, src.bw) are all identical.
		overflow = !src.uniformFrom(x.bw - 1)
	}
	x.Resize(src, src.Sign())
	return overflow
}

package bits

// digitAt reads DigitBits bits of x starting at bit position p, combining
// the two adjacent digits that a misaligned p straddles. Positions past the
// storage read as zero.
func digitAt(raw []Digit, p uint) Digit {
	i := int(p / DigitBits)
	off := p % DigitBits
	var v Digit
	if i < len(raw) {
		v = raw[i] >> off
	}
	if off != 0 && i+1 < len(raw) {
		v |= raw[i+1] << (DigitBits - off)
	}
	return v
}

// fieldCopy copies width bits from src starting at bit from into x starting
// at bit to. Internal; bounds are the caller's responsibility. When x and
// src share storage the source window is staged through a scratch copy so
// overlapping ranges stay correct.
func (x *Bits) fieldCopy(to uint, src *Bits, from uint, width uint) {
	if width == 0 {
		return
	}
	sraw := src.raw
	if x.sameStorage(src) {
		sraw = make([]Digit, len(src.raw))
		copy(sraw, src.raw)
	}
	pos := uint(0)
	for pos < width {
		dp := to + pos
		di := int(dp / DigitBits)
		doff := dp % DigitBits
		n := DigitBits - doff
		if n > width-pos {
			n = width - pos
		}
		v := digitAt(sraw, from+pos)
		m := maskRange(doff, doff+n)
		x.raw[di] = x.raw[di]&^m | v<<doff&m
		pos += n
	}
}

// Field copies width bits out of src starting at bit from into x starting
// at bit to, straddling digit boundaries as needed. This is the primitive
// arbitrary bit-range copy every concatenation construct lowers to. Fails
// with ErrOutOfBounds if to+width > Bw or from+width > src.Bw; width == 0
// with indices in bounds is a no-op. x and src may share storage.
func (x *Bits) Field(to uint, src *Bits, from uint, width uint) error {
	if width > x.bw || to > x.bw-width || width > src.bw || from > src.bw-width {
		return ErrOutOfBounds
	}
	x.fieldCopy(to, src, from, width)
	x.assertCleared()
	return nil
}

// FieldTo is Field with from == 0.
func (x *Bits) FieldTo(to uint, src *Bits, width uint) error {
	return x.Field(to, src, 0, width)
}

// FieldFrom is Field with to == 0.
func (x *Bits) FieldFrom(src *Bits, from uint, width uint) error {
	return x.Field(0, src, from, width)
}

// FieldBit copies the single bit src[from] to x[to].
func (x *Bits) FieldBit(to uint, src *Bits, from uint) error {
	return x.Field(to, src, from, 1)
}

// Lut treats table as 2^index.Bw equal entries of x's width and copies entry
// number index into x. The widths must satisfy
// table.Bw == Bw << index.Bw exactly, with index.Bw small enough for the
// entry count not to overflow; otherwise the operation fails with
// ErrOutOfBounds.
func (x *Bits) Lut(table, index *Bits) error {
	if index.bw >= DigitBits || x.bw > ^uint(0)>>index.bw || table.bw != x.bw<<index.bw {
		return ErrOutOfBounds
	}
	i, _ := index.ToUsize()
	// Any representable index selects an entry inside the table because
	// index < 2^index.Bw and the width relation is exact.
	x.fieldCopy(0, table, i*x.bw, x.bw)
	x.assertCleared()
	return nil
}

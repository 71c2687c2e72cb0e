// Package fp wraps a bit-string value with signedness and a fixed point
// position. The position Fp is the bit index of the radix point relative to
// bit 0 of the underlying storage, so bit i carries weight 2^(i-Fp);
// negative positions place the radix point below the stored bits.
// Arithmetic between values with different positions aligns them by virtual
// shifting, never by reallocating the operands.
package fp

import (
	"math"

	"github.com/agbru/bitcalc/bits"
)

// MaxWidth bounds both the bitwidth and |Fp| so that derived position
// arithmetic (sums and differences of widths and positions) cannot overflow
// an int.
const MaxWidth = math.MaxInt >> 2

// FP is a fixed-point value: a heap-backed bit string plus interpretation
// metadata. The zero FP is not usable; construct with New or the float
// conversions.
type FP struct {
	signed bool
	fp     int
	bits   *bits.Ext
}

// New wraps b with the given signedness and fixed point position. It
// returns (nil, false) if b's bitwidth or |fp| exceeds MaxWidth. The FP
// takes ownership of b.
func New(signed bool, b *bits.Ext, fp int) (*FP, bool) {
	if b.Bw() > MaxWidth || fp > MaxWidth || fp < -MaxWidth {
		return nil, false
	}
	return &FP{signed: signed, fp: fp, bits: b}, true
}

// Signed reports whether the value is interpreted as two's complement.
func (f *FP) Signed() bool { return f.signed }

// Fp returns the fixed point position.
func (f *FP) Fp() int { return f.fp }

// Bw returns the bitwidth of the underlying storage.
func (f *FP) Bw() uint { return f.bits.Bw() }

// Ext returns the underlying storage wrapper.
func (f *FP) Ext() *bits.Ext { return f.bits }

// Bits returns the view of the underlying storage.
func (f *FP) Bits() *bits.Bits { return f.bits.Bits() }

// Sign reports whether the value is negative: signed with the top bit set.
func (f *FP) Sign() bool { return f.signed && f.bits.Bits().Sign() }

// window computes the overlapping copy window between two fixed-point
// ranges: dest bit (to+i) and src bit (from+i) carry the same weight for
// i in [0, width). A non-overlap leaves width == 0, with from and to
// still describing which side the source falls short on.
func window(dest, src *FP) (to, from, width uint) {
	d := src.fp - dest.fp
	var t, fr int
	if d >= 0 {
		fr = d
	} else {
		t = -d
	}
	w := int(src.Bw()) - fr
	if r := int(dest.Bw()) - t; r < w {
		w = r
	}
	if w < 0 {
		w = 0
	}
	return uint(t), uint(fr), uint(w)
}

// Truncate writes src into dest, treating both as infinite bit strings that
// are zero beyond their stored range: the fixed points are aligned and the
// overlapping window is copied, everything else in dest becomes zero (or
// the sign fill). A negative src is staged through its unsigned magnitude,
// which sidesteps any special casing of the signed minimum, whose
// magnitude-negation wraps to the correct unsigned pattern; src is restored
// bit for bit before returning.
func Truncate(dest, src *FP) {
	sn := src.Sign()
	sb := src.bits.Bits()
	db := dest.bits.Bits()
	sb.NegAssign(sn)
	db.ZeroAssign()
	to, from, width := window(dest, src)
	if width > 0 {
		db.Field(to, sb, from, width)
	}
	db.NegAssign(sn)
	sb.NegAssign(sn)
}

// OTruncate is Truncate with loss reporting. lsb is true when a significant
// bit of the source's magnitude fell below the destination's range, msb
// when one fell above it or when source and destination disagree in sign
// after the operation.
func OTruncate(dest, src *FP) (lsb, msb bool) {
	sn := src.Sign()
	sb := src.bits.Bits()
	db := dest.bits.Bits()
	sb.NegAssign(sn)
	db.ZeroAssign()
	to, from, width := window(dest, src)
	if width > 0 {
		db.Field(to, sb, from, width)
	}
	low := from
	if bw := src.Bw(); low > bw {
		low = bw
	}
	lsb = sb.Tz() < low
	msb = sb.Sig() > from+width
	db.NegAssign(sn)
	sb.NegAssign(sn)
	if dest.Sign() != sn {
		msb = true
	}
	return lsb, msb
}

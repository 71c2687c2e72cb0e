package fp

import (
	"math"

	"github.com/agbru/bitcalc/bits"
)

// FromF64 converts an IEEE 754 double into an exact fixed-point value: a
// signed 54-bit storage holding the (possibly implicit-one extended)
// mantissa, with the fixed point positioned so no precision is lost.
// Infinities and NaN have no finite value and come back as zero, with the
// fixed point still derived from the exponent field.
func FromF64(v float64) *FP {
	b := math.Float64bits(v)
	neg := b>>63 != 0
	exp := int(b >> 52 & 0x7ff)
	mant := b & (1<<52 - 1)
	var fp int
	switch {
	case exp == 0x7ff:
		mant = 0
		neg = false
		fp = 1075 - exp
	case exp == 0:
		fp = 1074
	default:
		mant |= 1 << 52
		fp = 1075 - exp
	}
	e := bits.ExtFromU64(54, mant)
	e.Bits().NegAssign(neg)
	f, _ := New(true, e, fp)
	return f
}

// FromF32 is the single precision analogue of FromF64, using a signed
// 25-bit storage for the 24-bit mantissa.
func FromF32(v float32) *FP {
	b := math.Float32bits(v)
	neg := b>>31 != 0
	exp := int(b >> 23 & 0xff)
	mant := uint64(b & (1<<23 - 1))
	var fp int
	switch {
	case exp == 0xff:
		mant = 0
		neg = false
		fp = 150 - exp
	case exp == 0:
		fp = 149
	default:
		mant |= 1 << 23
		fp = 150 - exp
	}
	e := bits.ExtFromU64(25, mant)
	e.Bits().NegAssign(neg)
	f, _ := New(true, e, fp)
	return f
}

// F64Assign overwrites f with the value of v, aligned to f's existing
// signedness, bitwidth and fixed point. The loss flags are those of
// OTruncate.
func (f *FP) F64Assign(v float64) (lsb, msb bool) {
	return OTruncate(f, FromF64(v))
}

// F32Assign is the single precision analogue of F64Assign.
func (f *FP) F32Assign(v float32) (lsb, msb bool) {
	return OTruncate(f, FromF32(v))
}

// ToF64 converts f to the nearest IEEE 754 double, rounding ties to even.
// Values beyond the double range become infinities.
func (f *FP) ToF64() float64 {
	m := f.bits.Clone()
	mb := m.Bits()
	neg := f.Sign()
	mb.NegAssign(neg)
	sig := mb.Sig()
	if sig == 0 {
		return 0
	}
	exp2 := int(sig) - 1 - f.fp
	var m53 uint64
	if sig <= 53 {
		lo, _ := mb.ToU64()
		m53 = lo << (53 - sig)
	} else {
		drop := sig - 53
		top := bits.NewExt(53)
		top.Bits().FieldFrom(mb, drop, 53)
		m53, _ = top.Bits().ToU64()
		half, _ := mb.Get(drop - 1)
		if half {
			sticky := mb.Tz() < drop-1
			if sticky || m53&1 == 1 {
				m53++
				if m53 == 1<<53 {
					m53 >>= 1
					exp2++
				}
			}
		}
	}
	if exp2 > 1023 {
		return math.Inf(boolSign(neg))
	}
	// m53 has its top bit at position 52, so the value is m53 * 2^(exp2-52).
	// Ldexp handles the subnormal and overflow ranges.
	v := math.Ldexp(float64(m53), exp2-52)
	if neg {
		v = -v
	}
	return v
}

// ToF32 converts f to the nearest IEEE 754 single.
func (f *FP) ToF32() float32 {
	return float32(f.ToF64())
}

func boolSign(neg bool) int {
	if neg {
		return -1
	}
	return 1
}

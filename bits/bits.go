package bits

import stdbits "math/bits"

// debugBits enables internal invariant checks. Violations indicate a bug in
// this package or a caller bypassing the public contract, and panic rather
// than surface as recoverable errors.
const debugBits = true

// Bits is a view of a bit string: a little-endian digit slice plus a logical
// bitwidth. It never owns its storage; views are produced by the Inl and Ext
// wrappers and stay valid for the lifetime of the wrapper that produced them.
//
// Copying a Bits value copies the view, not the digits: both copies alias the
// same storage. Operations with a pointer receiver mutate the viewed digits
// in place.
type Bits struct {
	raw []Digit // len(raw) == extDigits(bw)
	bw  uint    // logical bitwidth, >= 1
}

// newBits wraps a digit slice in a view. Internal; the wrappers guarantee
// the length pairing.
func newBits(raw []Digit, bw uint) Bits {
	b := Bits{raw: raw, bw: bw}
	if debugBits {
		if bw == 0 {
			panic("bits: zero bitwidth view")
		}
		if len(raw) != extDigits(bw) {
			panic("bits: digit count does not match bitwidth")
		}
	}
	return b
}

// Bw returns the logical bitwidth.
func (x *Bits) Bw() uint { return x.bw }

// Len returns the number of storage digits, ceil(Bw/DigitBits).
func (x *Bits) Len() int { return len(x.raw) }

// unused returns the number of unused high bits in the most significant
// digit, in [0, DigitBits).
func (x *Bits) unused() uint {
	return (DigitBits - x.bw%DigitBits) % DigitBits
}

// extra returns bw % DigitBits: the number of significant bits in the most
// significant digit, with 0 meaning the digit is fully used.
func (x *Bits) extra() uint { return x.bw % DigitBits }

// clearUnusedBits zeroes the unused high bits of the most significant digit.
// Every mutating operation that can set them calls this before returning.
func (x *Bits) clearUnusedBits() {
	if e := x.extra(); e != 0 {
		x.raw[len(x.raw)-1] &= maxDigit >> (DigitBits - e)
	}
}

// assertCleared panics if the unused-bits invariant does not hold. Debug only.
func (x *Bits) assertCleared() {
	if !debugBits {
		return
	}
	if e := x.extra(); e != 0 {
		if x.raw[len(x.raw)-1]>>e != 0 {
			panic("bits: unused bits set")
		}
	}
}

// sameStorage reports whether two views alias the same digit storage. Views
// over distinct slices of one array count only when their first digits
// coincide, which is the only aliasing the wrappers can produce.
func (x *Bits) sameStorage(y *Bits) bool {
	return len(x.raw) > 0 && len(y.raw) > 0 && &x.raw[0] == &y.raw[0]
}

// ZeroAssign sets the value to 0.
func (x *Bits) ZeroAssign() {
	clear(x.raw)
}

// CopyAssign copies the value of rhs. Fails with ErrWidthMismatch unless the
// widths agree.
func (x *Bits) CopyAssign(rhs *Bits) error {
	if x.bw != rhs.bw {
		return ErrWidthMismatch
	}
	copy(x.raw, rhs.raw)
	return nil
}

// UMaxAssign sets the value to the unsigned maximum, all ones.
func (x *Bits) UMaxAssign() {
	for i := range x.raw {
		x.raw[i] = maxDigit
	}
	x.clearUnusedBits()
}

// IMaxAssign sets the value to the signed maximum, all ones except the sign
// bit.
func (x *Bits) IMaxAssign() {
	x.UMaxAssign()
	x.raw[len(x.raw)-1] &^= x.signMask()
}

// IMinAssign sets the value to the signed minimum, only the sign bit.
func (x *Bits) IMinAssign() {
	clear(x.raw)
	x.raw[len(x.raw)-1] = x.signMask()
}

// UOneAssign sets the value to 1. For a 1-bit value this coincides with both
// UMax and IMin.
func (x *Bits) UOneAssign() {
	clear(x.raw)
	x.raw[0] = 1
}

// signMask returns the digit mask of the sign bit within the most
// significant digit.
func (x *Bits) signMask() Digit {
	return Digit(1) << ((x.bw - 1) % DigitBits)
}

// Sign reports the sign (most significant) bit.
func (x *Bits) Sign() bool {
	return x.raw[len(x.raw)-1]&x.signMask() != 0
}

// Get returns bit i. Fails with ErrOutOfBounds if i >= Bw.
func (x *Bits) Get(i uint) (bool, error) {
	if i >= x.bw {
		return false, ErrOutOfBounds
	}
	return x.raw[i/DigitBits]>>(i%DigitBits)&1 != 0, nil
}

// Set sets bit i to v. Fails with ErrOutOfBounds if i >= Bw.
func (x *Bits) Set(i uint, v bool) error {
	if i >= x.bw {
		return ErrOutOfBounds
	}
	if v {
		x.raw[i/DigitBits] |= Digit(1) << (i % DigitBits)
	} else {
		x.raw[i/DigitBits] &^= Digit(1) << (i % DigitBits)
	}
	return nil
}

// IsZero reports whether the value is 0.
func (x *Bits) IsZero() bool {
	for _, d := range x.raw {
		if d != 0 {
			return false
		}
	}
	return true
}

// IsUMax reports whether the value is the unsigned maximum.
func (x *Bits) IsUMax() bool {
	last := len(x.raw) - 1
	for _, d := range x.raw[:last] {
		if d != maxDigit {
			return false
		}
	}
	top := maxDigit
	if e := x.extra(); e != 0 {
		top = maxDigit >> (DigitBits - e)
	}
	return x.raw[last] == top
}

// IsIMax reports whether the value is the signed maximum.
func (x *Bits) IsIMax() bool {
	last := len(x.raw) - 1
	for _, d := range x.raw[:last] {
		if d != maxDigit {
			return false
		}
	}
	top := maxDigit
	if e := x.extra(); e != 0 {
		top = maxDigit >> (DigitBits - e)
	}
	return x.raw[last] == top&^x.signMask()
}

// IsIMin reports whether the value is the signed minimum.
func (x *Bits) IsIMin() bool {
	last := len(x.raw) - 1
	for _, d := range x.raw[:last] {
		if d != 0 {
			return false
		}
	}
	return x.raw[last] == x.signMask()
}

// IsUOne reports whether the value is 1.
func (x *Bits) IsUOne() bool {
	if x.raw[0] != 1 {
		return false
	}
	for _, d := range x.raw[1:] {
		if d != 0 {
			return false
		}
	}
	return true
}

// Sig returns the number of significant bits, Bw minus the leading zeros.
func (x *Bits) Sig() uint {
	for i := len(x.raw) - 1; i >= 0; i-- {
		if x.raw[i] != 0 {
			return uint(i)*DigitBits + uint(stdbits.Len(uint(x.raw[i])))
		}
	}
	return 0
}

// Lz returns the number of leading zero bits.
func (x *Bits) Lz() uint { return x.bw - x.Sig() }

// Tz returns the number of trailing zero bits, Bw if the value is 0.
func (x *Bits) Tz() uint {
	for i, d := range x.raw {
		if d != 0 {
			return uint(i)*DigitBits + uint(stdbits.TrailingZeros(uint(d)))
		}
	}
	return x.bw
}

// CountOnes returns the number of set bits.
func (x *Bits) CountOnes() uint {
	var n int
	for _, d := range x.raw {
		n += stdbits.OnesCount(uint(d))
	}
	return uint(n)
}

// U64Assign sets the value to v, truncating if Bw < 64.
func (x *Bits) U64Assign(v uint64) {
	clear(x.raw)
	for i := 0; i < len(x.raw) && v != 0; i++ {
		x.raw[i] = Digit(v)
		v >>= DigitBits - 1
		v >>= 1
	}
	x.clearUnusedBits()
}

// I64Assign sets the value to v with sign extension, truncating if Bw < 64.
func (x *Bits) I64Assign(v int64) {
	for i := range x.raw {
		x.raw[i] = Digit(v)
		v >>= DigitBits - 1
		v >>= 1
	}
	x.clearUnusedBits()
}

// UsizeAssign sets the value to v, truncating if Bw < DigitBits.
func (x *Bits) UsizeAssign(v uint) { x.U64Assign(uint64(v)) }

// U8Assign sets the value to v, truncating if Bw < 8.
func (x *Bits) U8Assign(v uint8) { x.U64Assign(uint64(v)) }

// U16Assign sets the value to v, truncating if Bw < 16.
func (x *Bits) U16Assign(v uint16) { x.U64Assign(uint64(v)) }

// U32Assign sets the value to v, truncating if Bw < 32.
func (x *Bits) U32Assign(v uint32) { x.U64Assign(uint64(v)) }

// I8Assign sets the value to v with sign extension.
func (x *Bits) I8Assign(v int8) { x.I64Assign(int64(v)) }

// I16Assign sets the value to v with sign extension.
func (x *Bits) I16Assign(v int16) { x.I64Assign(int64(v)) }

// I32Assign sets the value to v with sign extension.
func (x *Bits) I32Assign(v int32) { x.I64Assign(int64(v)) }

// IsizeAssign sets the value to v with sign extension.
func (x *Bits) IsizeAssign(v int) { x.I64Assign(int64(v)) }

// ToU64 returns the value as a uint64 and an overflow flag that is true when
// significant bits above bit 63 were discarded.
func (x *Bits) ToU64() (uint64, bool) {
	var v uint64
	for i := 0; i < len(x.raw) && uint(i)*DigitBits < 64; i++ {
		v |= uint64(x.raw[i]) << (uint(i) * DigitBits)
	}
	return v, x.Sig() > 64
}

// ToI64 returns the signed interpretation of the value as an int64 and an
// overflow flag that is true when the value does not fit.
func (x *Bits) ToI64() (int64, bool) {
	u, _ := x.ToU64()
	sign := x.Sign()
	if x.bw < 64 {
		// Sign-extend from bit bw-1.
		if sign {
			u |= ^uint64(0) << (x.bw - 1) << 1
		}
		return int64(u), false
	}
	// All bits at positions 63..bw-1 must equal the sign bit.
	if sign {
		return int64(u), !x.uniformFrom(63)
	}
	return int64(u), x.Sig() > 63
}

// ToUsize returns the value as a uint with an overflow flag.
func (x *Bits) ToUsize() (uint, bool) {
	v, of := x.ToU64()
	if DigitBits < 64 && v>>(DigitBits-1)>>1 != 0 {
		of = true
	}
	return uint(v), of
}

// uniformFrom reports whether all bits at positions in [p, bw) are equal.
// Requires p < bw.
func (x *Bits) uniformFrom(p uint) bool {
	v := x.raw[p/DigitBits]>>(p%DigitBits)&1 != 0
	var want Digit
	if v {
		want = maxDigit
	}
	i := int(p / DigitBits)
	// Partial first digit.
	m := maskRange(p%DigitBits, DigitBits)
	if x.raw[i]&m != want&m {
		return false
	}
	for i++; i < len(x.raw); i++ {
		m = maskRange(0, DigitBits)
		if i == len(x.raw)-1 {
			if e := x.extra(); e != 0 {
				m = maskRange(0, e)
			}
		}
		if x.raw[i]&m != want&m {
			return false
		}
	}
	return true
}

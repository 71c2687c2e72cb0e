package bits

// Ext is the external storage wrapper: a heap allocation of digits plus a
// separately tracked logical bitwidth. Capacity may exceed what the width
// requires so that resizes can reuse the allocation; Reserve and the shrink
// operations manage capacity independently of the logical width.
type Ext struct {
	b Bits
}

// NewExt returns a zeroed Ext of the given bitwidth with exactly the
// capacity the width requires. Panics if bw == 0; a zero width is never
// representable.
func NewExt(bw uint) *Ext {
	if bw == 0 {
		panic("bits: zero Ext bitwidth")
	}
	return &Ext{b: newBits(make([]Digit, extDigits(bw)), bw)}
}

// ExtUMax returns an Ext of width bw set to the unsigned maximum.
func ExtUMax(bw uint) *Ext {
	e := NewExt(bw)
	e.b.UMaxAssign()
	return e
}

// ExtIMax returns an Ext of width bw set to the signed maximum.
func ExtIMax(bw uint) *Ext {
	e := NewExt(bw)
	e.b.IMaxAssign()
	return e
}

// ExtIMin returns an Ext of width bw set to the signed minimum.
func ExtIMin(bw uint) *Ext {
	e := NewExt(bw)
	e.b.IMinAssign()
	return e
}

// ExtUOne returns an Ext of width bw set to 1.
func ExtUOne(bw uint) *Ext {
	e := NewExt(bw)
	e.b.UOneAssign()
	return e
}

// ExtFromU64 returns an Ext of width bw holding v, truncated to bw.
func ExtFromU64(bw uint, v uint64) *Ext {
	e := NewExt(bw)
	e.b.U64Assign(v)
	return e
}

// ExtFromI64 returns an Ext of width bw holding v, sign extended or
// truncated to bw.
func ExtFromI64(bw uint, v int64) *Ext {
	e := NewExt(bw)
	e.b.I64Assign(v)
	return e
}

// ExtFromRaw returns an Ext of width bw whose digits are copied from raw,
// zero extended if raw is short, with unused bits cleared.
func ExtFromRaw(bw uint, raw []Digit) *Ext {
	e := NewExt(bw)
	copy(e.b.raw, raw)
	e.b.clearUnusedBits()
	return e
}

// Bw returns the logical bitwidth.
func (e *Ext) Bw() uint { return e.b.bw }

// Cap returns the digit capacity of the current allocation.
func (e *Ext) Cap() int { return cap(e.b.raw) }

// Bits returns the view of the stored value. The pointer stays valid until
// the next capacity-changing call (Reserve, ShrinkTo, ShrinkToFit, Resize
// and friends), which may move the storage.
func (e *Ext) Bits() *Bits { return &e.b }

// Clone returns a deep copy holding exactly the logical digits; spare
// capacity is not carried over.
func (e *Ext) Clone() *Ext {
	n := NewExt(e.b.bw)
	copy(n.b.raw, e.b.raw)
	return n
}

// Reserve grows the capacity by at least additional digits beyond the
// current logical requirement. It never shrinks and never changes the
// logical width or value.
func (e *Ext) Reserve(additional int) {
	want := len(e.b.raw) + additional
	if want <= cap(e.b.raw) {
		return
	}
	raw := make([]Digit, len(e.b.raw), want)
	copy(raw, e.b.raw)
	e.b.raw = raw
}

// ShrinkTo reduces the capacity to at most minCap digits, bounded below by
// what the logical width requires. The value is unchanged.
func (e *Ext) ShrinkTo(minCap int) {
	need := len(e.b.raw)
	if minCap < need {
		minCap = need
	}
	if cap(e.b.raw) <= minCap {
		return
	}
	raw := make([]Digit, need, minCap)
	copy(raw, e.b.raw)
	e.b.raw = raw
}

// ShrinkToFit drops all spare capacity.
func (e *Ext) ShrinkToFit() { e.ShrinkTo(0) }

// Resize changes the logical bitwidth, filling new high bits with extension
// on widening and truncating silently on narrowing. Storage is reused in
// place when capacity allows, otherwise reallocated. Panics if newBw == 0.
func (e *Ext) Resize(newBw uint, extension bool) {
	if newBw == 0 {
		panic("bits: zero Ext bitwidth")
	}
	oldBw := e.b.bw
	oldLen := len(e.b.raw)
	n := extDigits(newBw)
	if n > cap(e.b.raw) {
		raw := make([]Digit, n)
		copy(raw, e.b.raw)
		e.b.raw = raw
	} else {
		raw := e.b.raw[:n]
		for i := oldLen; i < n; i++ {
			raw[i] = 0
		}
		e.b.raw = raw
	}
	if newBw > oldBw {
		if extension {
			old := Bits{raw: e.b.raw[:oldLen], bw: oldBw}
			if ex := old.extra(); ex != 0 {
				e.b.raw[oldLen-1] |= maxDigit << ex
			}
			for i := oldLen; i < n; i++ {
				e.b.raw[i] = maxDigit
			}
		}
	}
	e.b.bw = newBw
	e.b.clearUnusedBits()
}

// ZeroResize is Resize with zero extension, returning true if narrowing
// discarded a set bit.
func (e *Ext) ZeroResize(newBw uint) bool {
	var overflow bool
	if newBw < e.b.bw {
		overflow = e.b.lostAbove(newBw)
	}
	e.Resize(newBw, false)
	return overflow
}

// SignResize is Resize with sign extension, returning true if the value no
// longer fits the narrowed two's complement range. Panics if newBw == 0.
func (e *Ext) SignResize(newBw uint) bool {
	if newBw == 0 {
		panic("bits: zero Ext bitwidth")
	}
	var overflow bool
	sign := e.b.Sign()
	if newBw < e.b.bw {
		overflow = !e.b.uniformFrom(newBw - 1)
	}
	e.Resize(newBw, sign)
	return overflow
}

// String formats the value as hexadecimal with a width suffix.
func (e *Ext) String() string { return e.b.String() }

// MarshalText implements encoding.TextMarshaler by forwarding to the view.
func (e *Ext) MarshalText() ([]byte, error) { return e.b.MarshalText() }

package bits

const (
	// InlDigits is the number of value digits an Inl carries.
	InlDigits = 8
	// InlBits is the largest bitwidth an Inl can store.
	InlBits = InlDigits * DigitBits
)

// Inl is the inline storage wrapper: a fixed-size, stack-resident value
// holding up to InlBits bits. The bitwidth is stored in the final array slot
// rather than a separate field, so the whole wrapper is one flat array. The
// bitwidth is fixed at construction; only the digit contents mutate.
//
// Inl is a plain comparable value: because the unused-bits invariant keeps
// the spare storage zeroed, == on Inl values of equal bitwidth agrees with
// the view's equality, and Inl can be used directly as a map key.
type Inl struct {
	arr [InlDigits + 1]Digit
}

// NewInl returns a zeroed Inl of the given bitwidth. It panics if bw == 0 or
// bw > InlBits: an invalid width/capacity pairing is a construction-time
// contract violation, not a runtime condition. All other constructors share
// this contract and are otherwise total.
func NewInl(bw uint) Inl {
	if bw == 0 || bw > InlBits {
		panic("bits: invalid Inl bitwidth")
	}
	var a Inl
	a.arr[InlDigits] = Digit(bw)
	return a
}

// InlUMax returns an Inl of width bw set to the unsigned maximum.
func InlUMax(bw uint) Inl {
	a := NewInl(bw)
	b := a.Bits()
	b.UMaxAssign()
	return a
}

// InlIMax returns an Inl of width bw set to the signed maximum.
func InlIMax(bw uint) Inl {
	a := NewInl(bw)
	b := a.Bits()
	b.IMaxAssign()
	return a
}

// InlIMin returns an Inl of width bw set to the signed minimum.
func InlIMin(bw uint) Inl {
	a := NewInl(bw)
	b := a.Bits()
	b.IMinAssign()
	return a
}

// InlUOne returns an Inl of width bw set to 1.
func InlUOne(bw uint) Inl {
	a := NewInl(bw)
	b := a.Bits()
	b.UOneAssign()
	return a
}

// InlFromU64 returns an Inl of width bw holding v, truncated to bw.
func InlFromU64(bw uint, v uint64) Inl {
	a := NewInl(bw)
	b := a.Bits()
	b.U64Assign(v)
	return a
}

// InlFromI64 returns an Inl of width bw holding v, sign extended or
// truncated to bw.
func InlFromI64(bw uint, v int64) Inl {
	a := NewInl(bw)
	b := a.Bits()
	b.I64Assign(v)
	return a
}

// InlFromRaw returns an Inl of width bw whose digits are copied from raw,
// zero extended if raw is short, with unused bits cleared. Intended for
// generated code that has already computed a literal's digit representation.
func InlFromRaw(bw uint, raw []Digit) Inl {
	a := NewInl(bw)
	b := a.Bits()
	copy(b.raw, raw)
	b.clearUnusedBits()
	return a
}

// Bw returns the bitwidth.
func (a *Inl) Bw() uint { return uint(a.arr[InlDigits]) }

// Bits returns a view of the stored value. The view is a value: it aliases
// a's digits (zero copy) and stays valid while a is live. Views obtained
// before a is copied keep aliasing the original.
func (a *Inl) Bits() Bits {
	return newBits(a.arr[:extDigits(a.Bw())], a.Bw())
}

// String formats the value as hexadecimal with a width suffix.
func (a *Inl) String() string {
	b := a.Bits()
	return b.String()
}

// MarshalText implements encoding.TextMarshaler by forwarding to the view.
func (a *Inl) MarshalText() ([]byte, error) {
	b := a.Bits()
	return b.MarshalText()
}

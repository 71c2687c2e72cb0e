package bits

import stdbits "math/bits"

// sigDigits trims trailing zero digits, returning the significant prefix.
func sigDigits(raw []Digit) []Digit {
	n := len(raw)
	for n > 0 && raw[n-1] == 0 {
		n--
	}
	return raw[:n]
}

// divDigitInPlace divides the significant slice u by the single digit d in
// place and returns the remainder. Requires d != 0.
func divDigitInPlace(u []Digit, d Digit) Digit {
	var r uint
	for i := len(u) - 1; i >= 0; i-- {
		var q uint
		q, r = stdbits.Div(r, uint(u[i]), uint(d))
		u[i] = Digit(q)
	}
	return Digit(r)
}

// knuthDivide computes quo, rem = u / v, u % v over digit slices using the
// schoolbook long division with normalized quotient estimation, following
// the classic Algorithm D formulation. Requires len(v) >= 2, v[len(v)-1] != 0
// and len(u) >= len(v). quo needs len(u)-len(v)+1 digits, rem len(v) digits;
// u and v are left unchanged.
func knuthDivide(quo, rem, u, v []Digit) {
	n := len(v)
	m := len(u)
	s := uint(stdbits.LeadingZeros(uint(v[n-1])))
	// Normalized copies; shifting by s==0 degenerates to plain copies since
	// the adjacent-digit term shifts fully out.
	vn := make([]Digit, n)
	for i := n - 1; i > 0; i-- {
		vn[i] = v[i]<<s | v[i-1]>>1>>(DigitBits-1-s)
	}
	vn[0] = v[0] << s
	un := make([]Digit, m+1)
	un[m] = u[m-1] >> 1 >> (DigitBits - 1 - s)
	for i := m - 1; i > 0; i-- {
		un[i] = u[i]<<s | u[i-1]>>1>>(DigitBits-1-s)
	}
	un[0] = u[0] << s

	for j := m - n; j >= 0; j-- {
		// Estimate the quotient digit from the top three dividend digits
		// and the top two divisor digits.
		u2, u1, u0 := uint(un[j+n]), uint(un[j+n-1]), uint(un[j+n-2])
		var qhat, rhat uint
		if u2 >= uint(vn[n-1]) {
			// Normalization makes u2 > vn[n-1] impossible; on equality the
			// true quotient digit is B-1 or one less, fixed by add-back.
			qhat = ^uint(0)
		} else {
			qhat, rhat = stdbits.Div(u2, u1, uint(vn[n-1]))
			for {
				hi, lo := stdbits.Mul(qhat, uint(vn[n-2]))
				if hi < rhat || (hi == rhat && lo <= u0) {
					break
				}
				qhat--
				r, c := stdbits.Add(rhat, uint(vn[n-1]), 0)
				if c != 0 {
					break
				}
				rhat = r
			}
		}
		// Multiply-subtract qhat*vn from the dividend window.
		var mulCarry, borrow uint
		for i := 0; i < n; i++ {
			hi, lo := stdbits.Mul(qhat, uint(vn[i]))
			lo, c := stdbits.Add(lo, mulCarry, 0)
			mulCarry = hi + c
			d, b := stdbits.Sub(uint(un[j+i]), lo, borrow)
			un[j+i] = Digit(d)
			borrow = b
		}
		d, b := stdbits.Sub(uint(un[j+n]), mulCarry, borrow)
		un[j+n] = Digit(d)
		if b != 0 {
			// qhat was one too large; add the divisor back.
			qhat--
			var c uint
			for i := 0; i < n; i++ {
				s2, c2 := stdbits.Add(uint(un[j+i]), uint(vn[i]), c)
				un[j+i] = Digit(s2)
				c = c2
			}
			un[j+n] = Digit(uint(un[j+n]) + c)
		}
		quo[j] = Digit(qhat)
	}
	// Denormalize the remainder.
	for i := 0; i < n-1; i++ {
		rem[i] = un[i]>>s | un[i+1]<<1<<(DigitBits-1-s)
	}
	rem[n-1] = un[n-1] >> s
}

// UDivide computes quo = duo / div and rem = duo % div, treating all views
// as unsigned. All four must have equal bitwidths. quo and rem must not
// alias each other or either source operand (ErrAliased); a zero divisor
// fails with ErrDivideByZero.
func UDivide(quo, rem, duo, div *Bits) error {
	if quo.bw != duo.bw || rem.bw != duo.bw || div.bw != duo.bw {
		return ErrWidthMismatch
	}
	if quo.sameStorage(rem) || quo.sameStorage(duo) || quo.sameStorage(div) ||
		rem.sameStorage(duo) || rem.sameStorage(div) {
		return ErrAliased
	}
	v := sigDigits(div.raw)
	if len(v) == 0 {
		return ErrDivideByZero
	}
	u := sigDigits(duo.raw)
	quo.ZeroAssign()
	rem.ZeroAssign()
	switch {
	case len(u) < len(v):
		copy(rem.raw, u)
	case len(v) == 1:
		copy(quo.raw, u)
		rem.raw[0] = divDigitInPlace(quo.raw[:len(u)], v[0])
	default:
		knuthDivide(quo.raw[:len(u)-len(v)+1], rem.raw[:len(v)], u, v)
	}
	quo.assertCleared()
	rem.assertCleared()
	return nil
}

// IDivide is UDivide with signed operands, truncating the quotient toward
// zero; the remainder takes the dividend's sign. duo and div are negated to
// their magnitudes during the call and restored bit-for-bit before
// returning.
func IDivide(quo, rem, duo, div *Bits) error {
	if quo.bw != duo.bw || rem.bw != duo.bw || div.bw != duo.bw {
		return ErrWidthMismatch
	}
	if quo.sameStorage(rem) || quo.sameStorage(duo) || quo.sameStorage(div) ||
		rem.sameStorage(duo) || rem.sameStorage(div) {
		return ErrAliased
	}
	same := duo.sameStorage(div)
	ds := duo.Sign()
	vs := div.Sign()
	duo.NegAssign(ds)
	if !same {
		div.NegAssign(vs)
	}
	err := UDivide(quo, rem, duo, div)
	duo.NegAssign(ds)
	if !same {
		div.NegAssign(vs)
	}
	if err != nil {
		return err
	}
	quo.NegAssign(ds != vs)
	rem.NegAssign(ds)
	return nil
}

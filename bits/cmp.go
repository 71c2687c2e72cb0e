package bits

// Eq reports whether x == rhs. Fails with ErrWidthMismatch on unequal
// bitwidths.
func (x *Bits) Eq(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	for i := len(x.raw) - 1; i >= 0; i-- {
		if x.raw[i] != rhs.raw[i] {
			return false, nil
		}
	}
	return true, nil
}

// ucmp compares equal-width views as unsigned integers, scanning from the
// most significant digit and short-circuiting on the first difference.
func (x *Bits) ucmp(rhs *Bits) int {
	for i := len(x.raw) - 1; i >= 0; i-- {
		switch {
		case x.raw[i] < rhs.raw[i]:
			return -1
		case x.raw[i] > rhs.raw[i]:
			return 1
		}
	}
	return 0
}

// icmp compares equal-width views as signed integers. The sign bits decide
// before any digit scan; equal signs fall back to the unsigned comparison,
// which orders two's complement values of one sign correctly.
func (x *Bits) icmp(rhs *Bits) int {
	xs, rs := x.Sign(), rhs.Sign()
	switch {
	case xs && !rs:
		return -1
	case !xs && rs:
		return 1
	}
	return x.ucmp(rhs)
}

// Ult reports x < rhs treating both as unsigned. Fails with
// ErrWidthMismatch on unequal bitwidths.
func (x *Bits) Ult(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.ucmp(rhs) < 0, nil
}

// Ule reports x <= rhs treating both as unsigned.
func (x *Bits) Ule(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.ucmp(rhs) <= 0, nil
}

// Ugt reports x > rhs treating both as unsigned.
func (x *Bits) Ugt(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.ucmp(rhs) > 0, nil
}

// Uge reports x >= rhs treating both as unsigned.
func (x *Bits) Uge(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.ucmp(rhs) >= 0, nil
}

// Ilt reports x < rhs treating both as signed.
func (x *Bits) Ilt(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.icmp(rhs) < 0, nil
}

// Ile reports x <= rhs treating both as signed.
func (x *Bits) Ile(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.icmp(rhs) <= 0, nil
}

// Igt reports x > rhs treating both as signed.
func (x *Bits) Igt(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.icmp(rhs) > 0, nil
}

// Ige reports x >= rhs treating both as signed.
func (x *Bits) Ige(rhs *Bits) (bool, error) {
	if x.bw != rhs.bw {
		return false, ErrWidthMismatch
	}
	return x.icmp(rhs) >= 0, nil
}

// TotalCmp is a total order over views of any bitwidth, ordering first by
// bitwidth and then by unsigned magnitude, for use in ordered containers.
// TotalCmp(rhs) == 0 exactly when the bitwidths and all digits are equal.
func (x *Bits) TotalCmp(rhs *Bits) int {
	switch {
	case x.bw < rhs.bw:
		return -1
	case x.bw > rhs.bw:
		return 1
	}
	return x.ucmp(rhs)
}

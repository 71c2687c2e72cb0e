package bits

import (
	"fmt"
	"strconv"
)

// MaxRadix is the largest radix accepted for string conversions.
const MaxRadix = 36

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// maxParseBits caps the intermediate precision a single Parse call may
// demand. Inputs whose exponents or widths would push past it are rejected
// with KindOverflow instead of attempting the allocation.
const maxParseBits = 1 << 24

// log2Tab[r] is log2(r) in 8.8 fixed point, rounded down. Dividing the
// bitwidth by it gives a safe upper bound on the character count for radix
// r without a logarithm call.
var log2Tab = [MaxRadix + 1]uint16{
	0, 0, 256, 405, 512, 594, 661, 718, 768, 811,
	850, 885, 917, 947, 974, 1000, 1024, 1046, 1067, 1087,
	1106, 1124, 1141, 1158, 1173, 1188, 1203, 1217, 1230, 1243,
	1256, 1268, 1280, 1291, 1302, 1313, 1323,
}

// upperChars returns an upper bound on the digits needed to format a bw-bit
// value in the given radix.
func upperChars(bw uint, radix int) int {
	return int(bw)*256/int(log2Tab[radix]) + 2
}

// maxPow returns the largest power of radix that fits in one digit, and its
// exponent.
func maxPow(radix Digit) (p Digit, k int) {
	p, k = radix, 1
	for p <= maxDigit/radix {
		p *= radix
		k++
	}
	return p, k
}

// AppendRadix appends the unsigned value formatted in the given radix to
// dst and returns the extended slice. Lowercase digits, no prefix, no
// leading zeros beyond a lone "0" for a zero value. Radix must be in
// [2, MaxRadix]; otherwise a ParseError of KindInvalidRadix is returned.
func (x *Bits) AppendRadix(dst []byte, radix int) ([]byte, error) {
	if radix < 2 || radix > MaxRadix {
		return dst, &ParseError{Kind: KindInvalidRadix}
	}
	u := sigDigits(x.raw)
	if len(u) == 0 {
		return append(dst, '0'), nil
	}
	scratch := make([]Digit, len(u))
	copy(scratch, u)
	buf := make([]byte, 0, upperChars(x.bw, radix))
	p, k := maxPow(Digit(radix))
	for len(scratch) > 0 {
		r := divDigitInPlace(scratch, p)
		scratch = sigDigits(scratch)
		if len(scratch) > 0 {
			// Inner chunk: exactly k digits, zero padded.
			for i := 0; i < k; i++ {
				buf = append(buf, digitChars[r%Digit(radix)])
				r /= Digit(radix)
			}
		} else {
			for r != 0 {
				buf = append(buf, digitChars[r%Digit(radix)])
				r /= Digit(radix)
			}
		}
	}
	for i := len(buf) - 1; i >= 0; i-- {
		dst = append(dst, buf[i])
	}
	return dst, nil
}

// StringRadix formats the unsigned value in the given radix.
func (x *Bits) StringRadix(radix int) (string, error) {
	b, err := x.AppendRadix(nil, radix)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// String formats the value as 0x<hex>u<bw>.
func (x *Bits) String() string {
	b := append([]byte("0x"), nil...)
	b, _ = x.AppendRadix(b, 16)
	b = append(b, 'u')
	return string(strconv.AppendUint(b, uint64(x.bw), 10))
}

// Format implements fmt.Formatter for the b, o, d, x, X, s and v verbs.
func (x *Bits) Format(f fmt.State, verb rune) {
	var radix int
	upper := false
	switch verb {
	case 'b':
		radix = 2
	case 'o':
		radix = 8
	case 'd':
		radix = 10
	case 'X':
		radix, upper = 16, true
	case 'x':
		radix = 16
	case 's', 'v':
		fmt.Fprint(f, x.String())
		return
	default:
		fmt.Fprintf(f, "%%!%c(bits.Bits=%s)", verb, x.String())
		return
	}
	out, _ := x.AppendRadix(nil, radix)
	if upper {
		for i, c := range out {
			if c >= 'a' && c <= 'z' {
				out[i] = c - 'a' + 'A'
			}
		}
	}
	f.Write(out)
}

// charVal returns the value of c as a digit in the given radix.
// Case-insensitive.
func charVal(c byte, radix int) (Digit, bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return 0, false
	}
	if v >= radix {
		return 0, false
	}
	return Digit(v), true
}

// Parsed is the result of parsing a standalone literal.
type Parsed struct {
	// Val holds the two's complement bit pattern at the literal's width.
	Val *Ext
	// Signed reports whether the literal used the i suffix (or a sign).
	Signed bool
	// HasFp reports whether an f suffix was present.
	HasFp bool
	// Fp is the fixed point position from the f suffix, 0 otherwise.
	Fp int
}

// Parse parses a standalone integer or fixed-point literal.
//
// The grammar is [-]digits with an optional 0x/0o/0b radix prefix (default
// decimal), a mandatory u<width> or i<width> suffix, an optional fraction
// after '.', an optional exponent introduced by 'e' (or 'p' for
// hexadecimal, where 'e' is a digit) whose digits share the body's radix,
// and an optional f<position> fixed point suffix. As a special case, an
// input consisting only of 0, 1 and _ characters with no suffix is an
// unsigned binary literal whose bitwidth is the count of its 0/1
// characters.
//
// Failures are reported as *ParseError carrying a Kind from the closed
// taxonomy and the byte offset of the offending character.
func Parse(s string) (Parsed, error) {
	var p Parsed
	if len(s) == 0 {
		return p, &ParseError{Kind: KindEmpty}
	}
	i := 0
	neg := false
	if s[0] == '-' {
		neg = true
		i = 1
	}
	if i == len(s) {
		return p, &ParseError{Kind: KindEmptyInteger, Off: i}
	}
	if lit := s[i:]; isBinMode(lit) {
		return parseBinMode(lit, i, neg)
	}

	radix := 10
	expMark := byte('e')
	if i+1 < len(s) && s[i] == '0' {
		switch s[i+1] {
		case 'x':
			radix, expMark = 16, 'p'
			i += 2
		case 'o':
			radix = 8
			i += 2
		case 'b':
			radix = 2
			i += 2
		}
	}

	// Integer and fraction digits accumulate into one magnitude; the
	// fraction length folds into the exponent.
	var dig []Digit
	intDigits := 0
	fracDigits := -1
	for ; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			continue
		}
		if c == '.' {
			if fracDigits >= 0 {
				return p, &ParseError{Kind: KindInvalidChar, Off: i}
			}
			fracDigits = 0
			continue
		}
		v, ok := charVal(c, radix)
		if !ok {
			break
		}
		dig = append(dig, v)
		if fracDigits >= 0 {
			fracDigits++
		} else {
			intDigits++
		}
	}
	if intDigits == 0 && fracDigits <= 0 {
		return p, &ParseError{Kind: KindEmptyInteger, Off: i}
	}
	if fracDigits == 0 {
		return p, &ParseError{Kind: KindEmptyFraction, Off: i}
	}

	exp := 0
	if i < len(s) && s[i] == expMark {
		i++
		expNeg := false
		if i < len(s) && s[i] == '-' {
			expNeg = true
			i++
		}
		start := i
		for ; i < len(s); i++ {
			v, ok := charVal(s[i], radix)
			if !ok {
				break
			}
			exp = exp*radix + int(v)
			if exp > maxParseBits {
				return p, &ParseError{Kind: KindOverflow, Off: i}
			}
		}
		if i == start {
			return p, &ParseError{Kind: KindEmptyExponent, Off: i}
		}
		if expNeg {
			exp = -exp
		}
	}

	if i == len(s) || (s[i] != 'u' && s[i] != 'i') {
		off := i
		if i < len(s) {
			return p, &ParseError{Kind: KindInvalidChar, Off: off}
		}
		return p, &ParseError{Kind: KindEmptyBitwidth, Off: off}
	}
	signed := s[i] == 'i'
	i++
	bw, n, err := parseDecimal(s[i:], i)
	if err != nil {
		return p, err
	}
	if n == 0 {
		return p, &ParseError{Kind: KindEmptyBitwidth, Off: i}
	}
	if bw == 0 {
		return p, &ParseError{Kind: KindZeroBitwidth, Off: i}
	}
	i += n

	hasFp := false
	fp := 0
	if i < len(s) && s[i] == 'f' {
		hasFp = true
		i++
		fpNeg := false
		if i < len(s) && s[i] == '-' {
			fpNeg = true
			i++
		}
		v, n, err := parseDecimal(s[i:], i)
		if err != nil {
			return p, err
		}
		if n == 0 {
			return p, &ParseError{Kind: KindEmptyFixedPoint, Off: i}
		}
		i += n
		fp = int(v)
		if fpNeg {
			fp = -fp
		}
	}
	if i != len(s) {
		return p, &ParseError{Kind: KindInvalidChar, Off: i}
	}

	if neg && !signed {
		return p, &ParseError{Kind: KindNegativeUnsigned}
	}
	netExp := exp
	if fracDigits > 0 {
		netExp -= fracDigits
	}
	if !hasFp && netExp < 0 {
		return p, &ParseError{Kind: KindFractional}
	}

	val, perr := assemble(dig, radix, netExp, hasFp, fp, bw, signed, neg)
	if perr != nil {
		return p, perr
	}
	p.Val = val
	p.Signed = signed
	p.HasFp = hasFp
	p.Fp = fp
	return p, nil
}

// isBinMode reports whether lit consists only of implicit-binary-mode
// characters.
func isBinMode(lit string) bool {
	for i := 0; i < len(lit); i++ {
		if lit[i] != '0' && lit[i] != '1' && lit[i] != '_' {
			return false
		}
	}
	return true
}

// parseBinMode handles the implicit binary mode: the bitwidth is the count
// of significant 0/1 characters and the value is that exact bit string.
func parseBinMode(lit string, base int, neg bool) (Parsed, error) {
	var p Parsed
	if neg {
		return p, &ParseError{Kind: KindNegativeUnsigned}
	}
	bw := uint(0)
	for i := 0; i < len(lit); i++ {
		if lit[i] != '_' {
			bw++
		}
	}
	if bw == 0 {
		return p, &ParseError{Kind: KindEmptyInteger, Off: base}
	}
	val := NewExt(bw)
	pos := bw
	for i := 0; i < len(lit); i++ {
		if lit[i] == '_' {
			continue
		}
		pos--
		if lit[i] == '1' {
			val.Bits().Set(pos, true)
		}
	}
	p.Val = val
	return p, nil
}

// parseDecimal reads a run of decimal digits (underscores allowed) and
// returns the value and the input length consumed. Overflow past
// maxParseBits is a KindOverflow error.
func parseDecimal(s string, off int) (uint, int, error) {
	v := uint(0)
	i := 0
	seen := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + uint(c-'0')
		seen++
		if v > maxParseBits {
			return 0, 0, &ParseError{Kind: KindOverflow, Off: off + i}
		}
	}
	return v, func() int {
		if seen == 0 {
			return 0
		}
		return i
	}(), nil
}

// assemble computes round(digits_radix * radix^netExp * 2^fp) and fits the
// magnitude into a fresh Ext of the given width and signedness, negating
// for a negative literal. Rounding is to nearest, ties to even.
func assemble(dig []Digit, radix, netExp int, hasFp bool, fp int, bw uint, signed, neg bool) (*Ext, error) {
	// Refuse computations whose intermediate precision would be absurd.
	est := uint(len(dig))*uint(log2Tab[radix])/256 + 1
	if netExp > 0 {
		est += uint(netExp) * uint(log2Tab[radix]) / 256
	}
	if hasFp {
		est += uint(abs(fp))
	}
	if est > maxParseBits || bw > maxParseBits {
		return nil, &ParseError{Kind: KindOverflow}
	}

	num := []Digit{0}
	for _, d := range dig {
		num = bigMulAddDigit(num, Digit(radix), d)
	}
	if netExp > 0 {
		num = bigMul(num, bigPow(Digit(radix), uint(netExp)))
	}
	if hasFp && fp > 0 {
		num = bigShl(num, uint(fp))
	}
	den := []Digit{1}
	if netExp < 0 {
		den = bigMul(den, bigPow(Digit(radix), uint(-netExp)))
	}
	if hasFp && fp < 0 {
		den = bigShl(den, uint(-fp))
	}
	mag := num
	if len(sigDigits(den)) != 1 || den[0] != 1 {
		mag = bigDivRound(num, den)
	}

	sig := bigSig(mag)
	switch {
	case !signed:
		if sig > bw {
			return nil, &ParseError{Kind: KindOverflow}
		}
	case !neg:
		if sig > bw-1 {
			return nil, &ParseError{Kind: KindOverflow}
		}
	default:
		// A negative literal fits iff |v| <= 2^(bw-1), with equality being
		// exactly the signed minimum.
		if sig > bw || (sig == bw && !bigIsPow2(mag)) {
			return nil, &ParseError{Kind: KindOverflow}
		}
	}
	val := NewExt(bw)
	copy(val.b.raw, sigDigits(mag))
	val.b.clearUnusedBits()
	val.b.NegAssign(neg)
	return val, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

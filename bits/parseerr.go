package bits

import "fmt"

// Kind identifies one failure class from the closed parse error taxonomy.
type Kind int

const (
	// KindEmpty: the input was empty.
	KindEmpty Kind = iota
	// KindEmptyInteger: a prefix or sign implied an integer part but none
	// was present.
	KindEmptyInteger
	// KindEmptyFraction: a '.' was present with no fraction digits.
	KindEmptyFraction
	// KindEmptyExponent: an exponent marker was present with no digits.
	KindEmptyExponent
	// KindEmptyBitwidth: the mandatory u/i width suffix was missing or had
	// no digits.
	KindEmptyBitwidth
	// KindEmptyFixedPoint: an 'f' suffix was present with no position.
	KindEmptyFixedPoint
	// KindInvalidChar: a character invalid for the active radix or grammar
	// position.
	KindInvalidChar
	// KindInvalidRadix: a radix outside [2, MaxRadix].
	KindInvalidRadix
	// KindZeroBitwidth: a u0/i0 suffix; zero widths are never representable.
	KindZeroBitwidth
	// KindWidthMismatch: the parsed width disagrees with a width the
	// context requires.
	KindWidthMismatch
	// KindNegativeUnsigned: a negative sign on an unsigned literal.
	KindNegativeUnsigned
	// KindFractional: the input denotes a non-integer but no fixed point
	// mode was requested.
	KindFractional
	// KindOverflow: the value does not fit the specified width, or the
	// computation would need more resources than Parse will allocate.
	KindOverflow
)

var kindNames = map[Kind]string{
	KindEmpty:            "empty input",
	KindEmptyInteger:     "empty integer part",
	KindEmptyFraction:    "empty fraction part",
	KindEmptyExponent:    "empty exponent",
	KindEmptyBitwidth:    "empty bitwidth",
	KindEmptyFixedPoint:  "empty fixed point position",
	KindInvalidChar:      "invalid character",
	KindInvalidRadix:     "invalid radix",
	KindZeroBitwidth:     "zero bitwidth",
	KindWidthMismatch:    "bitwidth mismatch",
	KindNegativeUnsigned: "negative unsigned value",
	KindFractional:       "fractional value without fixed point",
	KindOverflow:         "overflow",
}

// String returns the short name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseError reports why a string could not be converted to a value. Kind
// distinguishes the failure class; Off is the byte offset of the offending
// character where one exists, so callers can build positional diagnostics.
type ParseError struct {
	Kind Kind
	Off  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Off > 0 {
		return fmt.Sprintf("bits: parse: %s at offset %d", e.Kind, e.Off)
	}
	return "bits: parse: " + e.Kind.String()
}

// Is supports errors.Is against another *ParseError with the same Kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

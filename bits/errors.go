package bits

import "errors"

// Sentinel errors returned by fallible view operations. A non-nil error
// means the operation was not performed at all; destinations are left
// untouched.
var (
	// ErrWidthMismatch is returned by binary operations that require both
	// operands to have the same bitwidth.
	ErrWidthMismatch = errors.New("bits: bitwidth mismatch")

	// ErrOutOfBounds is returned when a bit index, range, width or shift
	// amount falls outside the operand's bitwidth.
	ErrOutOfBounds = errors.New("bits: out of bounds")

	// ErrAliased is returned when a destination shares storage with an
	// operand in an operation that cannot tolerate aliasing.
	ErrAliased = errors.New("bits: aliased operands")

	// ErrDivideByZero is returned by the division operations.
	ErrDivideByZero = errors.New("bits: divide by zero")
)

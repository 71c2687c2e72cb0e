// Package bits implements arbitrary-bitwidth two's complement integer
// arithmetic over little-endian digit (machine word) slices.
//
// The central type is Bits, an unowned view of a digit slice plus a logical
// bitwidth. All arithmetic, bitwise, comparison, shifting, field-extraction
// and conversion operations are defined on Bits, so that the two storage
// strategies — the fixed-capacity Inl and the heap-allocated Ext — share one
// operation set. Storage wrappers hand out views with Bits(); callers perform
// all logic through the view.
//
// A Bits value of bitwidth bw uses ceil(bw/DigitBits) digits. When bw is not
// a multiple of the digit size, the high-order bits of the most significant
// digit beyond bw ("unused bits") always read as zero; every mutating
// operation restores this before returning.
//
// Fallible operations report failure through a small closed set of sentinel
// errors (ErrWidthMismatch, ErrOutOfBounds, ErrAliased, ErrDivideByZero) and
// never perform a partial update when they fail. Conditions under which an
// operation completes but loses information (resize truncation, carry out,
// overflow) are reported as boolean flags, not errors.
package bits

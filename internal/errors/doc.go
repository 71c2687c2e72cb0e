// Package apperrors defines the structured error types shared across the
// converter: configuration errors from flag parsing and evaluation errors
// wrapping a literal that failed to convert. Each class maps to a distinct
// process exit code.
//
// All error types implement Unwrap so errors.Is and errors.As reach the
// underlying cause, including bits.ParseError for offset reporting.
package apperrors

// Package logging provides the structured logging interface used by the
// converter's server and stress modes. The interface hides the zerolog
// backend so callers attach typed fields without importing it directly.
package logging

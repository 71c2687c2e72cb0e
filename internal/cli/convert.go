package cli

import (
	"time"

	"github.com/agbru/bitcalc/bits"
	"github.com/agbru/bitcalc/fp"
	apperrors "github.com/agbru/bitcalc/internal/errors"
)

// DefaultRadixes lists the radixes rendered by the -all flag, in display
// order.
var DefaultRadixes = []int{2, 8, 10, 16}

// Conversion holds the result of evaluating a single literal.
type Conversion struct {
	// Literal is the input as it was given.
	Literal string
	// Bw is the bitwidth of the parsed value.
	Bw uint
	// Signed reports whether the literal used the i suffix or a sign.
	Signed bool
	// HasFp reports whether the literal carried an f fixed point suffix.
	HasFp bool
	// Fp is the fixed point position when HasFp is true.
	Fp int
	// Hex is the raw two's complement bit pattern in hexadecimal.
	Hex string
	// Forms maps each requested radix to the rendered value.
	Forms map[int]string
	// Radixes preserves the requested rendering order for Forms.
	Radixes []int
	// Duration is the time spent parsing and rendering.
	Duration time.Duration
}

// ConvertLiteral parses a literal and renders it in the requested radixes.
// Signed values are rendered with a minus sign, fixed-point values with a
// fractional part up to maxFrac digits. Parse failures are wrapped in an
// *apperrors.EvalError whose cause is the *bits.ParseError.
func ConvertLiteral(literal string, radixes []int, maxFrac int) (*Conversion, error) {
	start := time.Now()

	p, err := bits.Parse(literal)
	if err != nil {
		return nil, apperrors.NewEvalError(literal, err)
	}

	hex, err := p.Val.Bits().StringRadix(16)
	if err != nil {
		return nil, apperrors.NewEvalError(literal, err)
	}

	c := &Conversion{
		Literal: literal,
		Bw:      p.Val.Bw(),
		Signed:  p.Signed,
		HasFp:   p.HasFp,
		Fp:      p.Fp,
		Hex:     hex,
		Forms:   make(map[int]string, len(radixes)),
		Radixes: append([]int(nil), radixes...),
	}
	for _, radix := range radixes {
		s, err := renderForm(p, radix, maxFrac)
		if err != nil {
			return nil, apperrors.NewEvalError(literal, err)
		}
		c.Forms[radix] = s
	}

	c.Duration = time.Since(start)
	return c, nil
}

// renderForm renders a parsed literal's value in one radix.
func renderForm(p bits.Parsed, radix, maxFrac int) (string, error) {
	if p.HasFp {
		f, ok := fp.New(p.Signed, p.Val.Clone(), p.Fp)
		if !ok {
			return "", &bits.ParseError{Kind: bits.KindOverflow}
		}
		return f.StringRadix(radix, maxFrac)
	}
	if p.Signed && p.Val.Bits().Sign() {
		mag := p.Val.Clone()
		mag.Bits().NegAssign(true)
		s, err := mag.Bits().StringRadix(radix)
		if err != nil {
			return "", err
		}
		return "-" + s, nil
	}
	return p.Val.Bits().StringRadix(radix)
}

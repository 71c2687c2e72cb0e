//go:build cgo

package bits

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/ncw/gmp"
)

// gmpOf converts x to a GMP integer through the hexadecimal text form, so
// the oracle never shares code with the digit-slice arithmetic under test.
func gmpOf(t testing.TB, x *Bits) *gmp.Int {
	hex, err := x.StringRadix(16)
	if err != nil {
		t.Fatalf("StringRadix failed: %v", err)
	}
	z, ok := new(gmp.Int).SetString(hex, 16)
	if !ok {
		t.Fatalf("gmp rejected %q", hex)
	}
	return z
}

// TestArithmeticAgainstGMP cross-checks the core ring operations against an
// independent bignum implementation.
func TestArithmeticAgainstGMP(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	modulus := func(bw uint) *gmp.Int {
		return new(gmp.Int).Lsh(gmp.NewInt(1), bw)
	}

	properties.Property("AddAssign agrees with GMP", prop.ForAll(
		func(bw uint, seed int64) bool {
			if bw == 0 {
				bw = 1
			}
			rng := rand.New(rand.NewSource(seed))
			x := randExt(rng, bw)
			y := randExt(rng, bw)
			want := new(gmp.Int).Add(gmpOf(t, x.Bits()), gmpOf(t, y.Bits()))
			want.Mod(want, modulus(bw))
			if err := x.Bits().AddAssign(y.Bits()); err != nil {
				return false
			}
			return gmpOf(t, x.Bits()).Cmp(want) == 0
		},
		gen.UIntRange(1, 500), gen.Int64(),
	))

	properties.Property("MulAdd agrees with GMP", prop.ForAll(
		func(bw uint, seed int64) bool {
			if bw == 0 {
				bw = 1
			}
			rng := rand.New(rand.NewSource(seed))
			x := randExt(rng, bw)
			l := randExt(rng, bw)
			r := randExt(rng, bw)
			want := new(gmp.Int).Mul(gmpOf(t, l.Bits()), gmpOf(t, r.Bits()))
			want.Add(want, gmpOf(t, x.Bits()))
			want.Mod(want, modulus(bw))
			if err := x.Bits().MulAdd(l.Bits(), r.Bits()); err != nil {
				return false
			}
			return gmpOf(t, x.Bits()).Cmp(want) == 0
		},
		gen.UIntRange(1, 500), gen.Int64(),
	))

	properties.Property("UDivide agrees with GMP", prop.ForAll(
		func(bw uint, seed int64) bool {
			if bw == 0 {
				bw = 1
			}
			rng := rand.New(rand.NewSource(seed))
			duo := randExt(rng, bw)
			div := randExt(rng, bw)
			if div.Bits().IsZero() {
				div.Bits().UOneAssign()
			}
			quo := NewExt(bw)
			rem := NewExt(bw)
			if err := UDivide(quo.Bits(), rem.Bits(), duo.Bits(), div.Bits()); err != nil {
				return false
			}
			wantQ := new(gmp.Int)
			wantR := new(gmp.Int)
			wantQ.DivMod(gmpOf(t, duo.Bits()), gmpOf(t, div.Bits()), wantR)
			return gmpOf(t, quo.Bits()).Cmp(wantQ) == 0 &&
				gmpOf(t, rem.Bits()).Cmp(wantR) == 0
		},
		gen.UIntRange(1, 500), gen.Int64(),
	))

	properties.TestingRun(t)
}

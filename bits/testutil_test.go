package bits

import (
	"math/big"
	"math/rand"
)

// toBig returns the unsigned value of x as a big.Int.
func toBig(x *Bits) *big.Int {
	words := make([]big.Word, len(x.raw))
	for i, d := range x.raw {
		words[i] = big.Word(d)
	}
	return new(big.Int).SetBits(words)
}

// toBigSigned returns the two's complement interpretation of x.
func toBigSigned(x *Bits) *big.Int {
	v := toBig(x)
	if x.Sign() {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), x.bw))
	}
	return v
}

// fromBig assigns v mod 2^bw to x, so negative values take their two's
// complement pattern.
func fromBig(x *Bits, v *big.Int) {
	m := new(big.Int).Mod(v, new(big.Int).Lsh(big.NewInt(1), x.bw))
	x.ZeroAssign()
	for i, w := range m.Bits() {
		x.raw[i] = Digit(w)
	}
	x.clearUnusedBits()
}

// pow2 returns 2^n.
func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

// randExt returns a fresh Ext of width bw filled from rng.
func randExt(rng *rand.Rand, bw uint) *Ext {
	e := NewExt(bw)
	if err := e.Bits().RandAssign(rng); err != nil {
		panic(err)
	}
	return e
}

package bits

import "io"

// RandAssign fills the value with bytes drawn from r and clears the unused
// bits. Any byte-filling source works: crypto/rand.Reader, a seeded
// math/rand reader in tests, or a recorded stream. The view is unchanged if
// the read fails.
func (x *Bits) RandAssign(r io.Reader) error {
	buf := make([]byte, len(x.raw)*int(digitBytes))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	clear(x.raw)
	for i, b := range buf {
		x.raw[i/int(digitBytes)] |= Digit(b) << (8 * (uint(i) % digitBytes))
	}
	x.clearUnusedBits()
	return nil
}

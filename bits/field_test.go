package bits

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFieldConcrete(t *testing.T) {
	// Copy the low nibble of src into bits [4,8) of an 8-bit destination.
	dst := NewExt(8)
	src := ExtFromU64(8, 0x0a)
	if err := dst.Bits().Field(4, src.Bits(), 0, 4); err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	if v, _ := dst.Bits().ToU64(); v != 0xa0 {
		t.Fatalf("field copy = %#x, want 0xa0", v)
	}

	// Zero width succeeds and changes nothing.
	if err := dst.Bits().Field(8, src.Bits(), 8, 0); err != nil {
		t.Fatalf("zero-width Field failed: %v", err)
	}
	if v, _ := dst.Bits().ToU64(); v != 0xa0 {
		t.Fatalf("zero-width Field changed the value to %#x", v)
	}
}

func TestFieldBounds(t *testing.T) {
	dst := NewExt(8)
	src := NewExt(8)
	cases := []struct {
		to, from, width uint
	}{
		{5, 0, 4},        // to + width > dest bw
		{0, 5, 4},        // from + width > src bw
		{9, 0, 0},        // to > bw even at zero width
		{0, 9, 0},        // from > bw even at zero width
		{0, 0, 9},        // width alone exceeds both
		{^uint(0), 0, 2}, // wraparound attempt
	}
	for _, tc := range cases {
		if err := dst.Bits().Field(tc.to, src.Bits(), tc.from, tc.width); err != ErrOutOfBounds {
			t.Errorf("Field(%d,_,%d,%d) err = %v, want ErrOutOfBounds",
				tc.to, tc.from, tc.width, err)
		}
	}
}

// TestField_PropertyBased checks Field against an independent mask-and-shift
// model on big.Int, including the self-aliasing case.
func TestField_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	fieldModel := func(dst, src *big.Int, to, from, width uint, dstBw uint) *big.Int {
		window := new(big.Int).Rsh(src, from)
		window.And(window, new(big.Int).Sub(pow2(width), big.NewInt(1)))
		mask := new(big.Int).Sub(pow2(width), big.NewInt(1))
		mask.Lsh(mask, to)
		out := new(big.Int).AndNot(dst, mask)
		out.Or(out, window.Lsh(window, to))
		return out.Mod(out, pow2(dstBw))
	}

	properties.Property("Field matches mask-and-shift", prop.ForAll(
		func(bwD, bwS uint, seed int64) bool {
			if bwD == 0 {
				bwD = 1
			}
			if bwS == 0 {
				bwS = 1
			}
			rng := rand.New(rand.NewSource(seed))
			dst := randExt(rng, bwD)
			src := randExt(rng, bwS)
			maxW := bwD
			if bwS < maxW {
				maxW = bwS
			}
			width := uint(rng.Intn(int(maxW) + 1))
			to := uint(rng.Intn(int(bwD-width) + 1))
			from := uint(rng.Intn(int(bwS-width) + 1))

			want := fieldModel(toBig(dst.Bits()), toBig(src.Bits()), to, from, width, bwD)
			if err := dst.Bits().Field(to, src.Bits(), from, width); err != nil {
				return false
			}
			return toBig(dst.Bits()).Cmp(want) == 0
		},
		gen.UIntRange(1, 250), gen.UIntRange(1, 250), gen.Int64(),
	))

	properties.Property("self-aliased Field matches mask-and-shift", prop.ForAll(
		func(bw uint, seed int64) bool {
			if bw == 0 {
				bw = 1
			}
			rng := rand.New(rand.NewSource(seed))
			x := randExt(rng, bw)
			width := uint(rng.Intn(int(bw) + 1))
			to := uint(rng.Intn(int(bw-width) + 1))
			from := uint(rng.Intn(int(bw-width) + 1))

			v := toBig(x.Bits())
			want := fieldModel(v, v, to, from, width, bw)
			if err := x.Bits().Field(to, x.Bits(), from, width); err != nil {
				return false
			}
			return toBig(x.Bits()).Cmp(want) == 0
		},
		gen.UIntRange(1, 250), gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestFieldShorthands(t *testing.T) {
	src := ExtFromU64(8, 0b1011)
	dst := NewExt(8)
	if err := dst.Bits().FieldTo(4, src.Bits(), 4); err != nil {
		t.Fatal(err)
	}
	if v, _ := dst.Bits().ToU64(); v != 0b1011_0000 {
		t.Fatalf("FieldTo = %#b", v)
	}
	dst.Bits().ZeroAssign()
	if err := dst.Bits().FieldFrom(src.Bits(), 1, 3); err != nil {
		t.Fatal(err)
	}
	if v, _ := dst.Bits().ToU64(); v != 0b101 {
		t.Fatalf("FieldFrom = %#b", v)
	}
	dst.Bits().ZeroAssign()
	if err := dst.Bits().FieldBit(7, src.Bits(), 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := dst.Bits().ToU64(); v != 0x80 {
		t.Fatalf("FieldBit = %#x", v)
	}
}

func TestLut(t *testing.T) {
	// A 4-entry table of 8-bit values, selected by a 2-bit index.
	table := NewExt(32)
	for i, v := range []uint64{0x11, 0x22, 0x33, 0x44} {
		entry := ExtFromU64(8, v)
		if err := table.Bits().Field(uint(i)*8, entry.Bits(), 0, 8); err != nil {
			t.Fatal(err)
		}
	}
	out := NewExt(8)
	for i, want := range []uint64{0x11, 0x22, 0x33, 0x44} {
		idx := ExtFromU64(2, uint64(i))
		if err := out.Bits().Lut(table.Bits(), idx.Bits()); err != nil {
			t.Fatalf("Lut(%d) failed: %v", i, err)
		}
		if v, _ := out.Bits().ToU64(); v != want {
			t.Errorf("Lut(%d) = %#x, want %#x", i, v, want)
		}
	}

	// Table width must be exactly entry width << index width.
	badTable := NewExt(33)
	idx := ExtFromU64(2, 0)
	if err := out.Bits().Lut(badTable.Bits(), idx.Bits()); err != ErrWidthMismatch {
		t.Fatalf("Lut bad table err = %v, want ErrWidthMismatch", err)
	}
}

func FuzzField(f *testing.F) {
	f.Add(uint(8), uint(8), uint(4), uint(0), uint(4), int64(1))
	f.Add(uint(100), uint(64), uint(30), uint(10), uint(20), int64(2))
	f.Add(uint(1), uint(1), uint(0), uint(0), uint(1), int64(3))
	f.Fuzz(func(t *testing.T, bwD, bwS, to, from, width uint, seed int64) {
		if bwD == 0 || bwD > 1<<12 || bwS == 0 || bwS > 1<<12 {
			t.Skip()
		}
		rng := rand.New(rand.NewSource(seed))
		dst := randExt(rng, bwD)
		src := randExt(rng, bwS)
		err := dst.Bits().Field(to%(bwD+2), src.Bits(), from%(bwS+2), width%(bwD+2))
		if err != nil && err != ErrOutOfBounds {
			t.Fatalf("unexpected error: %v", err)
		}
		// Whatever happened, the unused-bits invariant must hold.
		dst.Bits().assertCleared()
		src.Bits().assertCleared()
	})
}

package bits

import (
	"encoding/binary"
	"encoding/json"
	"strconv"
)

// Text serialization is a two-field structure: the bitwidth as a decimal
// integer and the value as lowercase unprefixed hexadecimal with no leading
// zeros beyond a lone 0. Parsing the emitted form and re-emitting it
// reproduces it byte for byte. The binary form carries the same pair in
// order without field names.

// MarshalText implements encoding.TextMarshaler, emitting <bw>,<hex>.
func (x *Bits) MarshalText() ([]byte, error) {
	out := strconv.AppendUint(nil, uint64(x.bw), 10)
	out = append(out, ',')
	return x.AppendRadix(out, 16)
}

// UnmarshalText implements encoding.TextUnmarshaler, replacing e with the
// parsed width and value. Failures use the parse error taxonomy.
func (e *Ext) UnmarshalText(text []byte) error {
	i := 0
	bw := uint(0)
	for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
		bw = bw*10 + uint(text[i]-'0')
		if bw > maxParseBits {
			return &ParseError{Kind: KindOverflow, Off: i}
		}
	}
	if i == 0 {
		return &ParseError{Kind: KindEmptyBitwidth}
	}
	if bw == 0 {
		return &ParseError{Kind: KindZeroBitwidth}
	}
	if i == len(text) || text[i] != ',' {
		return &ParseError{Kind: KindInvalidChar, Off: i}
	}
	i++
	if i == len(text) {
		return &ParseError{Kind: KindEmptyInteger, Off: i}
	}
	mag := []Digit{0}
	for ; i < len(text); i++ {
		v, ok := charVal(text[i], 16)
		if !ok {
			return &ParseError{Kind: KindInvalidChar, Off: i}
		}
		mag = bigMulAddDigit(mag, 16, v)
	}
	if bigSig(mag) > bw {
		return &ParseError{Kind: KindOverflow}
	}
	n := NewExt(bw)
	copy(n.b.raw, sigDigits(mag))
	*e = *n
	return nil
}

// extJSON is the human-readable serialization structure.
type extJSON struct {
	Bw uint   `json:"bw"`
	V  string `json:"v"`
}

// MarshalJSON implements json.Marshaler.
func (e *Ext) MarshalJSON() ([]byte, error) {
	hex, err := e.b.StringRadix(16)
	if err != nil {
		return nil, err
	}
	return json.Marshal(extJSON{Bw: e.b.bw, V: hex})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Ext) UnmarshalJSON(data []byte) error {
	var j extJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	text := strconv.AppendUint(nil, uint64(j.Bw), 10)
	text = append(text, ',')
	text = append(text, j.V...)
	return e.UnmarshalText(text)
}

// MarshalBinary implements encoding.BinaryMarshaler: a uvarint bitwidth
// followed by exactly ceil(bw/8) little-endian value bytes.
func (e *Ext) MarshalBinary() ([]byte, error) {
	out := binary.AppendUvarint(nil, uint64(e.b.bw))
	nb := int(e.b.bw+7) / 8
	for i := 0; i < nb; i++ {
		out = append(out, byte(e.b.raw[uint(i)/digitBytes]>>(8*(uint(i)%digitBytes))))
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Ext) UnmarshalBinary(data []byte) error {
	bw, n := binary.Uvarint(data)
	if n <= 0 || bw == 0 || bw > maxParseBits {
		return &ParseError{Kind: KindZeroBitwidth}
	}
	data = data[n:]
	nb := int(bw+7) / 8
	if len(data) != nb {
		return &ParseError{Kind: KindWidthMismatch}
	}
	ne := NewExt(uint(bw))
	for i, b := range data {
		ne.b.raw[uint(i)/digitBytes] |= Digit(b) << (8 * (uint(i) % digitBytes))
	}
	if ne.b.extra() != 0 && ne.b.raw[len(ne.b.raw)-1]>>ne.b.extra() != 0 {
		return &ParseError{Kind: KindOverflow}
	}
	*e = *ne
	return nil
}

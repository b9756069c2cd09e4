package wire

import "math/bits"

const (
	// MaxVarintLen32 is the longest canonical encoding of a 32-bit value.
	MaxVarintLen32 = 5
	// MaxVarintLen64 is the longest canonical encoding of a 64-bit value.
	MaxVarintLen64 = 10
)

// ENCODING

// AppendVarint appends v to b as a base-128 varint.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// DECODING

// ConsumeVarint decodes a varint from the front of b and returns the value and
// the number of bytes consumed.
//
// Encodings longer than MaxVarintLen64 bytes are accepted: the trailing
// continuation bytes are consumed and their bits discarded, matching the
// tolerant behavior of the widely deployed decoders.
func ConsumeVarint(b []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < len(b); i++ {
		c := b[i]
		if i < MaxVarintLen64 {
			v |= uint64(c&0x7F) << (7 * uint(i))
		}
		if c < 0x80 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncated
}

// ConsumeVarint32 decodes a varint and keeps only its low 32 bits. High bits
// carried by an over-long encoding are dropped instead of reported.
func ConsumeVarint32(b []byte) (uint32, int, error) {
	v, n, err := ConsumeVarint(b)
	return uint32(v), n, err
}

// ZIGZAG

// DecodeZigZag32 decodes a zigzag-encoded 32-bit integer
func DecodeZigZag32(encoded uint64) int32 {
	return int32((uint32(encoded) >> 1) ^ uint32(-int32(encoded&1)))
}

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// EncodeZigZag32 encodes a signed 32-bit integer using zigzag encoding
func EncodeZigZag32(v int32) uint64 {
	return uint64((uint32(v) << 1) ^ uint32(v>>31))
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// SIZES

// SizeVarint returns the number of bytes needed to encode the given varint.
//
// Each byte carries 7 bits, so the size is ceil(bitlen/7) with zero taking
// one byte. The multiply-shift is exact for bit lengths 0..64.
func SizeVarint(v uint64) int {
	return int(9*uint32(bits.Len64(v))+64) / 64
}

// SizeVarint32 returns the encoded size of a 32-bit unsigned value (1-5).
func SizeVarint32(v uint32) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	default:
		return 5
	}
}

// SizeInt32 returns the encoded size of an int32 field. Negative values are
// sign-extended to 64 bits on the wire and always take 10 bytes.
func SizeInt32(v int32) int {
	if v < 0 {
		return MaxVarintLen64
	}
	return SizeVarint32(uint32(v))
}

// SizeInt64 returns the encoded size of an int64 field.
func SizeInt64(v int64) int {
	return SizeVarint(uint64(v))
}

// SizeSint32 returns the encoded size of a zigzag sint32 field.
func SizeSint32(v int32) int {
	return SizeVarint(EncodeZigZag32(v))
}

// SizeSint64 returns the encoded size of a zigzag sint64 field.
func SizeSint64(v int64) int {
	return SizeVarint(EncodeZigZag64(v))
}

// SizeBool returns the encoded size of a bool field.
func SizeBool(bool) int {
	return 1
}

// SizeTag returns the encoded size of the tag for fieldNumber. The wire type
// occupies the low three bits and never changes the size.
func SizeTag(fieldNumber FieldNumber) int {
	return SizeVarint32(uint32(MakeTag(fieldNumber, WireVarint)))
}

package wire

import (
	"encoding/binary"
	"math"
)

// ENCODING

// AppendFixed32 appends v in 4-byte little-endian layout.
func AppendFixed32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

// AppendFixed64 appends v in 8-byte little-endian layout.
func AppendFixed64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

// AppendFloat appends the IEEE-754 bits of v as a fixed32.
func AppendFloat(b []byte, v float32) []byte {
	return AppendFixed32(b, math.Float32bits(v))
}

// AppendDouble appends the IEEE-754 bits of v as a fixed64.
func AppendDouble(b []byte, v float64) []byte {
	return AppendFixed64(b, math.Float64bits(v))
}

// DECODING

// ConsumeFixed32 decodes a 32-bit fixed-width value from the front of b.
func ConsumeFixed32(b []byte) (uint32, int, error) {
	if len(b) < Fixed32Size {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(b), Fixed32Size, nil
}

// ConsumeFixed64 decodes a 64-bit fixed-width value from the front of b.
func ConsumeFixed64(b []byte) (uint64, int, error) {
	if len(b) < Fixed64Size {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint64(b), Fixed64Size, nil
}

// SIZES

const (
	// Fixed32Size is the size of a fixed32, sfixed32 or float value.
	Fixed32Size = 4
	// Fixed64Size is the size of a fixed64, sfixed64 or double value.
	Fixed64Size = 8
)

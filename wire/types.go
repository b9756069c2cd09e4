package wire

import "fmt"

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint     WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64    WireType = 1 // fixed64, sfixed64, double
	WireBytes      WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireStartGroup WireType = 3 // deprecated, unsupported
	WireEndGroup   WireType = 4 // deprecated, unsupported
	WireFixed32    WireType = 5 // fixed32, sfixed32, float
)

// String returns the wire type name.
func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireStartGroup:
		return "start_group"
	case WireEndGroup:
		return "end_group"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", int32(wt))
	}
}

// Supported reports whether the wire type can be read and written.
func (wt WireType) Supported() bool {
	switch wt {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
		return true
	}
	return false
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

const (
	MinFieldNumber FieldNumber = 1
	MaxFieldNumber FieldNumber = 1<<29 - 1
)

// Valid reports whether n is a legal field number.
func (n FieldNumber) Valid() bool {
	return n >= MinFieldNumber && n <= MaxFieldNumber
}

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint32

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint32(fieldNumber)<<3 | uint32(wireType)&0x7)
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return tag.FieldNumber(), tag.WireType()
}

// FieldNumber returns the field number packed in the tag.
func (t Tag) FieldNumber() FieldNumber {
	return FieldNumber(t >> 3)
}

// WireType returns the wire type packed in the tag.
func (t Tag) WireType() WireType {
	return WireType(t & 0x7)
}

func (t Tag) String() string {
	return fmt.Sprintf("%d:%s", t.FieldNumber(), t.WireType())
}

package wire

import (
	"bytes"
	"encoding/hex"
	"hash/maphash"
)

var hashSeed = maphash.MakeSeed()

// Bytes is an immutable, owned byte sequence. Equality and hashing are by
// content. The zero value is empty and ready to use.
type Bytes struct {
	data []byte
}

// EmptyBytes is the shared empty value.
var EmptyBytes = Bytes{}

// BytesOf copies b into a new Bytes.
func BytesOf(b []byte) Bytes {
	if len(b) == 0 {
		return EmptyBytes
	}
	return Bytes{data: bytes.Clone(b)}
}

// BytesOfString copies the bytes of s.
func BytesOfString(s string) Bytes {
	if s == "" {
		return EmptyBytes
	}
	return Bytes{data: []byte(s)}
}

// BytesFromMessage captures the serialized form of m.
func BytesFromMessage(m Message) (Bytes, error) {
	b, err := Marshal(m)
	if err != nil {
		return EmptyBytes, err
	}
	return Bytes{data: b}, nil
}

// ownedBytes wraps b without copying; b must not be modified afterwards.
func ownedBytes(b []byte) Bytes {
	if len(b) == 0 {
		return EmptyBytes
	}
	return Bytes{data: b}
}

// Len returns the number of bytes.
func (b Bytes) Len() int { return len(b.data) }

// IsEmpty reports whether b holds no bytes.
func (b Bytes) IsEmpty() bool { return len(b.data) == 0 }

// At returns the byte at index i.
func (b Bytes) At(i int) byte { return b.data[i] }

// Clone returns a mutable copy of the content.
func (b Bytes) Clone() []byte { return bytes.Clone(b.data) }

// AppendTo appends the content to dst.
func (b Bytes) AppendTo(dst []byte) []byte { return append(dst, b.data...) }

// Slice returns a view over the whole content.
func (b Bytes) Slice() BytesSlice {
	return BytesSlice{array: b.data, offset: 0, length: len(b.data)}
}

// Equal reports whether b and o hold the same bytes.
func (b Bytes) Equal(o Bytes) bool { return bytes.Equal(b.data, o.data) }

// Hash returns a content hash, stable for the life of the process.
func (b Bytes) Hash() uint64 { return maphash.Bytes(hashSeed, b.data) }

// String renders the content as hex.
func (b Bytes) String() string { return hex.EncodeToString(b.data) }

// BytesSlice is a non-owning view of length bytes starting at offset in a
// caller-owned array. Reading never copies.
//
// A BytesSlice must not outlive, or observe mutation of, the array it refers
// to. Use ToBytes to detach it.
type BytesSlice struct {
	array  []byte
	offset int
	length int
}

// NewBytesSlice returns a view of array[offset:offset+length]. It panics if the
// range is out of bounds, like slicing does.
func NewBytesSlice(array []byte, offset, length int) BytesSlice {
	_ = array[offset : offset+length]
	return BytesSlice{array: array, offset: offset, length: length}
}

// Len returns the number of bytes in view.
func (s BytesSlice) Len() int { return s.length }

// Offset returns the start of the view in the backing array.
func (s BytesSlice) Offset() int { return s.offset }

// IsEmpty reports whether the view is empty.
func (s BytesSlice) IsEmpty() bool { return s.length == 0 }

// At returns the i-th byte of the view.
func (s BytesSlice) At(i int) byte {
	if i < 0 || i >= s.length {
		panic("wire: BytesSlice index out of range")
	}
	return s.array[s.offset+i]
}

// View returns the viewed bytes, aliasing the backing array.
func (s BytesSlice) View() []byte {
	return s.array[s.offset : s.offset+s.length : s.offset+s.length]
}

// ToBytes copies the view into an owned Bytes.
func (s BytesSlice) ToBytes() Bytes { return BytesOf(s.View()) }

// Equal compares content byte-wise; backing arrays and offsets are ignored.
func (s BytesSlice) Equal(o BytesSlice) bool { return bytes.Equal(s.View(), o.View()) }

// Hash returns a content hash equal to Bytes.Hash for the same content.
func (s BytesSlice) Hash() uint64 { return maphash.Bytes(hashSeed, s.View()) }

// String renders the viewed bytes as hex.
func (s BytesSlice) String() string { return hex.EncodeToString(s.View()) }

// SizeBytes returns the encoded size of a bytes field, prefix included.
func SizeBytes(n int) int {
	return SizeVarint(uint64(n)) + n
}

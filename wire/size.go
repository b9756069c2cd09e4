package wire

// REPEATED FIELDS

// SizeOfRepeated returns the encoded size of an unpacked repeated field: one
// tag per element plus every element's size.
func SizeOfRepeated[T any](fieldNumber FieldNumber, values []T, size func(T) int) int {
	if len(values) == 0 {
		return 0
	}
	total := SizeTag(fieldNumber) * len(values)
	for _, v := range values {
		total += size(v)
	}
	return total
}

// SizeOfPackedPayload returns the byte length of a packed block's payload.
func SizeOfPackedPayload[T any](values []T, size func(T) int) int {
	total := 0
	for _, v := range values {
		total += size(v)
	}
	return total
}

// SizeOfPacked returns the encoded size of a packed repeated field. An empty
// field is not written at all and takes no bytes.
func SizeOfPacked[T any](fieldNumber FieldNumber, values []T, size func(T) int) int {
	if len(values) == 0 {
		return 0
	}
	return SizeTag(fieldNumber) + SizeBytes(SizeOfPackedPayload(values, size))
}

// WritePacked writes values as one packed block under fieldNumber.
func WritePacked[T any](w *Writer, fieldNumber FieldNumber, values []T, size func(T) int, write func(*Writer, T)) {
	if len(values) == 0 {
		return
	}
	w.WriteTag(fieldNumber, WireBytes)
	w.WriteLength(SizeOfPackedPayload(values, size))
	for _, v := range values {
		write(w, v)
	}
}

// Fixed-width sizes for use with the generic helpers.
func SizeFixed32[T ~uint32 | ~int32 | ~float32](T) int { return Fixed32Size }
func SizeFixed64[T ~uint64 | ~int64 | ~float64](T) int { return Fixed64Size }

// DEFAULT-NESS

// IsDefaultScalar reports whether v is its type's zero value and would be
// omitted by proto3 serialization.
func IsDefaultScalar[T comparable](v T) bool {
	var zero T
	return v == zero
}

// IsDefaultBytes reports whether b is empty.
func IsDefaultBytes(b Bytes) bool { return b.IsEmpty() }

// IsDefaultRepeated reports whether a repeated field has no elements.
func IsDefaultRepeated[T any](values []T) bool { return len(values) == 0 }

// IsDefaultMap reports whether a map field has no entries.
func IsDefaultMap[K comparable, V any](m map[K]V) bool { return len(m) == 0 }

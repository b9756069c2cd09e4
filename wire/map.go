package wire

import (
	"slices"
)

const (
	mapKeyField   FieldNumber = 1
	mapValueField FieldNumber = 2
)

// MapCodec describes how to encode one map field. A map entry is an embedded
// message with the key as field 1 and the value as field 2; both are always
// written, and either may be absent on the wire, leaving its zero value.
type MapCodec[K comparable, V any] struct {
	KeyWireType   WireType
	ValueWireType WireType

	SizeKey   func(K) int
	SizeValue func(V) int

	WriteKey   func(*Writer, K) error
	WriteValue func(*Writer, V) error

	ReadKey   func(*Reader) (K, error)
	ReadValue func(*Reader) (V, error)

	// Compare orders keys on write. When nil, entries follow map iteration
	// order and the output is not deterministic.
	Compare func(a, b K) int
}

func (c MapCodec[K, V]) entrySize(k K, v V) int {
	return SizeTag(mapKeyField) + c.SizeKey(k) + SizeTag(mapValueField) + c.SizeValue(v)
}

// Size returns the encoded size of m as map field fieldNumber.
func (c MapCodec[K, V]) Size(fieldNumber FieldNumber, m map[K]V) int {
	total := 0
	for k, v := range m {
		total += SizeTag(fieldNumber) + SizeBytes(c.entrySize(k, v))
	}
	return total
}

// Write writes every entry of m as map field fieldNumber.
func (c MapCodec[K, V]) Write(w *Writer, fieldNumber FieldNumber, m map[K]V) error {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	if c.Compare != nil {
		slices.SortFunc(keys, c.Compare)
	}
	for _, k := range keys {
		v := m[k]
		w.WriteTag(fieldNumber, WireBytes)
		w.WriteLength(c.entrySize(k, v))
		w.WriteTag(mapKeyField, c.KeyWireType)
		if err := c.WriteKey(w, k); err != nil {
			return err
		}
		w.WriteTag(mapValueField, c.ValueWireType)
		if err := c.WriteValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadEntry reads one map entry; the Reader must be positioned just after
// the map field's tag. Unrecognized entry fields are skipped.
func (c MapCodec[K, V]) ReadEntry(r *Reader) (K, V, error) {
	var (
		key   K
		value V
	)
	err := r.ReadMessage(func(r *Reader) error {
		for {
			tag, err := r.ReadTag()
			if err != nil {
				return err
			}
			switch {
			case tag == 0:
				return nil
			case tag == MakeTag(mapKeyField, c.KeyWireType):
				if key, err = c.ReadKey(r); err != nil {
					return err
				}
			case tag == MakeTag(mapValueField, c.ValueWireType):
				if value, err = c.ReadValue(r); err != nil {
					return err
				}
			default:
				if err := r.Skip(); err != nil {
					return err
				}
			}
		}
	})
	return key, value, err
}

// ReadInto reads one entry and stores it in m, replacing any earlier value
// for the same key.
func (c MapCodec[K, V]) ReadInto(r *Reader, m map[K]V) error {
	k, v, err := c.ReadEntry(r)
	if err != nil {
		return err
	}
	m[k] = v
	return nil
}

package wire

import (
	"fmt"
	"slices"
	"strings"
)

// UnknownKind identifies which wire shape an unknown value was read with.
type UnknownKind uint8

const (
	VarintKind UnknownKind = iota
	Fixed32Kind
	Fixed64Kind
	LengthDelimitedKind
)

// WireType returns the wire type the kind is written with.
func (k UnknownKind) WireType() WireType {
	switch k {
	case Fixed32Kind:
		return WireFixed32
	case Fixed64Kind:
		return WireFixed64
	case LengthDelimitedKind:
		return WireBytes
	default:
		return WireVarint
	}
}

// UnknownField is one occurrence of a field the deserializer did not
// recognize.
type UnknownField struct {
	number FieldNumber
	kind   UnknownKind
	scalar uint64
	data   Bytes
}

// VarintField makes a varint unknown field.
func VarintField(n FieldNumber, v uint64) UnknownField {
	return UnknownField{number: n, kind: VarintKind, scalar: v}
}

// Fixed32Field makes a fixed32 unknown field.
func Fixed32Field(n FieldNumber, v uint32) UnknownField {
	return UnknownField{number: n, kind: Fixed32Kind, scalar: uint64(v)}
}

// Fixed64Field makes a fixed64 unknown field.
func Fixed64Field(n FieldNumber, v uint64) UnknownField {
	return UnknownField{number: n, kind: Fixed64Kind, scalar: v}
}

// LengthDelimitedField makes a length-delimited unknown field.
func LengthDelimitedField(n FieldNumber, b Bytes) UnknownField {
	return UnknownField{number: n, kind: LengthDelimitedKind, data: b}
}

func (f UnknownField) FieldNumber() FieldNumber { return f.number }
func (f UnknownField) Kind() UnknownKind        { return f.kind }
func (f UnknownField) Varint() uint64           { return f.scalar }
func (f UnknownField) Fixed32() uint32          { return uint32(f.scalar) }
func (f UnknownField) Fixed64() uint64          { return f.scalar }
func (f UnknownField) LengthDelimited() Bytes   { return f.data }

// valueSize returns the encoded size of the value, excluding the tag.
func (f UnknownField) valueSize() int {
	switch f.kind {
	case Fixed32Kind:
		return Fixed32Size
	case Fixed64Kind:
		return Fixed64Size
	case LengthDelimitedKind:
		return SizeBytes(f.data.Len())
	default:
		return SizeVarint(f.scalar)
	}
}

// UnknownFieldValues holds every occurrence of one unknown field number,
// partitioned by wire type. Each partition keeps read order.
type UnknownFieldValues struct {
	varints         []uint64
	fixed32s        []uint32
	fixed64s        []uint64
	lengthDelimited []Bytes
}

func (v *UnknownFieldValues) Varints() []uint64        { return slices.Clone(v.varints) }
func (v *UnknownFieldValues) Fixed32s() []uint32       { return slices.Clone(v.fixed32s) }
func (v *UnknownFieldValues) Fixed64s() []uint64       { return slices.Clone(v.fixed64s) }
func (v *UnknownFieldValues) LengthDelimited() []Bytes { return slices.Clone(v.lengthDelimited) }

// Count returns the number of occurrences across all partitions.
func (v *UnknownFieldValues) Count() int {
	return len(v.varints) + len(v.fixed32s) + len(v.fixed64s) + len(v.lengthDelimited)
}

func (v *UnknownFieldValues) add(f UnknownField) {
	switch f.kind {
	case VarintKind:
		v.varints = append(v.varints, f.scalar)
	case Fixed32Kind:
		v.fixed32s = append(v.fixed32s, uint32(f.scalar))
	case Fixed64Kind:
		v.fixed64s = append(v.fixed64s, f.scalar)
	case LengthDelimitedKind:
		v.lengthDelimited = append(v.lengthDelimited, f.data)
	}
}

// size returns tagSize*occurrences plus the size of every value.
func (v *UnknownFieldValues) size(n FieldNumber) int {
	total := SizeTag(n) * v.Count()
	for _, x := range v.varints {
		total += SizeVarint(x)
	}
	total += Fixed32Size * len(v.fixed32s)
	total += Fixed64Size * len(v.fixed64s)
	for _, b := range v.lengthDelimited {
		total += SizeBytes(b.Len())
	}
	return total
}

func (v *UnknownFieldValues) write(w *Writer, n FieldNumber) {
	for _, x := range v.varints {
		w.WriteTag(n, WireVarint)
		w.WriteUint64(x)
	}
	for _, x := range v.fixed32s {
		w.WriteTag(n, WireFixed32)
		w.WriteFixed32(x)
	}
	for _, x := range v.fixed64s {
		w.WriteTag(n, WireFixed64)
		w.WriteFixed64(x)
	}
	for _, b := range v.lengthDelimited {
		w.WriteTag(n, WireBytes)
		w.WriteBytes(b)
	}
}

func (v *UnknownFieldValues) equal(o *UnknownFieldValues) bool {
	return slices.Equal(v.varints, o.varints) &&
		slices.Equal(v.fixed32s, o.fixed32s) &&
		slices.Equal(v.fixed64s, o.fixed64s) &&
		slices.EqualFunc(v.lengthDelimited, o.lengthDelimited, Bytes.Equal)
}

// UnknownFieldSetBuilder accumulates unknown fields during one
// deserialization. The zero value is ready to use.
type UnknownFieldSetBuilder struct {
	fields map[FieldNumber]*UnknownFieldValues
}

// NewUnknownFieldSetBuilder creates an empty builder.
func NewUnknownFieldSetBuilder() *UnknownFieldSetBuilder {
	return &UnknownFieldSetBuilder{}
}

// Add appends f to the partition for its field number and wire type.
func (b *UnknownFieldSetBuilder) Add(f UnknownField) {
	if b.fields == nil {
		b.fields = make(map[FieldNumber]*UnknownFieldValues)
	}
	v, ok := b.fields[f.number]
	if !ok {
		v = &UnknownFieldValues{}
		b.fields[f.number] = v
	}
	v.add(f)
}

// Build freezes the accumulated fields. The builder is left empty.
func (b *UnknownFieldSetBuilder) Build() *UnknownFieldSet {
	return UnknownFieldSetFrom(b)
}

// UnknownFieldSet is an immutable collection of unknown fields keyed by field
// number, retained so a message re-serializes without losing data.
//
// Write emits fields in ascending field-number order and, within a number,
// all varints, then fixed32s, fixed64s and length-delimited values. Values
// survive a round trip; their interleaving with other fields does not.
type UnknownFieldSet struct {
	fields  map[FieldNumber]*UnknownFieldValues
	numbers []FieldNumber
	size    int
}

// EmptyUnknownFieldSet is the shared set with no fields.
var EmptyUnknownFieldSet = &UnknownFieldSet{}

// UnknownFieldSetFrom freezes b. A nil or empty builder yields
// EmptyUnknownFieldSet.
func UnknownFieldSetFrom(b *UnknownFieldSetBuilder) *UnknownFieldSet {
	if b == nil || len(b.fields) == 0 {
		return EmptyUnknownFieldSet
	}
	s := &UnknownFieldSet{fields: b.fields}
	b.fields = nil

	s.numbers = make([]FieldNumber, 0, len(s.fields))
	for n, v := range s.fields {
		s.numbers = append(s.numbers, n)
		s.size += v.size(n)
	}
	slices.Sort(s.numbers)
	return s
}

// Len returns the number of distinct field numbers.
func (s *UnknownFieldSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.numbers)
}

// IsEmpty reports whether the set holds no fields.
func (s *UnknownFieldSet) IsEmpty() bool { return s.Len() == 0 }

// FieldNumbers returns the retained field numbers in ascending order.
func (s *UnknownFieldSet) FieldNumbers() []FieldNumber {
	if s == nil {
		return nil
	}
	return slices.Clone(s.numbers)
}

// Get returns the values retained for n.
func (s *UnknownFieldSet) Get(n FieldNumber) (*UnknownFieldValues, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.fields[n]
	return v, ok
}

// Size returns the encoded size of every retained field, tags included.
func (s *UnknownFieldSet) Size() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Write emits every retained field with a freshly built tag.
func (s *UnknownFieldSet) Write(w *Writer) {
	if s == nil {
		return
	}
	for _, n := range s.numbers {
		s.fields[n].write(w, n)
	}
}

// Equal reports whether s and o retain the same values.
func (s *UnknownFieldSet) Equal(o *UnknownFieldSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, n := range s.FieldNumbers() {
		ov, ok := o.Get(n)
		if !ok || !s.fields[n].equal(ov) {
			return false
		}
	}
	return true
}

// String renders the set in protoscope syntax, one field per line.
func (s *UnknownFieldSet) String() string {
	var sb strings.Builder
	for _, n := range s.FieldNumbers() {
		v := s.fields[n]
		for _, x := range v.varints {
			fmt.Fprintf(&sb, "%d: %d\n", n, x)
		}
		for _, x := range v.fixed32s {
			fmt.Fprintf(&sb, "%d: %di32\n", n, x)
		}
		for _, x := range v.fixed64s {
			fmt.Fprintf(&sb, "%d: %di64\n", n, x)
		}
		for _, b := range v.lengthDelimited {
			fmt.Fprintf(&sb, "%d: {`%s`}\n", n, b)
		}
	}
	return sb.String()
}

// ParseUnknownFieldSet decodes buf without a schema, retaining every field as
// unknown.
func ParseUnknownFieldSet(buf []byte, opts ...ReaderOption) (*UnknownFieldSet, error) {
	r := NewReader(buf, opts...)
	b := NewUnknownFieldSetBuilder()
	for {
		tag, err := r.ReadTag()
		if err != nil {
			return nil, err
		}
		if tag == 0 {
			return b.Build(), nil
		}
		f, err := r.ReadUnknown()
		if err != nil {
			return nil, err
		}
		b.Add(f)
	}
}

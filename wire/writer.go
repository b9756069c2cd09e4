package wire

import (
	"unicode/utf8"
)

// Writer appends protobuf wire encodings to a growable buffer. Typed writes
// emit only the value; the caller writes each field's tag first.
type Writer struct {
	buf            []byte
	replaceInvalid bool
}

// WriterOption customizes a Writer.
type WriterOption func(*Writer)

// WithReplaceInvalidUTF8 overrides Config.ReplaceInvalidUTF8 for this Writer.
func WithReplaceInvalidUTF8(replace bool) WriterOption {
	return func(w *Writer) { w.replaceInvalid = replace }
}

// NewWriter creates an empty Writer.
func NewWriter(opts ...WriterOption) *Writer {
	return NewSizedWriter(64, opts...)
}

// NewSizedWriter creates a Writer whose buffer is allocated for exactly size
// bytes, typically a message's precomputed MessageSize.
func NewSizedWriter(size int, opts ...WriterOption) *Writer {
	w := &Writer{
		buf:            make([]byte, 0, size),
		replaceInvalid: config.ReplaceInvalidUTF8,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Bytes returns the encoded bytes
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset clears the encoder buffer
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// TAGS

// WriteTag writes the tag for fieldNumber and wireType.
func (w *Writer) WriteTag(fieldNumber FieldNumber, wireType WireType) {
	w.WriteRawTag(MakeTag(fieldNumber, wireType))
}

// WriteRawTag writes a prebuilt tag.
func (w *Writer) WriteRawTag(tag Tag) {
	w.buf = AppendVarint(w.buf, uint64(tag))
}

// VARINTS

// WriteUint64 writes a uint64 varint.
func (w *Writer) WriteUint64(v uint64) { w.buf = AppendVarint(w.buf, v) }

// WriteUint32 writes a uint32 varint.
func (w *Writer) WriteUint32(v uint32) { w.buf = AppendVarint(w.buf, uint64(v)) }

// WriteInt64 writes an int64 varint.
func (w *Writer) WriteInt64(v int64) { w.buf = AppendVarint(w.buf, uint64(v)) }

// WriteInt32 writes an int32 varint. Negative values are sign-extended and
// take ten bytes.
func (w *Writer) WriteInt32(v int32) { w.buf = AppendVarint(w.buf, uint64(int64(v))) }

// WriteSint32 writes a zigzag-encoded int32.
func (w *Writer) WriteSint32(v int32) { w.buf = AppendVarint(w.buf, EncodeZigZag32(v)) }

// WriteSint64 writes a zigzag-encoded int64.
func (w *Writer) WriteSint64(v int64) { w.buf = AppendVarint(w.buf, EncodeZigZag64(v)) }

// WriteBool writes a bool as a one-byte varint.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteEnum writes an enum number.
func (w *Writer) WriteEnum(v int32) { w.WriteInt32(v) }

// FIXED WIDTH

// WriteFixed32 writes a little-endian 32-bit value.
func (w *Writer) WriteFixed32(v uint32) { w.buf = AppendFixed32(w.buf, v) }

// WriteFixed64 writes a little-endian 64-bit value.
func (w *Writer) WriteFixed64(v uint64) { w.buf = AppendFixed64(w.buf, v) }

// WriteSfixed32 writes a signed fixed32.
func (w *Writer) WriteSfixed32(v int32) { w.buf = AppendFixed32(w.buf, uint32(v)) }

// WriteSfixed64 writes a signed fixed64.
func (w *Writer) WriteSfixed64(v int64) { w.buf = AppendFixed64(w.buf, uint64(v)) }

// WriteFloat writes a float as fixed32.
func (w *Writer) WriteFloat(v float32) { w.buf = AppendFloat(w.buf, v) }

// WriteDouble writes a double as fixed64.
func (w *Writer) WriteDouble(v float64) { w.buf = AppendDouble(w.buf, v) }

// LENGTH-DELIMITED

// WriteLength writes a length prefix. Packed fields and hand-framed
// sub-messages call it before their payload.
func (w *Writer) WriteLength(n int) { w.buf = AppendVarint(w.buf, uint64(n)) }

// WriteString writes s as a length-prefixed UTF-8 string.
//
// The encoded length is measured first with UTF8Length so the prefix goes out
// before the payload and nothing is reserved and patched afterwards.
func (w *Writer) WriteString(s string) error {
	if ValidateUTF8(unsafeStringBytes(s)) == nil {
		w.WriteLength(len(s))
		w.buf = append(w.buf, s...)
		return nil
	}
	if !w.replaceInvalid {
		return ErrInvalidUTF8
	}
	w.WriteLength(UTF8Length(s))
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n == 1 {
			w.buf = utf8.AppendRune(w.buf, utf8.RuneError)
		} else {
			w.buf = append(w.buf, s[i:i+n]...)
		}
		i += n
	}
	return nil
}

// WriteBytes writes an owned byte value with its length prefix.
func (w *Writer) WriteBytes(b Bytes) {
	w.WriteLength(b.Len())
	w.buf = append(w.buf, b.data...)
}

// WriteBytesSlice writes a viewed byte range with its length prefix.
func (w *Writer) WriteBytesSlice(s BytesSlice) {
	w.WriteLength(s.Len())
	w.buf = append(w.buf, s.View()...)
}

// WriteRawBytes writes b with its length prefix.
func (w *Writer) WriteRawBytes(b []byte) {
	w.WriteLength(len(b))
	w.buf = append(w.buf, b...)
}

// WriteMessage writes m's MessageSize as a length prefix followed by its body.
//
// The size is trusted as-is. Callers must not mutate m between computing its
// size and writing it.
func (w *Writer) WriteMessage(m Message) error {
	w.WriteLength(m.MessageSize())
	return m.Serialize(w)
}

// WriteUnknown re-emits a retained unknown field set.
func (w *Writer) WriteUnknown(u *UnknownFieldSet) {
	u.Write(w)
}

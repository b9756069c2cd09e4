package wire

import (
	"math"
)

// Reader is a cursor over an immutable buffer. It decodes one message in a
// single pass and is not safe for concurrent use.
//
// The limit narrows while an embedded message or packed field is being read,
// so ReadTag reports the end of the enclosing range rather than the buffer.
type Reader struct {
	buf     []byte
	pos     int
	limit   int
	lastTag Tag

	depth          int
	recursionLimit int
	discardUnknown bool
}

// ReaderOption customizes a Reader.
type ReaderOption func(*Reader)

// WithRecursionLimit overrides the configured nesting ceiling.
func WithRecursionLimit(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.recursionLimit = n
		}
	}
}

// WithDiscardUnknown overrides Config.DiscardUnknown for this Reader.
func WithDiscardUnknown(discard bool) ReaderOption {
	return func(r *Reader) { r.discardUnknown = discard }
}

// NewReader creates a Reader over buf using the global Config.
func NewReader(buf []byte, opts ...ReaderOption) *Reader {
	r := &Reader{
		buf:            buf,
		limit:          len(buf),
		recursionLimit: config.recursionLimit(),
		discardUnknown: config.DiscardUnknown,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Remaining returns the number of unread bytes before the current limit.
func (r *Reader) Remaining() int { return r.limit - r.pos }

// AtEnd reports whether the current limit has been reached.
func (r *Reader) AtEnd() bool { return r.pos >= r.limit }

// Depth returns the current embedded-message nesting depth.
func (r *Reader) Depth() int { return r.depth }

// LastTag returns the tag most recently returned by ReadTag.
func (r *Reader) LastTag() Tag { return r.lastTag }

// ReadTag reads the next field tag. It returns 0 once the current limit is
// reached, which ends a message's field loop.
func (r *Reader) ReadTag() (Tag, error) {
	if r.AtEnd() {
		r.lastTag = 0
		return 0, nil
	}
	v, err := r.readVarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 || Tag(v).FieldNumber() == 0 {
		return 0, ErrInvalidTag
	}
	r.lastTag = Tag(v)
	return r.lastTag, nil
}

// SCALARS

func (r *Reader) readVarint() (uint64, error) {
	v, n, err := ConsumeVarint(r.buf[r.pos:r.limit])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// ReadUint64 reads a uint64 varint.
func (r *Reader) ReadUint64() (uint64, error) { return r.readVarint() }

// ReadInt64 reads an int64 varint.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.readVarint()
	return int64(v), err
}

// ReadUint32 reads a uint32 varint, discarding any high bits.
func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.readVarint()
	return uint32(v), err
}

// ReadInt32 reads an int32 varint, discarding any high bits.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.readVarint()
	return int32(v), err
}

// ReadSint32 reads a zigzag-encoded int32.
func (r *Reader) ReadSint32() (int32, error) {
	v, err := r.readVarint()
	return DecodeZigZag32(v), err
}

// ReadSint64 reads a zigzag-encoded int64.
func (r *Reader) ReadSint64() (int64, error) {
	v, err := r.readVarint()
	return DecodeZigZag64(v), err
}

// ReadBool reads a varint as bool; any nonzero value is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.readVarint()
	return v != 0, err
}

// ReadEnum reads an enum number.
func (r *Reader) ReadEnum() (int32, error) { return r.ReadInt32() }

// ReadFixed32 reads a little-endian 32-bit value.
func (r *Reader) ReadFixed32() (uint32, error) {
	v, n, err := ConsumeFixed32(r.buf[r.pos:r.limit])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// ReadFixed64 reads a little-endian 64-bit value.
func (r *Reader) ReadFixed64() (uint64, error) {
	v, n, err := ConsumeFixed64(r.buf[r.pos:r.limit])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// ReadSfixed32 reads a signed fixed32.
func (r *Reader) ReadSfixed32() (int32, error) {
	v, err := r.ReadFixed32()
	return int32(v), err
}

// ReadSfixed64 reads a signed fixed64.
func (r *Reader) ReadSfixed64() (int64, error) {
	v, err := r.ReadFixed64()
	return int64(v), err
}

// ReadFloat reads a float stored as fixed32.
func (r *Reader) ReadFloat() (float32, error) {
	v, err := r.ReadFixed32()
	return math.Float32frombits(v), err
}

// ReadDouble reads a double stored as fixed64.
func (r *Reader) ReadDouble() (float64, error) {
	v, err := r.ReadFixed64()
	return math.Float64frombits(v), err
}

// LENGTH-DELIMITED

// readLength reads a length prefix and checks it against the current limit.
// Lengths are 32-bit on the wire; a prefix with bit 31 set is negative.
func (r *Reader) readLength() (int, error) {
	v, err := r.readVarint()
	if err != nil {
		return 0, err
	}
	n := int32(v)
	if n < 0 {
		return 0, ErrNegativeSize
	}
	if int(n) > r.limit-r.pos {
		return 0, ErrTruncated
	}
	return int(n), nil
}

func (r *Reader) readSpan() ([]byte, error) {
	n, err := r.readLength()
	if err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadBytesSlice reads a length-delimited value as a view into the Reader's
// buffer. Nothing is copied; the result must not outlive the buffer.
func (r *Reader) ReadBytesSlice() (BytesSlice, error) {
	n, err := r.readLength()
	if err != nil {
		return BytesSlice{}, err
	}
	s := BytesSlice{array: r.buf, offset: r.pos, length: n}
	r.pos += n
	return s, nil
}

// ReadBytes reads a length-delimited value into a new owned Bytes.
func (r *Reader) ReadBytes() (Bytes, error) {
	b, err := r.readSpan()
	if err != nil {
		return EmptyBytes, err
	}
	return BytesOf(b), nil
}

// ReadRawBytes reads a length-delimited value into a new []byte.
func (r *Reader) ReadRawBytes() ([]byte, error) {
	b, err := r.readSpan()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// ReadString reads a length-delimited UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.readSpan()
	if err != nil {
		return "", err
	}
	if err := ValidateUTF8(b); err != nil {
		return "", err
	}
	return string(b), nil
}

// REPEATED AND EMBEDDED

// ReadRepeated reads one occurrence of a repeated field. When packed is set
// and the last tag is length-delimited, body runs once per element of the
// packed block; otherwise it runs once and the caller's field loop collects
// the remaining occurrences.
func (r *Reader) ReadRepeated(packed bool, body func() error) error {
	if !packed || r.lastTag.WireType() != WireBytes {
		return body()
	}
	n, err := r.readLength()
	if err != nil {
		return err
	}
	outer := r.limit
	r.limit = r.pos + n
	defer func() { r.limit = outer }()

	for !r.AtEnd() {
		if err := body(); err != nil {
			return err
		}
	}
	return nil
}

// ReadMessage reads a length-prefixed embedded message with body. The body
// sees the embedded range as the whole input and must consume all of it.
//
// Each call counts one level of nesting; exceeding the recursion limit fails
// with ErrRecursionLimit before the prefix is read.
func (r *Reader) ReadMessage(body func(*Reader) error) error {
	if r.depth >= r.recursionLimit {
		return ErrRecursionLimit
	}
	r.depth++
	defer func() { r.depth-- }()

	n, err := r.readLength()
	if err != nil {
		return err
	}
	outer := r.limit
	r.limit = r.pos + n
	defer func() { r.limit = outer }()

	if err := body(r); err != nil {
		return err
	}
	if r.pos != r.limit {
		return ErrMessageNotConsumed
	}
	return nil
}

// ReadMessageOf reads an embedded message of type T using its deserializer.
func ReadMessageOf[T any](r *Reader, deserialize Deserializer[T]) (T, error) {
	var out T
	err := r.ReadMessage(func(r *Reader) error {
		var err error
		out, err = deserialize(r)
		return err
	})
	return out, err
}

// UNKNOWN FIELDS

// ReadUnknown reads the value of the last tag as an UnknownField.
func (r *Reader) ReadUnknown() (UnknownField, error) {
	num, wt := ParseTag(r.lastTag)
	switch wt {
	case WireVarint:
		v, err := r.readVarint()
		if err != nil {
			return UnknownField{}, err
		}
		return VarintField(num, v), nil
	case WireFixed32:
		v, err := r.ReadFixed32()
		if err != nil {
			return UnknownField{}, err
		}
		return Fixed32Field(num, v), nil
	case WireFixed64:
		v, err := r.ReadFixed64()
		if err != nil {
			return UnknownField{}, err
		}
		return Fixed64Field(num, v), nil
	case WireBytes:
		b, err := r.ReadBytes()
		if err != nil {
			return UnknownField{}, err
		}
		return LengthDelimitedField(num, b), nil
	default:
		return UnknownField{}, unsupportedWireType(wt)
	}
}

// ReadUnknownInto reads the value of the last tag and adds it to b, or skips
// it when the Reader discards unknown fields.
func (r *Reader) ReadUnknownInto(b *UnknownFieldSetBuilder) error {
	if r.discardUnknown {
		return r.Skip()
	}
	f, err := r.ReadUnknown()
	if err != nil {
		return err
	}
	b.Add(f)
	return nil
}

// Skip discards the value of the last tag.
func (r *Reader) Skip() error {
	switch wt := r.lastTag.WireType(); wt {
	case WireVarint:
		_, err := r.readVarint()
		return err
	case WireFixed32:
		_, err := r.ReadFixed32()
		return err
	case WireFixed64:
		_, err := r.ReadFixed64()
		return err
	case WireBytes:
		_, err := r.readSpan()
		return err
	default:
		return unsupportedWireType(wt)
	}
}

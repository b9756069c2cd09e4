package lazy

import "github.com/anirudhraja/protolite/wire"

// BytesCodec encodes a bytes-typed wire form.
type BytesCodec struct{}

func (BytesCodec) Size(b wire.Bytes) int { return wire.SizeBytes(b.Len()) }

func (BytesCodec) Write(w *wire.Writer, b wire.Bytes) error {
	w.WriteBytes(b)
	return nil
}

func (BytesCodec) IsDefault(b wire.Bytes) bool { return b.IsEmpty() }

// StringCodec encodes a string-typed wire form.
type StringCodec struct{}

func (StringCodec) Size(s string) int                    { return wire.SizeString(s) }
func (StringCodec) Write(w *wire.Writer, s string) error { return w.WriteString(s) }
func (StringCodec) IsDefault(s string) bool              { return s == "" }

// Int64Codec encodes an int64 varint wire form.
type Int64Codec struct{}

func (Int64Codec) Size(v int64) int { return wire.SizeInt64(v) }

func (Int64Codec) Write(w *wire.Writer, v int64) error {
	w.WriteInt64(v)
	return nil
}

func (Int64Codec) IsDefault(v int64) bool { return v == 0 }

// MessageCodec encodes an embedded-message wire form. A nil message is the
// default and is not written.
type MessageCodec[M interface {
	wire.Message
	comparable
}] struct{}

func (MessageCodec[M]) Size(m M) int { return wire.SizeBytes(m.MessageSize()) }

func (MessageCodec[M]) Write(w *wire.Writer, m M) error { return w.WriteMessage(m) }

func (MessageCodec[M]) IsDefault(m M) bool {
	var zero M
	return m == zero
}

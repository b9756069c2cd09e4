package wire

import (
	"fmt"
	"sync/atomic"
)

// Message is the contract generated message types fulfil.
//
// MessageSize must report exactly the number of bytes Serialize writes, and
// is normally memoized with MemoizedSize.
type Message interface {
	Serialize(w *Writer) error
	MessageSize() int
}

// Deserializer builds a message of type T from a Reader positioned at the
// start of its fields. It loops on ReadTag until it returns 0.
type Deserializer[T any] func(r *Reader) (T, error)

// Marshal serializes m into a buffer sized by its MessageSize.
func Marshal(m Message, opts ...WriterOption) ([]byte, error) {
	size := m.MessageSize()
	w := NewSizedWriter(size, opts...)
	if err := m.Serialize(w); err != nil {
		return nil, err
	}
	if w.Len() != size {
		return nil, fmt.Errorf("%w: wrote %d, expected %d", ErrSizeMismatch, w.Len(), size)
	}
	return w.Bytes(), nil
}

// Unmarshal deserializes buf as a top-level message of type T.
func Unmarshal[T any](buf []byte, deserialize Deserializer[T], opts ...ReaderOption) (T, error) {
	return deserialize(NewReader(buf, opts...))
}

// SizeMessageField returns the encoded size of m as an embedded field,
// including its tag and length prefix.
func SizeMessageField(fieldNumber FieldNumber, m Message) int {
	return SizeTag(fieldNumber) + SizeBytes(m.MessageSize())
}

// MemoizedSize caches a message's size once computed. Messages are immutable
// after construction, so a racing recomputation stores the same value.
type MemoizedSize struct {
	v atomic.Int64 // size+1; zero means not yet computed
}

// Get returns the cached size, computing it with compute on first use.
func (m *MemoizedSize) Get(compute func() int) int {
	if v := m.v.Load(); v != 0 {
		return int(v - 1)
	}
	n := compute()
	m.v.Store(int64(n) + 1)
	return n
}

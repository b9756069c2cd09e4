package wrappers

import (
	"fmt"
	"time"

	"github.com/anirudhraja/protolite/lazy"
	"github.com/anirudhraja/protolite/wire"
)

const (
	// Seconds of 0001-01-01T00:00:00Z and 9999-12-31T23:59:59Z.
	minTimestampSeconds = -62135596800
	maxTimestampSeconds = 253402300799
)

// Timestamp is the wire form of google.protobuf.Timestamp.
type Timestamp struct {
	Seconds int64 // 1
	Nanos   int32 // 2
	Unknown *wire.UnknownFieldSet

	size wire.MemoizedSize
}

func (m *Timestamp) MessageSize() int {
	return m.size.Get(func() int {
		n := 0
		if m.Seconds != 0 {
			n += wire.SizeTag(1) + wire.SizeInt64(m.Seconds)
		}
		if m.Nanos != 0 {
			n += wire.SizeTag(2) + wire.SizeInt32(m.Nanos)
		}
		return n + m.Unknown.Size()
	})
}

func (m *Timestamp) Serialize(w *wire.Writer) error {
	if m.Seconds != 0 {
		w.WriteTag(1, wire.WireVarint)
		w.WriteInt64(m.Seconds)
	}
	if m.Nanos != 0 {
		w.WriteTag(2, wire.WireVarint)
		w.WriteInt32(m.Nanos)
	}
	w.WriteUnknown(m.Unknown)
	return nil
}

// DeserializeTimestamp reads a google.protobuf.Timestamp.
func DeserializeTimestamp(r *wire.Reader) (*Timestamp, error) {
	m := &Timestamp{}
	var unknown wire.UnknownFieldSetBuilder
	for {
		tag, err := r.ReadTag()
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			m.Unknown = unknown.Build()
			return m, nil
		case wire.MakeTag(1, wire.WireVarint):
			if m.Seconds, err = r.ReadInt64(); err != nil {
				return nil, wire.WrapField(err, "seconds")
			}
		case wire.MakeTag(2, wire.WireVarint):
			if m.Nanos, err = r.ReadInt32(); err != nil {
				return nil, wire.WrapField(err, "nanos")
			}
		default:
			if err := r.ReadUnknownInto(&unknown); err != nil {
				return nil, err
			}
		}
	}
}

// TimestampConverter exposes a google.protobuf.Timestamp field as a
// time.Time in UTC.
type TimestampConverter struct{}

var _ lazy.Converter[*Timestamp, time.Time] = TimestampConverter{}

// Wrap validates the timestamp against the range the well-known type allows.
func (TimestampConverter) Wrap(m *Timestamp) (time.Time, error) {
	if m == nil {
		return time.Unix(0, 0).UTC(), nil
	}
	if m.Seconds < minTimestampSeconds || m.Seconds > maxTimestampSeconds {
		return time.Time{}, fmt.Errorf("%w: seconds %d", ErrTimestampOutOfRange, m.Seconds)
	}
	if m.Nanos < 0 || m.Nanos >= 1e9 {
		return time.Time{}, fmt.Errorf("%w: nanos %d", ErrTimestampOutOfRange, m.Nanos)
	}
	return time.Unix(m.Seconds, int64(m.Nanos)).UTC(), nil
}

// Unwrap rejects times outside the same range Wrap accepts.
func (TimestampConverter) Unwrap(t time.Time) (*Timestamp, error) {
	s := t.Unix()
	if s < minTimestampSeconds || s > maxTimestampSeconds {
		return nil, fmt.Errorf("%w: %s", ErrTimestampOutOfRange, t.UTC().Format(time.RFC3339))
	}
	return &Timestamp{Seconds: s, Nanos: int32(t.Nanosecond())}, nil
}

// TimestampRef is the reference type of a Timestamp-wrapped field.
type TimestampRef = lazy.CachingReference[*Timestamp, time.Time]

// NewTimestampRef wraps a domain time.
func NewTimestampRef(t time.Time) *TimestampRef {
	return lazy.CachingFromDomain[*Timestamp, time.Time](TimestampConverter{}, t)
}

// ReadTimestampRef reads an embedded Timestamp without converting it.
func ReadTimestampRef(r *wire.Reader) (*TimestampRef, error) {
	m, err := wire.ReadMessageOf(r, DeserializeTimestamp)
	if err != nil {
		return nil, err
	}
	return lazy.CachingFromWire[*Timestamp, time.Time](TimestampConverter{}, m), nil
}

package wrappers

import (
	"fmt"
	"math"
	"time"

	"github.com/anirudhraja/protolite/lazy"
	"github.com/anirudhraja/protolite/wire"
)

// Duration is the wire form of google.protobuf.Duration.
type Duration struct {
	Seconds int64 // 1
	Nanos   int32 // 2
	Unknown *wire.UnknownFieldSet

	size wire.MemoizedSize
}

func (m *Duration) MessageSize() int {
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

func (m *Duration) Serialize(w *wire.Writer) error {
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

// DeserializeDuration reads a google.protobuf.Duration.
func DeserializeDuration(r *wire.Reader) (*Duration, error) {
	m := &Duration{}
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

// DurationConverter exposes a google.protobuf.Duration field as a
// time.Duration. Durations beyond roughly ±292 years do not fit and fail.
type DurationConverter struct{}

var _ lazy.Converter[*Duration, time.Duration] = DurationConverter{}

func (DurationConverter) Wrap(m *Duration) (time.Duration, error) {
	if m == nil {
		return 0, nil
	}
	if m.Nanos <= -1e9 || m.Nanos >= 1e9 || (m.Seconds > 0 && m.Nanos < 0) || (m.Seconds < 0 && m.Nanos > 0) {
		return 0, fmt.Errorf("%w: nanos %d with seconds %d", ErrDurationOutOfRange, m.Nanos, m.Seconds)
	}
	const maxSeconds = math.MaxInt64 / int64(time.Second)
	if m.Seconds > maxSeconds || m.Seconds < -maxSeconds {
		return 0, fmt.Errorf("%w: seconds %d", ErrDurationOutOfRange, m.Seconds)
	}
	d, nanos := time.Duration(m.Seconds)*time.Second, time.Duration(m.Nanos)
	if (nanos > 0 && d > math.MaxInt64-nanos) || (nanos < 0 && d < math.MinInt64-nanos) {
		return 0, fmt.Errorf("%w: seconds %d nanos %d", ErrDurationOutOfRange, m.Seconds, m.Nanos)
	}
	return d + nanos, nil
}

func (DurationConverter) Unwrap(d time.Duration) (*Duration, error) {
	return &Duration{
		Seconds: int64(d / time.Second),
		Nanos:   int32(d % time.Second),
	}, nil
}

// DurationRef is the reference type of a Duration-wrapped field.
type DurationRef = lazy.Reference[*Duration, time.Duration]

// NewDurationRef wraps a domain duration.
func NewDurationRef(d time.Duration) *DurationRef {
	return lazy.FromDomain[*Duration, time.Duration](DurationConverter{}, d)
}

// ReadDurationRef reads an embedded Duration without converting it.
func ReadDurationRef(r *wire.Reader) (*DurationRef, error) {
	m, err := wire.ReadMessageOf(r, DeserializeDuration)
	if err != nil {
		return nil, err
	}
	return lazy.FromWire[*Duration, time.Duration](DurationConverter{}, m), nil
}

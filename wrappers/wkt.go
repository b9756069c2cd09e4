package wrappers

import (
	"fmt"
	"math"
	"reflect"

	"github.com/anirudhraja/protolite/lazy"
	"github.com/anirudhraja/protolite/wire"
)

// Kind names a scalar wrapper message from google/protobuf/wrappers.proto.
// Each is a message with the wrapped scalar as field 1.
type Kind string

const (
	DoubleValue Kind = "google.protobuf.DoubleValue"
	FloatValue  Kind = "google.protobuf.FloatValue"
	Int64Value  Kind = "google.protobuf.Int64Value"
	UInt64Value Kind = "google.protobuf.UInt64Value"
	Int32Value  Kind = "google.protobuf.Int32Value"
	UInt32Value Kind = "google.protobuf.UInt32Value"
	BoolValue   Kind = "google.protobuf.BoolValue"
	StringValue Kind = "google.protobuf.StringValue"
	BytesValue  Kind = "google.protobuf.BytesValue"
)

// WireType returns the wire type of the wrapped value.
func (k Kind) WireType() (wire.WireType, error) {
	switch k {
	case DoubleValue:
		return wire.WireFixed64, nil
	case FloatValue:
		return wire.WireFixed32, nil
	case Int64Value, UInt64Value, Int32Value, UInt32Value, BoolValue:
		return wire.WireVarint, nil
	case StringValue, BytesValue:
		return wire.WireBytes, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedWrapper, k)
	}
}

// zero returns the Go zero value a wrapper of kind k decodes to when its
// value field is absent.
func (k Kind) zero() any {
	switch k {
	case DoubleValue:
		return float64(0)
	case FloatValue:
		return float32(0)
	case Int64Value:
		return int64(0)
	case UInt64Value:
		return uint64(0)
	case Int32Value:
		return int32(0)
	case UInt32Value:
		return uint32(0)
	case BoolValue:
		return false
	case StringValue:
		return ""
	case BytesValue:
		return []byte{}
	default:
		return nil
	}
}

// Marshal encodes the wrapper message body for v. A zero v encodes to no
// bytes, as proto3 omits default scalars; negative zero is not a default.
func Marshal(k Kind, v any) ([]byte, error) {
	wt, err := k.WireType()
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter()
	writeTag := func() { w.WriteTag(1, wt) }

	switch k {
	case DoubleValue:
		x, ok := v.(float64)
		if !ok {
			return nil, mismatch(k, v)
		}
		if math.Float64bits(x) != 0 {
			writeTag()
			w.WriteDouble(x)
		}
	case FloatValue:
		x, ok := v.(float32)
		if !ok {
			return nil, mismatch(k, v)
		}
		if math.Float32bits(x) != 0 {
			writeTag()
			w.WriteFloat(x)
		}
	case Int64Value:
		x, ok := v.(int64)
		if !ok {
			return nil, mismatch(k, v)
		}
		if x != 0 {
			writeTag()
			w.WriteInt64(x)
		}
	case UInt64Value:
		x, ok := v.(uint64)
		if !ok {
			return nil, mismatch(k, v)
		}
		if x != 0 {
			writeTag()
			w.WriteUint64(x)
		}
	case Int32Value:
		x, ok := v.(int32)
		if !ok {
			return nil, mismatch(k, v)
		}
		if x != 0 {
			writeTag()
			w.WriteInt32(x)
		}
	case UInt32Value:
		x, ok := v.(uint32)
		if !ok {
			return nil, mismatch(k, v)
		}
		if x != 0 {
			writeTag()
			w.WriteUint32(x)
		}
	case BoolValue:
		x, ok := v.(bool)
		if !ok {
			return nil, mismatch(k, v)
		}
		if x {
			writeTag()
			w.WriteBool(x)
		}
	case StringValue:
		x, ok := v.(string)
		if !ok {
			return nil, mismatch(k, v)
		}
		if x != "" {
			writeTag()
			if err := w.WriteString(x); err != nil {
				return nil, err
			}
		}
	case BytesValue:
		x, ok := v.([]byte)
		if !ok {
			return nil, mismatch(k, v)
		}
		if len(x) != 0 {
			writeTag()
			w.WriteRawBytes(x)
		}
	}
	return w.Bytes(), nil
}

func mismatch(k Kind, v any) error {
	return fmt.Errorf("%w: %s cannot hold %T", ErrUnsupportedWrapper, k, v)
}

// Unmarshal decodes a wrapper message body. Fields other than the value
// field are skipped; the last occurrence of the value field wins.
func Unmarshal(k Kind, b []byte) (any, error) {
	wt, err := k.WireType()
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(b)
	value := k.zero()
	for {
		tag, err := r.ReadTag()
		if err != nil {
			return nil, err
		}
		if tag == 0 {
			return value, nil
		}
		if tag.FieldNumber() != 1 {
			if err := r.Skip(); err != nil {
				return nil, err
			}
			continue
		}
		if tag.WireType() != wt {
			return nil, fmt.Errorf("%w: expected %s wire type for %s, got %s", ErrWrapperFieldMismatch, wt, k, tag.WireType())
		}
		if value, err = readValue(r, k); err != nil {
			return nil, wire.WrapField(err, "value")
		}
	}
}

func readValue(r *wire.Reader, k Kind) (any, error) {
	switch k {
	case DoubleValue:
		return r.ReadDouble()
	case FloatValue:
		return r.ReadFloat()
	case Int64Value:
		return r.ReadInt64()
	case UInt64Value:
		return r.ReadUint64()
	case Int32Value:
		return r.ReadInt32()
	case UInt32Value:
		return r.ReadUint32()
	case BoolValue:
		return r.ReadBool()
	case StringValue:
		return r.ReadString()
	case BytesValue:
		return r.ReadRawBytes()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWrapper, k)
	}
}

// ValueConverter exposes the encoded body of a scalar wrapper message as the
// wrapped Go value T.
type ValueConverter[T any] struct {
	kind Kind
}

// NewValueConverter returns a converter for kind k, failing when T is not the
// Go type k wraps.
func NewValueConverter[T any](k Kind) (ValueConverter[T], error) {
	if reflect.TypeOf(k.zero()) != reflect.TypeFor[T]() {
		var t T
		return ValueConverter[T]{}, mismatch(k, t)
	}
	return ValueConverter[T]{kind: k}, nil
}

var _ lazy.Converter[wire.Bytes, string] = ValueConverter[string]{}

func (c ValueConverter[T]) Wrap(b wire.Bytes) (T, error) {
	v, err := Unmarshal(c.kind, b.Slice().View())
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Unwrap encodes v. A StringValue holding invalid UTF-8 fails with
// wire.ErrInvalidUTF8.
func (c ValueConverter[T]) Unwrap(v T) (wire.Bytes, error) {
	b, err := Marshal(c.kind, v)
	if err != nil {
		return wire.EmptyBytes, err
	}
	return wire.BytesOf(b), nil
}

package testmsg

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anirudhraja/protolite/lazy"
	"github.com/anirudhraja/protolite/wire"
	"github.com/anirudhraja/protolite/wrappers"
)

type Person struct {
	ID       *wrappers.UUIDRef                     // 1
	Name     string                                // 2
	Age      int32                                 // 3
	Balance  int64                                 // 4, sint64
	Scores   []int32                               // 5, packed
	Tags     []string                              // 6
	Attrs    map[string]int64                      // 7
	Home     *Address                              // 8
	Created  *wrappers.TimestampRef                // 9
	Ratio    float64                               // 10
	Flags    uint32                                // 11, fixed32
	Timeout  *wrappers.DurationRef                 // 13
	Nickname *lazy.Reference[wire.Bytes, string]   // 14
	Unknown  *wire.UnknownFieldSet

	size wire.MemoizedSize
}

var (
	bytesCodec     = lazy.BytesCodec{}
	timestampCodec = lazy.MessageCodec[*wrappers.Timestamp]{}
	durationCodec  = lazy.MessageCodec[*wrappers.Duration]{}
	nicknameConv   = mustValueConverter[string](wrappers.StringValue)

	attrsCodec = wire.MapCodec[string, int64]{
		KeyWireType:   wire.WireBytes,
		ValueWireType: wire.WireVarint,
		SizeKey:       wire.SizeString,
		SizeValue:     wire.SizeInt64,
		WriteKey:      (*wire.Writer).WriteString,
		WriteValue: func(w *wire.Writer, v int64) error {
			w.WriteInt64(v)
			return nil
		},
		ReadKey:   (*wire.Reader).ReadString,
		ReadValue: (*wire.Reader).ReadInt64,
		Compare:   strings.Compare,
	}
)

func mustValueConverter[T any](k wrappers.Kind) wrappers.ValueConverter[T] {
	c, err := wrappers.NewValueConverter[T](k)
	if err != nil {
		panic(err)
	}
	return c
}

// NewNickname wraps a domain nickname for the StringValue field.
func NewNickname(s string) *lazy.Reference[wire.Bytes, string] {
	return lazy.FromDomain[wire.Bytes, string](nicknameConv, s)
}

func (m *Person) MessageSize() int {
	return m.size.Get(func() int {
		n := 0
		if m.ID != nil && !m.ID.IsDefault(bytesCodec) {
			n += wire.SizeTag(1) + m.ID.Size(bytesCodec)
		}
		if m.Name != "" {
			n += wire.SizeTag(2) + wire.SizeString(m.Name)
		}
		if m.Age != 0 {
			n += wire.SizeTag(3) + wire.SizeInt32(m.Age)
		}
		if m.Balance != 0 {
			n += wire.SizeTag(4) + wire.SizeSint64(m.Balance)
		}
		n += wire.SizeOfPacked(5, m.Scores, wire.SizeInt32)
		n += wire.SizeOfRepeated(6, m.Tags, wire.SizeString)
		n += attrsCodec.Size(7, m.Attrs)
		if m.Home != nil {
			n += wire.SizeMessageField(8, m.Home)
		}
		if m.Created != nil {
			n += wire.SizeTag(9) + m.Created.Size(timestampCodec)
		}
		if m.Ratio != 0 {
			n += wire.SizeTag(10) + wire.Fixed64Size
		}
		if m.Flags != 0 {
			n += wire.SizeTag(11) + wire.Fixed32Size
		}
		if m.Timeout != nil {
			n += wire.SizeTag(13) + m.Timeout.Size(durationCodec)
		}
		if m.Nickname != nil {
			n += wire.SizeTag(14) + m.Nickname.Size(bytesCodec)
		}
		return n + m.Unknown.Size()
	})
}

func (m *Person) Serialize(w *wire.Writer) error {
	if m.ID != nil && !m.ID.IsDefault(bytesCodec) {
		w.WriteTag(1, wire.WireBytes)
		if err := m.ID.Write(w, bytesCodec); err != nil {
			return wire.WrapField(err, "id")
		}
	}
	if m.Name != "" {
		w.WriteTag(2, wire.WireBytes)
		if err := w.WriteString(m.Name); err != nil {
			return wire.WrapField(err, "name")
		}
	}
	if m.Age != 0 {
		w.WriteTag(3, wire.WireVarint)
		w.WriteInt32(m.Age)
	}
	if m.Balance != 0 {
		w.WriteTag(4, wire.WireVarint)
		w.WriteSint64(m.Balance)
	}
	wire.WritePacked(w, 5, m.Scores, wire.SizeInt32, (*wire.Writer).WriteInt32)
	for _, t := range m.Tags {
		w.WriteTag(6, wire.WireBytes)
		if err := w.WriteString(t); err != nil {
			return wire.WrapField(err, "tags")
		}
	}
	if err := attrsCodec.Write(w, 7, m.Attrs); err != nil {
		return wire.WrapField(err, "attrs")
	}
	if m.Home != nil {
		w.WriteTag(8, wire.WireBytes)
		if err := w.WriteMessage(m.Home); err != nil {
			return wire.WrapField(err, "home")
		}
	}
	if m.Created != nil {
		w.WriteTag(9, wire.WireBytes)
		if err := m.Created.Write(w, timestampCodec); err != nil {
			return wire.WrapField(err, "created")
		}
	}
	if m.Ratio != 0 {
		w.WriteTag(10, wire.WireFixed64)
		w.WriteDouble(m.Ratio)
	}
	if m.Flags != 0 {
		w.WriteTag(11, wire.WireFixed32)
		w.WriteFixed32(m.Flags)
	}
	if m.Timeout != nil {
		w.WriteTag(13, wire.WireBytes)
		if err := m.Timeout.Write(w, durationCodec); err != nil {
			return wire.WrapField(err, "timeout")
		}
	}
	if m.Nickname != nil {
		w.WriteTag(14, wire.WireBytes)
		if err := m.Nickname.Write(w, bytesCodec); err != nil {
			return wire.WrapField(err, "nickname")
		}
	}
	w.WriteUnknown(m.Unknown)
	return nil
}

func DeserializePerson(r *wire.Reader) (*Person, error) {
	m := &Person{}
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
		case wire.MakeTag(1, wire.WireBytes):
			if m.ID, err = wrappers.ReadUUIDRef(r); err != nil {
				return nil, wire.WrapField(err, "id")
			}
		case wire.MakeTag(2, wire.WireBytes):
			if m.Name, err = r.ReadString(); err != nil {
				return nil, wire.WrapField(err, "name")
			}
		case wire.MakeTag(3, wire.WireVarint):
			if m.Age, err = r.ReadInt32(); err != nil {
				return nil, wire.WrapField(err, "age")
			}
		case wire.MakeTag(4, wire.WireVarint):
			if m.Balance, err = r.ReadSint64(); err != nil {
				return nil, wire.WrapField(err, "balance")
			}
		case wire.MakeTag(5, wire.WireBytes), wire.MakeTag(5, wire.WireVarint):
			err = r.ReadRepeated(true, func() error {
				v, err := r.ReadInt32()
				if err != nil {
					return err
				}
				m.Scores = append(m.Scores, v)
				return nil
			})
			if err != nil {
				return nil, wire.WrapField(err, "scores")
			}
		case wire.MakeTag(6, wire.WireBytes):
			s, err := r.ReadString()
			if err != nil {
				return nil, wire.WrapField(err, "tags")
			}
			m.Tags = append(m.Tags, s)
		case wire.MakeTag(7, wire.WireBytes):
			if m.Attrs == nil {
				m.Attrs = make(map[string]int64)
			}
			if err := attrsCodec.ReadInto(r, m.Attrs); err != nil {
				return nil, wire.WrapField(err, "attrs")
			}
		case wire.MakeTag(8, wire.WireBytes):
			if m.Home, err = wire.ReadMessageOf(r, DeserializeAddress); err != nil {
				return nil, wire.WrapField(err, "home")
			}
		case wire.MakeTag(9, wire.WireBytes):
			if m.Created, err = wrappers.ReadTimestampRef(r); err != nil {
				return nil, wire.WrapField(err, "created")
			}
		case wire.MakeTag(10, wire.WireFixed64):
			if m.Ratio, err = r.ReadDouble(); err != nil {
				return nil, wire.WrapField(err, "ratio")
			}
		case wire.MakeTag(11, wire.WireFixed32):
			if m.Flags, err = r.ReadFixed32(); err != nil {
				return nil, wire.WrapField(err, "flags")
			}
		case wire.MakeTag(13, wire.WireBytes):
			if m.Timeout, err = wrappers.ReadDurationRef(r); err != nil {
				return nil, wire.WrapField(err, "timeout")
			}
		case wire.MakeTag(14, wire.WireBytes):
			b, err := r.ReadBytes()
			if err != nil {
				return nil, wire.WrapField(err, "nickname")
			}
			m.Nickname = lazy.FromWire[wire.Bytes, string](nicknameConv, b)
		default:
			if err := r.ReadUnknownInto(&unknown); err != nil {
				return nil, err
			}
		}
	}
}

func (m *Person) Equal(o *Person) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.ID.Equal(o.ID, func(a, b uuid.UUID) bool { return a == b }) &&
		m.Name == o.Name &&
		m.Age == o.Age &&
		m.Balance == o.Balance &&
		slices.Equal(m.Scores, o.Scores) &&
		slices.Equal(m.Tags, o.Tags) &&
		maps.Equal(m.Attrs, o.Attrs) &&
		m.Home.Equal(o.Home) &&
		m.Created.Equal(o.Created, time.Time.Equal) &&
		m.Ratio == o.Ratio &&
		m.Flags == o.Flags &&
		m.Timeout.Equal(o.Timeout, func(a, b time.Duration) bool { return a == b }) &&
		m.Nickname.Equal(o.Nickname, func(a, b string) bool { return a == b }) &&
		m.Unknown.Equal(o.Unknown)
}

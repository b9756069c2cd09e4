package testmsg

import "github.com/anirudhraja/protolite/wire"

type Address struct {
	Street  string // 1
	Zip     uint32 // 2
	Unknown *wire.UnknownFieldSet

	size wire.MemoizedSize
}

func (m *Address) MessageSize() int {
	return m.size.Get(func() int {
		n := 0
		if m.Street != "" {
			n += wire.SizeTag(1) + wire.SizeString(m.Street)
		}
		if m.Zip != 0 {
			n += wire.SizeTag(2) + wire.SizeVarint32(m.Zip)
		}
		return n + m.Unknown.Size()
	})
}

func (m *Address) Serialize(w *wire.Writer) error {
	if m.Street != "" {
		w.WriteTag(1, wire.WireBytes)
		if err := w.WriteString(m.Street); err != nil {
			return wire.WrapField(err, "street")
		}
	}
	if m.Zip != 0 {
		w.WriteTag(2, wire.WireVarint)
		w.WriteUint32(m.Zip)
	}
	w.WriteUnknown(m.Unknown)
	return nil
}

func DeserializeAddress(r *wire.Reader) (*Address, error) {
	m := &Address{}
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
			if m.Street, err = r.ReadString(); err != nil {
				return nil, wire.WrapField(err, "street")
			}
		case wire.MakeTag(2, wire.WireVarint):
			if m.Zip, err = r.ReadUint32(); err != nil {
				return nil, wire.WrapField(err, "zip")
			}
		default:
			if err := r.ReadUnknownInto(&unknown); err != nil {
				return nil, err
			}
		}
	}
}

func (m *Address) Equal(o *Address) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Street == o.Street && m.Zip == o.Zip && m.Unknown.Equal(o.Unknown)
}

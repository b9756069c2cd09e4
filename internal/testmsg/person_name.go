package testmsg

import "github.com/anirudhraja/protolite/wire"

// PersonName reads only field 2 of a Person; everything else is retained as
// unknown and written back unchanged.
type PersonName struct {
	Name    string // 2
	Unknown *wire.UnknownFieldSet

	size wire.MemoizedSize
}

func (m *PersonName) MessageSize() int {
	return m.size.Get(func() int {
		n := 0
		if m.Name != "" {
			n += wire.SizeTag(2) + wire.SizeString(m.Name)
		}
		return n + m.Unknown.Size()
	})
}

func (m *PersonName) Serialize(w *wire.Writer) error {
	if m.Name != "" {
		w.WriteTag(2, wire.WireBytes)
		if err := w.WriteString(m.Name); err != nil {
			return wire.WrapField(err, "name")
		}
	}
	w.WriteUnknown(m.Unknown)
	return nil
}

func DeserializePersonName(r *wire.Reader) (*PersonName, error) {
	m := &PersonName{}
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
		case wire.MakeTag(2, wire.WireBytes):
			if m.Name, err = r.ReadString(); err != nil {
				return nil, wire.WrapField(err, "name")
			}
		default:
			if err := r.ReadUnknownInto(&unknown); err != nil {
				return nil, err
			}
		}
	}
}

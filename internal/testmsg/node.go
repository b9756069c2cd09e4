package testmsg

import "github.com/anirudhraja/protolite/wire"

type Node struct {
	Value   int32 // 1
	Child   *Node // 2
	Unknown *wire.UnknownFieldSet

	size wire.MemoizedSize
}

// Chain returns a Node with depth nested children below it. Decoding it
// descends depth embedded messages.
func Chain(depth int) *Node {
	n := &Node{Value: int32(depth)}
	for i := depth - 1; i >= 0; i-- {
		n = &Node{Value: int32(i), Child: n}
	}
	return n
}

// Depth returns the number of nested children below m.
func (m *Node) Depth() int {
	d := 0
	for c := m.Child; c != nil; c = c.Child {
		d++
	}
	return d
}

func (m *Node) MessageSize() int {
	return m.size.Get(func() int {
		n := 0
		if m.Value != 0 {
			n += wire.SizeTag(1) + wire.SizeInt32(m.Value)
		}
		if m.Child != nil {
			n += wire.SizeMessageField(2, m.Child)
		}
		return n + m.Unknown.Size()
	})
}

func (m *Node) Serialize(w *wire.Writer) error {
	if m.Value != 0 {
		w.WriteTag(1, wire.WireVarint)
		w.WriteInt32(m.Value)
	}
	if m.Child != nil {
		w.WriteTag(2, wire.WireBytes)
		if err := w.WriteMessage(m.Child); err != nil {
			return wire.WrapField(err, "child")
		}
	}
	w.WriteUnknown(m.Unknown)
	return nil
}

func DeserializeNode(r *wire.Reader) (*Node, error) {
	m := &Node{}
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
			if m.Value, err = r.ReadInt32(); err != nil {
				return nil, wire.WrapField(err, "value")
			}
		case wire.MakeTag(2, wire.WireBytes):
			if m.Child, err = wire.ReadMessageOf(r, DeserializeNode); err != nil {
				return nil, wire.WrapField(err, "child")
			}
		default:
			if err := r.ReadUnknownInto(&unknown); err != nil {
				return nil, err
			}
		}
	}
}

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	src := []byte("hello")
	b := BytesOf(src)
	src[0] = 'j'

	assert.Equal(t, 5, b.Len())
	assert.Equal(t, byte('h'), b.At(0), "BytesOf copies")
	assert.Equal(t, "68656c6c6f", b.String())

	clone := b.Clone()
	clone[0] = 'x'
	assert.Equal(t, byte('h'), b.At(0), "Clone copies")

	assert.Equal(t, []byte("say hello"), b.AppendTo([]byte("say ")))

	assert.True(t, b.Equal(BytesOfString("hello")))
	assert.False(t, b.Equal(BytesOfString("hell")))
	assert.Equal(t, b.Hash(), BytesOfString("hello").Hash())

	assert.True(t, EmptyBytes.IsEmpty())
	assert.True(t, BytesOf([]byte{}).Equal(EmptyBytes))
	assert.True(t, Bytes{}.Equal(BytesOfString("")))
	assert.Equal(t, EmptyBytes.Hash(), Bytes{}.Hash())
}

func TestBytesSlice(t *testing.T) {
	t.Parallel()

	array := []byte("..abc..abc")
	a := NewBytesSlice(array, 2, 3)
	b := NewBytesSlice(array, 7, 3)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2, a.Offset())
	assert.Equal(t, byte('c'), a.At(2))
	assert.True(t, a.Equal(b), "equality ignores position")
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, BytesOfString("abc").Hash(), a.Hash())
	assert.Equal(t, "616263", a.String())

	assert.Panics(t, func() { a.At(3) })
	assert.Panics(t, func() { a.At(-1) })
	assert.Panics(t, func() { NewBytesSlice(array, 8, 3) })

	// View cannot be grown into the rest of the array.
	v := a.View()
	assert.Equal(t, 3, cap(v))
	_ = append(v, '!')
	assert.Equal(t, byte('.'), array[5])

	owned := a.ToBytes()
	array[2] = 'A'
	assert.Equal(t, []byte("Abc"), a.View())
	assert.Equal(t, "616263", owned.String())

	whole := BytesOfString("xyz").Slice()
	assert.Equal(t, 0, whole.Offset())
	assert.Equal(t, 3, whole.Len())
	assert.True(t, NewBytesSlice(nil, 0, 0).IsEmpty())
}

func TestBytesFromMessage(t *testing.T) {
	t.Parallel()

	m := &fakeMessage{body: []byte{0x08, 0x01}}
	b, err := BytesFromMessage(m)
	assert.NoError(t, err)
	assert.Equal(t, "0801", b.String())
}

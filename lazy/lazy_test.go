package lazy

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/protolite/wire"
)

// countingConverter maps the decimal text in a string to an int and counts
// both directions. Negative ints have no encoding.
type countingConverter struct {
	wraps, unwraps atomic.Int32
}

var (
	errNotNumber = errors.New("not a number")
	errNegative  = errors.New("negative")
)

func (c *countingConverter) Wrap(s string) (int, error) {
	c.wraps.Add(1)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errNotNumber
	}
	return n, nil
}

func (c *countingConverter) Unwrap(n int) (string, error) {
	c.unwraps.Add(1)
	if n < 0 {
		return "", errNegative
	}
	return strconv.Itoa(n), nil
}

func wireValue[W any](t *testing.T, get func() (W, error)) W {
	t.Helper()
	w, err := get()
	require.NoError(t, err)
	return w
}

func TestReferenceFromWire(t *testing.T) {
	t.Parallel()

	conv := &countingConverter{}
	r := FromWire[string, int](conv, "42")
	assert.False(t, r.IsDomain())

	// Encoding queries use the wire form directly.
	assert.Equal(t, 3, r.Size(StringCodec{}))
	assert.False(t, r.IsDefault(StringCodec{}))
	w := wire.NewWriter()
	require.NoError(t, r.Write(w, StringCodec{}))
	assert.Equal(t, []byte{0x02, '4', '2'}, w.Bytes())
	assert.Zero(t, conv.wraps.Load())

	v, err := r.Value()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, r.IsDomain())

	v, err = r.Value()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(1), conv.wraps.Load(), "converted once")

	// The wire form was released; getting it back converts once more.
	assert.Equal(t, "42", wireValue(t, r.WireValue))
	assert.Equal(t, "42", wireValue(t, r.WireValue))
	assert.Equal(t, 3, r.Size(StringCodec{}))
	assert.Equal(t, int32(1), conv.unwraps.Load())
	assert.Equal(t, int32(1), conv.wraps.Load())
}

func TestReferenceFromDomain(t *testing.T) {
	t.Parallel()

	conv := &countingConverter{}
	r := FromDomain[string, int](conv, 7)
	assert.True(t, r.IsDomain())

	v, err := r.Value()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Zero(t, conv.wraps.Load())

	assert.Equal(t, 2, r.Size(StringCodec{}))
	w := wire.NewWriter()
	require.NoError(t, r.Write(w, StringCodec{}))
	assert.Equal(t, []byte{0x01, '7'}, w.Bytes())
	assert.Equal(t, int32(1), conv.unwraps.Load(), "sizing and writing share one conversion")

	// Both forms are kept once the wire form exists.
	_, err = r.Value()
	require.NoError(t, err)
	assert.Zero(t, conv.wraps.Load())
}

func TestReferenceWrapFailure(t *testing.T) {
	t.Parallel()

	conv := &countingConverter{}
	r := FromWire[string, int](conv, "x")

	_, err := r.Value()
	assert.ErrorIs(t, err, errNotNumber)
	assert.False(t, r.IsDomain())

	// The failure is not cached and the wire form survives it.
	_, err = r.Value()
	assert.ErrorIs(t, err, errNotNumber)
	assert.Equal(t, int32(2), conv.wraps.Load())
	assert.Equal(t, "x", wireValue(t, r.WireValue))
	assert.Zero(t, conv.unwraps.Load())

	assert.False(t, r.Equal(FromWire[string, int](conv, "x"), func(a, b int) bool { return a == b }))
	assert.Zero(t, r.Hash(func(int) uint64 { return 1 }))
}

func TestReferenceUnwrapFailure(t *testing.T) {
	t.Parallel()

	conv := &countingConverter{}
	for _, r := range []interface {
		WireValue() (string, error)
		Size(WireCodec[string]) int
		IsDefault(WireCodec[string]) bool
		Write(*wire.Writer, WireCodec[string]) error
		IsDomain() bool
	}{
		FromDomain[string, int](conv, -1),
		CachingFromDomain[string, int](conv, -1),
	} {
		_, err := r.WireValue()
		assert.ErrorIs(t, err, errNegative)
		assert.Zero(t, r.Size(StringCodec{}))
		assert.False(t, r.IsDefault(StringCodec{}), "must reach Write")

		w := wire.NewWriter()
		assert.ErrorIs(t, r.Write(w, StringCodec{}), errNegative)
		assert.Zero(t, w.Len())
		assert.True(t, r.IsDomain())
	}

	// Failures are not cached: every query converts again.
	assert.Equal(t, int32(8), conv.unwraps.Load())
}

func TestCachingReference(t *testing.T) {
	t.Parallel()

	conv := &countingConverter{}
	r := CachingFromWire[string, int](conv, "0099")

	v, err := r.Value()
	require.NoError(t, err)
	assert.Equal(t, 99, v)

	// The original wire form is kept, so a non-canonical encoding survives.
	assert.Equal(t, "0099", wireValue(t, r.WireValue))
	w := wire.NewWriter()
	require.NoError(t, r.Write(w, StringCodec{}))
	assert.Equal(t, []byte{0x04, '0', '0', '9', '9'}, w.Bytes())
	assert.Zero(t, conv.unwraps.Load())

	d := CachingFromDomain[string, int](conv, 5)
	assert.Equal(t, "5", wireValue(t, d.WireValue))
	v, err = d.Value()
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.True(t, d.IsDomain())
	assert.Equal(t, int32(1), conv.wraps.Load())
	assert.Equal(t, int32(1), conv.unwraps.Load())
}

func TestReferenceEqualAndHash(t *testing.T) {
	t.Parallel()

	conv := &countingConverter{}
	eq := func(a, b int) bool { return a == b }
	h := func(n int) uint64 { return uint64(n) * 31 }

	a := FromWire[string, int](conv, "010")
	b := FromDomain[string, int](conv, 10)
	assert.True(t, a.Equal(b, eq), "domain equality, not wire equality")
	assert.Equal(t, a.Hash(h), b.Hash(h))
	assert.False(t, a.Equal(FromDomain[string, int](conv, 11), eq))

	var nilRef *Reference[string, int]
	assert.True(t, nilRef.Equal(nil, eq))
	assert.False(t, nilRef.Equal(a, eq))
	assert.False(t, a.Equal(nil, eq))

	c := CachingFromWire[string, int](conv, "7")
	assert.True(t, c.Equal(CachingFromDomain[string, int](conv, 7), eq))
	assert.Equal(t, h(7), c.Hash(h))
}

func TestReferenceIsDefault(t *testing.T) {
	t.Parallel()

	conv := &countingConverter{}
	assert.True(t, FromWire[string, int](conv, "").IsDefault(StringCodec{}))
	assert.False(t, FromDomain[string, int](conv, 0).IsDefault(StringCodec{}), "0 encodes as \"0\"")
}

func TestReferenceConcurrent(t *testing.T) {
	t.Parallel()

	for range 50 {
		conv := &countingConverter{}
		r := FromWire[string, int](conv, "123")
		c := CachingFromDomain[string, int](conv, 456)

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := r.Value()
				assert.NoError(t, err)
				assert.Equal(t, 123, v)
				cw, err := c.WireValue()
				assert.NoError(t, err)
				assert.Equal(t, "456", cw)
				assert.Equal(t, 4, c.Size(StringCodec{}))
			}()
		}
		wg.Wait()

		// Racing conversions are allowed, but every caller saw the same value
		// and the cell settled on one published state.
		assert.GreaterOrEqual(t, conv.wraps.Load(), int32(1))
		assert.True(t, r.IsDomain())
		v, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, 456, v)
	}
}

func TestConverterFuncs(t *testing.T) {
	t.Parallel()

	conv := ConverterFuncs[int64, bool]{
		WrapFunc:   func(v int64) (bool, error) { return v != 0, nil },
		UnwrapFunc: func(b bool) (int64, error) {
			if b {
				return 1, nil
			}
			return 0, nil
		},
	}
	r := FromDomain[int64, bool](conv, true)
	assert.Equal(t, 1, r.Size(Int64Codec{}))
	w := wire.NewWriter()
	require.NoError(t, r.Write(w, Int64Codec{}))
	assert.Equal(t, []byte{0x01}, w.Bytes())
	assert.False(t, r.IsDefault(Int64Codec{}))
	assert.True(t, FromDomain[int64, bool](conv, false).IsDefault(Int64Codec{}))
}

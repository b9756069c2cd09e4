package wire

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestVarintKnownEncodings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value uint64
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{150, []byte{0x96, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bytes, AppendVarint(nil, tt.value), "encode %d", tt.value)
		assert.Equal(t, len(tt.bytes), SizeVarint(tt.value), "size %d", tt.value)

		v, n, err := ConsumeVarint(tt.bytes)
		require.NoError(t, err)
		assert.Equal(t, tt.value, v)
		assert.Equal(t, len(tt.bytes), n)
	}
}

func TestVarintAgainstProtowire(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 10000 {
		// Spread values across every encoded length.
		v := r.Uint64() >> r.UintN(64)

		want := protowire.AppendVarint(nil, v)
		assert.Equal(t, want, AppendVarint(nil, v))
		assert.Equal(t, protowire.SizeVarint(v), SizeVarint(v))
		if v <= math.MaxUint32 {
			assert.Equal(t, protowire.SizeVarint(v), SizeVarint32(uint32(v)))
		}

		got, n, err := ConsumeVarint(append(want, 0xee))
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(want), n)
	}
}

func TestVarintTruncated(t *testing.T) {
	t.Parallel()

	full := AppendVarint(nil, math.MaxUint64)
	for i := range full {
		_, _, err := ConsumeVarint(full[:i])
		assert.ErrorIs(t, err, ErrTruncated, "prefix of %d bytes", i)
	}
}

func TestVarintOverlong(t *testing.T) {
	t.Parallel()

	// Eleven bytes: the tenth carries more than the one bit a uint64 has
	// room for and an eleventh continues past it.
	b := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	v, n, err := ConsumeVarint(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)
	assert.Equal(t, 11, n)

	// Redundant zero continuation groups are tolerated too.
	v, n, err = ConsumeVarint([]byte{0x81, 0x80, 0x80, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	assert.Equal(t, 4, n)
}

func TestConsumeVarint32Truncates(t *testing.T) {
	t.Parallel()

	b := AppendVarint(nil, 1<<40|5)
	v, n, err := ConsumeVarint32(b)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), v)
	assert.Equal(t, len(b), n)
}

func TestZigZag(t *testing.T) {
	t.Parallel()

	tests32 := []struct {
		value   int32
		encoded uint64
	}{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2147483647, 4294967294}, {-2147483648, 4294967295},
	}
	for _, tt := range tests32 {
		assert.Equal(t, tt.encoded, EncodeZigZag32(tt.value), "encode %d", tt.value)
		assert.Equal(t, tt.value, DecodeZigZag32(tt.encoded), "decode %d", tt.encoded)
	}

	tests64 := []struct {
		value   int64
		encoded uint64
	}{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {math.MaxInt64, math.MaxUint64 - 1}, {math.MinInt64, math.MaxUint64},
	}
	for _, tt := range tests64 {
		assert.Equal(t, tt.encoded, EncodeZigZag64(tt.value), "encode %d", tt.value)
		assert.Equal(t, tt.value, DecodeZigZag64(tt.encoded), "decode %d", tt.encoded)
		assert.Equal(t, protowire.EncodeZigZag(tt.value), EncodeZigZag64(tt.value))
	}

	r := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		v := int64(r.Uint64())
		assert.Equal(t, v, DecodeZigZag64(EncodeZigZag64(v)))
		assert.Equal(t, int32(v), DecodeZigZag32(EncodeZigZag32(int32(v))))
	}
}

func TestScalarSizes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, SizeInt32(-1))
	assert.Equal(t, 10, SizeInt32(math.MinInt32))
	assert.Equal(t, 5, SizeInt32(math.MaxInt32))
	assert.Equal(t, 1, SizeInt32(0))
	assert.Equal(t, 10, SizeInt64(-1))
	assert.Equal(t, 1, SizeSint32(-1))
	assert.Equal(t, 5, SizeSint32(math.MinInt32))
	assert.Equal(t, 10, SizeSint64(math.MinInt64))
	assert.Equal(t, 1, SizeBool(true))

	assert.Equal(t, 1, SizeTag(1))
	assert.Equal(t, 1, SizeTag(15))
	assert.Equal(t, 2, SizeTag(16))
	assert.Equal(t, 2, SizeTag(2047))
	assert.Equal(t, 3, SizeTag(2048))
	assert.Equal(t, 5, SizeTag(MaxFieldNumber))
	for _, n := range []FieldNumber{1, 15, 16, 2047, 2048, 262143, 262144, MaxFieldNumber} {
		assert.Equal(t, protowire.SizeTag(protowire.Number(n)), SizeTag(n), "field %d", n)
	}
}

func TestTag(t *testing.T) {
	t.Parallel()

	tag := MakeTag(300, WireBytes)
	assert.Equal(t, Tag(300<<3|2), tag)
	n, wt := ParseTag(tag)
	assert.Equal(t, FieldNumber(300), n)
	assert.Equal(t, WireBytes, wt)
	assert.Equal(t, uint64(tag), protowire.EncodeTag(300, protowire.BytesType))

	assert.True(t, WireFixed32.Supported())
	assert.False(t, WireStartGroup.Supported())
	assert.False(t, WireType(7).Supported())
	assert.Equal(t, "wiretype(6)", WireType(6).String())

	assert.False(t, FieldNumber(0).Valid())
	assert.True(t, MaxFieldNumber.Valid())
	assert.False(t, (MaxFieldNumber + 1).Valid())
}

func FuzzConsumeVarint(f *testing.F) {
	f.Add([]byte{0xac, 0x02})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	f.Add([]byte{0x80})
	f.Fuzz(func(t *testing.T, b []byte) {
		v, n, err := ConsumeVarint(b)
		want, wn := protowire.ConsumeVarint(b)
		if wn >= 0 {
			// Everything protowire accepts decodes identically.
			require.NoError(t, err)
			assert.Equal(t, want, v)
			assert.Equal(t, wn, n)
			return
		}
		if err == nil {
			// Accepted only as an over-long encoding.
			assert.GreaterOrEqual(t, n, MaxVarintLen64)
		}
	})
}

package testmsg_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/protolite/internal/testmsg"
	"github.com/anirudhraja/protolite/wire"
)

func TestNodeRecursionLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		depth   int
		opts    []wire.ReaderOption
		wantErr bool
	}{
		{name: "default limit reached", depth: wire.DefaultRecursionLimit},
		{name: "default limit exceeded", depth: wire.DefaultRecursionLimit + 1, wantErr: true},
		{name: "custom limit reached", depth: 5, opts: []wire.ReaderOption{wire.WithRecursionLimit(5)}},
		{name: "custom limit exceeded", depth: 6, opts: []wire.ReaderOption{wire.WithRecursionLimit(5)}, wantErr: true},
		{name: "raised limit", depth: 300, opts: []wire.ReaderOption{wire.WithRecursionLimit(300)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := wire.Marshal(testmsg.Chain(tt.depth))
			require.NoError(t, err)

			got, err := wire.Unmarshal(b, testmsg.DeserializeNode, tt.opts...)
			if tt.wantErr {
				require.ErrorIs(t, err, wire.ErrRecursionLimit)
				var fe *wire.FieldError
				require.ErrorAs(t, err, &fe)
				assert.Len(t, fe.FieldPath, tt.depth)
				assert.True(t, strings.HasPrefix(err.Error(), "error at proto path child.child."))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.depth, got.Depth())
		})
	}
}

func TestNodeSiblingsDoNotAccumulateDepth(t *testing.T) {
	t.Parallel()

	// Many shallow embedded messages side by side: depth returns to zero
	// after each one.
	w := wire.NewWriter()
	for range 3 * wire.DefaultRecursionLimit {
		w.WriteTag(2, wire.WireBytes)
		require.NoError(t, w.WriteMessage(testmsg.Chain(1)))
	}

	got, err := wire.Unmarshal(w.Bytes(), testmsg.DeserializeNode)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Depth(), "the last occurrence wins")
}

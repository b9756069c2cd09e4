// Package testdata loads the shared corpus of encoded specimens.
//
// Each corpus/*.yaml file describes one case: the message type to decode it
// as, one or more specimens written as hex or protoscope, and the error
// decoding is expected to fail with, if any. Every specimen of a case must
// behave the same way.
package testdata

import (
	"bytes"
	"embed"
	"encoding/hex"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/protocolbuffers/protoscope"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/anirudhraja/protolite/wire"
)

//go:embed corpus
var corpus embed.FS

// Case is one corpus entry.
type Case struct {
	Name string `yaml:"-"`

	// Type names the decoder: person, person_name, node, address or unknown.
	Type string `yaml:"type"`

	// Error is the name of the wire error decoding must fail with. Empty
	// means decoding succeeds.
	Error string `yaml:"error"`

	// Canonical marks specimens that re-encode to exactly the same bytes.
	Canonical bool `yaml:"canonical"`

	// Benchmark includes the case in the corpus benchmarks.
	Benchmark bool `yaml:"benchmark"`

	// RecursionLimit overrides the Reader's nesting ceiling when non-zero.
	RecursionLimit int `yaml:"recursion_limit"`

	Hex        []string `yaml:"hex"`
	Protoscope []string `yaml:"protoscope"`

	Specimens [][]byte `yaml:"-"`
}

var errorsByName = map[string]error{
	"truncated":             wire.ErrTruncated,
	"negative_size":         wire.ErrNegativeSize,
	"invalid_tag":           wire.ErrInvalidTag,
	"unsupported_wire_type": wire.ErrUnsupportedWireType,
	"recursion_limit":       wire.ErrRecursionLimit,
	"message_not_consumed":  wire.ErrMessageNotConsumed,
	"invalid_utf8":          wire.ErrInvalidUTF8,
}

// Err returns the sentinel named by Error, or nil.
func (c *Case) Err() error {
	return errorsByName[c.Error]
}

// Options returns the Reader options the case asks for.
func (c *Case) Options() []wire.ReaderOption {
	if c.RecursionLimit == 0 {
		return nil
	}
	return []wire.ReaderOption{wire.WithRecursionLimit(c.RecursionLimit)}
}

// Load parses every corpus file. Malformed files fail t.
func Load(t testing.TB) []*Case {
	t.Helper()

	var cases []*Case
	err := fs.WalkDir(corpus, "corpus", func(p string, d fs.DirEntry, err error) error {
		require.NoError(t, err, "walking %q", p)
		if d.IsDir() || path.Ext(p) != ".yaml" {
			return nil
		}
		data, err := fs.ReadFile(corpus, p)
		require.NoError(t, err, "loading %q", p)
		cases = append(cases, parseCase(t, p, data))
		return nil
	})
	require.NoError(t, err)
	return cases
}

// RunAll runs f as a subtest for every corpus case.
func RunAll(t *testing.T, f func(*testing.T, *Case)) {
	t.Helper()
	for _, c := range Load(t) {
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()
			f(t, c)
		})
	}
}

func parseCase(t testing.TB, p string, file []byte) *Case {
	t.Helper()

	require.True(t, bytes.HasSuffix(file, []byte("\n")), "missing trailing newline in %q", p)

	c := new(Case)
	dec := yaml.NewDecoder(bytes.NewReader(file))
	dec.KnownFields(true)
	require.NoError(t, dec.Decode(c), "decoding %q", p)

	c.Name = strings.TrimSuffix(strings.TrimPrefix(p, "corpus/"), ".yaml")
	if c.Error != "" {
		require.Contains(t, errorsByName, c.Error, "unknown error name in %q", p)
	}

	for _, raw := range c.Hex {
		r := strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
		b, err := hex.DecodeString(r.Replace(raw))
		require.NoError(t, err, "hex specimen in %q", p)
		c.Specimens = append(c.Specimens, b)
	}
	for _, raw := range c.Protoscope {
		b, err := protoscope.NewScanner(raw).Exec()
		require.NoError(t, err, "protoscope specimen in %q", p)
		c.Specimens = append(c.Specimens, b)
	}
	require.NotEmpty(t, c.Specimens, "no specimens in %q", p)
	return c
}

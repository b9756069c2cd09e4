package protolite

import (
	"fmt"

	"github.com/anirudhraja/protolite/wire"
)

// ===== CONFIGURED CODEC API =====

// Protolite carries one codec configuration and applies it to every Reader
// and Writer it creates, independently of the global wire.Config.
type Protolite struct {
	cfg wire.Config
}

// New creates a Protolite using the current global configuration.
func New() *Protolite {
	return NewWithConfig(wire.CurrentConfig())
}

// NewWithConfig creates a Protolite using cfg.
func NewWithConfig(cfg wire.Config) *Protolite {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = wire.DefaultRecursionLimit
	}
	return &Protolite{cfg: cfg}
}

// NewFromFile creates a Protolite from a YAML or TOML configuration file.
func NewFromFile(path string) (*Protolite, error) {
	cfg, err := wire.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// Config returns the configuration in use.
func (p *Protolite) Config() wire.Config { return p.cfg }

// ReaderOptions returns options that apply p's configuration to a Reader.
func (p *Protolite) ReaderOptions() []wire.ReaderOption {
	return []wire.ReaderOption{
		wire.WithRecursionLimit(p.cfg.RecursionLimit),
		wire.WithDiscardUnknown(p.cfg.DiscardUnknown),
	}
}

// WriterOptions returns options that apply p's configuration to a Writer.
func (p *Protolite) WriterOptions() []wire.WriterOption {
	return []wire.WriterOption{wire.WithReplaceInvalidUTF8(p.cfg.ReplaceInvalidUTF8)}
}

// NewReader creates a Reader over data.
func (p *Protolite) NewReader(data []byte) *wire.Reader {
	return wire.NewReader(data, p.ReaderOptions()...)
}

// NewWriter creates an empty Writer.
func (p *Protolite) NewWriter() *wire.Writer {
	return wire.NewWriter(p.WriterOptions()...)
}

// Marshal serializes a message.
func (p *Protolite) Marshal(m wire.Message) ([]byte, error) {
	return wire.Marshal(m, p.WriterOptions()...)
}

// Parse decodes data without a schema. Every field is retained as unknown,
// whatever the DiscardUnknown setting. The parse is flat: length-delimited
// fields are kept as bytes and never entered, so the recursion limit does
// not apply.
func (p *Protolite) Parse(data []byte) (*wire.UnknownFieldSet, error) {
	s, err := wire.ParseUnknownFieldSet(data)
	if err != nil {
		return nil, fmt.Errorf("schema-less parse failed: %w", err)
	}
	return s, nil
}

// Unmarshal decodes data as a top-level message of type T under p's
// configuration.
func Unmarshal[T any](p *Protolite, data []byte, deserialize wire.Deserializer[T]) (T, error) {
	return deserialize(p.NewReader(data))
}

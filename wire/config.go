package wire

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultRecursionLimit bounds how deeply ReadMessage may nest.
const DefaultRecursionLimit = 100

// Config controls optional codec behaviors. The zero value of every toggle
// keeps the strict, lossless behavior.
type Config struct {
	// RecursionLimit is the deepest embedded-message nesting a Reader accepts.
	// Zero or negative selects DefaultRecursionLimit.
	RecursionLimit int `yaml:"recursion_limit" toml:"recursion_limit"`

	// DiscardUnknown makes Reader.ReadUnknownInto skip unrecognized fields
	// instead of retaining them for re-serialization.
	DiscardUnknown bool `yaml:"discard_unknown" toml:"discard_unknown"`

	// ReplaceInvalidUTF8 makes Writer.WriteString substitute U+FFFD for each
	// invalid byte rather than failing with ErrInvalidUTF8.
	ReplaceInvalidUTF8 bool `yaml:"replace_invalid_utf8" toml:"replace_invalid_utf8"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{RecursionLimit: DefaultRecursionLimit}
}

func (c Config) recursionLimit() int {
	if c.RecursionLimit <= 0 {
		return DefaultRecursionLimit
	}
	return c.RecursionLimit
}

var config = DefaultConfig()

// SetConfig sets the global wire configuration. It is meant to be called
// during program setup, before Readers and Writers are created.
func SetConfig(c Config) { config = c }

// CurrentConfig returns the global wire configuration.
func CurrentConfig() Config { return config }

// LoadConfig reads a Config from a YAML (.yaml, .yml) or TOML (.toml) file.
// Fields absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config load failed (%s): unsupported extension", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if cfg.RecursionLimit < 0 {
		return Config{}, fmt.Errorf("config invalid (%s): recursion_limit must not be negative", path)
	}
	return cfg, nil
}

func init() {
	// Optional env toggles for test harnesses; defaults remain unchanged if unset.
	if v, err := strconv.Atoi(os.Getenv("PROTOLITE_RECURSION_LIMIT")); err == nil && v > 0 {
		config.RecursionLimit = v
	}
	if v := os.Getenv("PROTOLITE_DISCARD_UNKNOWN"); v == "1" || v == "true" {
		config.DiscardUnknown = true
	}
	if v := os.Getenv("PROTOLITE_REPLACE_INVALID_UTF8"); v == "1" || v == "true" {
		config.ReplaceInvalidUTF8 = true
	}
}

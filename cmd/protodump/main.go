// Command protodump decodes protobuf wire data without a schema.
//
// Usage:
//
//	protodump [flags] [file]
//
// Input is read from file, or stdin when file is absent or "-". By default
// every field is printed as "number: value" in protoscope syntax, grouped by
// field number. With -format=protoscope the input is disassembled by the
// protoscope library instead, keeping the original field order. With
// -assemble the input is protoscope source and the binary encoding is
// written out after being checked by the decoder.
package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/protocolbuffers/protoscope"
	"github.com/rs/zerolog/log"

	"github.com/anirudhraja/protolite"
	"github.com/anirudhraja/protolite/internal/logging"
	"github.com/anirudhraja/protolite/wire"
)

const (
	formatText       = "text"
	formatProtoscope = "protoscope"
	formatHex        = "hex"
)

type options struct {
	configPath     string
	format         string
	recursionLimit int
	assemble       bool
	hexInput       bool
	input          string
}

var errUsage = errors.New("usage")

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("protodump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML or TOML codec configuration file")
	fs.StringVar(&opts.format, "format", formatText, "output format: text, protoscope or hex")
	fs.IntVar(&opts.recursionLimit, "recursion-limit", 0, "override the nesting limit")
	fs.BoolVar(&opts.assemble, "assemble", false, "read protoscope source and write binary")
	fs.BoolVar(&opts.hexInput, "hex", false, "input is hex text rather than binary")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch opts.format {
	case formatText, formatProtoscope, formatHex:
	default:
		return opts, fmt.Errorf("%w: unknown format %q", errUsage, opts.format)
	}
	switch fs.NArg() {
	case 0:
		opts.input = "-"
	case 1:
		opts.input = fs.Arg(0)
	default:
		return opts, fmt.Errorf("%w: at most one input file", errUsage)
	}
	return opts, nil
}

func newProtolite(opts options) (*protolite.Protolite, error) {
	cfg := wire.CurrentConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = wire.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.recursionLimit > 0 {
		cfg.RecursionLimit = opts.recursionLimit
	}
	return protolite.NewWithConfig(cfg), nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	p, err := newProtolite(opts)
	if err != nil {
		return err
	}

	data, err := readInput(opts.input, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	log.Debug().Str("input", opts.input).Int("bytes", len(data)).Msg("input read")

	if opts.assemble {
		data, err = protoscope.NewScanner(string(data)).Exec()
		if err != nil {
			return fmt.Errorf("assemble: %w", err)
		}
	} else if opts.hexInput {
		data, err = hex.DecodeString(string(bytes.Join(bytes.Fields(data), nil)))
		if err != nil {
			return fmt.Errorf("decode hex input: %w", err)
		}
	}

	fields, err := p.Parse(data)
	if err != nil {
		return err
	}
	log.Info().
		Int("bytes", len(data)).
		Int("fields", fields.Len()).
		Int("depth_limit", p.Config().RecursionLimit).
		Msg("parsed")

	switch {
	case opts.assemble && opts.format == formatText:
		_, err = stdout.Write(data)
	case opts.format == formatHex:
		_, err = fmt.Fprintln(stdout, hex.EncodeToString(data))
	case opts.format == formatProtoscope:
		_, err = io.WriteString(stdout, protoscope.Write(data, protoscope.WriterOptions{}))
	default:
		_, err = io.WriteString(stdout, fields.String())
	}
	return err
}

func main() {
	logging.Configure("protodump", logging.ProfileRuntime)

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Error().Err(err).Msg("protodump failed")
		os.Exit(1)
	}
}

// wirepack encodes a record value into compact, text-safe form and
// decodes it back, using the wirepack pipeline.
//
// The value is read from the positional argument, or from stdin when no
// argument is given. With --json the input of encode and the output of
// decode are JSON records ({"value": "..."}) instead of raw strings.
//
// Options come from defaults, then an optional YAML profile (--config),
// then flags. Diagnostics are logged to stderr; --verbose adds per-stage
// sizes and timings.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/arloliu/wirepack"
	"github.com/arloliu/wirepack/codec"
	"github.com/arloliu/wirepack/format"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// usageError marks invalid invocations, which exit with status 2.
type usageError struct {
	err error
}

func usagef(msg string, args ...any) error {
	return &usageError{err: fmt.Errorf(msg, args...)}
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return 2 }

type flags struct {
	format         string
	compression    string
	level          string
	alphabet       string
	checksum       bool
	maxDecodedSize int64
	json           bool
	config         string
	verbose        bool
}

func newFlagSet(f *flags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("wirepack", pflag.ContinueOnError)
	flagSet.StringVarP(&f.format, "format", "f", "plain", "serialization format: plain, msgpack, cbor")
	flagSet.StringVarP(&f.compression, "compression", "c", "gzip", "compression: gzip, zlib, deflate, zstd, s2, lz4, none")
	flagSet.StringVarP(&f.level, "level", "l", "default", "compression level 0-9 or none, fastest, default, best")
	flagSet.StringVarP(&f.alphabet, "alphabet", "a", "standard", "base64 alphabet: standard, urlsafe")
	flagSet.BoolVar(&f.checksum, "checksum", false, "append and verify an xxHash64 payload checksum")
	flagSet.Int64Var(&f.maxDecodedSize, "max-decoded-size", 0, "decompressed size limit in bytes (0 = 512 MiB)")
	flagSet.BoolVar(&f.json, "json", false, `read (encode) or write (decode) a JSON record {"value": ...}`)
	flagSet.StringVar(&f.config, "config", "", "YAML options profile; flags override it")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "log per-stage sizes and timings to stderr")
	flagSet.Bool("version", false, "print version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	return flagSet
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var f flags
	flagSet := newFlagSet(&f)
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}

		return &usageError{err: err}
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	if v, _ := flagSet.GetBool("version"); v {
		fmt.Fprintf(stdout, "wirepack %s\n", version)
		return nil
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	positional := flagSet.Args()
	if len(positional) == 0 {
		return usagef("missing command: want encode or decode")
	}
	if len(positional) > 2 {
		return usagef("unexpected argument: %s", positional[2])
	}

	command := positional[0]
	if command != "encode" && command != "decode" {
		return usagef("unknown command %q: want encode or decode", command)
	}

	opts, err := resolveOptions(flagSet, &f)
	if err != nil {
		return err
	}
	logger.Debug("options resolved",
		"format", opts.Format,
		"compression", opts.Compression,
		"level", opts.Level,
		"alphabet", opts.Alphabet,
		"checksum", opts.Checksum,
		"config", f.config,
	)

	input, err := readInput(positional[1:], stdin)
	if err != nil {
		return err
	}

	if command == "encode" {
		return runEncode(logger, stdout, input, opts, f.json)
	}

	return runDecode(logger, stdout, input, opts, f.json)
}

// resolveOptions layers the YAML profile and the explicitly set flags
// over wirepack.DefaultOptions.
func resolveOptions(flagSet *pflag.FlagSet, f *flags) (wirepack.Options, error) {
	opts := wirepack.DefaultOptions()

	if f.config != "" {
		var err error
		if opts, err = loadProfile(f.config, opts); err != nil {
			return wirepack.Options{}, err
		}
	}

	type textFlag struct {
		name   string
		value  string
		target interface{ UnmarshalText([]byte) error }
	}

	for _, tf := range []textFlag{
		{"format", f.format, &opts.Format},
		{"compression", f.compression, &opts.Compression},
		{"level", f.level, &opts.Level},
		{"alphabet", f.alphabet, &opts.Alphabet},
	} {
		if !flagSet.Changed(tf.name) {
			continue
		}
		if err := tf.target.UnmarshalText([]byte(tf.value)); err != nil {
			return wirepack.Options{}, usagef("--%s: %w", tf.name, err)
		}
	}

	if flagSet.Changed("checksum") {
		opts.Checksum = f.checksum
	}
	if flagSet.Changed("max-decoded-size") {
		opts.MaxDecodedSize = f.maxDecodedSize
	}

	if err := opts.Validate(); err != nil {
		return wirepack.Options{}, &usageError{err: err}
	}

	return opts, nil
}

func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	// Drop the line terminator a shell pipeline typically appends.
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))

	return string(data), nil
}

// jsonRecord is the --json form of a record.
type jsonRecord struct {
	Value *string `json:"value"`
}

func runEncode(logger *slog.Logger, stdout io.Writer, input string, opts wirepack.Options, asJSON bool) error {
	rec := wirepack.Record{Value: input}
	if asJSON {
		var jr jsonRecord
		if err := codec.Decode([]byte(input), format.PlainText, &jr); err != nil {
			return fmt.Errorf("parse JSON record: %w", err)
		}
		if jr.Value == nil {
			return errors.New(`parse JSON record: missing field "value"`)
		}
		rec.Value = *jr.Value
	}

	start := time.Now()
	text, stats, err := wirepack.EncodeWithStats(rec, opts)
	if err != nil {
		return err
	}

	logger.Debug("encoded",
		"value_bytes", len(rec.Value),
		"serialized_bytes", stats.SerializedSize,
		"compressed_bytes", stats.CompressedSize,
		"text_bytes", stats.TextSize,
		"ratio", fmt.Sprintf("%.3f", stats.Compression.CompressionRatio()),
		"compress_time", time.Duration(stats.Compression.CompressionTimeNs),
		"elapsed", time.Since(start),
	)

	_, err = fmt.Fprintln(stdout, text)

	return err
}

func runDecode(logger *slog.Logger, stdout io.Writer, input string, opts wirepack.Options, asJSON bool) error {
	text := strings.TrimSpace(input)

	start := time.Now()
	rec, err := wirepack.Decode(text, opts)
	if err != nil {
		if stage, ok := wirepack.StageOf(err); ok {
			logger.Debug("decode failed", "stage", stage, "text_bytes", len(text))
		}

		return err
	}

	logger.Debug("decoded",
		"text_bytes", len(text),
		"value_bytes", len(rec.Value),
		"elapsed", time.Since(start),
	)

	if !asJSON {
		_, err = fmt.Fprintln(stdout, rec.Value)
		return err
	}

	out, err := codec.Encode(jsonRecord{Value: &rec.Value}, format.PlainText)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))

	return err
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `wirepack: serialize, compress and base64-encode a record value.

Usage:
  wirepack encode [flags] [VALUE]
  wirepack decode [flags] [TEXT]

VALUE and TEXT are read from stdin when omitted.

Examples:
  # Encode with the defaults (plain JSON, gzip level 6, standard base64)
  wirepack encode hello

  # Round trip through CBOR, zstd and URL-safe text
  wirepack encode -f cbor -c zstd -a urlsafe hello | wirepack decode -f cbor -c zstd -a urlsafe

  # Decode to a JSON record using a saved profile
  wirepack decode --config profile.yaml --json H4sIAAAAAAAA/...

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}

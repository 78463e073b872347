package wirepack

import (
	"fmt"

	"github.com/arloliu/wirepack/compress"
	"github.com/arloliu/wirepack/errs"
	"github.com/arloliu/wirepack/format"
	"github.com/arloliu/wirepack/internal/options"
)

// Options selects how a value travels through the pipeline.
//
// Options is a plain value: build it with DefaultOptions or NewOptions and
// pass it by value to each call. Every enumeration starts at 1, so a
// zero-value Options is invalid and is rejected by the first stage that
// consumes it.
type Options struct {
	// Format selects the serialization format.
	Format format.FormatKind `yaml:"format"`
	// Compression selects the compression algorithm.
	Compression format.CompressionType `yaml:"compression"`
	// Level is the compression level, 0-9.
	Level format.Level `yaml:"level"`
	// Alphabet selects the base64 alphabet of the text form.
	Alphabet format.Alphabet `yaml:"alphabet"`
	// Checksum appends an xxHash64 trailer to the serialized bytes before
	// compression and verifies it after decompression. Both sides must agree.
	Checksum bool `yaml:"checksum"`
	// MaxDecodedSize bounds the decompressed size in bytes. Zero selects
	// compress.DefaultMaxDecodedSize.
	MaxDecodedSize int64 `yaml:"max_decoded_size"`
}

// Option configures Options in NewOptions.
type Option = options.Option[*Options]

// DefaultOptions returns PlainText serialization, gzip at
// format.LevelDefault, the standard padded alphabet, no checksum and the
// default decompression limit.
func DefaultOptions() Options {
	return Options{
		Format:      format.PlainText,
		Compression: format.CompressionGzip,
		Level:       format.LevelDefault,
		Alphabet:    format.AlphabetStandard,
	}
}

// NewOptions applies opts on top of DefaultOptions.
//
// An invalid option value yields an error matching errs.ErrInvalidOption
// and the zero Options.
func NewOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	if err := options.Apply(&o, opts...); err != nil {
		return Options{}, err
	}

	return o, nil
}

// WithFormat sets the serialization format.
func WithFormat(kind format.FormatKind) Option {
	return options.New(func(o *Options) error {
		if !kind.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownFormat, uint8(kind))
		}
		o.Format = kind

		return nil
	})
}

// WithCompression sets the compression algorithm.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(o *Options) error {
		if !ct.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownCompression, uint8(ct))
		}
		o.Compression = ct

		return nil
	})
}

// WithLevel sets the compression level. Valid levels are 0-9; see the
// format.Level presets.
func WithLevel(level format.Level) Option {
	return options.New(func(o *Options) error {
		if !level.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidLevel, int(level))
		}
		o.Level = level

		return nil
	})
}

// WithAlphabet sets the base64 alphabet.
func WithAlphabet(alphabet format.Alphabet) Option {
	return options.New(func(o *Options) error {
		if !alphabet.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownAlphabet, uint8(alphabet))
		}
		o.Alphabet = alphabet

		return nil
	})
}

// WithChecksum enables or disables the xxHash64 payload trailer.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(o *Options) {
		o.Checksum = enabled
	})
}

// WithMaxDecodedSize bounds the decompressed payload size. Zero restores
// the default limit; negative sizes are rejected.
func WithMaxDecodedSize(n int64) Option {
	return options.New(func(o *Options) error {
		if n < 0 {
			return fmt.Errorf("max decoded size must not be negative, got %d", n)
		}
		o.MaxDecodedSize = n

		return nil
	})
}

// Validate reports the first invalid field of o.
//
// The pipeline does not call Validate: each stage checks the fields it
// consumes. Validate is for hosts that assemble Options from external
// configuration and want to fail before the first call.
func (o Options) Validate() error {
	switch {
	case !o.Format.Valid():
		return fmt.Errorf("%w: %w: %d", errs.ErrInvalidOption, errs.ErrUnknownFormat, uint8(o.Format))
	case !o.Compression.Valid():
		return fmt.Errorf("%w: %w: %d", errs.ErrInvalidOption, errs.ErrUnknownCompression, uint8(o.Compression))
	case !o.Level.Valid():
		return fmt.Errorf("%w: %w: %d", errs.ErrInvalidOption, errs.ErrInvalidLevel, int(o.Level))
	case !o.Alphabet.Valid():
		return fmt.Errorf("%w: %w: %d", errs.ErrInvalidOption, errs.ErrUnknownAlphabet, uint8(o.Alphabet))
	case o.MaxDecodedSize < 0:
		return fmt.Errorf("%w: max decoded size must not be negative, got %d", errs.ErrInvalidOption, o.MaxDecodedSize)
	default:
		return nil
	}
}

func (o Options) decodeLimit() (int64, error) {
	switch {
	case o.MaxDecodedSize < 0:
		return 0, fmt.Errorf("%w: max decoded size must not be negative, got %d", errs.ErrInvalidOption, o.MaxDecodedSize)
	case o.MaxDecodedSize == 0:
		return compress.DefaultMaxDecodedSize, nil
	default:
		return o.MaxDecodedSize, nil
	}
}

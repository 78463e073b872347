package codec

import (
	"fmt"
	"reflect"

	"github.com/arloliu/wirepack/errs"
	"github.com/arloliu/wirepack/format"
)

// Codec converts values to and from one wire format.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v, which must be a non-nil pointer.
	// Implementations reject unknown fields and trailing bytes.
	Unmarshal(data []byte, v any) error
	// Format returns the format implemented by the codec.
	Format() format.FormatKind
}

var builtinCodecs = map[format.FormatKind]Codec{
	format.PlainText:              JSON{},
	format.CompactBinaryMap:       MsgPack{},
	format.SelfDescribingDocument: CBOR{},
}

// Get returns the Codec for kind, or an error matching errs.ErrUnknownFormat.
func Get(kind format.FormatKind) (Codec, error) {
	switch kind {
	case format.PlainText, format.CompactBinaryMap, format.SelfDescribingDocument:
		return builtinCodecs[kind], nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownFormat, uint8(kind))
	}
}

// Encode serializes v with the codec selected by kind.
//
// Strings must hold valid UTF-8 in every format. Values the format cannot
// represent (channels, functions, invalid UTF-8) produce an error matching
// errs.ErrEncodeFailed.
func Encode(v any, kind format.FormatKind) ([]byte, error) {
	c, err := Get(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrEncodeFailed, err)
	}

	if err := checkText(reflect.ValueOf(v)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrEncodeFailed, kind, err)
	}

	data, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrEncodeFailed, kind, err)
	}

	return data, nil
}

// Decode deserializes data into v with the codec selected by kind.
//
// Decode is total: malformed input of any length, including empty or
// truncated input, yields an error matching errs.ErrDecodeFailed and
// never a panic.
func Decode(data []byte, kind format.FormatKind, v any) (err error) {
	c, err := Get(kind)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrDecodeFailed, err)
	}

	if len(data) == 0 {
		return fmt.Errorf("%w: %s: empty input", errs.ErrDecodeFailed, kind)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", errs.ErrDecodeFailed, kind, r)
		}
	}()

	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrDecodeFailed, kind, err)
	}

	if err := checkText(reflect.ValueOf(v)); err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrDecodeFailed, kind, err)
	}

	return nil
}

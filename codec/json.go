package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/arloliu/wirepack/format"
	"github.com/arloliu/wirepack/internal/pool"
)

// JSON implements format.PlainText.
//
// Output is compact and does not escape HTML characters, so a record
// {Value: "<b>"} encodes as {"value":"<b>"}.
type JSON struct{}

var _ Codec = JSON{}

// Marshal serializes v to JSON bytes.
func (JSON) Marshal(v any) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// Encoder terminates every value with a newline.
	buf.B = bytes.TrimSuffix(buf.B, []byte{'\n'})

	return buf.Clone(), nil
}

// Unmarshal deserializes exactly one JSON value into v.
//
// Input containing invalid UTF-8 is rejected instead of being silently
// replaced with U+FFFD.
func (JSON) Unmarshal(data []byte, v any) error {
	if !utf8.Valid(data) {
		return errInvalidUTF8
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}

	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}

	return nil
}

// Format returns format.PlainText.
func (JSON) Format() format.FormatKind { return format.PlainText }

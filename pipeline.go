package wirepack

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/wirepack/codec"
	"github.com/arloliu/wirepack/compress"
	"github.com/arloliu/wirepack/errs"
	"github.com/arloliu/wirepack/internal/hash"
	"github.com/arloliu/wirepack/textsafe"
)

// Record is the value carried by Encode and Decode: a single text field
// serialized under the name "value" in every format.
//
// Use EncodeValue and DecodeValue for other types.
type Record struct {
	Value string
}

// recordWire gives Record an explicit wire shape. The pointer lets
// decoding tell an absent field from an empty string.
type recordWire struct {
	Value *string `json:"value" msgpack:"value" cbor:"value"`
}

// UnmarshalJSON accepts only the exact key "value". encoding/json would
// otherwise also match "VALUE" or "Value".
func (w *recordWire) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for name, raw := range fields {
		if name != "value" {
			return fmt.Errorf("json: unknown field %q", name)
		}

		if err := json.Unmarshal(raw, &w.Value); err != nil {
			return err
		}
	}

	return nil
}

// Stats describes the sizes observed by EncodeWithStats.
type Stats struct {
	// SerializedSize is the codec output size, excluding any checksum trailer.
	SerializedSize int
	// CompressedSize is the compressor output size.
	CompressedSize int
	// TextSize is the length of the final text.
	TextSize int
	// Compression holds the compressor statistics. Its OriginalSize
	// includes the checksum trailer when enabled.
	Compression compress.CompressionStats
}

// Encode serializes r, compresses it and returns its text form.
//
// Failures are returned as *PipelineError with StageSerialization,
// StageCompression or StageTextEncoding.
func Encode(r Record, o Options) (string, error) {
	text, _, err := encode(recordWire{Value: &r.Value}, o)
	return text, err
}

// EncodeWithStats is Encode that also reports the size of each stage.
func EncodeWithStats(r Record, o Options) (string, Stats, error) {
	return encode(recordWire{Value: &r.Value}, o)
}

// EncodeValue is Encode for an arbitrary value the selected format can represent.
func EncodeValue[T any](v T, o Options) (string, error) {
	text, _, err := encode(v, o)
	return text, err
}

// Decode reverses Encode.
//
// Failures are returned as *PipelineError with StageTextDecoding,
// StageDecompression or StageDeserialization. A payload without a
// "value" field fails at StageDeserialization; an empty value is valid.
func Decode(text string, o Options) (Record, error) {
	var w recordWire
	if err := decode(text, o, &w); err != nil {
		return Record{}, err
	}

	if w.Value == nil {
		return Record{}, stageError(StageDeserialization,
			fmt.Errorf("%w: %s: missing field \"value\"", errs.ErrDecodeFailed, o.Format))
	}

	return Record{Value: *w.Value}, nil
}

// DecodeValue reverses EncodeValue.
func DecodeValue[T any](text string, o Options) (T, error) {
	var v T
	if err := decode(text, o, &v); err != nil {
		var zero T
		return zero, err
	}

	return v, nil
}

func encode(v any, o Options) (string, Stats, error) {
	var stats Stats

	payload, err := codec.Encode(v, o.Format)
	if err != nil {
		return "", stats, stageError(StageSerialization, err)
	}
	stats.SerializedSize = len(payload)

	if o.Checksum {
		payload = hash.AppendTrailer(payload)
	}

	c, err := compress.CreateCodec(o.Compression, o.Level)
	if err != nil {
		return "", stats, stageError(StageCompression, err)
	}

	compressed, cstats, err := compress.CompressWithStats(c, payload)
	if err != nil {
		return "", stats, stageError(StageCompression, err)
	}
	stats.CompressedSize = len(compressed)
	stats.Compression = cstats

	text, err := textsafe.Encode(compressed, o.Alphabet)
	if err != nil {
		return "", stats, stageError(StageTextEncoding, err)
	}
	stats.TextSize = len(text)

	return text, stats, nil
}

func decode(text string, o Options, v any) error {
	compressed, err := textsafe.Decode(text, o.Alphabet)
	if err != nil {
		return stageError(StageTextDecoding, err)
	}

	limit, err := o.decodeLimit()
	if err != nil {
		return stageError(StageDecompression, err)
	}

	c, err := compress.CreateCodec(o.Compression, o.Level)
	if err != nil {
		return stageError(StageDecompression, err)
	}

	payload, err := c.DecompressLimit(compressed, limit)
	if err != nil {
		return stageError(StageDecompression, err)
	}

	if o.Checksum {
		if payload, err = hash.SplitTrailer(payload); err != nil {
			return stageError(StageDecompression, err)
		}
	}

	if err := codec.Decode(payload, o.Format, v); err != nil {
		return stageError(StageDeserialization, err)
	}

	return nil
}

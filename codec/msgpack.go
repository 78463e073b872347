package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/wirepack/format"
	"github.com/arloliu/wirepack/internal/pool"
)

// MsgPack implements format.CompactBinaryMap using MessagePack.
//
// Structs are encoded as maps keyed by field name. Field names come from
// the msgpack tag, falling back to the json tag. Integers use their most
// compact representation; floats keep their width.
type MsgPack struct{}

var _ Codec = MsgPack{}

// Marshal serializes v to MessagePack bytes.
func (MsgPack) Marshal(v any) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	enc := msgpack.NewEncoder(buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Unmarshal deserializes exactly one MessagePack value into v.
//
// Input nested deeper than maxNestingDepth containers is rejected before
// decoding, since the decoder recurses once per level.
func (MsgPack) Unmarshal(data []byte, v any) error {
	if err := checkMsgPackDepth(data); err != nil {
		return err
	}

	r := bytes.NewReader(data)

	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(v); err != nil {
		return err
	}

	// bytes.Reader is an io.ByteScanner, so the decoder reads it unbuffered.
	if r.Len() > 0 {
		return errTrailingData
	}

	return nil
}

// Format returns format.CompactBinaryMap.
func (MsgPack) Format() format.FormatKind { return format.CompactBinaryMap }

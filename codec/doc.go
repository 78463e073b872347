// Package codec implements the serialization stage of the wirepack pipeline.
//
// Three interchangeable formats are supported, selected by format.FormatKind:
//
//   - format.PlainText: JSON, compact and without HTML escaping.
//   - format.CompactBinaryMap: MessagePack with map-encoded structs.
//   - format.SelfDescribingDocument: deterministic CBOR.
//
// Encode and Decode wrap every failure with errs.ErrEncodeFailed or
// errs.ErrDecodeFailed. Decoding is strict in all formats: unknown
// struct fields, trailing bytes and invalid UTF-8 are rejected.
// MessagePack input nested deeper than 1000 containers is rejected too.
//
// Struct field names match exactly in MessagePack and CBOR. The JSON
// codec uses encoding/json, which matches a key such as "VALUE" to a
// field tagged "value"; types needing exact keys in JSON implement
// json.Unmarshaler, as the root package does for Record.
//
//	data, err := codec.Encode(record, format.CompactBinaryMap)
//	if err != nil {
//	    return err
//	}
//	var out Record
//	err = codec.Decode(data, format.CompactBinaryMap, &out)
package codec

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/wirepack/format"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode is the strict CBOR decoder: unknown struct fields, duplicate
// map keys and invalid UTF-8 text strings are errors, and field names
// match case-sensitively.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		UTF8:              cbor.UTF8RejectInvalid,
		FieldNameMatching: cbor.FieldNameMatchingCaseSensitive,
		// any-typed targets decode maps as map[string]any, matching
		// what the JSON and MessagePack codecs produce.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR implements format.SelfDescribingDocument.
//
// Every item carries its own major type, so a nil pointer (absent with
// omitempty, or null) stays distinct from an empty string or map. Field
// names come from the cbor tag, falling back to the json tag.
type CBOR struct{}

var _ Codec = CBOR{}

// Marshal serializes v to deterministic CBOR bytes.
func (CBOR) Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal deserializes exactly one CBOR data item into v.
func (CBOR) Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Format returns format.SelfDescribingDocument.
func (CBOR) Format() format.FormatKind { return format.SelfDescribingDocument }

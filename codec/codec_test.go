package codec

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/wirepack/errs"
	"github.com/arloliu/wirepack/format"
)

type sample struct {
	Value string `json:"value"`
}

type nested struct {
	Name   string            `json:"name"`
	Tags   []string          `json:"tags"`
	Attrs  map[string]string `json:"attrs"`
	Count  int64             `json:"count"`
	Ratio  float64           `json:"ratio"`
	Blob   []byte            `json:"blob"`
	Parent *sample           `json:"parent,omitempty"`
}

func TestGet(t *testing.T) {
	for _, kind := range format.Formats() {
		c, err := Get(kind)
		require.NoError(t, err)
		require.Equal(t, kind, c.Format())
	}

	_, err := Get(format.FormatKind(0))
	require.ErrorIs(t, err, errs.ErrUnknownFormat)

	_, err = Get(format.FormatKind(42))
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}

func TestEncode_PlainText(t *testing.T) {
	data, err := Encode(sample{Value: "hello"}, format.PlainText)
	require.NoError(t, err)
	require.Equal(t, `{"value":"hello"}`, string(data))

	data, err = Encode(sample{Value: "<a&b>"}, format.PlainText)
	require.NoError(t, err)
	require.Equal(t, `{"value":"<a&b>"}`, string(data), "HTML characters must not be escaped")
}

func TestRoundTrip(t *testing.T) {
	values := map[string]string{
		"empty":   "",
		"ascii":   "hello",
		"unicode": "héllo, 世界 🚀",
		"control": "tab\tnewline\nnul\x00",
		"long":    strings.Repeat("abc", 100000),
	}

	for _, kind := range format.Formats() {
		for name, v := range values {
			t.Run(kind.String()+"/"+name, func(t *testing.T) {
				data, err := Encode(sample{Value: v}, kind)
				require.NoError(t, err)

				var got sample
				require.NoError(t, Decode(data, kind, &got))
				require.Equal(t, v, got.Value)
			})
		}
	}
}

func TestRoundTrip_Nested(t *testing.T) {
	in := nested{
		Name:   "sensor",
		Tags:   []string{"a", "b"},
		Attrs:  map[string]string{"unit": "°C", "zone": "3"},
		Count:  -42,
		Ratio:  0.25,
		Blob:   []byte{0x00, 0xff, 0x10},
		Parent: &sample{Value: "root"},
	}

	for _, kind := range format.Formats() {
		t.Run(kind.String(), func(t *testing.T) {
			data, err := Encode(in, kind)
			require.NoError(t, err)

			var got nested
			require.NoError(t, Decode(data, kind, &got))
			require.Equal(t, in, got)
		})
	}
}

func TestFormatsProduceDistinctBytes(t *testing.T) {
	in := sample{Value: "hello"}
	encoded := make(map[format.FormatKind][]byte)

	for _, kind := range format.Formats() {
		data, err := Encode(in, kind)
		require.NoError(t, err)
		encoded[kind] = data

		var got sample
		require.NoError(t, Decode(data, kind, &got))
		require.Equal(t, in, got)
	}

	require.NotEqual(t, encoded[format.PlainText], encoded[format.CompactBinaryMap])
	require.NotEqual(t, encoded[format.PlainText], encoded[format.SelfDescribingDocument])
	require.NotEqual(t, encoded[format.CompactBinaryMap], encoded[format.SelfDescribingDocument])
}

func TestCBOR_Deterministic(t *testing.T) {
	m := map[string]int{"zeta": 1, "alpha": 2, "mid": 3, "b": 4}

	first, err := Encode(m, format.SelfDescribingDocument)
	require.NoError(t, err)

	for range 20 {
		again, err := Encode(m, format.SelfDescribingDocument)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestDecode_AnyTarget(t *testing.T) {
	for _, kind := range format.Formats() {
		t.Run(kind.String(), func(t *testing.T) {
			data, err := Encode(sample{Value: "x"}, kind)
			require.NoError(t, err)

			var got any
			require.NoError(t, Decode(data, kind, &got))

			m, ok := got.(map[string]any)
			require.True(t, ok, "got %T", got)
			require.Equal(t, "x", m["value"])
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		_, err := Encode(sample{}, format.FormatKind(0))
		require.ErrorIs(t, err, errs.ErrEncodeFailed)
		require.ErrorIs(t, err, errs.ErrUnknownFormat)
	})

	for _, kind := range format.Formats() {
		t.Run(kind.String()+"/invalid utf8", func(t *testing.T) {
			_, err := Encode(sample{Value: "bad\xffbyte"}, kind)
			require.ErrorIs(t, err, errs.ErrEncodeFailed)
		})

		t.Run(kind.String()+"/invalid utf8 nested", func(t *testing.T) {
			_, err := Encode(nested{Attrs: map[string]string{"\xfe": "ok"}}, kind)
			require.ErrorIs(t, err, errs.ErrEncodeFailed)
		})

		t.Run(kind.String()+"/chan", func(t *testing.T) {
			_, err := Encode(make(chan int), kind)
			require.ErrorIs(t, err, errs.ErrEncodeFailed)
		})

		t.Run(kind.String()+"/func", func(t *testing.T) {
			_, err := Encode(func() {}, kind)
			require.ErrorIs(t, err, errs.ErrEncodeFailed)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	for _, kind := range format.Formats() {
		valid, err := Encode(sample{Value: "hello"}, kind)
		require.NoError(t, err)

		t.Run(kind.String()+"/empty", func(t *testing.T) {
			var got sample
			require.ErrorIs(t, Decode(nil, kind, &got), errs.ErrDecodeFailed)
			require.ErrorIs(t, Decode([]byte{}, kind, &got), errs.ErrDecodeFailed)
		})

		t.Run(kind.String()+"/truncated", func(t *testing.T) {
			for n := 1; n < len(valid); n++ {
				var got sample
				err := Decode(valid[:n], kind, &got)
				require.ErrorIs(t, err, errs.ErrDecodeFailed, "prefix length %d", n)
			}
		})

		t.Run(kind.String()+"/unknown field", func(t *testing.T) {
			data, err := Encode(map[string]any{"value": "x", "extra": 1}, kind)
			require.NoError(t, err)

			var got sample
			require.ErrorIs(t, Decode(data, kind, &got), errs.ErrDecodeFailed)
		})

		t.Run(kind.String()+"/wrong type", func(t *testing.T) {
			data, err := Encode(map[string]any{"value": 12}, kind)
			require.NoError(t, err)

			var got sample
			require.ErrorIs(t, Decode(data, kind, &got), errs.ErrDecodeFailed)
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		var got sample
		err := Decode([]byte("{}"), format.FormatKind(9), &got)
		require.ErrorIs(t, err, errs.ErrDecodeFailed)
		require.ErrorIs(t, err, errs.ErrUnknownFormat)
	})
}

func TestDecode_TrailingData(t *testing.T) {
	tests := []struct {
		kind    format.FormatKind
		trailer []byte
	}{
		{format.PlainText, []byte(` {"value":"x"}`)},
		{format.PlainText, []byte(`garbage`)},
		{format.CompactBinaryMap, []byte{0xc0}},
		{format.SelfDescribingDocument, []byte{0xf6}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			data, err := Encode(sample{Value: "x"}, tt.kind)
			require.NoError(t, err)

			var got sample
			err = Decode(append(data, tt.trailer...), tt.kind, &got)
			require.ErrorIs(t, err, errs.ErrDecodeFailed)
		})
	}

	t.Run("json trailing whitespace", func(t *testing.T) {
		var got sample
		require.NoError(t, Decode([]byte("{\"value\":\"x\"}\n"), format.PlainText, &got))
		require.Equal(t, "x", got.Value)
	})
}

func TestDecode_InvalidUTF8(t *testing.T) {
	tests := []struct {
		kind format.FormatKind
		data []byte
	}{
		{format.PlainText, []byte("{\"value\":\"\xff\"}")},
		// fixmap(1) "value" fixstr(1) 0xff
		{format.CompactBinaryMap, append([]byte{0x81, 0xa5}, append([]byte("value"), 0xa1, 0xff)...)},
		// map(1) text(5) "value" text(1) 0xff
		{format.SelfDescribingDocument, append([]byte{0xa1, 0x65}, append([]byte("value"), 0x61, 0xff)...)},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var got sample
			require.ErrorIs(t, Decode(tt.data, tt.kind, &got), errs.ErrDecodeFailed)
		})
	}
}

func TestCBOR_DuplicateKeys(t *testing.T) {
	// map(2) "value":"a" "value":"b"
	var data []byte
	data = append(data, 0xa2)
	for _, v := range []string{"a", "b"} {
		data = append(data, 0x65)
		data = append(data, "value"...)
		data = append(data, 0x61, v[0])
	}

	var got sample
	require.ErrorIs(t, Decode(data, format.SelfDescribingDocument, &got), errs.ErrDecodeFailed)
}

func TestDecode_NeverPanics(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	inputs := [][]byte{
		{0x00}, {0xff}, {0xc1}, {0x1f}, {0x7f, 0xff},
		[]byte("{"), []byte("["), []byte("null"), []byte(`{"value":`),
		bytes.Repeat([]byte{0x91}, 64),
		bytes.Repeat([]byte{0x81}, 64),
		bytes.Repeat([]byte("["), 20000),
		bytes.Repeat([]byte{0x91}, 1_000_000),
		bytes.Repeat([]byte{0xdc, 0x00, 0x01}, 300_000),
		bytes.Repeat([]byte{0x81, 0xa1, 'k'}, 300_000),
	}
	for range 500 {
		b := make([]byte, 1+rng.IntN(48))
		for i := range b {
			b[i] = byte(rng.Uint32())
		}
		inputs = append(inputs, b)
	}

	for _, kind := range format.Formats() {
		t.Run(kind.String(), func(t *testing.T) {
			for _, in := range inputs {
				assert.NotPanics(t, func() {
					var s sample
					_ = Decode(in, kind, &s)

					var m map[string]string
					_ = Decode(in, kind, &m)

					var a any
					_ = Decode(in, kind, &a)

					var ma map[string]any
					_ = Decode(in, kind, &ma)
				})
			}
		})
	}
}

// nestedArrays returns depth single-element MessagePack arrays around nil.
func nestedArrays(depth int) []byte {
	return append(bytes.Repeat([]byte{0x91}, depth), 0xc0)
}

func TestMsgPack_NestingLimit(t *testing.T) {
	t.Run("at limit", func(t *testing.T) {
		var v any
		require.NoError(t, Decode(nestedArrays(maxNestingDepth), format.CompactBinaryMap, &v))

		for range maxNestingDepth {
			arr, ok := v.([]any)
			require.True(t, ok)
			require.Len(t, arr, 1)
			v = arr[0]
		}
		require.Nil(t, v)
	})

	t.Run("over limit", func(t *testing.T) {
		var v any
		err := Decode(nestedArrays(maxNestingDepth+1), format.CompactBinaryMap, &v)
		require.ErrorIs(t, err, errs.ErrDecodeFailed)
	})

	t.Run("maps", func(t *testing.T) {
		// {"k": {"k": ... nil}}
		data := append(bytes.Repeat([]byte{0x81, 0xa1, 'k'}, maxNestingDepth+1), 0xc0)

		var m map[string]any
		require.ErrorIs(t, Decode(data, format.CompactBinaryMap, &m), errs.ErrDecodeFailed)
	})

	t.Run("very deep", func(t *testing.T) {
		var v any
		err := Decode(bytes.Repeat([]byte{0x91}, 1_000_000), format.CompactBinaryMap, &v)
		require.ErrorIs(t, err, errs.ErrDecodeFailed)
	})
}

func TestCheckMsgPackDepth(t *testing.T) {
	wide := []byte{0xdc, 0x03, 0xe8} // array16 of 1000 items
	for range 1000 {
		wide = append(wide, 0x91, 0x01)
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"empty", nil, false},
		{"scalar", []byte{0x2a}, false},
		{"wide shallow", wide, false},
		{"skips string payload", append([]byte{0xd9, 0x04}, 0x91, 0x91, 0x91, 0x91), false},
		{"skips bin payload", append([]byte{0xc4, 0x02}, 0x91, 0x91), false},
		{"skips ext payload", []byte{0xc7, 0x01, 0x05, 0x91}, false},
		{"skips fixext payload", []byte{0xd5, 0x05, 0x91, 0x91}, false},
		{"truncated length", []byte{0xdd, 0x00}, false},
		{"invalid code", []byte{0xc1}, false},
		{"many empty arrays", append([]byte{0xdc, 0x07, 0xd0}, bytes.Repeat([]byte{0x90}, 2000)...), false},
		{"array32 chain", bytes.Repeat([]byte{0xdd, 0x00, 0x00, 0x00, 0x01}, maxNestingDepth+1), true},
		{"map16 chain", bytes.Repeat([]byte{0xde, 0x00, 0x01, 0xc0}, maxNestingDepth+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMsgPackDepth(tt.data)
			if tt.wantErr {
				require.ErrorIs(t, err, errMsgPackTooDeep)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDecode_FieldNameCase(t *testing.T) {
	// MessagePack and CBOR match struct fields exactly.
	for _, kind := range []format.FormatKind{format.CompactBinaryMap, format.SelfDescribingDocument} {
		t.Run(kind.String(), func(t *testing.T) {
			data, err := Encode(map[string]string{"VALUE": "x"}, kind)
			require.NoError(t, err)

			var got sample
			require.ErrorIs(t, Decode(data, kind, &got), errs.ErrDecodeFailed)
		})
	}
}

package wirepack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wirepack/format"
)

// Texts produced by independent gzip, zlib, raw deflate and base64
// implementations. Decoding them guards wire compatibility with other
// producers of the same formats.
func TestDecode_ForeignProducers(t *testing.T) {
	tests := []struct {
		name        string
		kind        format.FormatKind
		compression format.CompressionType
		alphabet    format.Alphabet
		text        string
		want        string
	}{
		{"plain/gzip", format.PlainText, format.CompressionGzip, format.AlphabetStandard,
			"H4sIAAAAAAAAA6tWKkvMKU1VslLKSM3JyVeqBQBazyL4EQAAAA==", "hello"},
		{"plain/zlib", format.PlainText, format.CompressionZlib, format.AlphabetStandard,
			"eNqrVipLzClNVbJSykjNyclXqgUANWEF7A==", "hello"},
		{"plain/deflate", format.PlainText, format.CompressionDeflate, format.AlphabetURLSafe,
			"q1YqS8wpTVWyUspIzcnJV6oFAA", "hello"},
		{"plain/none", format.PlainText, format.CompressionNone, format.AlphabetStandard,
			"eyJ2YWx1ZSI6ImhlbGxvIn0=", "hello"},
		{"msgpack/gzip", format.CompactBinaryMap, format.CompressionGzip, format.AlphabetStandard,
			"H4sIAAAAAAAAA2tcWpaYU5q6NCM1JycfACbR5YQNAAAA", "hello"},
		{"msgpack/zlib", format.CompactBinaryMap, format.CompressionZlib, format.AlphabetStandard,
			"eNprXFqWmFOaujQjNScnHwArbgX9", "hello"},
		{"msgpack/deflate", format.CompactBinaryMap, format.CompressionDeflate, format.AlphabetURLSafe,
			"a1xalphTmro0IzUnJx8A", "hello"},
		{"msgpack/none", format.CompactBinaryMap, format.CompressionNone, format.AlphabetStandard,
			"gaV2YWx1ZaVoZWxsbw==", "hello"},
		{"cbor/gzip", format.SelfDescribingDocument, format.CompressionGzip, format.AlphabetStandard,
			"H4sIAAAAAAAAA1uYWpaYU5qampGak5MPAHdc13YNAAAA", "hello"},
		{"cbor/zlib", format.SelfDescribingDocument, format.CompressionZlib, format.AlphabetStandard,
			"eNpbmFqWmFOampqRmpOTDwAojgWd", "hello"},
		{"cbor/deflate", format.SelfDescribingDocument, format.CompressionDeflate, format.AlphabetURLSafe,
			"W5halphTmpqakZqTkw8A", "hello"},
		{"cbor/none", format.SelfDescribingDocument, format.CompressionNone, format.AlphabetStandard,
			"oWV2YWx1ZWVoZWxsbw==", "hello"},
		{"plain/gzip/unicode", format.PlainText, format.CompressionGzip, format.AlphabetStandard,
			"H4sIAAAAAAACA6tWKkvMKU1VslLKOLwyJydf4cmOac+n9ijVAgCpi2vAGQAAAA==", "héllo 世界"},
		{"plain/gzip/stored", format.PlainText, format.CompressionGzip, format.AlphabetStandard,
			"H4sIAAAAAAAEAwEMAPP/eyJ2YWx1ZSI6IiJ9pNzHtwwAAAA=", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			o.Format = tt.kind
			o.Compression = tt.compression
			o.Alphabet = tt.alphabet

			got, err := Decode(tt.text, o)
			require.NoError(t, err)
			require.Equal(t, Record{Value: tt.want}, got)
		})
	}
}

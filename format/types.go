// Package format defines the closed enumerations shared by the wirepack
// codec, compression and text layers.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	FormatKind      uint8
	CompressionType uint8
	Alphabet        uint8
	Level           int
)

const (
	PlainText              FormatKind = 0x1 // PlainText represents JSON text.
	CompactBinaryMap       FormatKind = 0x2 // CompactBinaryMap represents MessagePack with map-encoded structs.
	SelfDescribingDocument FormatKind = 0x3 // SelfDescribingDocument represents CBOR.

	CompressionGzip    CompressionType = 0x1 // CompressionGzip represents gzip (RFC 1952).
	CompressionZlib    CompressionType = 0x2 // CompressionZlib represents zlib (RFC 1950).
	CompressionDeflate CompressionType = 0x3 // CompressionDeflate represents raw deflate (RFC 1951).
	CompressionZstd    CompressionType = 0x4 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x5 // CompressionS2 represents the S2 stream format.
	CompressionLZ4     CompressionType = 0x6 // CompressionLZ4 represents the LZ4 frame format.
	CompressionNone    CompressionType = 0x7 // CompressionNone represents no compression.

	AlphabetStandard Alphabet = 0x1 // AlphabetStandard is RFC 4648 base64 with padding.
	AlphabetURLSafe  Alphabet = 0x2 // AlphabetURLSafe is RFC 4648 base64url without padding.
)

// Compression level presets. Any integer between LevelNone and LevelBest is valid.
const (
	LevelNone    Level = 0
	LevelFastest Level = 1
	LevelDefault Level = 6
	LevelBest    Level = 9
)

var formatNames = map[FormatKind]string{
	PlainText:              "plain",
	CompactBinaryMap:       "msgpack",
	SelfDescribingDocument: "cbor",
}

var compressionNames = map[CompressionType]string{
	CompressionGzip:    "gzip",
	CompressionZlib:    "zlib",
	CompressionDeflate: "deflate",
	CompressionZstd:    "zstd",
	CompressionS2:      "s2",
	CompressionLZ4:     "lz4",
	CompressionNone:    "none",
}

var alphabetNames = map[Alphabet]string{
	AlphabetStandard: "standard",
	AlphabetURLSafe:  "urlsafe",
}

var levelNames = map[string]Level{
	"none":    LevelNone,
	"fastest": LevelFastest,
	"default": LevelDefault,
	"best":    LevelBest,
}

// Formats lists every FormatKind in declaration order.
func Formats() []FormatKind {
	return []FormatKind{PlainText, CompactBinaryMap, SelfDescribingDocument}
}

// Compressions lists every CompressionType in declaration order.
func Compressions() []CompressionType {
	return []CompressionType{
		CompressionGzip, CompressionZlib, CompressionDeflate,
		CompressionZstd, CompressionS2, CompressionLZ4, CompressionNone,
	}
}

// Alphabets lists every Alphabet in declaration order.
func Alphabets() []Alphabet {
	return []Alphabet{AlphabetStandard, AlphabetURLSafe}
}

func (f FormatKind) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}

	return "Unknown"
}

// Valid reports whether f is one of the declared formats.
func (f FormatKind) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

func (f FormatKind) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid format: %d", uint8(f))
	}

	return []byte(f.String()), nil
}

// UnmarshalText accepts the names printed by String, plus the aliases
// "json", "text", "binary", "document" and "doc".
func (f *FormatKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "plain", "plaintext", "text", "json":
		*f = PlainText
	case "msgpack", "binary", "compactbinarymap":
		*f = CompactBinaryMap
	case "cbor", "document", "doc", "selfdescribingdocument":
		*f = SelfDescribingDocument
	default:
		return fmt.Errorf("unknown format %q", text)
	}

	return nil
}

func (c CompressionType) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}

	return "Unknown"
}

// Valid reports whether c is one of the declared compression types.
func (c CompressionType) Valid() bool {
	_, ok := compressionNames[c]
	return ok
}

func (c CompressionType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid compression: %d", uint8(c))
	}

	return []byte(c.String()), nil
}

func (c *CompressionType) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for ct, n := range compressionNames {
		if n == name {
			*c = ct
			return nil
		}
	}

	return fmt.Errorf("unknown compression %q", text)
}

func (a Alphabet) String() string {
	if name, ok := alphabetNames[a]; ok {
		return name
	}

	return "Unknown"
}

// Valid reports whether a is one of the declared alphabets.
func (a Alphabet) Valid() bool {
	_, ok := alphabetNames[a]
	return ok
}

func (a Alphabet) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid alphabet: %d", uint8(a))
	}

	return []byte(a.String()), nil
}

func (a *Alphabet) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "standard", "std":
		*a = AlphabetStandard
	case "urlsafe", "url":
		*a = AlphabetURLSafe
	default:
		return fmt.Errorf("unknown alphabet %q", text)
	}

	return nil
}

func (l Level) String() string {
	for name, lv := range levelNames {
		if lv == l {
			return name
		}
	}

	return strconv.Itoa(int(l))
}

// Valid reports whether l lies within [LevelNone, LevelBest].
func (l Level) Valid() bool {
	return l >= LevelNone && l <= LevelBest
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid level: %d", int(l))
	}

	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalText accepts a preset name (none, fastest, default, best) or
// an integer between 0 and 9.
func (l *Level) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	if lv, ok := levelNames[s]; ok {
		*l = lv
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || !Level(n).Valid() {
		return fmt.Errorf("invalid level %q: want 0-9 or none|fastest|default|best", text)
	}
	*l = Level(n)

	return nil
}

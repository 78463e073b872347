// Package errs defines the sentinel errors returned by wirepack packages.
//
// Components wrap these sentinels with context using fmt.Errorf("%w: ...").
// Callers should match them with errors.Is rather than comparing strings.
package errs

import "errors"

// Codec errors
var (
	ErrEncodeFailed  = errors.New("wirepack: encode failed")
	ErrDecodeFailed  = errors.New("wirepack: decode failed")
	ErrUnknownFormat = errors.New("wirepack: unknown serialization format")
)

// Compression errors
var (
	ErrCompressionInternal = errors.New("wirepack: internal compression failure")
	ErrCorruptStream       = errors.New("wirepack: corrupt compressed stream")
	ErrDecodedSizeExceeded = errors.New("wirepack: decompressed size exceeds limit")
	ErrChecksumMismatch    = errors.New("wirepack: payload checksum mismatch")
	ErrUnknownCompression  = errors.New("wirepack: unknown compression type")
	ErrInvalidLevel        = errors.New("wirepack: invalid compression level")
)

// Text transcoding errors
var (
	ErrInvalidCharacter = errors.New("wirepack: invalid character in text")
	ErrInvalidPadding   = errors.New("wirepack: invalid text padding")
	ErrUnknownAlphabet  = errors.New("wirepack: unknown text alphabet")
)

// Option errors
var (
	ErrInvalidOption = errors.New("wirepack: invalid option")
)

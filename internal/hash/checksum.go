// Package hash computes the xxHash64 integrity trailer appended to
// serialized payloads when checksums are enabled.
package hash

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/wirepack/errs"
	"github.com/cespare/xxhash/v2"
)

// TrailerSize is the length in bytes of the checksum trailer.
const TrailerSize = 8

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// AppendTrailer returns data followed by its big-endian xxHash64.
// The input slice is not modified.
func AppendTrailer(data []byte) []byte {
	out := make([]byte, len(data), len(data)+TrailerSize)
	copy(out, data)

	return binary.BigEndian.AppendUint64(out, Sum(data))
}

// SplitTrailer verifies and strips the trailer written by AppendTrailer.
//
// The returned payload aliases data. A short input or a digest mismatch
// yields an error matching both errs.ErrCorruptStream and errs.ErrChecksumMismatch.
func SplitTrailer(data []byte) ([]byte, error) {
	if len(data) < TrailerSize {
		return nil, fmt.Errorf("%w: %w: payload of %d bytes has no trailer",
			errs.ErrCorruptStream, errs.ErrChecksumMismatch, len(data))
	}

	split := len(data) - TrailerSize
	payload, trailer := data[:split], data[split:]

	want := binary.BigEndian.Uint64(trailer)
	if got := Sum(payload); got != want {
		return nil, fmt.Errorf("%w: %w: got %016x, want %016x",
			errs.ErrCorruptStream, errs.ErrChecksumMismatch, got, want)
	}

	return payload, nil
}

package compress

import (
	"fmt"
	"time"

	"github.com/arloliu/wirepack/errs"
	"github.com/arloliu/wirepack/format"
)

// DefaultMaxDecodedSize is the decompression limit applied by the pipeline
// when no explicit limit is configured.
const DefaultMaxDecodedSize int64 = 512 * 1024 * 1024

// Compressor compresses serialized payloads.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Compression of any in-memory input, including an empty slice, succeeds.
	// An error is only returned when the underlying writer fails, and it
	// matches errs.ErrCompressionInternal.
	//
	// The returned slice is newly allocated and owned by the caller, except
	// for NoOpCompressor which returns its input. The input is not modified.
	Compress(data []byte) ([]byte, error)

	// Type reports the algorithm implemented by the compressor.
	Type() format.CompressionType
}

// Decompressor restores payloads produced by the matching Compressor.
//
// A zero-length input decompresses to an empty output. Input that is not
// a valid stream for the algorithm (bad header, checksum mismatch,
// truncation) yields an error matching errs.ErrCorruptStream.
type Decompressor interface {
	// Decompress decompresses data without an output size limit.
	Decompress(data []byte) ([]byte, error)

	// DecompressLimit decompresses data and fails with an error matching
	// errs.ErrDecodedSizeExceeded once the output would exceed limit bytes.
	// A limit <= 0 disables the check.
	DecompressLimit(data []byte, limit int64) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats provides detailed information about a compression operation.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression; 0.0 is returned
// when the original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CompressWithStats compresses data with c and reports sizes and timing.
//
// Parameters:
//   - c: Compressor to run
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed data
//   - CompressionStats: Algorithm, sizes and elapsed time (zero on error)
//   - error: Error returned by c.Compress
func CompressWithStats(c Compressor, data []byte) ([]byte, CompressionStats, error) {
	start := time.Now()
	compressed, err := c.Compress(data)
	elapsed := time.Since(start)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return compressed, CompressionStats{
		Algorithm:         c.Type(),
		OriginalSize:      int64(len(data)),
		CompressedSize:    int64(len(compressed)),
		CompressionTimeNs: elapsed.Nanoseconds(),
	}, nil
}

// clampLevel pins level into [format.LevelNone, format.LevelBest] so
// compressors built directly by their constructors never index past
// their per-level tables.
func clampLevel(level format.Level) format.Level {
	return max(format.LevelNone, min(level, format.LevelBest))
}

// CreateCodec is a factory function that creates a Codec for the given
// compression type and level.
//
// Unlike the New*Compressor constructors, which clamp out-of-range levels,
// CreateCodec rejects them.
//
// Parameters:
//   - compressionType: Algorithm to create a codec for
//   - level: Compression level, format.LevelNone (0) to format.LevelBest (9)
//
// Returns:
//   - Codec: Codec for the algorithm at the given level
//   - error: errs.ErrUnknownCompression for an undeclared type,
//     errs.ErrInvalidLevel for a level outside 0-9
func CreateCodec(compressionType format.CompressionType, level format.Level) (Codec, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", errs.ErrInvalidLevel, int(level), format.LevelNone, format.LevelBest)
	}

	switch compressionType {
	case format.CompressionGzip:
		return NewGzipCompressor(level), nil
	case format.CompressionZlib:
		return NewZlibCompressor(level), nil
	case format.CompressionDeflate:
		return NewDeflateCompressor(level), nil
	case format.CompressionZstd:
		return NewZstdCompressor(level), nil
	case format.CompressionS2:
		return NewS2Compressor(level), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(level), nil
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCompression, uint8(compressionType))
	}
}

// GetCodec returns a Codec at format.LevelDefault for the given type.
// Decompression does not depend on the level, so the result can decode
// streams produced at any level.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	return CreateCodec(compressionType, format.LevelDefault)
}

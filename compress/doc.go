// Package compress provides the compression stage of the wirepack pipeline.
//
// Compression is applied to serialized payloads before they are transcoded
// to text. Every codec accepts a level between format.LevelNone (0) and
// format.LevelBest (9) so callers can trade speed for size with a single
// knob regardless of the algorithm.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	    Type() format.CompressionType
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	    DecompressLimit(data []byte, limit int64) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Use CreateCodec to obtain a codec for a type and level:
//
//	codec, err := compress.CreateCodec(format.CompressionGzip, format.LevelBest)
//	if err != nil {
//	    return err
//	}
//	compressed, _ := codec.Compress(payload)
//	original, err := codec.DecompressLimit(compressed, compress.DefaultMaxDecodedSize)
//
// # Supported Algorithms
//
// Deflate family (levels map directly, 0 writes stored blocks):
//   - Gzip (format.CompressionGzip): default. CRC-32 and length trailer.
//   - Zlib (format.CompressionZlib): Adler-32 trailer.
//   - Deflate (format.CompressionDeflate): raw RFC 1951, no header or checksum.
//
// Other algorithms:
//   - Zstd (format.CompressionZstd): best ratio, frames carry a checksum.
//     Levels 0-2 fastest, 3-6 default, 7-8 better, 9 best.
//   - S2 (format.CompressionS2): stream format with per-chunk CRC.
//     Level 0 uncompressed, 1-6 default, 7-8 better, 9 best.
//   - LZ4 (format.CompressionLZ4): frame format with content checksum.
//     Levels 0-1 fast, 2-9 high-compression levels.
//   - None (format.CompressionNone): pass-through, ignores the level.
//
// # Error Handling
//
// Compression of in-memory data does not fail in practice; a writer
// failure is reported as errs.ErrCompressionInternal and indicates a
// defect rather than bad input.
//
// Decompression errors match errs.ErrCorruptStream: bad magic headers,
// checksum mismatches, truncated streams and (for gzip) trailing garbage.
// DecompressLimit additionally reports errs.ErrDecodedSizeExceeded when
// the output would outgrow the limit. A zero-length input always
// decompresses to an empty output.
//
// # Memory Management
//
// Deflate-family writers are pooled per level, zstd encoders per speed
// and zstd decoders globally. Output is staged in pooled buffers from
// internal/pool and copied into a slice owned by the caller, so returned
// slices never alias pooled memory (NoOp excepted).
//
// # Thread Safety
//
// All codec implementations are stateless values and safe for concurrent use.
package compress

package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/wirepack/format"
)

// zstdDecoderPool pools zstd decoders for reuse.
// The klauspost/compress/zstd decoder is designed to run without
// allocations after a warmup, so it should be stored and reused.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// zstdEncoderPools holds one encoder pool per zstd speed setting.
var zstdEncoderPools = map[zstd.EncoderLevel]*sync.Pool{}

func init() {
	for _, speed := range []zstd.EncoderLevel{
		zstd.SpeedFastest,
		zstd.SpeedDefault,
		zstd.SpeedBetterCompression,
		zstd.SpeedBestCompression,
	} {
		zstdEncoderPools[speed] = &sync.Pool{
			New: func() any {
				encoder, err := zstd.NewWriter(nil,
					zstd.WithEncoderLevel(speed),
					zstd.WithEncoderCRC(true),
					zstd.WithEncoderConcurrency(1),
				)
				if err != nil {
					// This should never happen with valid options
					panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
				}

				return encoder
			},
		}
	}
}

// zstdSpeed maps a 0-9 level onto the four zstd encoder speeds.
func zstdSpeed(level format.Level) zstd.EncoderLevel {
	switch {
	case level <= 2:
		return zstd.SpeedFastest
	case level <= 6:
		return zstd.SpeedDefault
	case level <= 8:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// ZstdCompressor provides Zstandard compression.
//
// Frames are written with a content checksum, so corrupted payloads are
// rejected on decompression. Zstd has no stored mode: level 0 selects the
// fastest speed.
type ZstdCompressor struct {
	speed zstd.EncoderLevel
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor for the given level (0-9).
//
// Example:
//
//	compressor := NewZstdCompressor(format.LevelBest)
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor(level format.Level) ZstdCompressor {
	return ZstdCompressor{speed: zstdSpeed(level)}
}

func (c ZstdCompressor) Type() format.CompressionType { return format.CompressionZstd }

// Compress compresses the input data using a pooled encoder.
// Empty input produces empty output.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	p := zstdEncoderPools[c.speed]
	encoder, _ := p.Get().(*zstd.Encoder)
	defer p.Put(encoder)

	// EncodeAll is stateless - safe to use with pooled encoder
	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data.
//
// Parameters:
//   - data: Zstd frames to decompress
//
// Returns:
//   - []byte: Decompressed data (empty, non-nil for empty input)
//   - error: errs.ErrCorruptStream for bad magic, checksum or truncation
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, 0)
}

// DecompressLimit decompresses data through a pooled decoder in stream
// mode, so an oversized payload is rejected before it is fully inflated.
func (c ZstdCompressor) DecompressLimit(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	if err := decoder.Reset(bytes.NewReader(data)); err != nil {
		return nil, corruptError(c.Type(), err)
	}

	return readAll(c.Type(), decoder, limit)
}

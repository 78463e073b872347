package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/wirepack/format"
)

// S2Compressor implements the S2 stream format.
//
// The stream format (rather than the bare block format) is used because
// it starts with a stream identifier and carries per-chunk CRCs, which
// makes corruption detectable.
type S2Compressor struct {
	level format.Level
}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor for the given level (0-9).
// Level 0 stores data uncompressed, 1-6 use the default encoder, 7-8 the
// "better" encoder and 9 the "best" encoder.
func NewS2Compressor(level format.Level) S2Compressor {
	return S2Compressor{level: clampLevel(level)}
}

func (c S2Compressor) Type() format.CompressionType { return format.CompressionS2 }

func (c S2Compressor) writerOptions() []s2.WriterOption {
	opts := []s2.WriterOption{s2.WriterConcurrency(1)}

	switch {
	case c.level == format.LevelNone:
		opts = append(opts, s2.WriterUncompressed())
	case c.level >= format.LevelBest:
		opts = append(opts, s2.WriterBestCompression())
	case c.level > format.LevelDefault:
		opts = append(opts, s2.WriterBetterCompression())
	}

	return opts
}

// Compress compresses the input data using S2 stream compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	return writeAll(c.Type(), data, func(w io.Writer) (io.WriteCloser, error) {
		return s2.NewWriter(w, c.writerOptions()...), nil
	})
}

// Decompress decompresses the input data using S2 stream decompression.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, 0)
}

func (c S2Compressor) DecompressLimit(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	return readAll(c.Type(), s2.NewReader(bytes.NewReader(data)), limit)
}

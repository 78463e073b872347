package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/wirepack/format"
)

// lz4Levels maps a 0-9 level onto LZ4 frame compression levels.
// Levels above Fast switch to the high-compression encoder.
var lz4Levels = [format.LevelBest + 1]lz4.CompressionLevel{
	lz4.Fast, lz4.Fast, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4Compressor implements the LZ4 frame format with content checksums.
type LZ4Compressor struct {
	level format.Level
}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Parameters:
//   - level: Compression level; 0-1 select the fast encoder, 2-9 the
//     high-compression levels, values outside 0-9 are clamped
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor(level format.Level) LZ4Compressor {
	return LZ4Compressor{level: clampLevel(level)}
}

func (c LZ4Compressor) Type() format.CompressionType { return format.CompressionLZ4 }

// Compress compresses the input data into a single LZ4 frame.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: LZ4 frame, owned by the caller (a valid empty frame for empty input)
//   - error: errs.ErrCompressionInternal if the frame writer fails
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	return writeAll(c.Type(), data, func(w io.Writer) (io.WriteCloser, error) {
		zw := lz4.NewWriter(w)
		err := zw.Apply(
			lz4.CompressionLevelOption(lz4Levels[clampLevel(c.level)]),
			lz4.ChecksumOption(true),
			lz4.ConcurrencyOption(1),
		)

		return zw, err
	})
}

// Decompress decompresses an LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, 0)
}

func (c LZ4Compressor) DecompressLimit(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	return readAll(c.Type(), lz4.NewReader(bytes.NewReader(data)), limit)
}

package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/wirepack/format"
)

// resettableWriter is the subset shared by flate, gzip and zlib writers.
type resettableWriter interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// levelPools keeps one sync.Pool of writers per compression level. Writers
// of the deflate family carry large match tables, so reusing them avoids
// most of the per-call allocation cost.
type levelPools struct {
	algo  format.CompressionType
	pools [format.LevelBest + 1]sync.Pool
}

func newLevelPools(algo format.CompressionType, newWriter func(w io.Writer, level int) (resettableWriter, error)) *levelPools {
	lp := &levelPools{algo: algo}
	for i := range lp.pools {
		level := i
		lp.pools[i].New = func() any {
			w, err := newWriter(io.Discard, level)
			if err != nil {
				// Levels 0-9 are valid for every deflate-family writer.
				panic(fmt.Sprintf("failed to create %s writer at level %d: %v", algo, level, err))
			}

			return w
		}
	}

	return lp
}

func (lp *levelPools) compress(level format.Level, data []byte) ([]byte, error) {
	p := &lp.pools[clampLevel(level)]
	w, _ := p.Get().(resettableWriter)
	defer func() {
		w.Reset(io.Discard)
		p.Put(w)
	}()

	return writeAll(lp.algo, data, func(dst io.Writer) (io.WriteCloser, error) {
		w.Reset(dst)
		return w, nil
	})
}

var (
	gzipWriters = newLevelPools(format.CompressionGzip, func(w io.Writer, level int) (resettableWriter, error) {
		return gzip.NewWriterLevel(w, level)
	})
	zlibWriters = newLevelPools(format.CompressionZlib, func(w io.Writer, level int) (resettableWriter, error) {
		return zlib.NewWriterLevel(w, level)
	})
	flateWriters = newLevelPools(format.CompressionDeflate, func(w io.Writer, level int) (resettableWriter, error) {
		return flate.NewWriter(w, level)
	})
)

// GzipCompressor implements gzip (RFC 1952), the default algorithm of the
// pipeline. Streams carry a CRC-32 and length trailer, so truncation and
// bit flips are detected on decompression.
type GzipCompressor struct {
	level format.Level
}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a gzip compressor at the given level.
//
// Parameters:
//   - level: Compression level; values outside 0-9 are clamped
//
// Returns:
//   - GzipCompressor: New gzip compressor instance
func NewGzipCompressor(level format.Level) GzipCompressor {
	return GzipCompressor{level: clampLevel(level)}
}

func (c GzipCompressor) Type() format.CompressionType { return format.CompressionGzip }

// Compress compresses the input data into a single gzip member.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	return gzipWriters.compress(c.level, data)
}

// Decompress decompresses one or more concatenated gzip members.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, 0)
}

// DecompressLimit decompresses data, bounding the output to limit bytes.
//
// Parameters:
//   - data: gzip stream to decompress
//   - limit: Maximum output size in bytes; <= 0 disables the check
//
// Returns:
//   - []byte: Decompressed data (empty, non-nil for empty input)
//   - error: errs.ErrCorruptStream for an invalid stream, also matching
//     errs.ErrDecodedSizeExceeded when the output exceeds limit
func (c GzipCompressor) DecompressLimit(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, corruptError(c.Type(), err)
	}
	defer zr.Close()

	return readAll(c.Type(), zr, limit)
}

// ZlibCompressor implements zlib (RFC 1950) framing with an Adler-32 trailer.
type ZlibCompressor struct {
	level format.Level
}

var _ Codec = (*ZlibCompressor)(nil)

// NewZlibCompressor creates a zlib compressor at the given level.
//
// Parameters:
//   - level: Compression level; values outside 0-9 are clamped
//
// Returns:
//   - ZlibCompressor: New zlib compressor instance
func NewZlibCompressor(level format.Level) ZlibCompressor {
	return ZlibCompressor{level: clampLevel(level)}
}

func (c ZlibCompressor) Type() format.CompressionType { return format.CompressionZlib }

func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	return zlibWriters.compress(c.level, data)
}

func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, 0)
}

func (c ZlibCompressor) DecompressLimit(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, corruptError(c.Type(), err)
	}
	defer zr.Close()

	return readAll(c.Type(), zr, limit)
}

// DeflateCompressor implements raw deflate (RFC 1951).
//
// Raw deflate has no header and no checksum: truncation is detected, but
// bytes following the final block are ignored and some bit flips decode
// to different output. Prefer gzip or zlib when integrity matters, or
// enable the pipeline checksum.
type DeflateCompressor struct {
	level format.Level
}

var _ Codec = (*DeflateCompressor)(nil)

// NewDeflateCompressor creates a raw deflate compressor at the given level.
// Levels outside 0-9 are clamped.
func NewDeflateCompressor(level format.Level) DeflateCompressor {
	return DeflateCompressor{level: clampLevel(level)}
}

func (c DeflateCompressor) Type() format.CompressionType { return format.CompressionDeflate }

func (c DeflateCompressor) Compress(data []byte) ([]byte, error) {
	return flateWriters.compress(c.level, data)
}

func (c DeflateCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, 0)
}

func (c DeflateCompressor) DecompressLimit(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	return readAll(c.Type(), fr, limit)
}

package compress

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/wirepack/errs"
	"github.com/arloliu/wirepack/format"
	"github.com/arloliu/wirepack/internal/pool"
)

func corruptError(algo format.CompressionType, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrCorruptStream, algo, err)
}

func internalError(algo format.CompressionType, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrCompressionInternal, algo, err)
}

func limitError(algo format.CompressionType, limit int64) error {
	return fmt.Errorf("%w: %w: %s output exceeds %d bytes",
		errs.ErrCorruptStream, errs.ErrDecodedSizeExceeded, algo, limit)
}

// readAll drains a decompressing reader into a caller-owned slice,
// enforcing limit when it is positive. Any read failure is reported as a
// corrupt stream, since the sources are always in-memory.
//
// A limit of math.MaxInt64 cannot be exceeded and reads unbounded.
func readAll(algo format.CompressionType, r io.Reader, limit int64) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	src := r
	if limit > 0 && limit < math.MaxInt64 {
		src = io.LimitReader(r, limit+1)
	}

	if _, err := buf.ReadFrom(src); err != nil {
		return nil, corruptError(algo, err)
	}

	if limit > 0 && int64(buf.Len()) > limit {
		return nil, limitError(algo, limit)
	}

	return buf.Clone(), nil
}

// writeAll runs data through a stream compressor that writes into a pooled
// buffer and returns a caller-owned copy of the output.
func writeAll(algo format.CompressionType, data []byte, open func(w io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	w, err := open(buf)
	if err != nil {
		return nil, internalError(algo, err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, internalError(algo, err)
	}

	if err := w.Close(); err != nil {
		return nil, internalError(algo, err)
	}

	return buf.Clone(), nil
}

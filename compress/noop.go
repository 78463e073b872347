package compress

import "github.com/arloliu/wirepack/format"

// NoOpCompressor provides a no-operation compressor that passes data through.
//
// It is useful when payloads are already compressed, and as a baseline
// when comparing the other algorithms.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

func (c NoOpCompressor) Type() format.CompressionType { return format.CompressionNone }

// Compress returns the input slice as-is, without copying.
//
// Note: the returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressLimit returns the input slice after checking it against limit.
func (c NoOpCompressor) DecompressLimit(data []byte, limit int64) ([]byte, error) {
	if limit > 0 && int64(len(data)) > limit {
		return nil, limitError(c.Type(), limit)
	}

	return data, nil
}

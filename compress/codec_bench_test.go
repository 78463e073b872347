package compress

import (
	"fmt"
	"testing"

	"github.com/arloliu/wirepack/format"
)

func formatSize(size int) string {
	if size >= 1024*1024 {
		return fmt.Sprintf("%dMB", size/(1024*1024))
	}

	return fmt.Sprintf("%dKB", size/1024)
}

func BenchmarkAllCodecs_Compress(b *testing.B) {
	sizes := []int{1024, 16 * 1024, 256 * 1024, 1024 * 1024}

	for name, codec := range getAllCodecs(b, format.LevelDefault) {
		b.Run(name, func(b *testing.B) {
			for _, size := range sizes {
				data := compressibleData(size)
				b.Run(formatSize(size), func(b *testing.B) {
					b.ReportAllocs()
					b.SetBytes(int64(len(data)))

					for b.Loop() {
						if _, err := codec.Compress(data); err != nil {
							b.Fatal(err)
						}
					}
				})
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	sizes := []int{1024, 16 * 1024, 256 * 1024, 1024 * 1024}

	for name, codec := range getAllCodecs(b, format.LevelDefault) {
		b.Run(name, func(b *testing.B) {
			for _, size := range sizes {
				data := compressibleData(size)
				compressed, err := codec.Compress(data)
				if err != nil {
					b.Fatal(err)
				}

				b.Run(formatSize(size), func(b *testing.B) {
					b.ReportAllocs()
					b.SetBytes(int64(len(data)))

					for b.Loop() {
						if _, err := codec.Decompress(compressed); err != nil {
							b.Fatal(err)
						}
					}
				})
			}
		})
	}
}

// BenchmarkGzip_Levels reports the size/speed trade-off across levels.
func BenchmarkGzip_Levels(b *testing.B) {
	data := compressibleData(256 * 1024)

	for level := format.LevelNone; level <= format.LevelBest; level++ {
		codec := NewGzipCompressor(level)
		b.Run(fmt.Sprintf("level%d", level), func(b *testing.B) {
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportMetric(float64(len(compressed))/float64(len(data))*100, "ratio%")
			b.SetBytes(int64(len(data)))

			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}

func BenchmarkAllCodecs_Parallel(b *testing.B) {
	data := compressibleData(64 * 1024)

	for name, codec := range getAllCodecs(b, format.LevelDefault) {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					compressed, err := codec.Compress(data)
					if err != nil {
						b.Error(err)
						return
					}
					if _, err := codec.Decompress(compressed); err != nil {
						b.Error(err)
						return
					}
				}
			})
		})
	}
}

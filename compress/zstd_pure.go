//go:build !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation overhead.
// The klauspost/compress/zstd library is explicitly designed for decoder reuse:
// "The decoder has been designed to operate without allocations after a warmup.
// This means that you should store the decoder for best performance."
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

// zstdEncoderPool pools zstd encoders for reuse to eliminate allocation overhead.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

// Compress compresses the input data using Zstandard compression.
// Uses a pooled encoder for better performance (eliminates allocation overhead).
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	// EncodeAll is stateless - safe to use with pooled encoder
	compressed := encoder.EncodeAll(data, nil)

	return compressed, nil
}

// Decompress decompresses Zstd-compressed data.
// Uses a pooled decoder for better performance (eliminates allocation overhead).
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// DecodeAll is stateless - safe to use with pooled decoder
	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}

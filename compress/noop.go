package compress

// NoOpCompressor bypasses data without compression.
//
// This is the default artifact codec: payloads are written byte-for-byte as
// encoded, which keeps artifacts byte-stable across platforms and zstd
// implementations. It is also useful for benchmarking the encoding path
// without compression overhead.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data directly without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data directly without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

package compress

// ZstdCompressor provides Zstandard compression for artifact payloads.
//
// Zstd gives the best ratio of the available codecs on float64 payloads and
// is the right choice for archival of large principal-component matrices.
// The implementation is selected at build time: the cgo build uses
// valyala/gozstd (libzstd bindings), the pure-Go build uses
// klauspost/compress/zstd. The two produce interchangeable frames, so
// artifacts written by one build are readable by the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

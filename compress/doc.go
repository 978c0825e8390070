// Package compress provides the compression codecs used for persisted PCA
// artifact payloads.
//
// An artifact payload is a single block of little-endian float64 values (a
// whole matrix, vector or scalar), so the codecs operate on one contiguous
// buffer per call rather than a stream. Four codecs are available:
//
//   - None: pass-through, byte-stable artifacts (the default)
//   - Zstd: best compression ratio, for large principal-component matrices
//   - S2: fast compression with a reasonable ratio
//   - LZ4: fastest compression, lowest ratio
//
// The codec used to write an artifact is recorded in the artifact header, so
// readers pick the matching codec automatically.
package compress

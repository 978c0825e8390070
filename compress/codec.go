package compress

import (
	"fmt"

	"github.com/arloliu/pca/format"
)

// Compressor compresses a single artifact payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a single artifact payload.
//
// The input must have been produced by the matching Compressor; the codecs
// validate the data format and return an error if the payload is corrupted or
// uses an incompatible format.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// All built-in codecs are stateless values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Unsupported compression type error
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

package matrix

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/compress"
	"github.com/arloliu/pca/endian"
	"github.com/arloliu/pca/errs"
	"github.com/arloliu/pca/format"
	"github.com/arloliu/pca/internal/hash"
)

// Artifact layout, little-endian:
//
//	offset 0-3   magic "PCAM"
//	offset 4     format version
//	offset 5     compression type
//	offset 6-7   reserved
//	offset 8-11  rows (uint32)
//	offset 12-15 cols (uint32)
//	offset 16-23 xxHash64 checksum of the compressed payload
//	offset 24-   payload: rows*cols float64, row-major, compressed
const (
	headerSize = 24

	// FormatVersion is the current matrix artifact format version.
	FormatVersion = 1
)

var magicBytes = [4]byte{'P', 'C', 'A', 'M'}

// WriteFile persists a single matrix to path as a binary artifact, with the
// payload compressed by the named codec. Vectors are written as n×1 matrices
// and scalars as 1×1 matrices by the callers.
//
// Parameters:
//   - path: destination file path
//   - m: matrix to persist
//   - compression: payload codec recorded in the artifact header
//
// Returns:
//   - error: ErrFileAccess if the file cannot be created or written, or an
//     unsupported compression type error
func WriteFile(path string, m mat.Matrix, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	rows, cols := m.Dims()
	engine := endian.GetLittleEndianEngine()

	payload := make([]byte, 0, rows*cols*8)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			payload = endian.AppendFloat64(engine, payload, m.At(i, j))
		}
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("compress payload for %s: %w", path, err)
	}
	// The LZ4 block codec signals incompressible input with an empty result;
	// store such payloads raw and record that in the header.
	if len(payload) > 0 && len(compressed) == 0 {
		compression = format.CompressionNone
		compressed = payload
	}

	buf := make([]byte, 0, headerSize+len(compressed))
	buf = append(buf, magicBytes[:]...)
	buf = append(buf, FormatVersion, byte(compression), 0, 0)
	buf = engine.AppendUint32(buf, uint32(rows)) //nolint:gosec
	buf = engine.AppendUint32(buf, uint32(cols)) //nolint:gosec
	buf = engine.AppendUint64(buf, hash.Checksum(compressed))
	buf = append(buf, compressed...)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, errs.ErrFileAccess)
	}

	return nil
}

// ReadFile reads a matrix artifact previously written by WriteFile. The
// payload codec is taken from the artifact header.
//
// Returns:
//   - *mat.Dense: the decoded matrix
//   - error: ErrMissingFile if path does not exist, ErrFileAccess if it
//     cannot be read, or an integrity sentinel (ErrInvalidHeaderSize,
//     ErrInvalidMagicNumber, ErrInvalidVersion, ErrChecksumMismatch,
//     ErrInvalidPayloadSize) if the artifact is corrupt
func ReadFile(path string) (*mat.Dense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, errs.ErrMissingFile)
		}

		return nil, fmt.Errorf("read %s: %w", path, errs.ErrFileAccess)
	}

	if len(data) < headerSize {
		return nil, fmt.Errorf("artifact %s has %d bytes: %w", path, len(data), errs.ErrInvalidHeaderSize)
	}
	if [4]byte(data[0:4]) != magicBytes {
		return nil, fmt.Errorf("artifact %s: %w", path, errs.ErrInvalidMagicNumber)
	}
	if data[4] != FormatVersion {
		return nil, fmt.Errorf("artifact %s version %d: %w", path, data[4], errs.ErrInvalidVersion)
	}

	compression := format.CompressionType(data[5])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	engine := endian.GetLittleEndianEngine()
	rows := int(engine.Uint32(data[8:12]))
	cols := int(engine.Uint32(data[12:16]))
	checksum := engine.Uint64(data[16:24])

	compressed := data[headerSize:]
	if hash.Checksum(compressed) != checksum {
		return nil, fmt.Errorf("artifact %s: %w", path, errs.ErrChecksumMismatch)
	}

	payload, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact %s: %w", path, err)
	}
	if len(payload) != rows*cols*8 {
		return nil, fmt.Errorf("artifact %s payload %d bytes for %dx%d: %w",
			path, len(payload), rows, cols, errs.ErrInvalidPayloadSize)
	}

	return mat.NewDense(rows, cols, endian.Float64Slice(engine, payload, rows*cols)), nil
}

package format

type (
	// SolverType selects the numeric backend route used for the symmetric
	// eigendecomposition of the covariance structure.
	SolverType uint8

	// CompressionType selects the compression codec applied to artifact
	// payloads written by the persistence layer.
	CompressionType uint8
)

const (
	// SolverStandard runs the backend's symmetric eigendecomposition on the
	// covariance matrix.
	SolverStandard SolverType = 0x1
	// SolverDC runs the backend's singular value decomposition directly on
	// the centered data matrix. This is the default solver.
	SolverDC SolverType = 0x2

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (s SolverType) String() string {
	switch s {
	case SolverStandard:
		return "standard"
	case SolverDC:
		return "dc"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the two supported solver selectors.
func (s SolverType) Valid() bool {
	return s == SolverStandard || s == SolverDC
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c names a known compression codec.
func (c CompressionType) Valid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}

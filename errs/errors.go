// Package errs defines the sentinel errors shared across the pca module.
//
// All exported API surfaces wrap these sentinels with fmt.Errorf("...: %w", ...),
// so callers can classify failures with errors.Is without depending on message
// text.
package errs

import "errors"

// Configuration and input validation errors.
var (
	// ErrInvalidConfiguration indicates a configuration parameter outside its
	// valid range, e.g. fewer than 2 variables or fewer than 10 bootstrap
	// repetitions.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDimensionMismatch indicates a record or vector whose length does not
	// match the expected dimensionality.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrIndexOutOfRange indicates an eigenvector, record or column index
	// outside the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupportedSolver indicates a solver name other than "standard" or "dc".
	ErrUnsupportedSolver = errors.New("unsupported solver")
)

// Solve-time errors.
var (
	// ErrInsufficientData indicates an attempt to solve with fewer than two
	// records.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateColumn indicates a zero-variance column encountered while
	// normalizing by column RMS.
	ErrDegenerateColumn = errors.New("degenerate column")

	// ErrDecompositionFailed indicates that the numeric backend failed to
	// factorize the covariance or data matrix.
	ErrDecompositionFailed = errors.New("matrix decomposition failed")

	// ErrNotSolved indicates a query for analysis results before a successful
	// Solve or Load.
	ErrNotSolved = errors.New("analysis not solved")
)

// Persistence errors.
var (
	// ErrMissingFile indicates a required artifact file that does not exist.
	ErrMissingFile = errors.New("missing artifact file")

	// ErrFileAccess indicates an artifact file that exists but cannot be read
	// or written.
	ErrFileAccess = errors.New("artifact file access failed")

	// ErrInvalidHeaderSize indicates an artifact too short to contain its
	// fixed-size header.
	ErrInvalidHeaderSize = errors.New("invalid artifact header size")

	// ErrInvalidMagicNumber indicates an artifact whose magic bytes do not
	// match the expected format.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidVersion indicates an artifact written by an unknown format
	// version.
	ErrInvalidVersion = errors.New("invalid format version")

	// ErrChecksumMismatch indicates an artifact payload whose checksum does
	// not match the header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrInvalidPayloadSize indicates an artifact payload whose size does not
	// match the dimensions recorded in the header.
	ErrInvalidPayloadSize = errors.New("invalid payload size")
)

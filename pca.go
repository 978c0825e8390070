package pca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/errs"
	"github.com/arloliu/pca/format"
	"github.com/arloliu/pca/internal/options"
)

const (
	// MinNumVariables is the smallest supported record dimensionality.
	MinNumVariables = 2

	// MinNumBootstraps is the smallest supported number of bootstrap
	// repetitions; fewer repetitions give meaningless spread estimates.
	MinNumBootstraps = 10

	// DefaultNumBootstraps is the number of bootstrap repetitions used when
	// bootstrapping is enabled without an explicit count.
	DefaultNumBootstraps = 30

	// DefaultBootstrapSeed is the base seed used when bootstrapping is
	// enabled without an explicit seed.
	DefaultBootstrapSeed = 1
)

// PCA is the analysis engine. It owns the accumulated records and, after a
// successful Solve or Load, the derived analysis state.
//
// The zero value is not usable; construct instances with New.
type PCA struct {
	numVariables int
	numRecords   int
	data         []float64 // records, row-major

	doNormalize   bool
	doBootstrap   bool
	numBootstraps int
	bootstrapSeed uint64
	solver        format.SolverType
	compression   format.CompressionType
	numRetained   int

	solved bool
	state  *analysisState
}

// analysisState holds everything produced by a solve. It is replaced
// atomically, so a failed re-solve leaves the previous results intact.
type analysisState struct {
	eigenvalues  []float64  // descending, normalized to sum 1
	eigenvectors *mat.Dense // n×n, column i corresponds to eigenvalues[i]
	principals   *mat.Dense // numRecords×n projections
	energy       float64
	means        []float64
	sigmas       []float64

	bootEigenvalues *mat.Dense // numBootstraps×n, nil unless bootstrap enabled
	bootEnergies    []float64
}

// Option is a functional option for configuring a PCA engine at construction.
type Option = options.Option[*PCA]

// New creates a PCA engine for records of the given dimensionality.
//
// Parameters:
//   - numVariables: record length, must be at least 2
//   - opts: optional configuration (WithNormalization, WithBootstrap,
//     WithSolver, WithCompression)
//
// Returns:
//   - *PCA: the configured engine
//   - error: ErrInvalidConfiguration or the first failing option
func New(numVariables int, opts ...Option) (*PCA, error) {
	p := &PCA{
		numBootstraps: DefaultNumBootstraps,
		bootstrapSeed: DefaultBootstrapSeed,
		solver:        format.SolverDC,
		compression:   format.CompressionNone,
	}
	if err := p.SetNumVariables(numVariables); err != nil {
		return nil, err
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// WithNormalization enables RMS normalization: before the covariance is
// built, every centered column is divided by its root mean square.
func WithNormalization() Option {
	return options.NoError(func(p *PCA) {
		p.doNormalize = true
	})
}

// WithBootstrap enables bootstrap uncertainty estimation with the given
// repetition count (at least MinNumBootstraps) and base seed.
func WithBootstrap(count int, seed uint64) Option {
	return options.New(func(p *PCA) error {
		return p.SetDoBootstrap(true, count, seed)
	})
}

// WithSolver selects the eigendecomposition route used by Solve.
func WithSolver(solver format.SolverType) Option {
	return options.New(func(p *PCA) error {
		if !solver.Valid() {
			return fmt.Errorf("solver %q: %w", solver, errs.ErrUnsupportedSolver)
		}
		p.solver = solver

		return nil
	})
}

// WithCompression selects the compression codec for persisted artifacts.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(p *PCA) error {
		return p.SetCompression(compression)
	})
}

// SetNumVariables changes the record dimensionality. It is only valid while
// the engine holds no records and no analysis state.
//
// Returns:
//   - error: ErrInvalidConfiguration if n < 2, or if records were already
//     added or the engine is already solved
func (p *PCA) SetNumVariables(n int) error {
	if n < MinNumVariables {
		return fmt.Errorf("num variables %d is below the minimum of %d: %w",
			n, MinNumVariables, errs.ErrInvalidConfiguration)
	}
	if p.numRecords > 0 || p.solved {
		return fmt.Errorf("cannot change num variables after records were added: %w",
			errs.ErrInvalidConfiguration)
	}

	p.numVariables = n
	p.numRetained = n

	return nil
}

// SetDoNormalize toggles RMS normalization for subsequent solves.
func (p *PCA) SetDoNormalize(normalize bool) {
	p.doNormalize = normalize
}

// SetDoBootstrap enables or disables bootstrap uncertainty estimation.
//
// Parameters:
//   - enabled: whether to run bootstrap repetitions during Solve
//   - count: repetitions, at least MinNumBootstraps (DefaultNumBootstraps
//     is the conventional choice); ignored when disabling
//   - seed: base seed for the resampling generators; ignored when disabling
//
// Returns:
//   - error: ErrInvalidConfiguration if enabling with count < MinNumBootstraps
func (p *PCA) SetDoBootstrap(enabled bool, count int, seed uint64) error {
	if !enabled {
		p.doBootstrap = false
		return nil
	}
	if count < MinNumBootstraps {
		return fmt.Errorf("bootstrap count %d is below the minimum of %d: %w",
			count, MinNumBootstraps, errs.ErrInvalidConfiguration)
	}

	p.doBootstrap = true
	p.numBootstraps = count
	p.bootstrapSeed = seed

	return nil
}

// SetSolver selects the eigendecomposition route by name.
//
// Parameters:
//   - name: "standard" (symmetric eigendecomposition of the covariance
//     matrix) or "dc" (SVD of the centered data matrix, the default)
//
// Returns:
//   - error: ErrUnsupportedSolver for any other name
func (p *PCA) SetSolver(name string) error {
	switch name {
	case format.SolverStandard.String():
		p.solver = format.SolverStandard
	case format.SolverDC.String():
		p.solver = format.SolverDC
	default:
		return fmt.Errorf("solver %q: %w", name, errs.ErrUnsupportedSolver)
	}

	return nil
}

// SetCompression selects the compression codec for persisted artifacts.
func (p *PCA) SetCompression(compression format.CompressionType) error {
	if !compression.Valid() {
		return fmt.Errorf("compression %q: %w", compression, errs.ErrInvalidConfiguration)
	}
	p.compression = compression

	return nil
}

// SetNumRetained limits how many leading eigenvectors participate in
// ToVariableSpace reconstructions. Setting k < NumVariables makes the
// reconstruction a lossy dimensionality reduction.
//
// Returns:
//   - error: ErrInvalidConfiguration unless 1 <= k <= NumVariables
func (p *PCA) SetNumRetained(k int) error {
	if k < 1 || k > p.numVariables {
		return fmt.Errorf("num retained %d out of range [1, %d]: %w",
			k, p.numVariables, errs.ErrInvalidConfiguration)
	}
	p.numRetained = k

	return nil
}

// AddRecord appends one record to the data matrix. The record is copied;
// the caller keeps ownership of the slice.
//
// Returns:
//   - error: ErrDimensionMismatch if len(record) != NumVariables
func (p *PCA) AddRecord(record []float64) error {
	if len(record) != p.numVariables {
		return fmt.Errorf("record length %d does not match %d variables: %w",
			len(record), p.numVariables, errs.ErrDimensionMismatch)
	}

	p.data = append(p.data, record...)
	p.numRecords++

	return nil
}

// Record returns a copy of the i-th accumulated record.
//
// Returns:
//   - []float64: the record values
//   - error: ErrIndexOutOfRange if i is not a valid record index
func (p *PCA) Record(i int) ([]float64, error) {
	if i < 0 || i >= p.numRecords {
		return nil, fmt.Errorf("record index %d out of range [0, %d): %w",
			i, p.numRecords, errs.ErrIndexOutOfRange)
	}

	record := make([]float64, p.numVariables)
	copy(record, p.data[i*p.numVariables:(i+1)*p.numVariables])

	return record, nil
}

// NumVariables returns the configured record dimensionality.
func (p *PCA) NumVariables() int { return p.numVariables }

// NumRecords returns the number of accumulated records.
func (p *PCA) NumRecords() int { return p.numRecords }

// DoNormalize reports whether RMS normalization is enabled.
func (p *PCA) DoNormalize() bool { return p.doNormalize }

// DoBootstrap reports whether bootstrap estimation is enabled.
func (p *PCA) DoBootstrap() bool { return p.doBootstrap }

// NumBootstraps returns the configured number of bootstrap repetitions.
func (p *PCA) NumBootstraps() int { return p.numBootstraps }

// BootstrapSeed returns the configured bootstrap base seed.
func (p *PCA) BootstrapSeed() uint64 { return p.bootstrapSeed }

// Solver returns the selected eigendecomposition route.
func (p *PCA) Solver() format.SolverType { return p.solver }

// Compression returns the artifact compression codec.
func (p *PCA) Compression() format.CompressionType { return p.compression }

// NumRetained returns the number of leading eigenvectors used by
// ToVariableSpace reconstructions.
func (p *PCA) NumRetained() int { return p.numRetained }

// Solved reports whether the engine carries analysis state from a successful
// Solve or Load.
func (p *PCA) Solved() bool { return p.solved }

// dataMatrix returns a fresh dense copy of the accumulated records.
func (p *PCA) dataMatrix() *mat.Dense {
	data := make([]float64, len(p.data))
	copy(data, p.data)

	return mat.NewDense(p.numRecords, p.numVariables, data)
}

// requireSolved guards result queries.
func (p *PCA) requireSolved() error {
	if !p.solved {
		return fmt.Errorf("call Solve or Load first: %w", errs.ErrNotSolved)
	}

	return nil
}

// checkIndex guards eigenvector/eigenvalue/principal index arguments.
func (p *PCA) checkIndex(i int) error {
	if i < 0 || i >= p.numVariables {
		return fmt.Errorf("index %d out of range [0, %d): %w",
			i, p.numVariables, errs.ErrIndexOutOfRange)
	}

	return nil
}

package pca

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/errs"
	"github.com/arloliu/pca/format"
	"github.com/arloliu/pca/internal/hash"
	"github.com/arloliu/pca/matrix"
)

// Solve runs the full analysis pipeline over the accumulated records:
// column centering, optional RMS normalization, covariance construction,
// eigendecomposition through the selected backend route, sign
// canonicalization, projection of every record, and, when enabled, bootstrap
// repetitions on per-column resampled copies of the data.
//
// Solve may be called again after adding records or changing configuration;
// a successful re-solve fully replaces the previous analysis state, while a
// failed one leaves it intact.
//
// Returns:
//   - error: ErrInsufficientData with fewer than 2 records,
//     ErrDegenerateColumn if normalization meets a zero-variance column,
//     ErrDecompositionFailed if the backend does not converge
func (p *PCA) Solve() error {
	if p.numRecords < 2 {
		return fmt.Errorf("solve requires at least 2 records, got %d: %w",
			p.numRecords, errs.ErrInsufficientData)
	}

	state, err := p.solveMatrix(p.dataMatrix())
	if err != nil {
		return err
	}

	if p.doBootstrap {
		if err := p.bootstrap(state); err != nil {
			return err
		}
	}

	p.state = state
	p.solved = true

	return nil
}

// solveMatrix runs steps 1-6 of the pipeline on one data matrix. The matrix
// is consumed: it is centered and normalized in place.
func (p *PCA) solveMatrix(data *mat.Dense) (*analysisState, error) {
	means := matrix.ComputeColumnMeans(data)
	// lengths match by construction
	_ = matrix.RemoveColumnMeans(data, means)

	// On centered data the column RMS equals the sample standard deviation.
	sigmas := matrix.ComputeColumnRMS(data)
	if p.doNormalize {
		if err := matrix.NormalizeByColumn(data, sigmas); err != nil {
			return nil, err
		}
	}

	eigenvalues, eigenvectors, err := p.decompose(data)
	if err != nil {
		return nil, err
	}

	matrix.EnforcePositiveSignByColumn(eigenvectors)

	var principals mat.Dense
	principals.Mul(data, eigenvectors)

	// The raw eigenvalues sum to the trace of the covariance matrix, which
	// is the total variance available to be explained. That total is the
	// energy; the stored spectrum is normalized to fractions of it.
	energy := floats.Sum(eigenvalues)
	if energy > 0 {
		floats.Scale(1/energy, eigenvalues)
	}

	return &analysisState{
		eigenvalues:  eigenvalues,
		eigenvectors: eigenvectors,
		principals:   &principals,
		energy:       energy,
		means:        means,
		sigmas:       sigmas,
	}, nil
}

// decompose requests the eigen-spectrum from the numeric backend using the
// selected route. Both routes return eigenvalues in descending order with
// the matching eigenvectors as columns.
func (p *PCA) decompose(data *mat.Dense) ([]float64, *mat.Dense, error) {
	if p.solver == format.SolverStandard {
		return decomposeCovariance(data)
	}

	return decomposeSVD(data)
}

// decomposeCovariance builds the covariance matrix and runs the backend's
// symmetric eigendecomposition on it. The backend reports eigenvalues in
// ascending numeric order; they are reversed here.
func decomposeCovariance(data *mat.Dense) ([]float64, *mat.Dense, error) {
	cov := matrix.MakeCovarianceMatrix(data)

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return nil, nil, fmt.Errorf("symmetric eigendecomposition did not converge: %w",
			errs.ErrDecompositionFailed)
	}

	ascending := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	n := len(ascending)
	eigenvalues := make([]float64, n)
	eigenvectors := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		src := n - 1 - j
		eigenvalues[j] = ascending[src]
		for i := 0; i < n; i++ {
			eigenvectors.Set(i, j, vectors.At(i, src))
		}
	}

	return eigenvalues, eigenvectors, nil
}

// decomposeSVD runs the backend's singular value decomposition directly on
// the centered data matrix: the right singular vectors are the eigenvectors
// of the covariance matrix and λ_i = σ_i²/(r-1). Skipping the explicit
// covariance product is the numerically preferred route and the default.
func decomposeSVD(data *mat.Dense) ([]float64, *mat.Dense, error) {
	rows, cols := data.Dims()

	var svd mat.SVD
	if !svd.Factorize(data, mat.SVDFullV) {
		return nil, nil, fmt.Errorf("singular value decomposition did not converge: %w",
			errs.ErrDecompositionFailed)
	}

	// Singular values arrive in descending order; with fewer records than
	// variables the trailing eigenvalues are exactly zero.
	singular := svd.Values(nil)
	eigenvalues := make([]float64, cols)
	factor := 1.0 / float64(rows-1)
	for i, s := range singular {
		if i >= cols {
			break
		}
		eigenvalues[i] = s * s * factor
	}

	var eigenvectors mat.Dense
	svd.VTo(&eigenvectors)

	return eigenvalues, &eigenvectors, nil
}

// bootstrap runs the configured number of resampled re-solves and records
// eigenvalues and energy per repetition into state. Each repetition draws an
// independent sub-seed from the base seed, so the repetitions are
// deterministic for a fixed configuration regardless of execution order.
func (p *PCA) bootstrap(state *analysisState) error {
	source := p.dataMatrix()

	bootEigenvalues := mat.NewDense(p.numBootstraps, p.numVariables, nil)
	bootEnergies := make([]float64, p.numBootstraps)

	for rep := 0; rep < p.numBootstraps; rep++ {
		rng := rand.New(rand.NewSource(int64(hash.SubSeed(p.bootstrapSeed, rep)))) //nolint:gosec
		resampled := matrix.MakeShuffledMatrix(source, rng)

		repState, err := p.solveMatrix(resampled)
		if err != nil {
			return fmt.Errorf("bootstrap repetition %d: %w", rep, err)
		}

		bootEigenvalues.SetRow(rep, repState.eigenvalues)
		bootEnergies[rep] = repState.energy
	}

	state.bootEigenvalues = bootEigenvalues
	state.bootEnergies = bootEnergies

	return nil
}

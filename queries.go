package pca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/errs"
)

// Eigenvalues returns the full eigen-spectrum in descending order,
// normalized to fractions of the total explained variance (the values sum
// to 1 for any non-degenerate data set).
//
// Returns:
//   - []float64: one value per variable
//   - error: ErrNotSolved before a successful Solve or Load
func (p *PCA) Eigenvalues() ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}

	eigenvalues := make([]float64, len(p.state.eigenvalues))
	copy(eigenvalues, p.state.eigenvalues)

	return eigenvalues, nil
}

// Eigenvalue returns the i-th largest normalized eigenvalue.
//
// Returns:
//   - float64: the eigenvalue
//   - error: ErrNotSolved, or ErrIndexOutOfRange if i is not in [0, NumVariables)
func (p *PCA) Eigenvalue(i int) (float64, error) {
	if err := p.requireSolved(); err != nil {
		return 0, err
	}
	if err := p.checkIndex(i); err != nil {
		return 0, err
	}

	return p.state.eigenvalues[i], nil
}

// Eigenvector returns the unit-norm eigenvector corresponding to the i-th
// largest eigenvalue, sign-canonicalized so its dominant-magnitude entry is
// positive.
//
// Returns:
//   - []float64: eigenvector of length NumVariables
//   - error: ErrNotSolved, or ErrIndexOutOfRange if i is not in [0, NumVariables)
func (p *PCA) Eigenvector(i int) ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}
	if err := p.checkIndex(i); err != nil {
		return nil, err
	}

	return mat.Col(nil, i, p.state.eigenvectors), nil
}

// Principal returns the projection of every record onto the i-th
// eigenvector, in record order.
//
// Returns:
//   - []float64: one coordinate per record of the solve
//   - error: ErrNotSolved, or ErrIndexOutOfRange if i is not in [0, NumVariables)
func (p *PCA) Principal(i int) ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}
	if err := p.checkIndex(i); err != nil {
		return nil, err
	}

	return mat.Col(nil, i, p.state.principals), nil
}

// Energy returns the total variance available to be explained: the sum of
// the raw (unnormalized) eigenvalues, equal to the trace of the covariance
// matrix of the centered (and optionally normalized) data.
func (p *PCA) Energy() (float64, error) {
	if err := p.requireSolved(); err != nil {
		return 0, err
	}

	return p.state.energy, nil
}

// MeanValues returns the cached column means of the solved data matrix.
func (p *PCA) MeanValues() ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}

	means := make([]float64, len(p.state.means))
	copy(means, p.state.means)

	return means, nil
}

// SigmaValues returns the cached column RMS values of the solved data
// matrix. For an engine restored by Load they are only available when
// normalization was enabled, since only then are they persisted.
func (p *PCA) SigmaValues() ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}

	sigmas := make([]float64, len(p.state.sigmas))
	copy(sigmas, p.state.sigmas)

	return sigmas, nil
}

// EigenvalueBoot returns the bootstrap sample of the i-th normalized
// eigenvalue: one value per repetition, in repetition order.
//
// Returns:
//   - []float64: NumBootstraps values
//   - error: ErrNotSolved, ErrIndexOutOfRange, or ErrInvalidConfiguration if
//     bootstrapping was not enabled for the solve
func (p *PCA) EigenvalueBoot(i int) ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}
	if err := p.checkIndex(i); err != nil {
		return nil, err
	}
	if p.state.bootEigenvalues == nil {
		return nil, fmt.Errorf("bootstrap was not enabled: %w", errs.ErrInvalidConfiguration)
	}

	return mat.Col(nil, i, p.state.bootEigenvalues), nil
}

// EnergyBoot returns the bootstrap sample of the energy: one value per
// repetition, in repetition order.
//
// Returns:
//   - []float64: NumBootstraps values
//   - error: ErrNotSolved, or ErrInvalidConfiguration if bootstrapping was
//     not enabled for the solve
func (p *PCA) EnergyBoot() ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}
	if p.state.bootEnergies == nil {
		return nil, fmt.Errorf("bootstrap was not enabled: %w", errs.ErrInvalidConfiguration)
	}

	energies := make([]float64, len(p.state.bootEnergies))
	copy(energies, p.state.bootEnergies)

	return energies, nil
}

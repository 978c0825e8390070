package pca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/errs"
	"github.com/arloliu/pca/matrix"
)

const (
	// orthogonalityTolerance bounds the pairwise dot products and norm
	// deviations accepted by CheckEigenvectorsOrthogonal. LAPACK-quality
	// factorizations stay well below it.
	orthogonalityTolerance = 1e-10

	// projectionTolerance bounds the absolute per-entry reconstruction error
	// accepted by CheckProjectionAccurate.
	projectionTolerance = 1e-6
)

// ToPrincipalSpace projects one record into principal-component space:
// (record - means) [/ sigmas if normalized] · eigenvectors.
//
// Parameters:
//   - record: values in variable space, length NumVariables
//
// Returns:
//   - []float64: coordinates along all NumVariables eigenvectors
//   - error: ErrNotSolved, or ErrDimensionMismatch on wrong record length
func (p *PCA) ToPrincipalSpace(record []float64) ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}
	if len(record) != p.numVariables {
		return nil, fmt.Errorf("record length %d does not match %d variables: %w",
			len(record), p.numVariables, errs.ErrDimensionMismatch)
	}

	centered := make([]float64, p.numVariables)
	for i, v := range record {
		centered[i] = v - p.state.means[i]
		if p.doNormalize {
			centered[i] /= p.state.sigmas[i]
		}
	}

	var projected mat.VecDense
	projected.MulVec(p.state.eigenvectors.T(), mat.NewVecDense(p.numVariables, centered))

	return projected.RawVector().Data, nil
}

// ToVariableSpace is the inverse transform: principal · eigenvectorsᵗ
// [· sigmas] + means. It uses the first NumRetained eigenvector columns;
// with the default retention (all columns) it round-trips ToPrincipalSpace
// exactly up to floating error, with fewer it is lossy by design.
//
// Parameters:
//   - principal: coordinates in principal-component space, length NumRetained
//
// Returns:
//   - []float64: values in variable space, length NumVariables
//   - error: ErrNotSolved, or ErrDimensionMismatch on wrong input length
func (p *PCA) ToVariableSpace(principal []float64) ([]float64, error) {
	if err := p.requireSolved(); err != nil {
		return nil, err
	}

	return p.toVariableSpace(principal, p.numRetained)
}

func (p *PCA) toVariableSpace(principal []float64, retained int) ([]float64, error) {
	if len(principal) != retained {
		return nil, fmt.Errorf("principal length %d does not match %d retained eigenvectors: %w",
			len(principal), retained, errs.ErrDimensionMismatch)
	}

	basis := p.state.eigenvectors.Slice(0, p.numVariables, 0, retained)

	var record mat.VecDense
	record.MulVec(basis, mat.NewVecDense(retained, principal))

	values := record.RawVector().Data
	for i := range values {
		if p.doNormalize {
			values[i] *= p.state.sigmas[i]
		}
		values[i] += p.state.means[i]
	}

	return values, nil
}

// CheckEigenvectorsOrthogonal verifies that the eigenvector matrix is
// orthonormal: every distinct pair of eigenvectors has a dot product within
// tolerance of 0 and every eigenvector a norm within tolerance of 1. The
// result is the fraction of checks passing, so a fully orthonormal basis
// scores exactly 1.0.
//
// Returns:
//   - float64: fraction of orthonormality checks passing
//   - error: ErrNotSolved before a successful Solve or Load
func (p *PCA) CheckEigenvectorsOrthogonal() (float64, error) {
	if err := p.requireSolved(); err != nil {
		return 0, err
	}

	var gram mat.Dense
	gram.Mul(p.state.eigenvectors.T(), p.state.eigenvectors)

	var passed, total int
	for i := 0; i < p.numVariables; i++ {
		for j := i; j < p.numVariables; j++ {
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			if matrix.IsApproxEqual(gram.At(i, j), expected, orthogonalityTolerance) {
				passed++
			}
			total++
		}
	}

	return float64(passed) / float64(total), nil
}

// CheckProjectionAccurate round-trips every stored record through
// ToPrincipalSpace and the full inverse transform and reports the fraction
// of records reconstructed within tolerance; 1.0 means every record
// round-trips. The check always uses all eigenvectors, regardless of the
// NumRetained setting.
//
// Returns:
//   - float64: fraction of records that round-trip within tolerance
//   - error: ErrNotSolved before a successful Solve or Load
func (p *PCA) CheckProjectionAccurate() (float64, error) {
	if err := p.requireSolved(); err != nil {
		return 0, err
	}
	if p.numRecords == 0 {
		return 1.0, nil
	}

	var passed int
	for i := 0; i < p.numRecords; i++ {
		record, err := p.Record(i)
		if err != nil {
			return 0, err
		}
		principal, err := p.ToPrincipalSpace(record)
		if err != nil {
			return 0, err
		}
		reconstructed, err := p.toVariableSpace(principal, p.numVariables)
		if err != nil {
			return 0, err
		}
		if matrix.IsApproxEqualSlice(record, reconstructed, projectionTolerance) {
			passed++
		}
	}

	return float64(passed) / float64(p.numRecords), nil
}

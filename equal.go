package pca

import (
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/matrix"
)

// equalTolerance is the per-entry tolerance used by Equal. Save/Load
// round-trips are bit-exact, so any larger deviation means the engines
// genuinely differ.
const equalTolerance = 1e-12

// Equal reports whether two engines carry the same configuration and
// analysis state within a tight tolerance. Accumulated records are not
// compared: they are not part of the persisted state, so an engine and its
// loaded copy compare equal.
func (p *PCA) Equal(other *PCA) bool {
	return p.ApproxEqual(other, equalTolerance)
}

// ApproxEqual reports whether two engines carry the same configuration and
// analysis state, comparing every numeric field entry-wise within eps.
func (p *PCA) ApproxEqual(other *PCA, eps float64) bool {
	if other == nil {
		return false
	}
	if p.numVariables != other.numVariables ||
		p.doNormalize != other.doNormalize ||
		p.doBootstrap != other.doBootstrap ||
		p.solver != other.solver ||
		p.numRetained != other.numRetained {
		return false
	}
	if p.doBootstrap &&
		(p.numBootstraps != other.numBootstraps || p.bootstrapSeed != other.bootstrapSeed) {
		return false
	}
	if p.solved != other.solved {
		return false
	}
	if !p.solved {
		return true
	}

	a, b := p.state, other.state
	if !matrix.IsApproxEqual(a.energy, b.energy, eps) ||
		!matrix.IsApproxEqualSlice(a.eigenvalues, b.eigenvalues, eps) ||
		!matrix.IsApproxEqualSlice(a.means, b.means, eps) {
		return false
	}
	if p.doNormalize && !matrix.IsApproxEqualSlice(a.sigmas, b.sigmas, eps) {
		return false
	}
	if !mat.EqualApprox(a.eigenvectors, b.eigenvectors, eps) ||
		!mat.EqualApprox(a.principals, b.principals, eps) {
		return false
	}

	if p.doBootstrap {
		if !matrix.IsApproxEqualSlice(a.bootEnergies, b.bootEnergies, eps) {
			return false
		}
		if !mat.EqualApprox(a.bootEigenvalues, b.bootEigenvalues, eps) {
			return false
		}
	}

	return true
}

package pca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pca/errs"
	"github.com/arloliu/pca/format"
)

const fixtureEnergy = 135459.19666667

var solverNames = []string{"standard", "dc"}

// normalizeRecords is a 6×3 data set without degenerate columns, used for
// the normalization paths.
var normalizeRecords = [][]float64{
	{2.5, 1.0, 3.2},
	{3.6, 2.8, 1.9},
	{1.2, 4.4, 2.8},
	{5.1, 3.3, 4.7},
	{4.4, 2.2, 0.6},
	{2.9, 5.6, 3.5},
}

func newNormalizeEngine(t *testing.T, opts ...Option) *PCA {
	t.Helper()

	engine, err := New(3, opts...)
	require.NoError(t, err)
	for _, record := range normalizeRecords {
		require.NoError(t, engine.AddRecord(record))
	}

	return engine
}

func TestSolveInsufficientData(t *testing.T) {
	engine, err := New(4)
	require.NoError(t, err)
	require.ErrorIs(t, engine.Solve(), errs.ErrInsufficientData)

	require.NoError(t, engine.AddRecord(fixtureRecords[0]))
	require.ErrorIs(t, engine.Solve(), errs.ErrInsufficientData)
	require.False(t, engine.Solved())
}

func TestSolveEnergy(t *testing.T) {
	for _, solver := range solverNames {
		t.Run(solver, func(t *testing.T) {
			engine := newFixtureEngine(t)
			require.NoError(t, engine.SetSolver(solver))
			require.NoError(t, engine.Solve())

			energy, err := engine.Energy()
			require.NoError(t, err)
			require.InDelta(t, fixtureEnergy, energy, 1e-6)
		})
	}
}

func TestSolveEigenvalues(t *testing.T) {
	expected := []float64{9.95745538e-01, 4.25446249e-03, 0, 0}

	for _, solver := range solverNames {
		t.Run(solver, func(t *testing.T) {
			engine := newFixtureEngine(t)
			require.NoError(t, engine.SetSolver(solver))
			require.NoError(t, engine.Solve())

			eigenvalues, err := engine.Eigenvalues()
			require.NoError(t, err)
			require.Len(t, eigenvalues, 4)

			for i, exp := range expected {
				require.InDelta(t, exp, eigenvalues[i], 1e-8, "eigenvalue %d", i)
			}

			// Descending, non-negative within tolerance, normalized to sum 1.
			sum := 0.0
			for i, v := range eigenvalues {
				require.GreaterOrEqual(t, v, -1e-12, "eigenvalue %d", i)
				if i > 0 {
					require.LessOrEqual(t, v, eigenvalues[i-1]+1e-15, "ordering at %d", i)
				}
				sum += v
			}
			require.InDelta(t, 1.0, sum, 1e-9)

			single, err := engine.Eigenvalue(0)
			require.NoError(t, err)
			require.InDelta(t, eigenvalues[0], single, 0) //nolint:testifylint

			_, err = engine.Eigenvalue(4)
			require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		})
	}
}

func TestSolveEigenvectors(t *testing.T) {
	// The leading two eigenvectors are uniquely determined (distinct
	// eigenvalues) up to sign, which the canonicalization fixes.
	expectedFirst := []float64{0.7136892, 0.69270403, -0.10396568, 0}
	expectedSecond := []float64{0.07711363, 0.06982266, 0.99457442, 0}

	for _, solver := range solverNames {
		t.Run(solver, func(t *testing.T) {
			engine := newFixtureEngine(t)
			require.NoError(t, engine.SetSolver(solver))
			require.NoError(t, engine.Solve())

			first, err := engine.Eigenvector(0)
			require.NoError(t, err)
			for i := range expectedFirst {
				require.InDelta(t, expectedFirst[i], first[i], 1e-6, "entry %d", i)
			}

			second, err := engine.Eigenvector(1)
			require.NoError(t, err)
			for i := range expectedSecond {
				require.InDelta(t, expectedSecond[i], second[i], 1e-6, "entry %d", i)
			}

			// The constant fourth column yields a zero eigenvalue whose
			// eigenvector is the fourth standard basis vector. Its position
			// among the two zero eigenvalues depends on the solver route.
			foundBasis := false
			for _, i := range []int{2, 3} {
				v, err := engine.Eigenvector(i)
				require.NoError(t, err)
				if math.Abs(v[3]) > 0.9999 {
					foundBasis = true
					require.InDelta(t, 1.0, v[3], 1e-9, "sign canonicalization")
					for j := 0; j < 3; j++ {
						require.InDelta(t, 0.0, v[j], 1e-9, "entry %d", j)
					}
				}
			}
			require.True(t, foundBasis, "e4 must appear among the zero-eigenvalue eigenvectors")

			_, err = engine.Eigenvector(4)
			require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		})
	}
}

func TestSolvePrincipals(t *testing.T) {
	expectedFirst := []float64{-2.10846198e+02, -2.13231575e+02, 4.24077773e+02}
	expectedSecond := []float64{-2.40512596e+01, 2.39612385e+01, 9.00211615e-02}

	for _, solver := range solverNames {
		t.Run(solver, func(t *testing.T) {
			engine := newFixtureEngine(t)
			require.NoError(t, engine.SetSolver(solver))
			require.NoError(t, engine.Solve())

			first, err := engine.Principal(0)
			require.NoError(t, err)
			require.Len(t, first, 3)
			for i := range expectedFirst {
				require.InDelta(t, expectedFirst[i], first[i], 1e-4, "record %d", i)
			}

			second, err := engine.Principal(1)
			require.NoError(t, err)
			for i := range expectedSecond {
				require.InDelta(t, expectedSecond[i], second[i], 1e-4, "record %d", i)
			}

			// Projections onto the zero-eigenvalue eigenvectors vanish: the
			// centered data has rank 2.
			for _, i := range []int{2, 3} {
				principal, err := engine.Principal(i)
				require.NoError(t, err)
				for r, v := range principal {
					require.InDelta(t, 0.0, v, 1e-6, "component %d record %d", i, r)
				}
			}
		})
	}
}

func TestSolversAgree(t *testing.T) {
	standard := newFixtureEngine(t, WithSolver(format.SolverStandard))
	require.NoError(t, standard.Solve())

	dc := newFixtureEngine(t, WithSolver(format.SolverDC))
	require.NoError(t, dc.Solve())

	stdEig, err := standard.Eigenvalues()
	require.NoError(t, err)
	dcEig, err := dc.Eigenvalues()
	require.NoError(t, err)
	for i := range stdEig {
		require.InDelta(t, stdEig[i], dcEig[i], 1e-9, "eigenvalue %d", i)
	}

	stdEnergy, err := standard.Energy()
	require.NoError(t, err)
	dcEnergy, err := dc.Energy()
	require.NoError(t, err)
	require.InDelta(t, stdEnergy, dcEnergy, 1e-6)

	// Only the eigenvectors of distinct eigenvalues are comparable.
	for _, i := range []int{0, 1} {
		stdVec, err := standard.Eigenvector(i)
		require.NoError(t, err)
		dcVec, err := dc.Eigenvector(i)
		require.NoError(t, err)
		for j := range stdVec {
			require.InDelta(t, stdVec[j], dcVec[j], 1e-8, "eigenvector %d entry %d", i, j)
		}
	}
}

func TestSolveIdempotent(t *testing.T) {
	first := newFixtureEngine(t)
	require.NoError(t, first.Solve())

	second := newFixtureEngine(t)
	require.NoError(t, second.Solve())
	require.NoError(t, second.Solve(), "re-solving must succeed")

	require.True(t, first.Equal(second), "same data and configuration must solve identically")
}

func TestSolveReplacesState(t *testing.T) {
	engine := newFixtureEngine(t)
	require.NoError(t, engine.Solve())

	before, err := engine.Energy()
	require.NoError(t, err)

	require.NoError(t, engine.AddRecord([]float64{10, 20, 30, 7}))
	require.NoError(t, engine.Solve())

	after, err := engine.Energy()
	require.NoError(t, err)
	require.NotEqual(t, before, after, "new data must produce a new spectrum")
}

func TestSolveBootstrap(t *testing.T) {
	engine := newFixtureEngine(t, WithBootstrap(10, 1))
	require.NoError(t, engine.Solve())

	for i := 0; i < 4; i++ {
		boot, err := engine.EigenvalueBoot(i)
		require.NoError(t, err)
		require.Len(t, boot, 10, "eigenvalue %d", i)
	}

	energies, err := engine.EnergyBoot()
	require.NoError(t, err)
	require.Len(t, energies, 10)
	for rep, energy := range energies {
		require.Positive(t, energy, "repetition %d", rep)
	}

	_, err = engine.EigenvalueBoot(4)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestSolveBootstrapDeterministic(t *testing.T) {
	first := newFixtureEngine(t, WithBootstrap(10, 1))
	require.NoError(t, first.Solve())

	second := newFixtureEngine(t, WithBootstrap(10, 1))
	require.NoError(t, second.Solve())

	require.True(t, first.Equal(second), "fixed seed must give identical bootstrap state")

	other := newFixtureEngine(t, WithBootstrap(10, 2))
	require.NoError(t, other.Solve())

	firstBoot, err := first.EnergyBoot()
	require.NoError(t, err)
	otherBoot, err := other.EnergyBoot()
	require.NoError(t, err)
	require.NotEqual(t, firstBoot, otherBoot, "different seeds must resample differently")
}

func TestSolveBootstrapDisabled(t *testing.T) {
	engine := newFixtureEngine(t)
	require.NoError(t, engine.Solve())

	_, err := engine.EigenvalueBoot(0)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	_, err = engine.EnergyBoot()
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestSolveNormalizeDegenerateColumn(t *testing.T) {
	engine := newFixtureEngine(t, WithNormalization())
	require.ErrorIs(t, engine.Solve(), errs.ErrDegenerateColumn,
		"constant column has zero RMS")
	require.False(t, engine.Solved())
}

func TestSolveFailureKeepsState(t *testing.T) {
	engine := newFixtureEngine(t)
	require.NoError(t, engine.Solve())

	before, err := engine.Energy()
	require.NoError(t, err)

	engine.SetDoNormalize(true)
	require.ErrorIs(t, engine.Solve(), errs.ErrDegenerateColumn)

	after, err := engine.Energy()
	require.NoError(t, err, "failed solve must keep the previous state queryable")
	require.Equal(t, before, after) //nolint:testifylint
}

func TestSolveNormalized(t *testing.T) {
	for _, solver := range solverNames {
		t.Run(solver, func(t *testing.T) {
			engine := newNormalizeEngine(t, WithNormalization())
			require.NoError(t, engine.SetSolver(solver))
			require.NoError(t, engine.Solve())

			// RMS normalization turns the covariance into a correlation
			// matrix, whose trace is the number of variables.
			energy, err := engine.Energy()
			require.NoError(t, err)
			require.InDelta(t, 3.0, energy, 1e-9)

			orthogonal, err := engine.CheckEigenvectorsOrthogonal()
			require.NoError(t, err)
			require.InDelta(t, 1.0, orthogonal, 0) //nolint:testifylint

			accurate, err := engine.CheckProjectionAccurate()
			require.NoError(t, err)
			require.InDelta(t, 1.0, accurate, 0) //nolint:testifylint

			sigmas, err := engine.SigmaValues()
			require.NoError(t, err)
			require.Len(t, sigmas, 3)
			for i, sigma := range sigmas {
				require.Positive(t, sigma, "column %d", i)
			}
		})
	}
}

func TestSolveMeanValues(t *testing.T) {
	engine := newFixtureEngine(t)
	require.NoError(t, engine.Solve())

	means, err := engine.MeanValues()
	require.NoError(t, err)
	expected := []float64{(1 + 3 + 456) / 3.0, (2.5 + 4.2 + 444) / 3.0, (42 + 90) / 3.0, 7}
	for i := range expected {
		require.InDelta(t, expected[i], means[i], 1e-9, "column %d", i)
	}
}

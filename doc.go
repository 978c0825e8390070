// Package pca performs Principal Component Analysis over a collection of
// fixed-dimensionality numeric records.
//
// The PCA engine accumulates records, computes the covariance structure of
// the (optionally RMS-normalized) centered data, requests a symmetric
// eigendecomposition from the gonum numeric backend, and exposes the derived
// quantities: eigenvalues (as fractions of explained variance), eigenvectors,
// per-record principal components, total energy, and bootstrap-based
// uncertainty estimates for the eigen-spectrum. Projections into and out of
// principal-component space, accuracy self-checks, and persistence of the
// full analysis state round out the API.
//
// # Basic Usage
//
//	import "github.com/arloliu/pca"
//
//	engine, _ := pca.New(4)
//	engine.AddRecord([]float64{1, 2.5, 42, 7})
//	engine.AddRecord([]float64{3, 4.2, 90, 7})
//	engine.AddRecord([]float64{456, 444, 0, 7})
//
//	if err := engine.Solve(); err != nil {
//	    return err
//	}
//
//	eigval, _ := engine.Eigenvalues() // descending, sum to 1
//	energy, _ := engine.Energy()
//	proj, _ := engine.ToPrincipalSpace([]float64{1, 2.5, 42, 7})
//
//	_ = engine.Save("results") // results.pca, results.mean, results.eigval, ...
//
// Bootstrap uncertainty estimation resamples every column independently with
// replacement and re-solves the resampled matrix, recording eigenvalues and
// energy per repetition:
//
//	engine, _ := pca.New(10, pca.WithBootstrap(100, 1))
//
// # Concurrency
//
// A PCA instance is not safe for concurrent mutation; callers serialize
// access or use one instance per goroutine. The underlying gonum routines may
// parallelize internally, which is opaque to the engine.
package pca

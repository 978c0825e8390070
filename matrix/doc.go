// Package matrix provides the stateless matrix utilities behind the PCA
// engine: covariance construction, column centering and RMS normalization,
// eigenvector sign canonicalization, row/column extraction, per-column
// bootstrap resampling, scalar statistics, approximate equality checks, and
// persistence of a single numeric matrix as a binary artifact.
//
// All functions operate on gonum dense matrices with records stacked as rows
// (num_records × num_variables) and share no state; they are safe for
// concurrent use on distinct matrices.
package matrix

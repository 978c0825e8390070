package matrix

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/pca/errs"
)

// MakeCovarianceMatrix builds the covariance matrix C = (1/(r-1)) * Xᵀ·X of
// the given data matrix. The input is used as-is; callers center (and
// optionally normalize) the columns beforehand.
//
// Parameters:
//   - data: r×c data matrix with records as rows, r >= 2
//
// Returns:
//   - *mat.SymDense: c×c covariance matrix
func MakeCovarianceMatrix(data *mat.Dense) *mat.SymDense {
	rows, cols := data.Dims()

	var xtx mat.Dense
	xtx.Mul(data.T(), data)

	factor := 1.0 / float64(rows-1)
	cov := mat.NewSymDense(cols, nil)
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			cov.SetSym(i, j, xtx.At(i, j)*factor)
		}
	}

	return cov
}

// ComputeColumnMeans returns the mean of every column of data.
func ComputeColumnMeans(data *mat.Dense) []float64 {
	rows, cols := data.Dims()

	means := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		col = mat.Col(col, j, data)
		means[j] = stat.Mean(col, nil)
	}

	return means
}

// RemoveColumnMeans subtracts means[j] from every entry of column j in place.
//
// Returns:
//   - error: ErrDimensionMismatch if len(means) does not match the column count
func RemoveColumnMeans(data *mat.Dense, means []float64) error {
	rows, cols := data.Dims()
	if len(means) != cols {
		return fmt.Errorf("means length %d does not match %d columns: %w",
			len(means), cols, errs.ErrDimensionMismatch)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data.Set(i, j, data.At(i, j)-means[j])
		}
	}

	return nil
}

// ComputeColumnRMS returns the root mean square of every column, computed
// with the sample divisor: sqrt(Σx² / (r-1)). On centered data this equals
// the sample standard deviation of the column.
func ComputeColumnRMS(data *mat.Dense) []float64 {
	rows, cols := data.Dims()

	rms := make([]float64, cols)
	factor := 1.0 / float64(rows-1)
	for j := 0; j < cols; j++ {
		var sumsq float64
		for i := 0; i < rows; i++ {
			v := data.At(i, j)
			sumsq += v * v
		}
		rms[j] = math.Sqrt(sumsq * factor)
	}

	return rms
}

// NormalizeByColumn divides every entry of column j by sigmas[j] in place.
//
// Returns:
//   - error: ErrDimensionMismatch if len(sigmas) does not match the column
//     count, ErrDegenerateColumn if any sigma is zero
func NormalizeByColumn(data *mat.Dense, sigmas []float64) error {
	rows, cols := data.Dims()
	if len(sigmas) != cols {
		return fmt.Errorf("sigmas length %d does not match %d columns: %w",
			len(sigmas), cols, errs.ErrDimensionMismatch)
	}

	for j, sigma := range sigmas {
		if sigma == 0 {
			return fmt.Errorf("column %d has zero RMS: %w", j, errs.ErrDegenerateColumn)
		}
		factor := 1.0 / sigma
		for i := 0; i < rows; i++ {
			data.Set(i, j, data.At(i, j)*factor)
		}
	}

	return nil
}

// EnforcePositiveSignByColumn canonicalizes the sign of every column in
// place: a column is negated when its dominant-magnitude entry is negative.
// Ties break deterministically on the first entry reaching the maximum
// absolute value, in index order.
func EnforcePositiveSignByColumn(data *mat.Dense) {
	rows, cols := data.Dims()

	for j := 0; j < cols; j++ {
		dominant := 0.0
		for i := 0; i < rows; i++ {
			v := data.At(i, j)
			if math.Abs(v) > math.Abs(dominant) {
				dominant = v
			}
		}
		if dominant < 0 {
			for i := 0; i < rows; i++ {
				data.Set(i, j, -data.At(i, j))
			}
		}
	}
}

// ExtractColumnVector returns a copy of column index of data.
//
// Returns:
//   - []float64: column values, one per row
//   - error: ErrIndexOutOfRange if index is not a valid column
func ExtractColumnVector(data *mat.Dense, index int) ([]float64, error) {
	_, cols := data.Dims()
	if index < 0 || index >= cols {
		return nil, fmt.Errorf("column index %d out of range [0, %d): %w",
			index, cols, errs.ErrIndexOutOfRange)
	}

	return mat.Col(nil, index, data), nil
}

// ExtractRowVector returns a copy of row index of data.
//
// Returns:
//   - []float64: row values, one per column
//   - error: ErrIndexOutOfRange if index is not a valid row
func ExtractRowVector(data *mat.Dense, index int) ([]float64, error) {
	rows, _ := data.Dims()
	if index < 0 || index >= rows {
		return nil, fmt.Errorf("row index %d out of range [0, %d): %w",
			index, rows, errs.ErrIndexOutOfRange)
	}

	return mat.Row(nil, index, data), nil
}

// MakeShuffledMatrix builds a bootstrap resample of data: every column is
// filled by drawing r values with replacement from that column's observed
// values. Columns are resampled independently, which intentionally
// decorrelates them; this is the resampling style the bootstrap spectrum
// estimates are defined on.
func MakeShuffledMatrix(data *mat.Dense, rng *rand.Rand) *mat.Dense {
	rows, cols := data.Dims()

	shuffled := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		col = mat.Col(col, j, data)
		for i := 0; i < rows; i++ {
			shuffled.Set(i, j, col[rng.Intn(rows)])
		}
	}

	return shuffled
}

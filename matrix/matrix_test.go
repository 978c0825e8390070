package matrix

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/errs"
)

// testData returns a 3×3 matrix with columns {1,2,3}, {4,5,6}, {7,8,9}.
func testData() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 4, 7,
		2, 5, 8,
		3, 6, 9,
	})
}

func TestMakeCovarianceMatrix(t *testing.T) {
	cov := MakeCovarianceMatrix(testData())

	expected := mat.NewSymDense(3, []float64{
		7, 16, 25,
		16, 38.5, 61,
		25, 61, 97,
	})
	require.True(t, mat.EqualApprox(expected, cov, 1e-12))
}

func TestComputeColumnMeans(t *testing.T) {
	means := ComputeColumnMeans(testData())
	require.Equal(t, []float64{2, 5, 8}, means)
}

func TestRemoveColumnMeans(t *testing.T) {
	data := testData()
	means := ComputeColumnMeans(data)
	require.NoError(t, RemoveColumnMeans(data, means))

	expected := mat.NewDense(3, 3, []float64{
		-1, -1, -1,
		0, 0, 0,
		1, 1, 1,
	})
	require.True(t, mat.EqualApprox(expected, data, 1e-12))
}

func TestRemoveColumnMeansDimensionMismatch(t *testing.T) {
	err := RemoveColumnMeans(testData(), []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)
}

func TestComputeColumnRMS(t *testing.T) {
	rms := ComputeColumnRMS(testData())

	expected := []float64{math.Sqrt(7), math.Sqrt(38.5), math.Sqrt(97)}
	require.True(t, IsApproxEqualSlice(expected, rms, 1e-12))
}

func TestNormalizeByColumn(t *testing.T) {
	data := testData()
	rms := ComputeColumnRMS(data)
	require.NoError(t, NormalizeByColumn(data, rms))

	for j, sigma := range rms {
		col := mat.Col(nil, j, testData())
		for i, v := range col {
			require.InDelta(t, v/sigma, data.At(i, j), 1e-12)
		}
	}
}

func TestNormalizeByColumnDimensionMismatch(t *testing.T) {
	err := NormalizeByColumn(testData(), []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)
}

func TestNormalizeByColumnDegenerate(t *testing.T) {
	err := NormalizeByColumn(testData(), []float64{0, 0, 0})
	require.ErrorIs(t, err, errs.ErrDegenerateColumn)
}

func TestEnforcePositiveSignByColumn(t *testing.T) {
	// Columns {1,2,3}, {4,5,-6}, {7,8,-9}: the last two have a negative
	// dominant entry and must flip.
	data := mat.NewDense(3, 3, []float64{
		1, 4, 7,
		2, 5, 8,
		3, -6, -9,
	})
	EnforcePositiveSignByColumn(data)

	expected := mat.NewDense(3, 3, []float64{
		1, -4, -7,
		2, -5, -8,
		3, 6, 9,
	})
	require.True(t, mat.EqualApprox(expected, data, 1e-12))
}

func TestExtractColumnVector(t *testing.T) {
	col, err := ExtractColumnVector(testData(), 1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, col)

	_, err = ExtractColumnVector(testData(), 3)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = ExtractColumnVector(testData(), -1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestExtractRowVector(t *testing.T) {
	row, err := ExtractRowVector(testData(), 1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 5, 8}, row)

	_, err = ExtractRowVector(testData(), 3)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestMakeShuffledMatrix(t *testing.T) {
	data := mat.NewDense(3, 3, []float64{
		4, 2, 3,
		1, 5, 3,
		1, 2, 6,
	})

	shuffled := MakeShuffledMatrix(data, rand.New(rand.NewSource(1)))

	rows, cols := shuffled.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 3, cols)

	// Every resampled value must come from the same column of the source.
	for j := 0; j < cols; j++ {
		source := mat.Col(nil, j, data)
		for i := 0; i < rows; i++ {
			require.Contains(t, source, shuffled.At(i, j), "column %d row %d", j, i)
		}
	}
}

func TestMakeShuffledMatrixDeterministic(t *testing.T) {
	data := testData()

	first := MakeShuffledMatrix(data, rand.New(rand.NewSource(42)))
	second := MakeShuffledMatrix(data, rand.New(rand.NewSource(42)))
	require.True(t, mat.Equal(first, second), "same seed must give the same resample")
}

package linearmodel

import (
	"math/rand/v2"
	"testing"

	mat_ "github.com/aouyang1/go-utilitycost/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol, "intercept")

	c := model.Coef()
	assert.InDeltaSlice(t, coef, c, tol, "coefficients")

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol, "score")
}

// generateBenchData builds a one-hot style design with two categorical blocks followed by
// two numeric columns, mirroring the shape of an encoded customer table.
func generateBenchData(nObs, nCat int) (mat.Matrix, mat.Matrix, error) {
	rng := rand.New(rand.NewPCG(1, 2))

	data := make([][]float64, nObs)
	target := make([]float64, nObs)
	for i := 0; i < nObs; i++ {
		row := make([]float64, 2*nCat+2)
		a := rng.IntN(nCat)
		b := rng.IntN(nCat)
		row[a] = 1.0
		row[nCat+b] = 1.0
		row[2*nCat] = 10 + rng.Float64()*90
		row[2*nCat+1] = float64(1 + rng.IntN(6))
		data[i] = row

		target[i] = 20 + 3*float64(a) - 2*float64(b) + 1.1*row[2*nCat] + 7*row[2*nCat+1] + rng.NormFloat64()
	}

	x, err := mat_.NewDenseFromArray(data)
	if err != nil {
		return nil, nil, err
	}

	y := mat.NewDense(nObs, 1, target)
	return x, y, nil
}

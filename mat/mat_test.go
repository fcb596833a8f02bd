package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDenseFromArray(t *testing.T) {
	testData := map[string]struct {
		err error
		x   [][]float64
		m   int
		n   int
	}{
		"nil input": {
			mat.ErrZeroLength,
			nil,
			0, 0,
		},
		"empty input": {
			mat.ErrZeroLength,
			[][]float64{},
			0, 0,
		},
		"single element": {
			nil,
			[][]float64{{1}},
			1, 1,
		},
		"one hot row": {
			nil,
			[][]float64{{1, 0, 0, 1, 45, 2}},
			1, 6,
		},
		"multiple rows and cols": {
			nil,
			[][]float64{{1, 2, 3}, {4, 5, 6}},
			2, 3,
		},
		"inconsistent cols": {
			ErrColMismatch,
			[][]float64{{1, 2, 3}, {4, 5}},
			0, 0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				if td.err != nil && r != nil {
					err, ok := r.(error)
					require.True(t, ok, "panic is not an error")
					assert.ErrorAs(t, err, &td.err)
				}
			}()
			mx, err := NewDenseFromArray(td.x)
			if td.err != nil {
				require.ErrorAs(t, err, &td.err)
				return
			}
			require.Nil(t, err)

			m, n := mx.Dims()
			assert.Equal(t, td.m, m, "m")
			assert.Equal(t, td.n, n, "n")

			for ri, row := range td.x {
				assert.Equal(t, row, mat.Row(nil, ri, mx), "array")
			}
		})
	}
}

func TestNewColVector(t *testing.T) {
	y := []float64{1, 2, 3}
	v := NewColVector(y)

	m, n := v.Dims()
	assert.Equal(t, 3, m)
	assert.Equal(t, 1, n)

	y[0] = 100
	assert.Equal(t, 1.0, v.At(0, 0), "vector must not alias input")
}

func TestCenterColumns(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 20,
		3, 60,
	})

	centered, means, err := CenterColumns(x)
	require.Nil(t, err)
	assert.Equal(t, []float64{2, 30}, means)
	assert.Equal(t, []float64{-1, 0, 1}, mat.Col(nil, 0, centered))
	assert.Equal(t, []float64{-20, -10, 30}, mat.Col(nil, 1, centered))

	// source untouched
	assert.Equal(t, 1.0, x.At(0, 0))
}

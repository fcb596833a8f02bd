// Package mat holds small helpers for building and reshaping gonum matrices
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch = errors.New("column size mismatch")
	ErrEmptyMatrix = errors.New("empty matrix")
)

// NewDenseFromArray converts a slice of rows into a dense matrix. Every row must have the same
// number of columns. An empty input panics with mat.ErrZeroLength just like mat.NewDense.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if n < 0 {
		n = 0
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewColVector returns an m x 1 matrix backed by a copy of y
func NewColVector(y []float64) *mat.Dense {
	data := make([]float64, len(y))
	copy(data, y)
	return mat.NewDense(len(data), 1, data)
}

// ColMeans returns the mean of every column of x
func ColMeans(x mat.Matrix) []float64 {
	m, n := x.Dims()
	means := make([]float64, n)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, x)
		means[j] = floats.Sum(col) / float64(m)
	}
	return means
}

// CenterColumns returns a copy of x with each column mean subtracted along with the means
// that were removed.
func CenterColumns(x mat.Matrix) (*mat.Dense, []float64, error) {
	m, n := x.Dims()
	if m == 0 || n == 0 {
		return nil, nil, ErrEmptyMatrix
	}

	means := ColMeans(x)
	centered := mat.DenseCopyOf(x)
	centered.Apply(func(_, j int, v float64) float64 {
		return v - means[j]
	}, centered)
	return centered, means, nil
}

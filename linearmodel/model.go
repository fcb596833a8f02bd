// Package linearmodel fits linear regression models over a design matrix
package linearmodel

import (
	"gonum.org/v1/gonum/mat"
)

// Model is a fitted linear model that can be scored and used for inference
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}

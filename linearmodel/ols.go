package linearmodel

import (
	"fmt"
	"log/slog"

	mat_ "github.com/aouyang1/go-utilitycost/mat"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultRCond is the relative cutoff below which singular values of the design matrix are
// treated as zero.
const DefaultRCond = 1e-10

// OLSOptions represents input options to run the OLS Regression
type OLSOptions struct {
	// FitIntercept centers the design matrix and target before solving and recovers the
	// intercept from the column means if set to true
	FitIntercept bool `json:"fit_intercept" yaml:"fit_intercept"`

	// RCond is the relative singular value cutoff used to determine the effective rank
	RCond float64 `json:"rcond" yaml:"rcond"`
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	if o.RCond < 0 {
		return nil, fmt.Errorf("got %.3g, %w", o.RCond, ErrNegativeRCond)
	}
	if o.RCond == 0 {
		o.RCond = DefaultRCond
	}

	return o, nil
}

// NewDefaultOLSOptions returns a default set of OLS Regression options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
		RCond:        DefaultRCond,
	}
}

// OLSRegression computes ordinary least squares using the minimum norm solution of an SVD.
// Rank deficient design matrices such as a full one-hot encoding alongside an intercept are
// solved without error.
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
	rank      int
	trained   bool
}

// NewOLSRegression initializes an ordinary least squares model ready for fitting
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// NewOLSRegressionFromWeights rebuilds a fitted model from a previously computed intercept and
// coefficients.
func NewOLSRegressionFromWeights(intercept float64, coef []float64) *OLSRegression {
	c := make([]float64, len(coef))
	copy(c, coef)
	return &OLSRegression{
		opt:       NewDefaultOLSOptions(),
		coef:      c,
		intercept: intercept,
		rank:      len(c),
		trained:   true,
	}
}

// Fit the model according to the given training data. x is an m x n design matrix and y is
// an m x 1 target.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, n := x.Dims()

	ym, yn := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}
	if yn != 1 {
		return fmt.Errorf("target has %d columns, %w", yn, ErrTargetNotVector)
	}

	target := mat.Col(nil, 0, y)

	var (
		design *mat.Dense
		xMeans []float64
		yMean  float64
	)
	if o.opt.FitIntercept {
		var err error
		design, xMeans, err = mat_.CenterColumns(x)
		if err != nil {
			return err
		}
		yMean = floats.Sum(target) / float64(m)
		floats.AddConst(-yMean, target)
	} else {
		design = mat.DenseCopyOf(x)
	}

	coef, rank, err := solveMinNorm(design, target, o.opt.RCond)
	if err != nil {
		return err
	}
	if rank < n {
		slog.Debug("rank deficient design matrix, using minimum norm solution", "rank", rank, "features", n)
	}

	o.coef = coef
	o.rank = rank
	o.intercept = 0.0
	if o.opt.FitIntercept {
		o.intercept = yMean - floats.Dot(xMeans, coef)
	}
	o.trained = true

	return nil
}

// solveMinNorm returns the coefficients minimizing |y - xw| with the smallest |w| along with
// the effective rank of x.
func solveMinNorm(x *mat.Dense, y []float64, rcond float64) ([]float64, int, error) {
	_, n := x.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, 0, ErrFactorization
	}

	coef := make([]float64, n)
	rank := svd.Rank(rcond)
	if rank == 0 {
		// every feature is constant so the best fit is the intercept alone
		return coef, 0, nil
	}

	var w mat.Dense
	svd.SolveTo(&w, mat.NewDense(len(y), 1, y), rank)
	mat.Col(coef, 0, &w)
	return coef, rank, nil
}

// Predict using the OLS model
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if !o.trained {
		return nil, ErrUntrained
	}

	m, n := x.Dims()
	if n != len(o.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(o.coef), ErrFeatureLenMismatch)
	}

	var res mat.VecDense
	res.MulVec(x, mat.NewVecDense(n, o.Coef()))

	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = res.AtVec(i) + o.intercept
	}
	return out, nil
}

// Score computes the coefficient of determination of the prediction
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if o.opt == nil {
		return 0.0, ErrNoOptions
	}
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()

	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)

	return stat.RSquaredFrom(res, ySlice, nil), nil
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to 0.0 if not set.
func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

// Coef returns a slice of the trained coefficients in the same order of the training feature Matrix by column.
func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// Rank returns the effective rank of the design matrix observed during the fit
func (o *OLSRegression) Rank() int {
	return o.rank
}

package linearmodel

import (
	"errors"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNegativeRCond      = errors.New("rcond must be non-negative")
	ErrTargetLenMismatch  = errors.New("target length does not match target rows")
	ErrTargetNotVector    = errors.New("target must be a single column")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrFactorization      = errors.New("unable to factorize design matrix")
	ErrUntrained          = errors.New("model has not been fit")
)

package dashboard

import (
	"sync"

	"github.com/aouyang1/go-utilitycost"
)

// PredictorSource hands out the shared, fitted predictor
type PredictorSource interface {
	Predictor() (*utilitycost.Predictor, error)
}

// Lazy computes the predictor on first use and returns the same predictor, or the same error,
// on every later call.
type Lazy struct {
	load func() (*utilitycost.Predictor, error)

	once sync.Once
	p    *utilitycost.Predictor
	err  error
}

// NewLazy wraps a load function that reads the dataset and fits the predictor
func NewLazy(load func() (*utilitycost.Predictor, error)) *Lazy {
	return &Lazy{load: load}
}

// Predictor runs the load function at most once
func (l *Lazy) Predictor() (*utilitycost.Predictor, error) {
	l.once.Do(func() {
		l.p, l.err = l.load()
	})
	return l.p, l.err
}

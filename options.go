package utilitycost

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-utilitycost/linearmodel"
)

const (
	DefaultHistogramBins = 30
	DefaultRangePadding  = 10.0
)

var (
	ErrInvalidHistogramBins = errors.New("histogram bins must be positive")
	ErrNegativeRangePadding = errors.New("range padding must be non-negative")
	ErrInvalidPercentiles   = errors.New("lower percentile must be below upper percentile")
)

// OutlierOptions configures the tukey fence used to flag training records whose fit residual
// is unusually large.
type OutlierOptions struct {
	LowerPercentile float64 `json:"lower_percentile"`
	UpperPercentile float64 `json:"upper_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

// NewDefaultOutlierOptions uses the interquartile range with a factor of 1.5
func NewDefaultOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		LowerPercentile: 0.25,
		UpperPercentile: 0.75,
		TukeyFactor:     1.5,
	}
}

// Options configures the model fit and the presentation of its results
type Options struct {
	OLSOptions     *linearmodel.OLSOptions `json:"ols_options"`
	OutlierOptions *OutlierOptions         `json:"outlier_options"`

	// HistogramBins is the number of bins of the cost distribution chart
	HistogramBins int `json:"histogram_bins"`

	// RangePadding widens the axis of the position on range chart on both sides
	RangePadding float64 `json:"range_padding"`
}

// NewDefaultOptions returns the default fit and presentation options
func NewDefaultOptions() *Options {
	return &Options{
		OLSOptions:     linearmodel.NewDefaultOLSOptions(),
		OutlierOptions: NewDefaultOutlierOptions(),
		HistogramBins:  DefaultHistogramBins,
		RangePadding:   DefaultRangePadding,
	}
}

// Validate fills unset options with defaults and rejects invalid values
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	olsOpt, err := o.OLSOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid ols options, %w", err)
	}
	o.OLSOptions = olsOpt

	if o.HistogramBins < 0 {
		return nil, fmt.Errorf("got %d, %w", o.HistogramBins, ErrInvalidHistogramBins)
	}
	if o.HistogramBins == 0 {
		o.HistogramBins = DefaultHistogramBins
	}
	if o.RangePadding < 0 {
		return nil, fmt.Errorf("got %.2f, %w", o.RangePadding, ErrNegativeRangePadding)
	}

	if o.OutlierOptions != nil && o.OutlierOptions.LowerPercentile >= o.OutlierOptions.UpperPercentile {
		return nil, fmt.Errorf("got %.2f and %.2f, %w",
			o.OutlierOptions.LowerPercentile, o.OutlierOptions.UpperPercentile, ErrInvalidPercentiles)
	}
	return o, nil
}

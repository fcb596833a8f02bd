package utilitycost

import (
	"testing"

	"github.com/aouyang1/go-utilitycost/linearmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *Options
		expected *Options
		err      error
	}{
		"nil": {
			expected: NewDefaultOptions(),
		},
		"zero value uses defaults": {
			opt: &Options{},
			expected: &Options{
				OLSOptions:    linearmodel.NewDefaultOLSOptions(),
				HistogramBins: DefaultHistogramBins,
			},
		},
		"custom": {
			opt: &Options{
				OLSOptions:     &linearmodel.OLSOptions{FitIntercept: true, RCond: 1e-8},
				OutlierOptions: &OutlierOptions{LowerPercentile: 0.1, UpperPercentile: 0.9, TukeyFactor: 1},
				HistogramBins:  10,
				RangePadding:   5,
			},
			expected: &Options{
				OLSOptions:     &linearmodel.OLSOptions{FitIntercept: true, RCond: 1e-8},
				OutlierOptions: &OutlierOptions{LowerPercentile: 0.1, UpperPercentile: 0.9, TukeyFactor: 1},
				HistogramBins:  10,
				RangePadding:   5,
			},
		},
		"negative bins": {
			opt: &Options{HistogramBins: -1},
			err: ErrInvalidHistogramBins,
		},
		"negative padding": {
			opt: &Options{RangePadding: -1},
			err: ErrNegativeRangePadding,
		},
		"inverted percentiles": {
			opt: &Options{OutlierOptions: &OutlierOptions{LowerPercentile: 0.9, UpperPercentile: 0.1}},
			err: ErrInvalidPercentiles,
		},
		"negative rcond": {
			opt: &Options{OLSOptions: &linearmodel.OLSOptions{RCond: -1}},
			err: linearmodel.ErrNegativeRCond,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

package utilitycost

import (
	"bytes"
	"testing"

	"github.com/aouyang1/go-utilitycost/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotDataset(t *testing.T) {
	p := fitFixture(t)

	var b bytes.Buffer
	require.Nil(t, p.PlotDataset(&b))

	out := b.String()
	for _, expected := range []string{
		"Distribution of Monthly Cost",
		"Average Cost by Region",
		"Average Cost by Customer Type",
		"Customer Type Proportion",
		ColorBlue,
		ColorAmber,
	} {
		assert.Contains(t, out, expected)
	}
}

func TestPlotDatasetNoTrainingData(t *testing.T) {
	p, err := New(nil)
	require.Nil(t, err)

	var b bytes.Buffer
	assert.ErrorIs(t, p.PlotDataset(&b), ErrNoTrainingData)
}

func TestPlotPrediction(t *testing.T) {
	p := fitFixture(t)

	var b bytes.Buffer
	require.Nil(t, p.PlotPrediction(&b, 102.12))

	out := b.String()
	assert.Contains(t, out, "Position of Prediction in Cost Range")
	assert.Contains(t, out, "102.12")
	assert.Contains(t, out, "42.56", "axis is padded below the minimum")
	assert.Contains(t, out, "168.14", "axis is padded above the maximum")

	untrained, err := New(nil)
	require.Nil(t, err)
	assert.ErrorIs(t, untrained.PlotPrediction(&b, 1), ErrUntrained)
}

func TestHistogramChart(t *testing.T) {
	h, err := stats.NewHistogram([]float64{1, 2, 3, 4}, 2)
	require.Nil(t, err)

	bar := HistogramChart(h)
	var b bytes.Buffer
	require.Nil(t, bar.Render(&b))
	assert.Contains(t, b.String(), "1.00-2.50")
	assert.Contains(t, b.String(), "2.50-4.00")
}

func TestProportionChartColors(t *testing.T) {
	pie := ProportionChart("Customer Type Proportion", []stats.Group{
		{Key: "Residential", Count: 3},
		{Key: "Commercial", Count: 2},
		{Key: "Industrial", Count: 1},
		{Key: "Agricultural", Count: 1},
	})

	var b bytes.Buffer
	require.Nil(t, pie.Render(&b))
	out := b.String()
	assert.Contains(t, out, ColorBlue)
	assert.Contains(t, out, ColorAmber)
	assert.Contains(t, out, ColorGreen)
	assert.Contains(t, out, "Agricultural")
}

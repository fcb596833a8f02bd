package utilitycost

import (
	"fmt"
	"io"
	"math"

	"github.com/aouyang1/go-utilitycost/dataset"
	"github.com/aouyang1/go-utilitycost/stats"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart colors
const (
	ColorBlue  = "#3b82f6"
	ColorAmber = "#f59e0b"
	ColorGreen = "#10b981"
	ColorGray  = "#9ca3af"
)

var proportionColors = []string{ColorBlue, ColorAmber, ColorGreen}

// HistogramChart generates an echart bar chart of the binned monthly costs
func HistogramChart(h stats.Histogram) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Distribution of Monthly Cost",
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: "Monthly cost ($)",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Customers",
			},
		),
	)

	binLabels := make([]string, 0, len(h.Counts))
	barData := make([]opts.BarData, 0, len(h.Counts))
	for i, c := range h.Counts {
		binLabels = append(binLabels, fmt.Sprintf("%.2f-%.2f", h.Edges[i], h.Edges[i+1]))
		barData = append(barData, opts.BarData{Value: c})
	}

	bar.SetXAxis(binLabels).
		AddSeries("Customers", barData,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorBlue}),
		)
	return bar
}

// GroupMeanChart generates an echart bar chart with one bar per group mean
func GroupMeanChart(title string, groups []stats.Group, color string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Average cost ($)",
			},
		),
	)

	keys := make([]string, 0, len(groups))
	barData := make([]opts.BarData, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
		barData = append(barData, opts.BarData{Name: g.Key, Value: roundCents(g.Value)})
	}

	bar.SetXAxis(keys).
		AddSeries("Average cost", barData,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
	return bar
}

// ProportionChart generates an echart pie chart of the group counts
func ProportionChart(title string, groups []stats.Group) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	pieData := make([]opts.PieData, 0, len(groups))
	for i, g := range groups {
		pieData = append(pieData, opts.PieData{
			Name:      g.Key,
			Value:     g.Count,
			ItemStyle: &opts.ItemStyle{Color: proportionColors[i%len(proportionColors)]},
		})
	}
	pie.AddSeries("Customers", pieData)
	return pie
}

// RangeChart generates an echart number line spanning the observed cost range with the
// estimate marked on it. The axis extends by padding on both sides.
func RangeChart(minCost, maxCost, value, padding float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Position of Prediction in Cost Range",
			},
		),
		charts.WithInitializationOpts(
			opts.Initialization{
				Height: "220px",
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Type: "value",
				Name: "Monthly cost ($)",
				Min:  roundCents(minCost - padding),
				Max:  roundCents(maxCost + padding),
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "value",
				Show: opts.Bool(false),
				Min:  -1,
				Max:  1,
			},
		),
	)

	rangeData := []opts.LineData{
		{Name: "Min", Value: []float64{minCost, 0}},
		{Name: "Max", Value: []float64{maxCost, 0}},
	}
	estimateData := []opts.LineData{
		{Name: "Prediction", Value: []float64{roundCents(value), 0}, Symbol: "circle", SymbolSize: 16},
	}

	line.AddSeries("Cost range", rangeData,
		charts.WithLineStyleOpts(opts.LineStyle{Color: ColorGray, Width: 6}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorGray}),
	).AddSeries("Prediction", estimateData,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorAmber}),
	)
	return line
}

// DatasetCharts builds the descriptive charts of a training dataset
func DatasetCharts(ds *dataset.Dataset, bins int) ([]components.Charter, error) {
	if ds.Len() == 0 {
		return nil, ErrNoTrainingData
	}
	costs := ds.Costs()

	h, err := stats.NewHistogram(costs, bins)
	if err != nil {
		return nil, fmt.Errorf("unable to bin costs, %w", err)
	}
	byRegion, err := stats.GroupMean(ds.Regions(), costs)
	if err != nil {
		return nil, fmt.Errorf("unable to group costs by region, %w", err)
	}
	byType, err := stats.GroupMean(ds.CustomerTypes(), costs)
	if err != nil {
		return nil, fmt.Errorf("unable to group costs by customer type, %w", err)
	}

	return []components.Charter{
		HistogramChart(h),
		GroupMeanChart("Average Cost by Region", byRegion, ColorBlue),
		GroupMeanChart("Average Cost by Customer Type", byType, ColorAmber),
		ProportionChart("Customer Type Proportion", stats.GroupCount(ds.CustomerTypes())),
	}, nil
}

// PlotDataset renders the descriptive charts of the training data as an html page
func (p *Predictor) PlotDataset(w io.Writer) error {
	if p == nil {
		return ErrUntrained
	}
	charters, err := DatasetCharts(p.trainingData, p.opt.HistogramBins)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.SetPageTitle("Utility Cost Dataset")
	page.AddCharts(charters...)
	return page.Render(w)
}

// PlotPrediction renders the position of an estimate on the observed cost range as an html
// page
func (p *Predictor) PlotPrediction(w io.Writer, value float64) error {
	if p == nil || !p.trained {
		return ErrUntrained
	}
	s := p.Summary()
	page := components.NewPage()
	page.SetPageTitle("Utility Cost Prediction")
	page.AddCharts(RangeChart(s.Min, s.Max, value, p.opt.RangePadding))
	return page.Render(w)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

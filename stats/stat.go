// Package stats computes the descriptive statistics shown alongside the model
package stats

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoValues    = errors.New("no values to summarize")
	ErrLenMismatch = errors.New("keys and values have different lengths")
	ErrInvalidBins = errors.New("histogram needs at least one bin")
)

// Summary holds the headline statistics of a column
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes the count, mean, min, max and sample standard deviation of values
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoValues
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0.0
	}
	return Summary{
		Count:  len(values),
		Mean:   mean,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		StdDev: std,
	}, nil
}

// Histogram is a set of equal width bins. Edges has one more element than Counts.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// NewHistogram bins values into equal width intervals spanning [min, max]. Each bin is
// closed on the left and the maximum value lands in the last bin.
func NewHistogram(values []float64, bins int) (Histogram, error) {
	if len(values) == 0 {
		return Histogram{}, ErrNoValues
	}
	if bins < 1 {
		return Histogram{}, fmt.Errorf("got %d, %w", bins, ErrInvalidBins)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		hi = lo + 1.0
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)

	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	raw := stat.Histogram(nil, dividers, sorted, nil)
	counts := make([]int, bins)
	for i, c := range raw {
		counts[i] = int(c)
	}
	return Histogram{Edges: edges, Counts: counts}, nil
}

// Total returns the number of binned values
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Group is an aggregate over all values sharing a key
type Group struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// GroupMean averages values by key. Groups are sorted by key.
func GroupMean(keys []string, values []float64) ([]Group, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("got %d keys and %d values, %w", len(keys), len(values), ErrLenMismatch)
	}
	if len(keys) == 0 {
		return nil, ErrNoValues
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, k := range keys {
		sums[k] += values[i]
		counts[k]++
	}

	groups := make([]Group, 0, len(sums))
	for _, k := range slices.Sorted(maps.Keys(sums)) {
		groups = append(groups, Group{
			Key:   k,
			Value: sums[k] / float64(counts[k]),
			Count: counts[k],
		})
	}
	return groups, nil
}

// GroupCount counts occurrences of each key. Value holds the share of the total. Groups are
// sorted by descending count and then by key.
func GroupCount(keys []string) []Group {
	counts := make(map[string]int)
	for _, k := range keys {
		counts[k]++
	}

	groups := make([]Group, 0, len(counts))
	for k, c := range counts {
		groups = append(groups, Group{
			Key:   k,
			Value: float64(c) / float64(len(keys)),
			Count: c,
		})
	}
	slices.SortFunc(groups, func(a, b Group) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return groups
}

// DetectOutliers returns the indices of values outside of the percentile range widened by the
// tukey factor times the inner range.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	if len(y) == 0 {
		return nil
	}
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)

	lower := stat.Quantile(lowerPerc, stat.Empirical, yCopy, nil)
	upper := stat.Quantile(upperPerc, stat.Empirical, yCopy, nil)
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] > upper || y[i] < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

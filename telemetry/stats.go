package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SpeedStats computes mean and p10/p50/p90 of a speed sample set.
// The input slice is sorted in place.
func SpeedStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(values)
	mean = stat.Mean(values, nil)
	p10 = stat.Quantile(0.1, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, values, nil)
	return mean, p10, p50, p90
}

// StdDev computes the sample standard deviation.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

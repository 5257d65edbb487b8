package app

import (
	"github.com/montanaflynn/stats"

	"storekpi/domain/retail"
	"storekpi/models"
)

// BuildProfile computes descriptive statistics for the dataset's three
// measures. Runs once after load; the result is served unchanged for the
// process lifetime.
func BuildProfile(ds *retail.Dataset) models.DatasetProfile {
	n := ds.Len()
	sales := make([]float64, 0, n)
	profit := make([]float64, 0, n)
	quantity := make([]float64, 0, n)

	view := ds.All()
	for i := 0; i < n; i++ {
		r := view.At(i)
		sales = append(sales, r.Sales)
		profit = append(profit, r.Profit)
		quantity = append(quantity, float64(r.Quantity))
	}

	return models.DatasetProfile{
		Sales:    measureProfile(sales),
		Profit:   measureProfile(profit),
		Quantity: measureProfile(quantity),
	}
}

func measureProfile(data []float64) models.MeasureProfile {
	if len(data) == 0 {
		return models.MeasureProfile{}
	}
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	return models.MeasureProfile{
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}
}

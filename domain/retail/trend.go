package retail

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TrendLine is an ordinary least squares fit over a quarterly KPI series.
// X is the quarter's index in chronological order, so Slope reads as
// KPI-change per quarter.
type TrendLine struct {
	Slope     float64  `json:"slope"`
	Intercept float64  `json:"intercept"`
	R2        float64  `json:"r2"`
	Quarters  []string `json:"quarters"`
}

// QuarterlyTrend fits a trend line to the view's per-quarter KPI totals.
// Fewer than two quarters cannot anchor a line and yield the zero TrendLine
// (with whatever quarter labels exist). A constant series has no defined R²;
// it and any other non-finite fit report as zero rather than NaN.
func QuarterlyTrend(v View, kpi KPI) TrendLine {
	av := ByQuarter(v)
	quarters := make([]string, 0, len(av.Rows))
	xs := make([]float64, 0, len(av.Rows))
	ys := make([]float64, 0, len(av.Rows))
	for i, row := range av.Rows {
		quarters = append(quarters, row.Key.Main)
		xs = append(xs, float64(i))
		ys = append(ys, kpi.ValueOf(row.Totals))
	}

	if len(xs) < 2 {
		return TrendLine{Quarters: quarters}
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	return TrendLine{
		Slope:     finiteOrZero(slope),
		Intercept: finiteOrZero(intercept),
		R2:        finiteOrZero(r2),
		Quarters:  quarters,
	}
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

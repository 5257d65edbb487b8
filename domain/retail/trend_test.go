package retail

import "testing"

func TestQuarterlyTrend_ExactLinearSeries(t *testing.T) {
	// Quarterly sales 10, 20, 30: a perfect line with slope 10.
	ds := NewDataset([]Record{
		testRecord(t, "2016-01-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 10, 1, 1),
		testRecord(t, "2016-04-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 20, 2, 1),
		testRecord(t, "2016-07-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 30, 3, 1),
	})

	trend := QuarterlyTrend(ds.All(), KPISales)
	if !almostEqual(trend.Slope, 10) {
		t.Errorf("Slope = %v, want 10", trend.Slope)
	}
	if !almostEqual(trend.Intercept, 10) {
		t.Errorf("Intercept = %v, want 10", trend.Intercept)
	}
	if !almostEqual(trend.R2, 1) {
		t.Errorf("R2 = %v, want 1", trend.R2)
	}
	assertStrings(t, trend.Quarters, []string{"2016Q1", "2016Q2", "2016Q3"})
}

func TestQuarterlyTrend_SingleQuarterHasNoLine(t *testing.T) {
	ds := NewDataset([]Record{
		testRecord(t, "2016-01-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 10, 1, 1),
		testRecord(t, "2016-02-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 20, 2, 1),
	})

	trend := QuarterlyTrend(ds.All(), KPISales)
	if trend.Slope != 0 || trend.Intercept != 0 || trend.R2 != 0 {
		t.Errorf("single-quarter trend should be zero, got %+v", trend)
	}
	assertStrings(t, trend.Quarters, []string{"2016Q1"})
}

func TestQuarterlyTrend_EmptyView(t *testing.T) {
	ds := NewDataset(nil)

	trend := QuarterlyTrend(ds.All(), KPISales)
	if trend.Slope != 0 || trend.Intercept != 0 || trend.R2 != 0 {
		t.Errorf("empty trend should be zero, got %+v", trend)
	}
	if len(trend.Quarters) != 0 {
		t.Errorf("empty trend should carry no quarters, got %v", trend.Quarters)
	}
}

func TestQuarterlyTrend_ConstantSeriesReportsFinite(t *testing.T) {
	// A flat series has zero residual variance; R² degenerates and must be
	// reported as zero rather than NaN.
	ds := NewDataset([]Record{
		testRecord(t, "2016-01-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 10, 1, 1),
		testRecord(t, "2016-04-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 10, 1, 1),
		testRecord(t, "2016-07-15", "East", "Ohio", "Technology", "Phones", "Consumer", "A", 10, 1, 1),
	})

	trend := QuarterlyTrend(ds.All(), KPISales)
	if !almostEqual(trend.Slope, 0) {
		t.Errorf("Slope = %v, want 0", trend.Slope)
	}
	if !almostEqual(trend.Intercept, 10) {
		t.Errorf("Intercept = %v, want 10", trend.Intercept)
	}
	if trend.R2 != 0 {
		t.Errorf("R2 = %v, want 0", trend.R2)
	}
}

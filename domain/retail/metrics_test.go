package retail

import (
	"errors"
	"testing"
)

func TestMarginRate_DivideByOnePolicy(t *testing.T) {
	cases := []struct {
		name   string
		sales  float64
		profit float64
		want   float64
	}{
		{"normal ratio", 150, 10, 10.0 / 150.0},
		{"zero sales yields raw profit", 0, 5, 5},
		{"zero sales zero profit", 0, 0, 0},
		{"loss", 50, -10, -0.2},
		{"negative sales divide as-is", -50, 10, -0.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MarginRate(tc.sales, tc.profit); !almostEqual(got, tc.want) {
				t.Errorf("MarginRate(%v, %v) = %v, want %v", tc.sales, tc.profit, got, tc.want)
			}
		})
	}
}

func TestSummarize_WholeSetTotals(t *testing.T) {
	ds := NewDataset([]Record{
		testRecord(t, "2016-01-05", "East", "New York", "Furniture", "Chairs", "Consumer", "A", 100, 20, 2),
		testRecord(t, "2016-02-10", "West", "California", "Furniture", "Tables", "Consumer", "B", 50, -10, 3),
	})

	got := Summarize(ds.All())
	if !almostEqual(got.Sales, 150) {
		t.Errorf("Sales = %v, want 150", got.Sales)
	}
	if got.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", got.Quantity)
	}
	if !almostEqual(got.Profit, 10) {
		t.Errorf("Profit = %v, want 10", got.Profit)
	}
	if !almostEqual(got.MarginRate, 10.0/150.0) {
		t.Errorf("MarginRate = %v, want %v", got.MarginRate, 10.0/150.0)
	}
}

func TestSummarize_SingleRegionSlice(t *testing.T) {
	ds := sampleDataset(t)

	got := Summarize(ApplyFilters(ds, FilterState{Region: "West", Category: "Furniture"}))
	if !almostEqual(got.Sales, 50) || !almostEqual(got.Profit, -10) {
		t.Errorf("West Furniture totals = %+v, want Sales 50 / Profit -10", got)
	}
	if !almostEqual(got.MarginRate, -0.2) {
		t.Errorf("MarginRate = %v, want -0.2", got.MarginRate)
	}
}

func TestSummarize_EmptyViewIsAllZero(t *testing.T) {
	ds := sampleDataset(t)

	got := Summarize(ApplyFilters(ds, FilterState{Segment: "Nonexistent"}))
	if got != (Totals{}) {
		t.Errorf("empty view totals = %+v, want all zero", got)
	}
}

func TestParseKPI(t *testing.T) {
	cases := []struct {
		in   string
		want KPI
	}{
		{"Sales", KPISales},
		{"sales", KPISales},
		{"", KPISales},
		{" Quantity ", KPIQuantity},
		{"PROFIT", KPIProfit},
		{"Margin Rate", KPIMarginRate},
		{"margin_rate", KPIMarginRate},
		{"margin", KPIMarginRate},
	}
	for _, tc := range cases {
		got, err := ParseKPI(tc.in)
		if err != nil {
			t.Errorf("ParseKPI(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKPI(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := ParseKPI("revenue"); !errors.Is(err, ErrUnknownKPI) {
		t.Errorf("ParseKPI(\"revenue\") error = %v, want ErrUnknownKPI", err)
	}
}

func TestKPIValueOf(t *testing.T) {
	totals := Totals{Sales: 150, Quantity: 5, Profit: 10, MarginRate: 10.0 / 150.0}

	if got := KPISales.ValueOf(totals); !almostEqual(got, 150) {
		t.Errorf("Sales = %v", got)
	}
	if got := KPIQuantity.ValueOf(totals); !almostEqual(got, 5) {
		t.Errorf("Quantity = %v", got)
	}
	if got := KPIProfit.ValueOf(totals); !almostEqual(got, 10) {
		t.Errorf("Profit = %v", got)
	}
	if got := KPIMarginRate.ValueOf(totals); !almostEqual(got, 10.0/150.0) {
		t.Errorf("MarginRate = %v", got)
	}
}

package retail

import (
	"fmt"
	"strings"
)

// KPI selects which measure drives the ranked and plotted views. The four
// values match the dashboard's metric picker labels.
type KPI string

const (
	KPISales      KPI = "Sales"
	KPIQuantity   KPI = "Quantity"
	KPIProfit     KPI = "Profit"
	KPIMarginRate KPI = "Margin Rate"
)

// KPIs lists the selectable metrics in picker order.
var KPIs = []KPI{KPISales, KPIQuantity, KPIProfit, KPIMarginRate}

// ParseKPI resolves a metric label from user input. Matching ignores case,
// surrounding space, and the underscore/space distinction, so "margin_rate"
// and "Margin Rate" name the same KPI. The zero value input defaults to
// Sales.
func ParseKPI(s string) (KPI, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", " ")
	switch key {
	case "", "sales":
		return KPISales, nil
	case "quantity":
		return KPIQuantity, nil
	case "profit":
		return KPIProfit, nil
	case "margin rate", "margin", "marginrate":
		return KPIMarginRate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKPI, s)
}

// ValueOf extracts the KPI's value from a computed Totals.
func (k KPI) ValueOf(t Totals) float64 {
	switch k {
	case KPIQuantity:
		return float64(t.Quantity)
	case KPIProfit:
		return t.Profit
	case KPIMarginRate:
		return t.MarginRate
	default:
		return t.Sales
	}
}

// MarginRate derives profit-per-sales-dollar. When sales is exactly zero the
// divisor is replaced with 1, so the rate degrades to the raw profit instead
// of dividing by zero. Negative sales divide as-is.
func MarginRate(sales, profit float64) float64 {
	if sales == 0 {
		return profit
	}
	return profit / sales
}

// Summarize sums the three measures across the view and derives the margin
// rate from the summed totals. An empty view yields all-zero totals (margin
// included, since MarginRate(0, 0) is 0).
func Summarize(v View) Totals {
	var t Totals
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		t.Sales += r.Sales
		t.Quantity += r.Quantity
		t.Profit += r.Profit
	}
	t.MarginRate = MarginRate(t.Sales, t.Profit)
	return t
}

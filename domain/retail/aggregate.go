package retail

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// GroupKey identifies one aggregation bucket. Single-dimension groupings use
// Main only; two-dimension groupings put the first dimension in Main and the
// second in Sub. Time labels (ISO dates, years, quarters) are chosen so that
// plain string order is chronological order.
type GroupKey struct {
	Main string `json:"main"`
	Sub  string `json:"sub,omitempty"`
}

// GroupRow is one aggregation bucket with its summed measures and derived
// margin.
type GroupRow struct {
	Key    GroupKey `json:"key"`
	Totals Totals   `json:"totals"`
}

// AggregatedView is the result of one grouping: the dimension names the key
// parts carry, and the rows sorted ascending by key.
type AggregatedView struct {
	Dimensions []string   `json:"dimensions"`
	Rows       []GroupRow `json:"rows"`
}

// QuarterLabel renders a date's calendar quarter as "2016Q1". The year-first
// form keeps lexicographic and chronological order aligned.
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
}

// ByDay groups the view by order date with ISO "2006-01-02" labels.
func ByDay(v View) AggregatedView {
	return groupBy(v, []string{"Order Date"}, func(r Record) GroupKey {
		return GroupKey{Main: r.OrderDate.Format("2006-01-02")}
	})
}

// ByProduct groups the view by product name.
func ByProduct(v View) AggregatedView {
	return groupBy(v, []string{"Product Name"}, func(r Record) GroupKey {
		return GroupKey{Main: r.ProductName}
	})
}

// ByYearSegment groups the view by order year and customer segment.
func ByYearSegment(v View) AggregatedView {
	return groupBy(v, []string{"Year", "Segment"}, func(r Record) GroupKey {
		return GroupKey{Main: strconv.Itoa(r.Year), Sub: r.Segment}
	})
}

// ByState groups the view by state, keyed on the postal abbreviation so the
// rows feed a choropleth directly. Unrecognized state names pass through
// unabbreviated; the raw dataset is never rewritten.
func ByState(v View) AggregatedView {
	return groupBy(v, []string{"State"}, func(r Record) GroupKey {
		return GroupKey{Main: StateCode(r.State)}
	})
}

// ByQuarter groups the view by calendar quarter ("2016Q1").
func ByQuarter(v View) AggregatedView {
	return groupBy(v, []string{"Quarter"}, func(r Record) GroupKey {
		return GroupKey{Main: r.Quarter}
	})
}

// ByQuarterCategory groups the view by calendar quarter and product category.
func ByQuarterCategory(v View) AggregatedView {
	return groupBy(v, []string{"Quarter", "Category"}, func(r Record) GroupKey {
		return GroupKey{Main: r.Quarter, Sub: r.Category}
	})
}

// groupBy accumulates the three measures per key, derives each bucket's
// margin from its own sums, and returns the buckets sorted ascending by
// (Main, Sub).
func groupBy(v View, dims []string, key func(Record) GroupKey) AggregatedView {
	sums := make(map[GroupKey]*Totals)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		k := key(r)
		t, ok := sums[k]
		if !ok {
			t = &Totals{}
			sums[k] = t
		}
		t.Sales += r.Sales
		t.Quantity += r.Quantity
		t.Profit += r.Profit
	}

	rows := make([]GroupRow, 0, len(sums))
	for k, t := range sums {
		t.MarginRate = MarginRate(t.Sales, t.Profit)
		rows = append(rows, GroupRow{Key: k, Totals: *t})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Key.Main != rows[j].Key.Main {
			return rows[i].Key.Main < rows[j].Key.Main
		}
		return rows[i].Key.Sub < rows[j].Key.Sub
	})

	return AggregatedView{Dimensions: dims, Rows: rows}
}

// TopN returns the n highest rows of an aggregated view by the chosen KPI,
// highest first. The sort is stable, so rows with equal KPI values keep
// their key order, and the input view is left untouched. n larger than the
// row count returns everything.
func TopN(av AggregatedView, kpi KPI, n int) AggregatedView {
	rows := make([]GroupRow, len(av.Rows))
	copy(rows, av.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return kpi.ValueOf(rows[i].Totals) > kpi.ValueOf(rows[j].Totals)
	})
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	return AggregatedView{Dimensions: av.Dimensions, Rows: rows}
}

// SeriesPoint is one labeled value on a chart axis.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is one named line of labeled points.
type Series struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// CategorySeries pivots the quarter-by-category grouping into one series per
// category, each carrying every quarter present in the view. Quarters where
// a category had no rows are filled with zero so the lines stay aligned.
func CategorySeries(v View, kpi KPI) []Series {
	av := ByQuarterCategory(v)

	quarterSeen := make(map[string]bool)
	quarters := make([]string, 0)
	categorySeen := make(map[string]bool)
	categories := make([]string, 0)
	values := make(map[GroupKey]float64, len(av.Rows))
	for _, row := range av.Rows {
		if !quarterSeen[row.Key.Main] {
			quarterSeen[row.Key.Main] = true
			quarters = append(quarters, row.Key.Main)
		}
		if !categorySeen[row.Key.Sub] {
			categorySeen[row.Key.Sub] = true
			categories = append(categories, row.Key.Sub)
		}
		values[row.Key] = kpi.ValueOf(row.Totals)
	}
	sort.Strings(quarters)
	sort.Strings(categories)

	series := make([]Series, 0, len(categories))
	for _, cat := range categories {
		points := make([]SeriesPoint, 0, len(quarters))
		for _, q := range quarters {
			points = append(points, SeriesPoint{
				Label: q,
				Value: values[GroupKey{Main: q, Sub: cat}],
			})
		}
		series = append(series, Series{Name: cat, Points: points})
	}
	return series
}

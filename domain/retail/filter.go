package retail

import (
	"sort"
	"time"
)

// OptionSet lists the selectable values for one dimension at its cascade
// stage. Values are the sorted distinct non-empty values of the rows that
// survived every earlier stage, with AllOption prepended.
type OptionSet struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}

// CascadeResult carries everything one interaction needs from the filter
// engine: the option sets to offer next, the final filtered rows, the bounds
// for the date widgets, and any validation warnings.
type CascadeResult struct {
	Options  []OptionSet
	Rows     View
	DateMin  time.Time
	DateMax  time.Time
	Warnings []string
}

// Cascade walks the fixed filter order over the dataset. At each stage it
// records the current view's option set, then narrows by that stage's
// selector if one is set. After the five categorical stages it resolves the
// date-widget bounds (whole-dataset min/max when the narrowed set is empty)
// and applies the inclusive date range for the final row set.
func Cascade(ds *Dataset, fs FilterState) CascadeResult {
	res := CascadeResult{Options: make([]OptionSet, 0, len(FilterOrder))}

	if err := fs.Validate(); err != nil {
		res.Warnings = append(res.Warnings, err.Error())
	}

	view := ds.All()
	for _, dim := range FilterOrder {
		res.Options = append(res.Options, OptionSet{
			Dimension: dim.String(),
			Values:    withAllOption(DistinctValues(view, dim)),
		})
		if sel := fs.Selector(dim); sel != "" {
			view = view.Narrow(equals(dim, sel))
		}
	}

	res.DateMin, res.DateMax = view.DateRange()
	if view.Len() == 0 {
		// Nothing survived the categorical stages: the date widgets fall
		// back to the whole dataset's span.
		res.DateMin, res.DateMax = ds.DateRange()
	}

	res.Rows = narrowByDate(view, fs.From, fs.To)
	return res
}

// ApplyFilters applies every set selector as an equality predicate in filter
// order, short-circuiting to an empty result as soon as a stage yields no
// rows, then applies the inclusive date range. The final row set does not
// depend on the order; only option enumeration does.
func ApplyFilters(ds *Dataset, fs FilterState) View {
	view := ds.All()
	for _, dim := range FilterOrder {
		sel := fs.Selector(dim)
		if sel == "" {
			continue
		}
		view = view.Narrow(equals(dim, sel))
		if view.Len() == 0 {
			return view
		}
	}
	return narrowByDate(view, fs.From, fs.To)
}

// DistinctValues returns the sorted distinct non-empty values of a dimension
// across the view's rows.
func DistinctValues(v View, dim Dimension) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for i := 0; i < v.Len(); i++ {
		val := dim.valueOf(v.At(i))
		if val == "" || seen[val] {
			continue
		}
		seen[val] = true
		values = append(values, val)
	}
	sort.Strings(values)
	return values
}

func withAllOption(values []string) []string {
	return append([]string{AllOption}, values...)
}

func equals(dim Dimension, want string) func(Record) bool {
	return func(r Record) bool {
		return dim.valueOf(r) == want
	}
}

// narrowByDate keeps rows whose OrderDate lies within [from, to] inclusive.
// A zero bound leaves that side open.
func narrowByDate(v View, from, to time.Time) View {
	if from.IsZero() && to.IsZero() {
		return v
	}
	return v.Narrow(func(r Record) bool {
		if !from.IsZero() && r.OrderDate.Before(from) {
			return false
		}
		if !to.IsZero() && r.OrderDate.After(to) {
			return false
		}
		return true
	})
}

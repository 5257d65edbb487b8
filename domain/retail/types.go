package retail

import (
	"fmt"
	"time"
)

// Record is one order line from the superstore export. Year and Quarter are
// derived from OrderDate once at load; no later stage re-parses dates.
type Record struct {
	OrderDate   time.Time `json:"order_date"`
	Year        int       `json:"year"`
	Quarter     string    `json:"quarter"` // "2016Q1"
	Region      string    `json:"region"`
	State       string    `json:"state"`
	Category    string    `json:"category"`
	SubCategory string    `json:"sub_category"`
	Segment     string    `json:"segment"`
	ProductName string    `json:"product_name"`
	Sales       float64   `json:"sales"`
	Profit      float64   `json:"profit"`
	Quantity    int       `json:"quantity"`
}

// Dataset is the immutable in-memory order collection. It is built once at
// startup and shared read-only across every recompute; filtering produces
// Views, never copies or mutations.
type Dataset struct {
	records []Record
}

// NewDataset wraps the loaded records. The dataset owns the slice from here
// on; callers must not retain or modify it.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: records}
}

// Len returns the number of records in the dataset
func (d *Dataset) Len() int {
	return len(d.records)
}

// All returns a view covering every record
func (d *Dataset) All() View {
	return View{ds: d}
}

// DateRange returns the earliest and latest order dates in the dataset.
// An empty dataset yields zero times.
func (d *Dataset) DateRange() (min, max time.Time) {
	return d.All().DateRange()
}

// View is a read-only selection of dataset rows. A nil index slice means the
// whole dataset; narrowed views carry the indices of the rows that survived.
type View struct {
	ds      *Dataset
	indices []int
}

// Len returns the number of rows in the view
func (v View) Len() int {
	if v.ds == nil {
		return 0
	}
	if v.indices == nil {
		return len(v.ds.records)
	}
	return len(v.indices)
}

// At returns the i-th row of the view
func (v View) At(i int) Record {
	if v.indices == nil {
		return v.ds.records[i]
	}
	return v.ds.records[v.indices[i]]
}

// Narrow returns the sub-view of rows satisfying keep. The parent view and
// the dataset are untouched.
func (v View) Narrow(keep func(Record) bool) View {
	n := v.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if v.indices == nil {
			if keep(v.ds.records[i]) {
				indices = append(indices, i)
			}
		} else {
			if keep(v.ds.records[v.indices[i]]) {
				indices = append(indices, v.indices[i])
			}
		}
	}
	return View{ds: v.ds, indices: indices}
}

// DateRange returns the earliest and latest order dates among the view's
// rows; zero times when the view is empty.
func (v View) DateRange() (min, max time.Time) {
	for i := 0; i < v.Len(); i++ {
		d := v.At(i).OrderDate
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	return min, max
}

// Dimension is one of the five cascading categorical selectors
type Dimension int

const (
	DimRegion Dimension = iota
	DimState
	DimCategory
	DimSubCategory
	DimSegment
)

// FilterOrder fixes the cascade: each dimension's selectable options are
// enumerated against the rows narrowed by every earlier stage, so the order
// here drives which State values a Region pick exposes, and so on.
var FilterOrder = [...]Dimension{DimRegion, DimState, DimCategory, DimSubCategory, DimSegment}

// String returns the display name of the dimension
func (d Dimension) String() string {
	switch d {
	case DimRegion:
		return "Region"
	case DimState:
		return "State"
	case DimCategory:
		return "Category"
	case DimSubCategory:
		return "Sub-Category"
	case DimSegment:
		return "Segment"
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// valueOf extracts the record's value for the dimension
func (d Dimension) valueOf(r Record) string {
	switch d {
	case DimRegion:
		return r.Region
	case DimState:
		return r.State
	case DimCategory:
		return r.Category
	case DimSubCategory:
		return r.SubCategory
	case DimSegment:
		return r.Segment
	}
	return ""
}

// AllOption is the synthetic selector value meaning "no constraint on this
// dimension". It is always offered first in every option set.
const AllOption = "All"

// FilterState captures one interaction's selections: five optional equality
// selectors plus an inclusive [From, To] date range. Empty string and
// AllOption both mean unset; zero times mean an unbounded side.
type FilterState struct {
	Region      string    `json:"region,omitempty"`
	State       string    `json:"state,omitempty"`
	Category    string    `json:"category,omitempty"`
	SubCategory string    `json:"sub_category,omitempty"`
	Segment     string    `json:"segment,omitempty"`
	From        time.Time `json:"from,omitempty"`
	To          time.Time `json:"to,omitempty"`
}

// Selector returns the selection for a dimension, normalized so that the
// synthetic AllOption reads as unset.
func (f FilterState) Selector(d Dimension) string {
	var sel string
	switch d {
	case DimRegion:
		sel = f.Region
	case DimState:
		sel = f.State
	case DimCategory:
		sel = f.Category
	case DimSubCategory:
		sel = f.SubCategory
	case DimSegment:
		sel = f.Segment
	}
	if sel == AllOption {
		return ""
	}
	return sel
}

// Validate reports non-fatal problems with the filter state. A From date
// after the To date is the one reportable case; filtering still proceeds
// with the given bounds.
func (f FilterState) Validate() error {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return &DateRangeError{From: f.From, To: f.To}
	}
	return nil
}

// Totals holds the three summed measures and the derived margin for one
// group or for the whole filtered set.
type Totals struct {
	Sales      float64 `json:"sales"`
	Quantity   int     `json:"quantity"`
	Profit     float64 `json:"profit"`
	MarginRate float64 `json:"margin_rate"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"storekpi/domain/retail"
)

// KPITile is one formatted headline number for the dashboard's tile row.
type KPITile struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// FilterOptions carries the cascading option sets and the date-widget bounds
// for the next render cycle.
type FilterOptions struct {
	Options []retail.OptionSet `json:"options"`
	DateMin time.Time          `json:"date_min"`
	DateMax time.Time          `json:"date_max"`
}

// DashboardSnapshot is everything one interaction produces: the four KPI
// tiles, the six aggregated views, the ranked product list, the plotted
// series, and the option sets driving the next interaction.
type DashboardSnapshot struct {
	ID          uuid.UUID          `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Filters     retail.FilterState `json:"filters"`
	KPI         retail.KPI         `json:"kpi"`
	Warnings    []string           `json:"warnings,omitempty"`

	// Empty marks an interaction whose filters matched no rows; every view
	// below is present but zero-valued.
	Empty    bool `json:"empty"`
	RowCount int  `json:"row_count"`

	Totals retail.Totals `json:"totals"`
	Tiles  []KPITile     `json:"tiles"`

	Daily           retail.AggregatedView `json:"daily"`
	TopProducts     retail.AggregatedView `json:"top_products"`
	YearSegment     retail.AggregatedView `json:"year_segment"`
	StateMap        retail.AggregatedView `json:"state_map"`
	Quarterly       retail.AggregatedView `json:"quarterly"`
	QuarterCategory retail.AggregatedView `json:"quarter_category"`

	CategorySeries []retail.Series  `json:"category_series"`
	Trend          retail.TrendLine `json:"trend"`

	FilterOptions FilterOptions `json:"filter_options"`
}

// MeasureProfile is the descriptive-statistics summary of one numeric
// measure across the loaded dataset.
type MeasureProfile struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// DatasetProfile summarizes the three measures of the loaded dataset.
type DatasetProfile struct {
	Sales    MeasureProfile `json:"sales"`
	Profit   MeasureProfile `json:"profit"`
	Quantity MeasureProfile `json:"quantity"`
}

// DatasetInfo reports how the process-lifetime dataset was loaded.
type DatasetInfo struct {
	Source      string         `json:"source"`
	RowsLoaded  int            `json:"rows_loaded"`
	RowsRead    int            `json:"rows_read"`
	RowsDropped int            `json:"rows_dropped"`
	LoadedAt    time.Time      `json:"loaded_at"`
	DateMin     time.Time      `json:"date_min"`
	DateMax     time.Time      `json:"date_max"`
	Profile     DatasetProfile `json:"profile"`
}

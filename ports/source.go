package ports

import (
	"context"
	"time"

	"storekpi/domain/retail"
)

// DatasetSource defines the interface for loading the order dataset. It is
// called exactly once at startup; the loaded dataset is immutable for the
// process lifetime.
type DatasetSource interface {
	Load(ctx context.Context) (*LoadResult, error)
}

// LoadResult carries the dataset plus the load accounting the dataset-info
// endpoint reports.
type LoadResult struct {
	Dataset     *retail.Dataset
	Source      string // human-readable origin: file path or DSN table
	RowsRead    int    // data rows encountered, header excluded
	RowsDropped int    // rows discarded for unparseable date or numeric cells
	LoadedAt    time.Time
}

package app

import (
	"context"
	"time"

	apperrors "storekpi/internal/errors"

	"storekpi/internal"
	"storekpi/ports"
)

// LoadDataset performs the single startup load through whichever source is
// configured and logs the accounting. A failed load is fatal to startup, so
// the error carries the load code for the caller to report.
func LoadDataset(ctx context.Context, source ports.DatasetSource) (*ports.LoadResult, error) {
	logger := internal.NewComponentLogger("Loader")

	started := time.Now()
	res, err := source.Load(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "dataset load failed")
	}
	if res.Dataset.Len() == 0 {
		return nil, apperrors.LoadFailed("dataset loaded empty: no usable rows", nil)
	}

	logger.Info("loaded %d records from %s in %dms (%d read, %d dropped)",
		res.Dataset.Len(), res.Source, time.Since(started).Milliseconds(),
		res.RowsRead, res.RowsDropped)
	return res, nil
}

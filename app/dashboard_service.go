package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"storekpi/domain/retail"
	"storekpi/internal"
	"storekpi/models"
	"storekpi/ports"
)

// DashboardService owns the process-lifetime dataset and recomputes the full
// dashboard payload on every interaction. The dataset is immutable and
// shared read-only, so recomputes never block each other on data; the
// semaphore only bounds how many run at once.
type DashboardService struct {
	dataset *retail.Dataset
	info    models.DatasetInfo
	topN    int
	builds  *semaphore.Weighted
	logger  *internal.Logger
}

// NewDashboardService wraps a completed load. topN sets the ranked product
// list length; maxConcurrentBuilds bounds simultaneous snapshot builds
// (1 serializes interactions entirely).
func NewDashboardService(load *ports.LoadResult, topN int, maxConcurrentBuilds int64) *DashboardService {
	dateMin, dateMax := load.Dataset.DateRange()
	return &DashboardService{
		dataset: load.Dataset,
		info: models.DatasetInfo{
			Source:      load.Source,
			RowsLoaded:  load.Dataset.Len(),
			RowsRead:    load.RowsRead,
			RowsDropped: load.RowsDropped,
			LoadedAt:    load.LoadedAt,
			DateMin:     dateMin,
			DateMax:     dateMax,
			Profile:     BuildProfile(load.Dataset),
		},
		topN:   topN,
		builds: semaphore.NewWeighted(maxConcurrentBuilds),
		logger: internal.NewComponentLogger("DashboardService"),
	}
}

// BuildSnapshot runs one full interaction: cascade the filters, narrow the
// rows, aggregate the six views, rank the products, and derive every metric.
// An inverted date range surfaces as a snapshot warning, not an error; a
// filter set matching nothing yields a zero-valued snapshot with Empty set.
func (s *DashboardService) BuildSnapshot(ctx context.Context, fs retail.FilterState, kpi retail.KPI) (*models.DashboardSnapshot, error) {
	if err := s.builds.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.builds.Release(1)

	started := time.Now()
	cascade := retail.Cascade(s.dataset, fs)
	rows := cascade.Rows
	totals := retail.Summarize(rows)

	snap := &models.DashboardSnapshot{
		ID:          uuid.New(),
		GeneratedAt: time.Now(),
		Filters:     fs,
		KPI:         kpi,
		Warnings:    cascade.Warnings,
		Empty:       rows.Len() == 0,
		RowCount:    rows.Len(),

		Totals: totals,
		Tiles:  models.TilesFor(totals),

		Daily:           retail.ByDay(rows),
		TopProducts:     retail.TopN(retail.ByProduct(rows), kpi, s.topN),
		YearSegment:     retail.ByYearSegment(rows),
		StateMap:        retail.ByState(rows),
		Quarterly:       retail.ByQuarter(rows),
		QuarterCategory: retail.ByQuarterCategory(rows),

		CategorySeries: retail.CategorySeries(rows, kpi),
		Trend:          retail.QuarterlyTrend(rows, kpi),

		FilterOptions: models.FilterOptions{
			Options: cascade.Options,
			DateMin: cascade.DateMin,
			DateMax: cascade.DateMax,
		},
	}

	s.logger.Info("snapshot %s built in %dms (%d rows, kpi=%s)",
		snap.ID, time.Since(started).Milliseconds(), snap.RowCount, kpi)
	return snap, nil
}

// FilterOptions runs the cascade alone, for callers that only need the next
// render cycle's option sets and date bounds.
func (s *DashboardService) FilterOptions(fs retail.FilterState) models.FilterOptions {
	cascade := retail.Cascade(s.dataset, fs)
	return models.FilterOptions{
		Options: cascade.Options,
		DateMin: cascade.DateMin,
		DateMax: cascade.DateMax,
	}
}

// Info reports how the dataset was loaded, with its measure profile.
func (s *DashboardService) Info() models.DatasetInfo {
	return s.info
}

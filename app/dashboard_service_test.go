package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "storekpi/internal/errors"

	"storekpi/domain/retail"
	"storekpi/ports"
)

// Mock implementations for testing
type MockDatasetSource struct {
	mock.Mock
}

func (m *MockDatasetSource) Load(ctx context.Context) (*ports.LoadResult, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*ports.LoadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func testRecord(t *testing.T, date, region, state, category, sub, segment, product string, sales, profit float64, qty int) retail.Record {
	t.Helper()
	d := testDate(t, date)
	return retail.Record{
		OrderDate:   d,
		Year:        d.Year(),
		Quarter:     retail.QuarterLabel(d),
		Region:      region,
		State:       state,
		Category:    category,
		SubCategory: sub,
		Segment:     segment,
		ProductName: product,
		Sales:       sales,
		Profit:      profit,
		Quantity:    qty,
	}
}

func testLoadResult(t *testing.T) *ports.LoadResult {
	t.Helper()
	ds := retail.NewDataset([]retail.Record{
		testRecord(t, "2016-01-05", "East", "New York", "Furniture", "Chairs", "Consumer", "Stacking Chair", 100, 20, 2),
		testRecord(t, "2016-02-10", "East", "Ohio", "Technology", "Phones", "Corporate", "Desk Phone", 200, 50, 1),
		testRecord(t, "2016-04-01", "West", "California", "Furniture", "Tables", "Consumer", "Pine Table", 50, -10, 3),
		testRecord(t, "2017-01-20", "West", "Washington", "Office Supplies", "Binders", "Home Office", "Ring Binder", 25, 5, 5),
	})
	return &ports.LoadResult{
		Dataset:     ds,
		Source:      "testdata/orders.csv",
		RowsRead:    5,
		RowsDropped: 1,
		LoadedAt:    time.Now(),
	}
}

func TestBuildSnapshot_FullPayload(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 10, 4)

	snap, err := svc.BuildSnapshot(context.Background(), retail.FilterState{}, retail.KPISales)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, snap.ID)
	assert.False(t, snap.Empty)
	assert.Equal(t, 4, snap.RowCount)
	assert.InDelta(t, 375, snap.Totals.Sales, 1e-9)
	assert.Equal(t, 11, snap.Totals.Quantity)
	assert.InDelta(t, 65, snap.Totals.Profit, 1e-9)
	assert.InDelta(t, 65.0/375.0, snap.Totals.MarginRate, 1e-9)

	require.Len(t, snap.Tiles, 4)
	assert.Equal(t, "$375.00", snap.Tiles[0].Formatted)
	assert.Equal(t, "11", snap.Tiles[1].Formatted)

	assert.Len(t, snap.Daily.Rows, 4)
	assert.Len(t, snap.TopProducts.Rows, 4) // fewer products than topN
	assert.Len(t, snap.YearSegment.Rows, 3)
	assert.Len(t, snap.StateMap.Rows, 4)
	assert.Len(t, snap.Quarterly.Rows, 3)
	assert.Len(t, snap.QuarterCategory.Rows, 4)
	assert.Len(t, snap.CategorySeries, 3)
	assert.Len(t, snap.FilterOptions.Options, 5)

	// Ranked list leads with the highest-sales product.
	assert.Equal(t, "Desk Phone", snap.TopProducts.Rows[0].Key.Main)
}

func TestBuildSnapshot_TopNFollowsSelectedKPI(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 2, 4)

	bySales, err := svc.BuildSnapshot(context.Background(), retail.FilterState{}, retail.KPISales)
	require.NoError(t, err)
	byProfit, err := svc.BuildSnapshot(context.Background(), retail.FilterState{}, retail.KPIProfit)
	require.NoError(t, err)

	require.Len(t, bySales.TopProducts.Rows, 2)
	require.Len(t, byProfit.TopProducts.Rows, 2)
	assert.Equal(t, "Desk Phone", bySales.TopProducts.Rows[0].Key.Main)
	assert.Equal(t, "Desk Phone", byProfit.TopProducts.Rows[0].Key.Main)
	assert.Equal(t, "Stacking Chair", byProfit.TopProducts.Rows[1].Key.Main)
}

func TestBuildSnapshot_RegionSlice(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 10, 4)

	snap, err := svc.BuildSnapshot(context.Background(), retail.FilterState{Region: "East"}, retail.KPISales)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.RowCount)
	assert.InDelta(t, 300, snap.Totals.Sales, 1e-9)

	// State options narrow to East states.
	for _, set := range snap.FilterOptions.Options {
		if set.Dimension == "State" {
			assert.Equal(t, []string{"All", "New York", "Ohio"}, set.Values)
		}
	}
}

func TestBuildSnapshot_NothingMatches(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 10, 4)

	snap, err := svc.BuildSnapshot(context.Background(), retail.FilterState{Segment: "Nonexistent"}, retail.KPISales)
	require.NoError(t, err)

	assert.True(t, snap.Empty)
	assert.Equal(t, 0, snap.RowCount)
	assert.Equal(t, retail.Totals{}, snap.Totals)
	assert.Empty(t, snap.Daily.Rows)
	assert.Empty(t, snap.TopProducts.Rows)
	assert.Empty(t, snap.CategorySeries)

	// Date widgets fall back to the whole dataset's bounds.
	assert.Equal(t, testDate(t, "2016-01-05"), snap.FilterOptions.DateMin)
	assert.Equal(t, testDate(t, "2017-01-20"), snap.FilterOptions.DateMax)
}

func TestBuildSnapshot_InvertedRangeWarns(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 10, 4)

	snap, err := svc.BuildSnapshot(context.Background(), retail.FilterState{
		From: testDate(t, "2017-06-01"),
		To:   testDate(t, "2016-01-01"),
	}, retail.KPISales)
	require.NoError(t, err)

	require.Len(t, snap.Warnings, 1)
	assert.Contains(t, snap.Warnings[0], "from date must not be after to date")
	assert.True(t, snap.Empty)
}

func TestBuildSnapshot_CanceledContext(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 10, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.BuildSnapshot(ctx, retail.FilterState{}, retail.KPISales)
	assert.Error(t, err)
}

func TestNewDashboardService_Info(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 10, 4)

	info := svc.Info()
	assert.Equal(t, "testdata/orders.csv", info.Source)
	assert.Equal(t, 4, info.RowsLoaded)
	assert.Equal(t, 5, info.RowsRead)
	assert.Equal(t, 1, info.RowsDropped)
	assert.Equal(t, testDate(t, "2016-01-05"), info.DateMin)
	assert.Equal(t, testDate(t, "2017-01-20"), info.DateMax)

	assert.InDelta(t, 93.75, info.Profile.Sales.Mean, 1e-9)   // (100+200+50+25)/4
	assert.InDelta(t, 75, info.Profile.Sales.Median, 1e-9)    // (50+100)/2
	assert.InDelta(t, 25, info.Profile.Sales.Min, 1e-9)
	assert.InDelta(t, 200, info.Profile.Sales.Max, 1e-9)
	assert.Greater(t, info.Profile.Sales.StdDev, 0.0)
	assert.InDelta(t, 11.0/4.0, info.Profile.Quantity.Mean, 1e-9)
}

func TestFilterOptions_CascadeOnly(t *testing.T) {
	svc := NewDashboardService(testLoadResult(t), 10, 4)

	opts := svc.FilterOptions(retail.FilterState{Region: "West"})
	require.Len(t, opts.Options, 5)
	assert.Equal(t, testDate(t, "2016-04-01"), opts.DateMin)
	assert.Equal(t, testDate(t, "2017-01-20"), opts.DateMax)
}

func TestLoadDataset_WrapsSourceFailure(t *testing.T) {
	source := new(MockDatasetSource)
	source.On("Load", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := LoadDataset(context.Background(), source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset load failed")
	source.AssertExpectations(t)
}

func TestLoadDataset_RejectsEmptyDataset(t *testing.T) {
	source := new(MockDatasetSource)
	source.On("Load", mock.Anything).Return(&ports.LoadResult{
		Dataset:  retail.NewDataset(nil),
		Source:   "empty.csv",
		LoadedAt: time.Now(),
	}, nil)

	_, err := LoadDataset(context.Background(), source)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeLoadError, apperrors.GetCode(err))
}

func TestLoadDataset_PassesResultThrough(t *testing.T) {
	want := testLoadResult(t)
	source := new(MockDatasetSource)
	source.On("Load", mock.Anything).Return(want, nil)

	got, err := LoadDataset(context.Background(), source)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dairyflow/models"
	"dairyflow/types"
)

// approve creates and approves a request in one step for report fixtures.
func approve(t *testing.T, db *gorm.DB, farmer *models.Farmer, feed *models.StockItem, qty int) *models.FeedRequest {
	t.Helper()
	repo := NewRequestRepository(db)
	request, err := repo.Create(CreateRequestInput{
		FarmerID: farmer.ID, FeedID: feed.ID, QtyBags: qty, CreatedBy: "admin",
	})
	require.NoError(t, err)
	approved, err := repo.Approve(request.ID, "admin")
	require.NoError(t, err)
	return approved
}

func wideRange() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

func TestAggregateRangeTotals(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)
	pellets := seedFeed(t, db, "Pellets", 50, 200, 260)

	approve(t, db, farmer, maize, 6)   // revenue 900, cost 600
	approve(t, db, farmer, maize, 4)   // revenue 600, cost 400
	approve(t, db, farmer, pellets, 2) // revenue 520, cost 400

	from, to := wideRange()
	totals, err := reports.AggregateRange(from, to, RangeFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, totals.Requests)
	assert.Equal(t, 12, totals.TotalBags)
	assert.Equal(t, 2020.0, totals.Revenue)
	assert.Equal(t, 1400.0, totals.Cost)
	assert.Equal(t, 620.0, totals.Profit)
}

func TestAggregateExcludesPendingAndRejected(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestRepository(db)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)

	approve(t, db, farmer, maize, 5)

	pending, err := requests.Create(CreateRequestInput{FarmerID: farmer.ID, FeedID: maize.ID, QtyBags: 3})
	require.NoError(t, err)
	_ = pending

	toReject, err := requests.Create(CreateRequestInput{FarmerID: farmer.ID, FeedID: maize.ID, QtyBags: 2})
	require.NoError(t, err)
	_, err = requests.Reject(toReject.ID, "admin")
	require.NoError(t, err)

	from, to := wideRange()
	totals, err := reports.AggregateRange(from, to, RangeFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, totals.Requests)
	assert.Equal(t, 5, totals.TotalBags)
}

func TestAggregateStableAfterPriceChange(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)

	approve(t, db, farmer, maize, 6)

	from, to := wideRange()
	before, err := reports.AggregateRange(from, to, RangeFilter{})
	require.NoError(t, err)

	// Catalog price moves after approval; historical figures must not.
	require.NoError(t, db.Model(&models.StockItem{}).Where("id = ?", maize.ID).
		Updates(map[string]interface{}{"selling_price": 180.0, "purchase_price": 140.0}).Error)

	after, err := reports.AggregateRange(from, to, RangeFilter{})
	require.NoError(t, err)

	assert.Equal(t, before.Revenue, after.Revenue)
	assert.Equal(t, before.Cost, after.Cost)
	assert.Equal(t, before.Profit, after.Profit)
	assert.Equal(t, 900.0, after.Revenue)
}

func TestAggregateSurvivesFeedDeletion(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)

	approve(t, db, farmer, maize, 6)

	// Soft delete the catalog row; the approved row keeps its snapshot and
	// the feed name still hydrates through the deleted record.
	require.NoError(t, db.Delete(&models.StockItem{}, "id = ?", maize.ID).Error)

	from, to := wideRange()
	totals, err := reports.AggregateRange(from, to, RangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 900.0, totals.Revenue)

	byFeed, err := reports.AggregateByFeed(from, to, RangeFilter{})
	require.NoError(t, err)
	require.Len(t, byFeed, 1)
	assert.Equal(t, "Maize", byFeed[0].FeedName)
}

func TestAggregateSkipsDanglingRows(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)

	approve(t, db, farmer, maize, 6)

	// A legacy approved row pointing at a feed that never existed and with
	// no snapshot. It cannot be priced so every aggregate skips it.
	now := time.Now()
	admin := "admin"
	orphan := models.FeedRequest{
		ID:         types.SnowflakeID(987654321),
		FarmerID:   farmer.ID,
		FeedID:     types.SnowflakeID(111222333),
		QtyBags:    9,
		Status:     models.RequestApproved,
		ApprovedBy: &admin,
		ApprovedAt: &now,
	}
	require.NoError(t, db.Create(&orphan).Error)

	from, to := wideRange()
	totals, err := reports.AggregateRange(from, to, RangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Requests)
	assert.Equal(t, 6, totals.TotalBags)

	byFeed, err := reports.AggregateByFeed(from, to, RangeFilter{})
	require.NoError(t, err)
	assert.Len(t, byFeed, 1)

	byFarmer, err := reports.AggregateByFarmer(from, to, RangeFilter{})
	require.NoError(t, err)
	require.Len(t, byFarmer, 1)
	assert.Equal(t, 6, byFarmer[0].TotalBags)
}

func TestAggregateByFeedGroupsAndSorts(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)
	pellets := seedFeed(t, db, "Pellets", 50, 200, 260)

	approve(t, db, farmer, maize, 3)
	approve(t, db, farmer, maize, 4)
	approve(t, db, farmer, pellets, 2)

	from, to := wideRange()
	byFeed, err := reports.AggregateByFeed(from, to, RangeFilter{})
	require.NoError(t, err)
	require.Len(t, byFeed, 2)

	assert.Equal(t, "Maize", byFeed[0].FeedName)
	assert.Equal(t, 7, byFeed[0].TotalBags)
	assert.Equal(t, 1050.0, byFeed[0].Revenue)
	assert.Equal(t, 350.0, byFeed[0].Profit)

	assert.Equal(t, "Pellets", byFeed[1].FeedName)
	assert.Equal(t, 2, byFeed[1].TotalBags)
}

func TestAggregateByFarmerBreakdown(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	heavy := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	light := seedFarmer(t, db, "Suresh Pawar", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)
	pellets := seedFeed(t, db, "Pellets", 50, 200, 260)

	approve(t, db, heavy, maize, 5)
	approve(t, db, heavy, pellets, 3)
	approve(t, db, light, maize, 2)

	from, to := wideRange()
	byFarmer, err := reports.AggregateByFarmer(from, to, RangeFilter{})
	require.NoError(t, err)
	require.Len(t, byFarmer, 2)

	// Descending by total bags.
	assert.Equal(t, "Ramesh Patil", byFarmer[0].FullName)
	assert.Equal(t, 8, byFarmer[0].TotalBags)
	require.Len(t, byFarmer[0].Feeds, 2)
	assert.Equal(t, "Maize", byFarmer[0].Feeds[0].FeedName)
	assert.Equal(t, 5, byFarmer[0].Feeds[0].TotalBags)
	assert.False(t, byFarmer[0].Feeds[0].LastApproved.IsZero())

	assert.Equal(t, "Suresh Pawar", byFarmer[1].FullName)
	assert.Equal(t, 2, byFarmer[1].TotalBags)
}

func TestAggregateFilters(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	first := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	second := seedFarmer(t, db, "Suresh Pawar", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)
	pellets := seedFeed(t, db, "Pellets", 50, 200, 260)

	approve(t, db, first, maize, 5)
	approve(t, db, second, pellets, 3)

	from, to := wideRange()

	totals, err := reports.AggregateRange(from, to, RangeFilter{FarmerID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, totals.TotalBags)

	totals, err = reports.AggregateRange(from, to, RangeFilter{FeedID: pellets.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, totals.TotalBags)

	totals, err = reports.AggregateRange(from, to, RangeFilter{ApprovedBy: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, totals.Requests)
}

func TestAggregateWindowExcludesOutside(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)

	approved := approve(t, db, farmer, maize, 5)

	// Window entirely before the approval.
	to := approved.ApprovedAt.Add(-time.Minute)
	from := to.Add(-time.Hour)
	totals, err := reports.AggregateRange(from, to, RangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, totals.Requests)

	// Inclusive boundary: a window ending exactly at approved_at counts it.
	totals, err = reports.AggregateRange(*approved.ApprovedAt, *approved.ApprovedAt, RangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Requests)
}

func TestAggregateToday(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportRepository(db)

	farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
	maize := seedFeed(t, db, "Maize", 50, 100, 150)

	approve(t, db, farmer, maize, 4)

	totals, err := reports.AggregateToday(RangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Requests)
	assert.Equal(t, 4, totals.TotalBags)
	assert.Equal(t, 600.0, totals.Revenue)
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2025, time.March, 14, 15, 9, 26, 0, time.UTC)
	start, end := dayBounds(at)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.Before(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.After(time.Date(2025, time.March, 14, 23, 59, 59, 0, time.UTC)))
}

func TestAggregateOrderIndependent(t *testing.T) {
	run := func(reversed bool) *RangeTotals {
		db := newTestDB(t)
		farmer := seedFarmer(t, db, "Ramesh Patil", models.FarmerActive)
		maize := seedFeed(t, db, "Maize", 50, 100, 150)
		pellets := seedFeed(t, db, "Pellets", 50, 200, 260)

		quantities := []struct {
			feed *models.StockItem
			qty  int
		}{{maize, 6}, {pellets, 2}, {maize, 1}}
		if reversed {
			for i, j := 0, len(quantities)-1; i < j; i, j = i+1, j-1 {
				quantities[i], quantities[j] = quantities[j], quantities[i]
			}
		}
		for _, q := range quantities {
			approve(t, db, farmer, q.feed, q.qty)
		}

		from, to := wideRange()
		totals, err := NewReportRepository(db).AggregateRange(from, to, RangeFilter{})
		require.NoError(t, err)
		return totals
	}

	forward := run(false)
	backward := run(true)
	assert.Equal(t, forward, backward)
}

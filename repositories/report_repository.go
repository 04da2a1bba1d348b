package repositories

import (
	"dairyflow/models"
	"dairyflow/types"
	"strings"
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ReportRepository holds the read-side aggregation queries over approved
// requests. Everything here is commutative sums over a filtered set, so the
// scan order never affects the result. Pending and Rejected requests are
// excluded from every financial aggregate.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// RangeFilter optionally narrows an aggregate by farmer, feed or approver.
type RangeFilter struct {
	FarmerID   types.SnowflakeID
	FeedID     types.SnowflakeID
	ApprovedBy string
}

type RangeTotals struct {
	Requests  int     `json:"requests"`
	TotalBags int     `json:"total_bags"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
}

type FeedTotals struct {
	FeedID    types.SnowflakeID `json:"feed_id"`
	FeedName  string            `json:"feed_name"`
	FeedType  string            `json:"feed_type"`
	TotalBags int               `json:"total_bags"`
	Revenue   float64           `json:"revenue"`
	Cost      float64           `json:"cost"`
	Profit    float64           `json:"profit"`
}

type FarmerFeedTotals struct {
	FeedID       types.SnowflakeID `json:"feed_id"`
	FeedName     string            `json:"feed_name"`
	TotalBags    int               `json:"total_bags"`
	Revenue      float64           `json:"revenue"`
	Cost         float64           `json:"cost"`
	Profit       float64           `json:"profit"`
	LastApproved time.Time         `json:"last_approved"`
}

type FarmerTotals struct {
	FarmerID  types.SnowflakeID  `json:"farmer_id"`
	FullName  string             `json:"full_name"`
	Code      string             `json:"code"`
	TotalBags int                `json:"total_bags"`
	Revenue   float64            `json:"revenue"`
	Cost      float64            `json:"cost"`
	Profit    float64            `json:"profit"`
	Feeds     []FarmerFeedTotals `json:"feeds"`
}

// AggregateRange sums bags, revenue, cost and profit over approved requests
// whose approved_at falls inside the inclusive [from, to] window.
func (r *ReportRepository) AggregateRange(from, to time.Time, filter RangeFilter) (*RangeTotals, error) {
	requests, err := r.fetchApproved(from, to, filter)
	if err != nil {
		return nil, err
	}

	feeds, err := r.hydrateFeeds(requests)
	if err != nil {
		return nil, err
	}

	totals := RangeTotals{}
	for i := range requests {
		req := &requests[i]
		sell, buy, ok := rowPrices(req, feeds[req.FeedID])
		if !ok {
			// Dangling feed reference with no snapshot. Skip the row rather
			// than fail the whole report.
			continue
		}
		totals.Requests++
		totals.TotalBags += req.QtyBags
		totals.Revenue += float64(req.QtyBags) * sell
		totals.Cost += float64(req.QtyBags) * buy
	}
	totals.Revenue = round2(totals.Revenue)
	totals.Cost = round2(totals.Cost)
	totals.Profit = round2(totals.Revenue - totals.Cost)

	return &totals, nil
}

// AggregateByFeed groups approved requests in the window by feed.
func (r *ReportRepository) AggregateByFeed(from, to time.Time, filter RangeFilter) ([]FeedTotals, error) {
	requests, err := r.fetchApproved(from, to, filter)
	if err != nil {
		return nil, err
	}

	feeds, err := r.hydrateFeeds(requests)
	if err != nil {
		return nil, err
	}

	groups := map[types.SnowflakeID]*FeedTotals{}
	for i := range requests {
		req := &requests[i]
		feed, exists := feeds[req.FeedID]
		if !exists {
			continue
		}
		sell, buy, ok := rowPrices(req, feed)
		if !ok {
			continue
		}

		group, exists := groups[req.FeedID]
		if !exists {
			group = &FeedTotals{FeedID: req.FeedID, FeedName: feed.Name, FeedType: feed.Type}
			groups[req.FeedID] = group
		}
		group.TotalBags += req.QtyBags
		group.Revenue += float64(req.QtyBags) * sell
		group.Cost += float64(req.QtyBags) * buy
	}

	result := make([]FeedTotals, 0, len(groups))
	for _, group := range groups {
		group.Revenue = round2(group.Revenue)
		group.Cost = round2(group.Cost)
		group.Profit = round2(group.Revenue - group.Cost)
		result = append(result, *group)
	}
	slices.SortFunc(result, func(a, b FeedTotals) int {
		if a.TotalBags != b.TotalBags {
			return b.TotalBags - a.TotalBags
		}
		return strings.Compare(a.FeedName, b.FeedName)
	})

	return result, nil
}

// AggregateByFarmer groups approved requests in the window by farmer, with a
// per-feed breakdown and last-approved timestamp per feed. Farmers come back
// sorted by descending total bags for the top-consumer views.
func (r *ReportRepository) AggregateByFarmer(from, to time.Time, filter RangeFilter) ([]FarmerTotals, error) {
	requests, err := r.fetchApproved(from, to, filter)
	if err != nil {
		return nil, err
	}

	feeds, err := r.hydrateFeeds(requests)
	if err != nil {
		return nil, err
	}
	farmers, err := r.hydrateFarmers(requests)
	if err != nil {
		return nil, err
	}

	groups := map[types.SnowflakeID]*FarmerTotals{}
	feedLines := map[types.SnowflakeID]map[types.SnowflakeID]*FarmerFeedTotals{}

	for i := range requests {
		req := &requests[i]
		farmer, exists := farmers[req.FarmerID]
		if !exists {
			continue
		}
		feed, exists := feeds[req.FeedID]
		if !exists {
			continue
		}
		sell, buy, ok := rowPrices(req, feed)
		if !ok {
			continue
		}

		group, exists := groups[req.FarmerID]
		if !exists {
			group = &FarmerTotals{FarmerID: req.FarmerID, FullName: farmer.FullName, Code: farmer.Code}
			groups[req.FarmerID] = group
			feedLines[req.FarmerID] = map[types.SnowflakeID]*FarmerFeedTotals{}
		}

		revenue := float64(req.QtyBags) * sell
		cost := float64(req.QtyBags) * buy
		group.TotalBags += req.QtyBags
		group.Revenue += revenue
		group.Cost += cost

		line, exists := feedLines[req.FarmerID][req.FeedID]
		if !exists {
			line = &FarmerFeedTotals{FeedID: req.FeedID, FeedName: feed.Name}
			feedLines[req.FarmerID][req.FeedID] = line
		}
		line.TotalBags += req.QtyBags
		line.Revenue += revenue
		line.Cost += cost
		if req.ApprovedAt != nil && req.ApprovedAt.After(line.LastApproved) {
			line.LastApproved = *req.ApprovedAt
		}
	}

	result := make([]FarmerTotals, 0, len(groups))
	for farmerID, group := range groups {
		group.Revenue = round2(group.Revenue)
		group.Cost = round2(group.Cost)
		group.Profit = round2(group.Revenue - group.Cost)

		lines := make([]FarmerFeedTotals, 0, len(feedLines[farmerID]))
		for _, line := range feedLines[farmerID] {
			line.Revenue = round2(line.Revenue)
			line.Cost = round2(line.Cost)
			line.Profit = round2(line.Revenue - line.Cost)
			lines = append(lines, *line)
		}
		slices.SortFunc(lines, func(a, b FarmerFeedTotals) int {
			if a.TotalBags != b.TotalBags {
				return b.TotalBags - a.TotalBags
			}
			return strings.Compare(a.FeedName, b.FeedName)
		})
		group.Feeds = lines
		result = append(result, *group)
	}
	slices.SortFunc(result, func(a, b FarmerTotals) int {
		if a.TotalBags != b.TotalBags {
			return b.TotalBags - a.TotalBags
		}
		return strings.Compare(a.FullName, b.FullName)
	})

	return result, nil
}

// AggregateToday is the range aggregate bounded to the current server-local
// day.
func (r *ReportRepository) AggregateToday(filter RangeFilter) (*RangeTotals, error) {
	from, to := dayBounds(time.Now())
	return r.AggregateRange(from, to, filter)
}

func dayBounds(at time.Time) (time.Time, time.Time) {
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

func (r *ReportRepository) fetchApproved(from, to time.Time, filter RangeFilter) ([]models.FeedRequest, error) {
	var requests []models.FeedRequest

	query := r.db.
		Where("status = ?", models.RequestApproved).
		Where("approved_at >= ? AND approved_at <= ?", from, to)
	if filter.FarmerID != 0 {
		query = query.Where("farmer_id = ?", filter.FarmerID)
	}
	if filter.FeedID != 0 {
		query = query.Where("feed_id = ?", filter.FeedID)
	}
	if filter.ApprovedBy != "" {
		query = query.Where("approved_by = ?", filter.ApprovedBy)
	}

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// hydrateFeeds loads the referenced stock rows in one query, soft-deleted
// ones included so historical reports survive catalog cleanups.
func (r *ReportRepository) hydrateFeeds(requests []models.FeedRequest) (map[types.SnowflakeID]*models.StockItem, error) {
	ids := make([]types.SnowflakeID, 0, len(requests))
	seen := map[types.SnowflakeID]bool{}
	for i := range requests {
		if !seen[requests[i].FeedID] {
			seen[requests[i].FeedID] = true
			ids = append(ids, requests[i].FeedID)
		}
	}
	if len(ids) == 0 {
		return map[types.SnowflakeID]*models.StockItem{}, nil
	}

	var feeds []models.StockItem
	if err := r.db.Unscoped().Where("id IN ?", ids).Find(&feeds).Error; err != nil {
		return nil, err
	}

	byID := make(map[types.SnowflakeID]*models.StockItem, len(feeds))
	for i := range feeds {
		byID[feeds[i].ID] = &feeds[i]
	}
	return byID, nil
}

func (r *ReportRepository) hydrateFarmers(requests []models.FeedRequest) (map[types.SnowflakeID]*models.Farmer, error) {
	ids := make([]types.SnowflakeID, 0, len(requests))
	seen := map[types.SnowflakeID]bool{}
	for i := range requests {
		if !seen[requests[i].FarmerID] {
			seen[requests[i].FarmerID] = true
			ids = append(ids, requests[i].FarmerID)
		}
	}
	if len(ids) == 0 {
		return map[types.SnowflakeID]*models.Farmer{}, nil
	}

	var farmers []models.Farmer
	if err := r.db.Unscoped().Where("id IN ?", ids).Find(&farmers).Error; err != nil {
		return nil, err
	}

	byID := make(map[types.SnowflakeID]*models.Farmer, len(farmers))
	for i := range farmers {
		byID[farmers[i].ID] = &farmers[i]
	}
	return byID, nil
}

// rowPrices resolves the per-bag selling and purchase price for a request.
// The approval snapshot always wins; the current catalog price is only a
// fallback for legacy rows approved before snapshots existed. Returns
// ok=false when a price cannot be resolved at all.
func rowPrices(req *models.FeedRequest, feed *models.StockItem) (sell, buy float64, ok bool) {
	switch {
	case req.SellingPriceAtApproval != nil:
		sell = *req.SellingPriceAtApproval
	case feed != nil:
		sell = feed.SellingPrice
	default:
		return 0, 0, false
	}

	switch {
	case req.PurchasePriceAtApproval != nil:
		buy = *req.PurchasePriceAtApproval
	case feed != nil:
		buy = feed.PurchasePrice
	default:
		return 0, 0, false
	}

	return sell, buy, true
}

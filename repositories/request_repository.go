package repositories

import (
	"dairyflow/controllers/helpers"
	"dairyflow/controllers/idgen"
	"dairyflow/models"
	"dairyflow/types"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// RequestRepository owns the feed-request lifecycle: creation, approval with
// price snapshotting and stock decrement, and rejection. Pending requests do
// not reserve stock; the decrement happens at approval time only.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// approveAttempts bounds the retry loop around the approval transaction when
// the database reports a lock or serialization failure.
const approveAttempts = 3

type CreateRequestInput struct {
	FarmerID  types.SnowflakeID
	FeedID    types.SnowflakeID
	QtyBags   int
	CreatedBy string
}

func (r *RequestRepository) Create(in CreateRequestInput) (*models.FeedRequest, error) {
	if in.QtyBags < 1 {
		return nil, fmt.Errorf("%w: qty_bags must be at least 1", ErrValidation)
	}

	var farmer models.Farmer
	if err := r.db.First(&farmer, "id = ?", in.FarmerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		return nil, err
	}
	if farmer.Status != models.FarmerActive {
		return nil, ErrFarmerInactive
	}

	var feed models.StockItem
	if err := r.db.First(&feed, "id = ?", in.FeedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedNotFound
		}
		return nil, err
	}
	if in.QtyBags > feed.QuantityBags {
		return nil, &InsufficientStockError{Available: feed.QuantityBags, Requested: in.QtyBags}
	}

	request := models.FeedRequest{
		ID:       types.SnowflakeID(idgen.GenerateID()),
		FarmerID: in.FarmerID,
		FeedID:   in.FeedID,
		QtyBags:  in.QtyBags,
		// Creation-time price, informational only. The approval snapshot is
		// what profit reporting uses.
		Price:     round2(float64(in.QtyBags) * feed.SellingPrice),
		Status:    models.RequestPending,
		CreatedBy: in.CreatedBy,
	}

	if err := r.db.Create(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// Approve moves a pending request to Approved in one transaction: it re-reads
// the feed's current prices, snapshots them onto the request, decrements the
// stock and appends the farmer's feed history. On InsufficientStock the
// request stays Pending so it can be retried after a restock.
func (r *RequestRepository) Approve(id types.SnowflakeID, approver string) (*models.FeedRequest, error) {
	var approved models.FeedRequest

	for attempt := 1; attempt <= approveAttempts; attempt++ {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			var request models.FeedRequest
			if err := tx.First(&request, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRequestNotFound
				}
				return err
			}
			if request.Status != models.RequestPending {
				return ErrInvalidTransition
			}

			var feed models.StockItem
			if err := tx.First(&feed, "id = ?", request.FeedID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrFeedNotFound
				}
				return err
			}

			// Guarded decrement. The WHERE clause makes overdraw impossible
			// even when two approvals race on the same feed: the loser sees
			// zero affected rows.
			res := tx.Model(&models.StockItem{}).
				Where("id = ? AND quantity_bags >= ?", request.FeedID, request.QtyBags).
				Updates(map[string]interface{}{
					"quantity_bags": gorm.Expr("quantity_bags - ?", request.QtyBags),
					"updated_by":    approver,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{Available: feed.QuantityBags, Requested: request.QtyBags}
			}

			now := time.Now()
			profit := round2(float64(request.QtyBags) * (feed.SellingPrice - feed.PurchasePrice))

			res = tx.Model(&models.FeedRequest{}).
				Where("id = ? AND status = ?", id, models.RequestPending).
				Updates(map[string]interface{}{
					"status":                     models.RequestApproved,
					"approved_by":                approver,
					"approved_at":                now,
					"selling_price_at_approval":  feed.SellingPrice,
					"purchase_price_at_approval": feed.PurchasePrice,
					"total_profit_at_approval":   profit,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Another approval won the race on this request.
				return ErrInvalidTransition
			}

			if err := helpers.InsertFeedHistory(tx, request.FarmerID, now, feed.Name,
				request.QtyBags, round2(float64(request.QtyBags)*feed.SellingPrice), approver); err != nil {
				return err
			}

			return tx.First(&approved, "id = ?", id).Error
		})

		if err == nil {
			return &approved, nil
		}
		if isRetryableTxError(err) {
			if attempt < approveAttempts {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	return nil, ErrConflict
}

// Reject moves a pending request to Rejected. No price snapshot, no stock
// mutation.
func (r *RequestRepository) Reject(id types.SnowflakeID, rejectedBy string) (*models.FeedRequest, error) {
	var rejected models.FeedRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var request models.FeedRequest
		if err := tx.First(&request, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != models.RequestPending {
			return ErrInvalidTransition
		}

		res := tx.Model(&models.FeedRequest{}).
			Where("id = ? AND status = ?", id, models.RequestPending).
			Update("status", models.RequestRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		return tx.First(&rejected, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	return &rejected, nil
}

func (r *RequestRepository) GetByID(id types.SnowflakeID) (*models.FeedRequest, error) {
	var request models.FeedRequest
	if err := r.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ListByStatus returns requests filtered by status, newest first. An empty
// status returns everything.
func (r *RequestRepository) ListByStatus(status string) ([]models.FeedRequest, error) {
	var requests []models.FeedRequest

	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

// isRetryableTxError reports whether the transaction failed on a lock or
// serialization conflict that a fresh attempt may resolve.
func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "lock wait timeout")
}

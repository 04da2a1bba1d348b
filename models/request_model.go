package models

import (
	"dairyflow/types"
	"time"

	"gorm.io/gorm"
)

const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestRejected = "Rejected"
)

// FeedRequest is the ledger record for one feed hand-out. FarmerID and FeedID
// are always raw ids; joining to the farmer/stock rows is an explicit
// hydration step done by the reporting side.
type FeedRequest struct {
	gorm.Model
	ID       types.SnowflakeID `json:"id" gorm:"primaryKey"`
	FarmerID types.SnowflakeID `json:"farmer_id" gorm:"index"`
	FeedID   types.SnowflakeID `json:"feed_id" gorm:"index"`
	QtyBags  int               `json:"qty_bags" gorm:"not null"`
	// Price is qty × selling price at creation time. Informational only;
	// profit reporting uses the approval snapshots below.
	Price     float64 `json:"price"`
	Status    string  `json:"status" gorm:"default:'Pending';index"`
	CreatedBy string  `json:"created_by"`

	ApprovedBy *string    `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty" gorm:"index"`

	// Prices frozen at the moment of approval. Never recomputed from the
	// catalog afterward, so historical reports stay stable across price edits.
	SellingPriceAtApproval  *float64 `json:"selling_price_at_approval,omitempty"`
	PurchasePriceAtApproval *float64 `json:"purchase_price_at_approval,omitempty"`
	TotalProfitAtApproval   *float64 `json:"total_profit_at_approval,omitempty"`
}

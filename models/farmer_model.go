package models

import (
	"dairyflow/types"
	"time"

	"gorm.io/gorm"
)

const (
	FarmerActive   = "Active"
	FarmerInactive = "Inactive"
)

type Farmer struct {
	gorm.Model
	ID       types.SnowflakeID `json:"id" gorm:"primaryKey"`
	FullName string            `json:"full_name" gorm:"not null" validate:"required"`
	Mobile   string            `json:"mobile" gorm:"index"`
	// Code is the dairy registration code, a display/search key only.
	Code        string            `json:"code" gorm:"uniqueIndex"`
	Email       string            `json:"email"`
	Status      string            `json:"status" gorm:"default:'Active'"`
	FeedHistory []FeedHistory     `json:"feed_history" gorm:"foreignKey:FarmerID"`
	CreatedBy   string            `json:"created_by"`
	UpdatedBy   string            `json:"updated_by"`
}

// FeedHistory is the append-only per-farmer transaction log written when a
// feed request is approved. Rows are never updated or deleted.
type FeedHistory struct {
	ID         types.SnowflakeID `json:"id" gorm:"primaryKey"`
	FarmerID   types.SnowflakeID `json:"farmer_id" gorm:"index"`
	Date       time.Time         `json:"date"`
	FeedType   string            `json:"feed_type"`
	Bags       int               `json:"bags"`
	Price      float64           `json:"price"`
	ApprovedBy string            `json:"approved_by"`
	CreatedAt  time.Time         `json:"created_at"`
}

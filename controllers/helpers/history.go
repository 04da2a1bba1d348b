package helpers

import (
	"dairyflow/controllers/idgen"
	"dairyflow/models"
	"dairyflow/types"
	"time"

	"gorm.io/gorm"
)

// InsertFeedHistory appends a feed history entry to a farmer record.
func InsertFeedHistory(db *gorm.DB, farmerID types.SnowflakeID, date time.Time, feedType string, bags int, price float64, approvedBy string) error {
	history := models.FeedHistory{
		ID:         types.SnowflakeID(idgen.GenerateID()),
		FarmerID:   farmerID,
		Date:       date,
		FeedType:   feedType,
		Bags:       bags,
		Price:      price,
		ApprovedBy: approvedBy,
		CreatedAt:  time.Now(),
	}

	if err := db.Create(&history).Error; err != nil {
		return err
	}

	return nil
}

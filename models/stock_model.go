package models

import (
	"dairyflow/types"

	"gorm.io/gorm"
)

type StockItem struct {
	gorm.Model
	ID   types.SnowflakeID `json:"id" gorm:"primaryKey"`
	Name string            `json:"name" gorm:"not null" validate:"required"`
	Type string            `json:"type"`
	// QuantityBags must never go negative; every decrement is a guarded
	// conditional update checked through RowsAffected.
	QuantityBags  int     `json:"quantity_bags" gorm:"default:0"`
	BagWeight     float64 `json:"bag_weight" gorm:"default:0"`
	PurchasePrice float64 `json:"purchase_price" gorm:"default:0"`
	SellingPrice  float64 `json:"selling_price" gorm:"default:0"`
	UpdatedBy     string  `json:"updated_by"`
}

package repositories

import (
	"dairyflow/controllers/idgen"
	"dairyflow/models"
	"dairyflow/types"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// sortableStockColumns whitelists the columns a client may sort the stock
// list by.
var sortableStockColumns = map[string]bool{
	"name":          true,
	"type":          true,
	"quantity_bags": true,
	"selling_price": true,
	"updated_at":    true,
}

func (r *StockRepository) GetAll(feedType, sortBy, sortOrder string) ([]models.StockItem, error) {
	var items []models.StockItem

	query := r.db.Model(&models.StockItem{})
	if feedType != "" {
		query = query.Where("type = ?", feedType)
	}

	if !sortableStockColumns[sortBy] {
		sortBy = "name"
	}
	if sortOrder != "desc" {
		sortOrder = "asc"
	}
	query = query.Order(sortBy + " " + sortOrder)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *StockRepository) GetByID(id types.SnowflakeID) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *StockRepository) Create(item *models.StockItem) error {
	if item.QuantityBags < 0 {
		return fmt.Errorf("%w: quantity_bags must not be negative", ErrValidation)
	}
	item.ID = types.SnowflakeID(idgen.GenerateID())
	item.PurchasePrice = round2(item.PurchasePrice)
	item.SellingPrice = round2(item.SellingPrice)
	return r.db.Create(item).Error
}

func (r *StockRepository) Update(item *models.StockItem) error {
	if item.QuantityBags < 0 {
		return fmt.Errorf("%w: quantity_bags must not be negative", ErrValidation)
	}
	item.PurchasePrice = round2(item.PurchasePrice)
	item.SellingPrice = round2(item.SellingPrice)
	return r.db.Save(item).Error
}

func (r *StockRepository) Delete(id types.SnowflakeID) error {
	res := r.db.Delete(&models.StockItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFeedNotFound
	}
	return nil
}

// Restock adds bags to a feed item. The increment is a single UPDATE so it
// composes safely with concurrent approvals decrementing the same row.
func (r *StockRepository) Restock(id types.SnowflakeID, bags int, updatedBy string) (*models.StockItem, error) {
	if bags < 1 {
		return nil, fmt.Errorf("%w: restock bags must be at least 1", ErrValidation)
	}

	res := r.db.Model(&models.StockItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity_bags": gorm.Expr("quantity_bags + ?", bags),
			"updated_by":    updatedBy,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrFeedNotFound
	}

	return r.GetByID(id)
}

type StockStats struct {
	TotalItems    int     `json:"total_items"`
	TotalBags     int     `json:"total_bags"`
	PurchaseValue float64 `json:"purchase_value"`
	SellingValue  float64 `json:"selling_value"`
}

func (r *StockRepository) Stats() (*StockStats, error) {
	sql := `SELECT COUNT(id) AS total_items,
		COALESCE(SUM(quantity_bags), 0) AS total_bags,
		COALESCE(SUM(quantity_bags * purchase_price), 0) AS purchase_value,
		COALESCE(SUM(quantity_bags * selling_price), 0) AS selling_value
		FROM stock_items WHERE deleted_at IS NULL`

	var stats StockStats
	if err := r.db.Raw(sql).Scan(&stats).Error; err != nil {
		return nil, err
	}
	stats.PurchaseValue = round2(stats.PurchaseValue)
	stats.SellingValue = round2(stats.SellingValue)
	return &stats, nil
}

func (r *StockRepository) LowStock(threshold int) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.Where("quantity_bags <= ?", threshold).
		Order("quantity_bags ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *StockRepository) Search(q, feedType string, limit int) ([]models.StockItem, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var items []models.StockItem
	query := r.db.Where("name LIKE ?", "%"+q+"%")
	if feedType != "" {
		query = query.Where("type = ?", feedType)
	}
	if err := query.Order("name ASC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

package repositories

import (
	"dairyflow/controllers/idgen"
	"dairyflow/models"
	"dairyflow/types"
	"errors"

	"gorm.io/gorm"
)

type FarmerRepository struct {
	db *gorm.DB
}

func NewFarmerRepository(db *gorm.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

// List returns a page of farmers, optionally narrowed by status and a
// name/mobile/code search term, newest first.
func (r *FarmerRepository) List(page, limit int, status, search string) ([]models.Farmer, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.db.Model(&models.Farmer{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR mobile LIKE ? OR code LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var farmers []models.Farmer
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&farmers).Error; err != nil {
		return nil, 0, err
	}

	return farmers, total, nil
}

func (r *FarmerRepository) GetByID(id types.SnowflakeID) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := r.db.Preload("FeedHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("date DESC")
	}).First(&farmer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) Create(farmer *models.Farmer) error {
	farmer.ID = types.SnowflakeID(idgen.GenerateID())
	if farmer.Status == "" {
		farmer.Status = models.FarmerActive
	}
	return r.db.Create(farmer).Error
}

func (r *FarmerRepository) Update(farmer *models.Farmer) error {
	return r.db.Save(farmer).Error
}

func (r *FarmerRepository) Delete(id types.SnowflakeID) error {
	res := r.db.Delete(&models.Farmer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFarmerNotFound
	}
	return nil
}

// ToggleStatus flips a farmer between Active and Inactive. Inactive farmers
// keep their history and stay visible in reports; they just cannot have new
// requests created for them.
func (r *FarmerRepository) ToggleStatus(id types.SnowflakeID, updatedBy string) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := r.db.First(&farmer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		return nil, err
	}

	next := models.FarmerActive
	if farmer.Status == models.FarmerActive {
		next = models.FarmerInactive
	}

	if err := r.db.Model(&farmer).Updates(map[string]interface{}{
		"status":     next,
		"updated_by": updatedBy,
	}).Error; err != nil {
		return nil, err
	}

	farmer.Status = next
	farmer.UpdatedBy = updatedBy
	return &farmer, nil
}

func (r *FarmerRepository) Search(q, status string, limit int) ([]models.Farmer, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	like := "%" + q + "%"
	query := r.db.Where("full_name LIKE ? OR mobile LIKE ? OR code LIKE ?", like, like, like)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var farmers []models.Farmer
	if err := query.Order("full_name ASC").Limit(limit).Find(&farmers).Error; err != nil {
		return nil, err
	}
	return farmers, nil
}

func (r *FarmerRepository) CountByStatus() (active int64, inactive int64, err error) {
	if err = r.db.Model(&models.Farmer{}).
		Where("status = ?", models.FarmerActive).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.Model(&models.Farmer{}).
		Where("status = ?", models.FarmerInactive).
		Count(&inactive).Error; err != nil {
		return 0, 0, err
	}
	return active, inactive, nil
}

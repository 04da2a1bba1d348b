// database/migrate.go
package database

import (
	"dairyflow/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Farmer{},
		&models.FeedHistory{},
		&models.StockItem{},
		&models.FeedRequest{},
	)
}

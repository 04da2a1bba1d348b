// database/seeder.go
package database

import (
	"dairyflow/config"
	"dairyflow/controllers/idgen"
	"dairyflow/models"
	"dairyflow/types"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedSuperadmin(db)
	SeedFeedTypes(db)
}

func SeedSuperadmin(db *gorm.DB) {
	var existing models.User
	if err := db.Where("role = ?", models.RoleSuperadmin).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashed, err := bcrypt.GenerateFromPassword([]byte(config.SeedAdminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Failed to hash superadmin password: %v", err)
			}
			user := models.User{
				Name:     "Superadmin",
				Mobile:   config.SeedAdminMobile,
				Password: string(hashed),
				Role:     models.RoleSuperadmin,
			}
			if err := db.Create(&user).Error; err != nil {
				log.Fatalf("Failed to seed superadmin: %v", err)
			}
		} else {
			log.Fatalf("Unexpected DB error: %v", err)
		}
	}
}

func SeedFeedTypes(db *gorm.DB) {
	feeds := []models.StockItem{
		{
			Name:          "Maize",
			Type:          "Grain",
			QuantityBags:  0,
			BagWeight:     50,
			PurchasePrice: 1100,
			SellingPrice:  1250,
		},
		{
			Name:          "Cattle Feed Pellets",
			Type:          "Compound",
			QuantityBags:  0,
			BagWeight:     50,
			PurchasePrice: 1350,
			SellingPrice:  1500,
		},
	}

	for _, f := range feeds {
		var existing models.StockItem
		if err := db.Where("name = ?", f.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				f.ID = types.SnowflakeID(idgen.GenerateID())
				f.UpdatedBy = "seeder"
				db.Create(&f)
			}
		}
	}
}

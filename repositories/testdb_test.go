package repositories

import (
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dairyflow/controllers/idgen"
	"dairyflow/models"
	"dairyflow/types"
)

func TestMain(m *testing.M) {
	idgen.Init()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:dairyflow-test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Farmer{},
		&models.FeedHistory{},
		&models.StockItem{},
		&models.FeedRequest{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedFarmer(t *testing.T, db *gorm.DB, name, status string) *models.Farmer {
	t.Helper()
	id := idgen.GenerateID()
	farmer := models.Farmer{
		ID:       types.SnowflakeID(id),
		FullName: name,
		Mobile:   "9876500000",
		Code:     fmt.Sprintf("DRY-%d", id),
		Status:   status,
	}
	if err := db.Create(&farmer).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
	return &farmer
}

func seedFeed(t *testing.T, db *gorm.DB, name string, bags int, purchase, selling float64) *models.StockItem {
	t.Helper()
	item := models.StockItem{
		ID:            types.SnowflakeID(idgen.GenerateID()),
		Name:          name,
		Type:          "Cattle Feed",
		QuantityBags:  bags,
		BagWeight:     50,
		PurchasePrice: purchase,
		SellingPrice:  selling,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed feed: %v", err)
	}
	return &item
}

package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dairyflow/models"
	"dairyflow/types"
)

func TestStockCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	item := &models.StockItem{
		Name:          "Maize",
		Type:          "Grain",
		QuantityBags:  10,
		BagWeight:     50,
		PurchasePrice: 100.456,
		SellingPrice:  150.994,
	}
	require.NoError(t, repo.Create(item))
	assert.NotZero(t, item.ID)
	assert.Equal(t, 100.46, item.PurchasePrice)
	assert.Equal(t, 150.99, item.SellingPrice)

	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maize", got.Name)

	_, err = repo.GetByID(types.SnowflakeID(404))
	assert.ErrorIs(t, err, ErrFeedNotFound)
}

func TestStockNegativeQuantityRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	err := repo.Create(&models.StockItem{Name: "Maize", QuantityBags: -1})
	assert.ErrorIs(t, err, ErrValidation)

	item := seedFeed(t, db, "Maize", 5, 100, 150)
	item.QuantityBags = -2
	assert.ErrorIs(t, repo.Update(item), ErrValidation)
}

func TestStockGetAllSorting(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	seedFeed(t, db, "Pellets", 3, 200, 260)
	seedFeed(t, db, "Maize", 9, 100, 150)

	items, err := repo.GetAll("", "quantity_bags", "desc")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Maize", items[0].Name)

	// Unknown sort column falls back to name ascending.
	items, err = repo.GetAll("", "drop table", "asc")
	require.NoError(t, err)
	assert.Equal(t, "Maize", items[0].Name)

	items, err = repo.GetAll("Grain", "", "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRestock(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	item := seedFeed(t, db, "Maize", 4, 100, 150)

	updated, err := repo.Restock(item.ID, 6, "admin")
	require.NoError(t, err)
	assert.Equal(t, 10, updated.QuantityBags)
	assert.Equal(t, "admin", updated.UpdatedBy)

	_, err = repo.Restock(item.ID, 0, "admin")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Restock(types.SnowflakeID(404), 5, "admin")
	assert.ErrorIs(t, err, ErrFeedNotFound)
}

func TestStockStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	seedFeed(t, db, "Maize", 10, 100, 150)
	seedFeed(t, db, "Pellets", 5, 200, 260)
	deleted := seedFeed(t, db, "Bran", 7, 50, 80)
	require.NoError(t, repo.Delete(deleted.ID))

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 15, stats.TotalBags)
	assert.Equal(t, 2000.0, stats.PurchaseValue)
	assert.Equal(t, 2800.0, stats.SellingValue)
}

func TestLowStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	seedFeed(t, db, "Maize", 2, 100, 150)
	seedFeed(t, db, "Pellets", 25, 200, 260)
	seedFeed(t, db, "Bran", 10, 50, 80)

	items, err := repo.LowStock(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Maize", items[0].Name)
	assert.Equal(t, "Bran", items[1].Name)
}

func TestStockSearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	seedFeed(t, db, "Maize Crush", 2, 100, 150)
	seedFeed(t, db, "Maize Whole", 5, 110, 160)
	seedFeed(t, db, "Pellets", 25, 200, 260)

	items, err := repo.Search("Maize", "", 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.Search("Maize", "", 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStockDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	item := seedFeed(t, db, "Maize", 2, 100, 150)
	require.NoError(t, repo.Delete(item.ID))

	_, err := repo.GetByID(item.ID)
	assert.ErrorIs(t, err, ErrFeedNotFound)

	assert.ErrorIs(t, repo.Delete(item.ID), ErrFeedNotFound)
}

package controllers

import (
	"dairyflow/config"
	"dairyflow/models"
	"dairyflow/repositories"
	"dairyflow/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StockController struct {
	DB *gorm.DB
}

func NewStockController(DB *gorm.DB) *StockController {
	return &StockController{DB: DB}
}

type stockInput struct {
	Name          string  `json:"name" validate:"required,min=2"`
	Type          string  `json:"type" validate:"required,min=2"`
	QuantityBags  int     `json:"quantity_bags" validate:"min=0"`
	BagWeight     float64 `json:"bag_weight" validate:"min=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"min=0"`
	SellingPrice  float64 `json:"selling_price" validate:"min=0"`
}

func (c *StockController) GetAllStock(ctx *fiber.Ctx) error {
	stock_repo := repositories.NewStockRepository(c.DB)
	items, err := stock_repo.GetAll(ctx.Query("type"), ctx.Query("sortBy"), ctx.Query("sortOrder"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"stock": items}})
}

func (c *StockController) GetStockByID(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	stock_repo := repositories.NewStockRepository(c.DB)
	item, err := stock_repo.GetByID(id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock item found", "data": item})
}

func (c *StockController) CreateStock(ctx *fiber.Ctx) error {
	var input stockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item := models.StockItem{
		Name:          input.Name,
		Type:          input.Type,
		QuantityBags:  input.QuantityBags,
		BagWeight:     input.BagWeight,
		PurchasePrice: input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		UpdatedBy:     actorName(ctx),
	}

	stock_repo := repositories.NewStockRepository(c.DB)
	if err := stock_repo.Create(&item); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Stock item created successfully", "data": item})
}

func (c *StockController) UpdateStock(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	stock_repo := repositories.NewStockRepository(c.DB)
	item, err := stock_repo.GetByID(id)
	if err != nil {
		return respondError(ctx, err)
	}

	var input stockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item.Name = input.Name
	item.Type = input.Type
	item.QuantityBags = input.QuantityBags
	item.BagWeight = input.BagWeight
	item.PurchasePrice = input.PurchasePrice
	item.SellingPrice = input.SellingPrice
	item.UpdatedBy = actorName(ctx)

	if err := stock_repo.Update(item); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock item updated successfully", "data": item})
}

func (c *StockController) DeleteStock(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	stock_repo := repositories.NewStockRepository(c.DB)
	if err := stock_repo.Delete(id); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock item deleted successfully"})
}

// Restock adds bags to an existing feed item.
func (c *StockController) Restock(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input struct {
		Bags int `json:"bags" validate:"required,min=1"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	stock_repo := repositories.NewStockRepository(c.DB)
	item, err := stock_repo.Restock(id, input.Bags, actorName(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock restocked successfully", "data": item})
}

func (c *StockController) GetStats(ctx *fiber.Ctx) error {
	stock_repo := repositories.NewStockRepository(c.DB)
	stats, err := stock_repo.Stats()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": stats})
}

func (c *StockController) GetLowStock(ctx *fiber.Ctx) error {
	threshold := ctx.QueryInt("threshold", config.LowStockThreshold)

	stock_repo := repositories.NewStockRepository(c.DB)
	items, err := stock_repo.LowStock(threshold)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"stock": items, "threshold": threshold}})
}

func (c *StockController) SearchStock(ctx *fiber.Ctx) error {
	q := ctx.Query("q")
	if q == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing search query"})
	}

	stock_repo := repositories.NewStockRepository(c.DB)
	items, err := stock_repo.Search(q, ctx.Query("type"), ctx.QueryInt("limit", 20))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"stock": items}})
}

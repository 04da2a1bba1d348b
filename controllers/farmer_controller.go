package controllers

import (
	"dairyflow/models"
	"dairyflow/repositories"
	"dairyflow/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FarmerController struct {
	DB *gorm.DB
}

func NewFarmerController(DB *gorm.DB) *FarmerController {
	return &FarmerController{DB: DB}
}

type farmerInput struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Mobile   string `json:"mobile" validate:"required,min=10"`
	Code     string `json:"code" validate:"required,min=3"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

func (c *FarmerController) GetAllFarmers(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	status := ctx.Query("status")
	search := ctx.Query("search")

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	farmers, total, err := farmer_repo.List(page, limit, status, search)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"farmers": farmers, "total": total, "page": page, "limit": limit},
	})
}

func (c *FarmerController) GetFarmerByID(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	farmer, err := farmer_repo.GetByID(id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Farmer found", "data": farmer})
}

func (c *FarmerController) CreateFarmer(ctx *fiber.Ctx) error {
	var input farmerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	farmer := models.Farmer{
		FullName:  input.FullName,
		Mobile:    input.Mobile,
		Code:      input.Code,
		Email:     input.Email,
		Status:    input.Status,
		CreatedBy: actorName(ctx),
	}

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	if err := farmer_repo.Create(&farmer); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Farmer created successfully", "data": farmer})
}

func (c *FarmerController) UpdateFarmer(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	farmer, err := farmer_repo.GetByID(id)
	if err != nil {
		return respondError(ctx, err)
	}

	var input farmerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	farmer.FullName = input.FullName
	farmer.Mobile = input.Mobile
	farmer.Code = input.Code
	farmer.Email = input.Email
	if input.Status != "" {
		farmer.Status = input.Status
	}
	farmer.UpdatedBy = actorName(ctx)

	if err := farmer_repo.Update(farmer); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Farmer updated successfully", "data": farmer})
}

func (c *FarmerController) DeleteFarmer(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	if err := farmer_repo.Delete(id); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Farmer deleted successfully"})
}

func (c *FarmerController) ToggleFarmerStatus(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	farmer, err := farmer_repo.ToggleStatus(id, actorName(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Farmer status updated", "data": farmer})
}

func (c *FarmerController) SearchFarmers(ctx *fiber.Ctx) error {
	q := ctx.Query("q")
	if q == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing search query"})
	}

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	farmers, err := farmer_repo.Search(q, ctx.Query("status"), ctx.QueryInt("limit", 20))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"farmers": farmers}})
}

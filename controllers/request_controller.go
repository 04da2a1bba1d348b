package controllers

import (
	"dairyflow/models"
	"dairyflow/repositories"
	"dairyflow/services"
	"dairyflow/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RequestController struct {
	DB     *gorm.DB
	Alerts *services.AlertService
}

func NewRequestController(DB *gorm.DB, alerts *services.AlertService) *RequestController {
	return &RequestController{DB: DB, Alerts: alerts}
}

func (c *RequestController) GetAllRequests(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	switch status {
	case "", models.RequestPending, models.RequestApproved, models.RequestRejected:
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status filter"})
	}

	request_repo := repositories.NewRequestRepository(c.DB)
	requests, err := request_repo.ListByStatus(status)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"requests": requests}})
}

func (c *RequestController) GetRequestByID(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	request_repo := repositories.NewRequestRepository(c.DB)
	request, err := request_repo.GetByID(id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Request found", "data": request})
}

func (c *RequestController) CreateRequest(ctx *fiber.Ctx) error {
	var requestInput struct {
		FarmerID types.SnowflakeID `json:"farmer_id" validate:"required"`
		FeedID   types.SnowflakeID `json:"feed_id" validate:"required"`
		QtyBags  int               `json:"qty_bags" validate:"required,min=1"`
	}

	if err := ctx.BodyParser(&requestInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(requestInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request_repo := repositories.NewRequestRepository(c.DB)
	request, err := request_repo.Create(repositories.CreateRequestInput{
		FarmerID:  requestInput.FarmerID,
		FeedID:    requestInput.FeedID,
		QtyBags:   requestInput.QtyBags,
		CreatedBy: actorName(ctx),
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Request created successfully", "data": request})
}

func (c *RequestController) ApproveRequest(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	request_repo := repositories.NewRequestRepository(c.DB)
	request, err := request_repo.Approve(id, actorName(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	// The approval has committed; the low-stock check rides on the updated
	// stock row and never affects the response.
	if c.Alerts != nil {
		stock_repo := repositories.NewStockRepository(c.DB)
		if feed, err := stock_repo.GetByID(request.FeedID); err == nil {
			c.Alerts.NotifyLowStock(feed)
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Request approved successfully", "data": request})
}

func (c *RequestController) RejectRequest(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	request_repo := repositories.NewRequestRepository(c.DB)
	request, err := request_repo.Reject(id, actorName(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Request rejected successfully", "data": request})
}

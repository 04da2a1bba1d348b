package controllers

import (
	"dairyflow/config"
	"dairyflow/models"
	"dairyflow/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	report_repo := repositories.NewReportRepository(c.DB)
	today, err := report_repo.AggregateToday(repositories.RangeFilter{})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var pendingRequests int64
	if err := c.DB.Model(&models.FeedRequest{}).
		Where("status = ?", models.RequestPending).
		Count(&pendingRequests).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	farmer_repo := repositories.NewFarmerRepository(c.DB)
	activeFarmers, inactiveFarmers, err := farmer_repo.CountByStatus()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	stock_repo := repositories.NewStockRepository(c.DB)
	lowStock, err := stock_repo.LowStock(config.LowStockThreshold)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Dashboard found",
		"data": fiber.Map{
			"today":            today,
			"pending_requests": pendingRequests,
			"active_farmers":   activeFarmers,
			"inactive_farmers": inactiveFarmers,
			"low_stock":        lowStock,
		},
	})
}

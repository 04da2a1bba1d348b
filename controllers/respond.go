package controllers

import (
	"dairyflow/repositories"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the repository error taxonomy onto HTTP statuses. Every
// mutating operation either fully commits or surfaces one of these; nothing
// is ever half-persisted.
func respondError(ctx *fiber.Ctx, err error) error {
	var stockErr *repositories.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":   false,
			"error":     stockErr.Error(),
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.Is(err, repositories.ErrValidation),
		errors.Is(err, repositories.ErrFarmerInactive):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, repositories.ErrFarmerNotFound),
		errors.Is(err, repositories.ErrFeedNotFound),
		errors.Is(err, repositories.ErrRequestNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, repositories.ErrInvalidTransition):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, repositories.ErrConflict):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":   false,
			"error":     err.Error(),
			"retryable": true,
		})
	case repositories.IsStorageDown(err):
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "error": "storage unavailable"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
}

// actorName pulls the authenticated user's display name set by the auth
// middleware. Empty when a route is wired without auth (tests).
func actorName(ctx *fiber.Ctx) string {
	if name, ok := ctx.Locals("userName").(string); ok {
		return name
	}
	return ""
}

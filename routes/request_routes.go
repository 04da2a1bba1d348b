package routes

import (
	"dairyflow/config"
	"dairyflow/controllers"
	"dairyflow/middleware"
	"dairyflow/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRequestRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewRequestController(db, services.NewAlertService())

	api := app.Group(config.MAIN_ROUTES+"/requests", auth.RequireAuth)
	api.Get("/", controller.GetAllRequests)
	api.Post("/", controller.CreateRequest)
	api.Get("/:id", controller.GetRequestByID)
	api.Patch("/:id/approve", controller.ApproveRequest)
	api.Patch("/:id/reject", controller.RejectRequest)
}

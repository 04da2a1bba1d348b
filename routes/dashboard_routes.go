package routes

import (
	"dairyflow/config"
	"dairyflow/controllers"
	"dairyflow/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewDashboardController(db)

	api := app.Group(config.MAIN_ROUTES+"/dashboard", auth.RequireAuth)
	api.Get("/", controller.GetDashboard)
}

package routes

import (
	"dairyflow/config"
	"dairyflow/controllers"
	"dairyflow/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewReportController(db)

	api := app.Group(config.MAIN_ROUTES+"/reports", auth.RequireAuth)
	api.Get("/range", controller.GetRangeReport)
	api.Get("/feeds", controller.GetFeedReport)
	api.Get("/farmers", controller.GetFarmerReport)
	api.Get("/today", controller.GetTodayReport)
	api.Get("/export", controller.ExportExcel)
}

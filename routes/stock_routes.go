package routes

import (
	"dairyflow/config"
	"dairyflow/controllers"
	"dairyflow/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStockRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewStockController(db)

	api := app.Group(config.MAIN_ROUTES+"/stock", auth.RequireAuth)
	api.Get("/search", controller.SearchStock)
	api.Get("/stats", controller.GetStats)
	api.Get("/low", controller.GetLowStock)
	api.Get("/", controller.GetAllStock)
	api.Post("/", controller.CreateStock)
	api.Get("/:id", controller.GetStockByID)
	api.Put("/:id", controller.UpdateStock)
	api.Delete("/:id", controller.DeleteStock)
	api.Patch("/:id/restock", controller.Restock)
}

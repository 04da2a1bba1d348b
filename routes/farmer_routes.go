package routes

import (
	"dairyflow/config"
	"dairyflow/controllers"
	"dairyflow/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupFarmerRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewFarmerController(db)

	api := app.Group(config.MAIN_ROUTES+"/farmers", auth.RequireAuth)
	api.Get("/search", controller.SearchFarmers)
	api.Get("/", controller.GetAllFarmers)
	api.Post("/", controller.CreateFarmer)
	api.Get("/:id", controller.GetFarmerByID)
	api.Put("/:id", controller.UpdateFarmer)
	api.Delete("/:id", controller.DeleteFarmer)
	api.Patch("/:id/toggle-status", controller.ToggleFarmerStatus)
}

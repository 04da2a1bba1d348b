package routes

import (
	"dairyflow/config"
	"dairyflow/controllers"
	"dairyflow/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewAuthController(db)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", controller.Login)
	api.Get("/profile", auth.RequireAuth, controller.Profile)
	api.Get("/logout", auth.RequireAuth, controller.Logout)
}

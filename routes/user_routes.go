package routes

import (
	"dairyflow/config"
	"dairyflow/controllers"
	"dairyflow/middleware"
	"dairyflow/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewUserController(db)

	api := app.Group(config.MAIN_ROUTES+"/admins",
		auth.RequireAuth, auth.RequireRole(models.RoleSuperadmin))
	api.Get("/", controller.GetAllUsers)
	api.Post("/", controller.CreateUser)
	api.Get("/:id", controller.GetUserByID)
	api.Put("/:id", controller.UpdateUser)
	api.Delete("/:id", controller.DeleteUser)
}

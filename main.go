package main

import (
	"dairyflow/config"
	"dairyflow/controllers/idgen"
	"dairyflow/database"
	"dairyflow/middleware"
	"dairyflow/routes"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	app := fiber.New()
	config.SetupCORS(app)

	auth := middleware.NewAuthMiddleware(db)

	routes.SetupAuthRoutes(app, db, auth)
	routes.SetupDashboardRoutes(app, db, auth)
	routes.SetupFarmerRoutes(app, db, auth)
	routes.SetupStockRoutes(app, db, auth)
	routes.SetupRequestRoutes(app, db, auth)
	routes.SetupReportRoutes(app, db, auth)
	routes.SetupUserRoutes(app, db, auth)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}

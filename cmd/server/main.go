package main

import (
	"log"
	"net/http"

	"cantrack/internal/config"
	"cantrack/internal/controllers"
	"cantrack/internal/logger"
	"cantrack/internal/middleware"
	"cantrack/internal/routes"
	"cantrack/internal/service"
	"cantrack/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	settings := config.LoadSettings()

	// Connect to the database
	config.InitDB()
	db := config.GetDB()

	users := store.NewUserStore(db)
	locations := store.NewLocationStore(db)

	registration := service.NewRegistrationService(users, settings.BcryptCost)
	tracking := service.NewLocationService(users, locations, settings.FreshnessWindow)

	r := routes.SetupRouter(
		controllers.NewAuthController(registration),
		controllers.NewLocationController(tracking),
	)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :" + settings.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+settings.Port, handler))
}

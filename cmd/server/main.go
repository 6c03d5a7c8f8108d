package main

import (
	"log"
	"net/http"
	"os"

	"jeevanid/internal/config"
	"jeevanid/internal/controllers"
	"jeevanid/internal/logger"
	"jeevanid/internal/middleware"
	"jeevanid/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and migrate the schema
	config.InitDB()

	// Redis holds OTP codes; the server runs without it
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("continuing without Redis: %v", err)
	}

	// Starter facility directory for the locator
	if err := controllers.SeedHealthCenters(config.DB); err != nil {
		log.Fatalf("health center seeding failed: %v", err)
	}

	// Gemini chatbot client
	controllers.InitChat()

	// Setup Gin router (recovery + request logging registered inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + port()
	log.Printf("🚀 Server running at :%s", port())
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if v := os.Getenv("PORT"); v != "" {
		return v
	}
	return "8080"
}

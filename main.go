package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"stitchquote/app"
	"stitchquote/db"
	"stitchquote/logging"
)

func main() {
	defer logging.Sync()

	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err != nil {
			logging.Warnf(".env file not found, using system environment variables")
		} else {
			logging.Infof("Loaded environment variables from .env (overriding system variables)")
		}
	}

	// Initialize application
	if err := app.Initialize(); err != nil {
		logging.Errorf("initialization failed: %v", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "0.0.0.0:" + port
	logging.Infof("Server starting on %s", addr)
	logging.Infof("Pricing endpoint: POST http://localhost:%s/quotes/price", port)

	if err := http.ListenAndServe(addr, nil); err != nil {
		logging.Errorf("server failed to start: %v", err)
		os.Exit(1)
	}
}

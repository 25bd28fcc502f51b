package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"vitrine-backoffice/app"
	"vitrine-backoffice/config"
	"vitrine-backoffice/db"
)

func main() {
	logger := config.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Initialize application
	handler, err := app.Initialize(context.Background(), cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	logger.Infof("Server starting on %s", addr)
	logger.Infof("Dashboard endpoint: GET http://localhost:%s/admin/dashboard", cfg.Port)

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}

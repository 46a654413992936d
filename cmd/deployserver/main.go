package main

import (
	"deploy-dashboard/internal/config"
	"deploy-dashboard/internal/database"
	"deploy-dashboard/internal/logger"
	"deploy-dashboard/internal/newrelic"
	"deploy-dashboard/internal/server"
)

func main() {
	log := logger.Initialize()
	log.Info("Starting deploy dashboard service")

	cfg := config.Load()

	// Monitoring is optional; a nil app disables instrumentation.
	nrApp, err := newrelic.Initialize(cfg)
	if err != nil {
		log.WithError(err).Warn("Failed to initialize New Relic, continuing without monitoring")
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	srv := server.NewServer(cfg, db, nrApp)
	if err := srv.Start(); err != nil {
		log.WithError(err).Fatal("Server failed to start")
	}
}

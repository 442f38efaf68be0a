package main

import (
	"github.com/arifulhb/picstream/backend/internal/router"
	"github.com/arifulhb/picstream/backend/pkg/config"
	"github.com/arifulhb/picstream/backend/pkg/logger"
	"github.com/arifulhb/picstream/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize databases")
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg)

	// Start server
	logrus.WithField("port", cfg.Port).Info("Starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}

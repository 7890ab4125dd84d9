package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"resource-portal/internal/api"
	"resource-portal/internal/api/handlers"
	"resource-portal/internal/config"
	"resource-portal/internal/database"
	"resource-portal/internal/logger"
	"resource-portal/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logging
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.L().Sync()

	// Initialize Database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Wire stores and services
	stores := store.New(database.GetDB(), logger.L())
	handlers.Init(cfg, stores, logger.L())

	// Initialize Router
	router := gin.Default()
	api.SetupRoutes(router, cfg)

	// Start Server
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

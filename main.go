// File: /main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dediosardie/dns-maynilad-vmms/config"
	"github.com/dediosardie/dns-maynilad-vmms/database"
	"github.com/dediosardie/dns-maynilad-vmms/jobs"
	"github.com/dediosardie/dns-maynilad-vmms/middleware"
	"github.com/dediosardie/dns-maynilad-vmms/repositories"
	"github.com/dediosardie/dns-maynilad-vmms/routes"
	"github.com/dediosardie/dns-maynilad-vmms/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with the initial admin account
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Services
	disposalRepo := repositories.NewDisposalRepository(db)
	disposalService := services.NewDisposalService(disposalRepo, cfg.DefaultBidIncrement)
	notificationService := services.NewNotificationService(db)
	emailService := services.NewEmailService(cfg)
	analysisService := services.NewAnalysisService(cfg)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize object storage:", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := storageService.EnsureBucket(ctx); err != nil {
		log.Printf("Warning: Failed to ensure storage bucket: %v", err)
	}
	cancel()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, disposalService, notificationService, storageService, analysisService)

	// Background expiry scan, hourly
	reminderJob := jobs.NewExpiryReminderJob(db, notificationService, emailService, time.Hour)
	reminderJob.Start()
	defer reminderJob.Stop()

	// Start server
	log.Printf("Starting fleet management API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

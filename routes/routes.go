// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/config"
	"github.com/dediosardie/dns-maynilad-vmms/controllers"
	"github.com/dediosardie/dns-maynilad-vmms/middleware"
	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config,
	disposalService *services.DisposalService,
	notificationService *services.NotificationService,
	storageService *services.StorageService,
	analysisService *services.AnalysisService,
) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	vehicleController := controllers.NewVehicleController(db)
	driverController := controllers.NewDriverController(db)
	maintenanceController := controllers.NewMaintenanceController(db, storageService)
	tripController := controllers.NewTripController(db)
	fuelController := controllers.NewFuelController(db, storageService, analysisService)
	incidentController := controllers.NewIncidentController(db, notificationService)
	complianceController := controllers.NewComplianceController(db, storageService)
	disposalController := controllers.NewDisposalController(disposalService, notificationService)
	reportController := controllers.NewReportController(db, disposalService)
	notificationController := controllers.NewNotificationController(notificationService)

	manageFleet := middleware.RequireRole(string(models.RoleAdmin), string(models.RoleFleetManager))
	approveDisposals := middleware.RequireRole(string(models.RoleAdmin), string(models.RoleFleetManager))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public, rate limited)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/profile", authController.GetProfile)

		// Vehicle routes
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("/", vehicleController.GetVehicles)
			vehicles.GET("/statistics", vehicleController.GetStatistics)
			vehicles.GET("/:id", vehicleController.GetVehicle)
			vehicles.POST("/", manageFleet, vehicleController.CreateVehicle)
			vehicles.PUT("/:id", manageFleet, vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id", manageFleet, vehicleController.DeleteVehicle)
		}

		// Driver routes
		drivers := protected.Group("/drivers")
		{
			drivers.GET("/", driverController.GetDrivers)
			drivers.GET("/:id", driverController.GetDriver)
			drivers.POST("/", manageFleet, driverController.CreateDriver)
			drivers.PUT("/:id", manageFleet, driverController.UpdateDriver)
			drivers.DELETE("/:id", manageFleet, driverController.DeleteDriver)
		}

		// Maintenance routes
		maintenance := protected.Group("/maintenance")
		{
			maintenance.GET("/", maintenanceController.GetMaintenanceRecords)
			maintenance.GET("/:id", maintenanceController.GetMaintenanceRecord)
			maintenance.POST("/", manageFleet, maintenanceController.CreateMaintenanceRecord)
			maintenance.PUT("/:id", manageFleet, maintenanceController.UpdateMaintenanceRecord)
			maintenance.POST("/:id/complete", manageFleet, maintenanceController.CompleteMaintenanceRecord)
			maintenance.POST("/:id/image", manageFleet, maintenanceController.UploadImage)
			maintenance.DELETE("/:id", manageFleet, maintenanceController.DeleteMaintenanceRecord)
		}

		// Trip routes
		trips := protected.Group("/trips")
		{
			trips.GET("/", tripController.GetTrips)
			trips.GET("/:id", tripController.GetTrip)
			trips.POST("/", manageFleet, tripController.CreateTrip)
			trips.PUT("/:id", manageFleet, tripController.UpdateTrip)
			trips.POST("/:id/start", manageFleet, tripController.StartTrip)
			trips.POST("/:id/complete", manageFleet, tripController.CompleteTrip)
			trips.POST("/:id/cancel", manageFleet, tripController.CancelTrip)
			trips.DELETE("/:id", manageFleet, tripController.DeleteTrip)
		}

		// Fuel routes
		fuel := protected.Group("/fuel")
		{
			fuel.GET("/", fuelController.GetTransactions)
			fuel.GET("/efficiency-report", fuelController.GetEfficiencyReport)
			fuel.GET("/:id", fuelController.GetTransaction)
			fuel.POST("/", manageFleet, fuelController.CreateTransaction)
			fuel.PUT("/:id", manageFleet, fuelController.UpdateTransaction)
			fuel.POST("/:id/receipt", manageFleet, fuelController.UploadReceipt)
			fuel.DELETE("/:id", manageFleet, fuelController.DeleteTransaction)
		}

		// Incident routes
		incidents := protected.Group("/incidents")
		{
			incidents.GET("/", incidentController.GetIncidents)
			incidents.GET("/:id", incidentController.GetIncident)
			incidents.POST("/", incidentController.CreateIncident)
			incidents.PUT("/:id", manageFleet, incidentController.UpdateIncident)
			incidents.POST("/:id/claims", manageFleet, incidentController.FileClaim)
			incidents.PUT("/:id/claims/:claimId", manageFleet, incidentController.UpdateClaimStatus)
			incidents.DELETE("/:id", manageFleet, incidentController.DeleteIncident)
		}

		// Compliance document routes
		compliance := protected.Group("/compliance")
		{
			compliance.GET("/", complianceController.GetDocuments)
			compliance.GET("/:id", complianceController.GetDocument)
			compliance.POST("/", manageFleet, complianceController.CreateDocument)
			compliance.PUT("/:id", manageFleet, complianceController.UpdateDocument)
			compliance.POST("/:id/file", manageFleet, complianceController.UploadFile)
			compliance.DELETE("/:id", manageFleet, complianceController.DeleteDocument)
		}

		// Disposal routes
		disposals := protected.Group("/disposals")
		{
			disposals.GET("/", disposalController.GetRequests)
			disposals.GET("/statistics", disposalController.GetStatistics)
			disposals.GET("/:id", disposalController.GetRequest)
			disposals.POST("/", manageFleet, disposalController.CreateRequest)
			disposals.POST("/:id/approve", approveDisposals, disposalController.ApproveRequest)
			disposals.POST("/:id/reject", approveDisposals, disposalController.RejectRequest)
			disposals.POST("/:id/transfer", manageFleet, disposalController.MarkTransferred)
			disposals.POST("/:id/auctions", manageFleet, disposalController.CreateAuction)
		}

		// Auction routes
		auctions := protected.Group("/auctions")
		{
			auctions.GET("/", disposalController.GetAuctions)
			auctions.GET("/:id", disposalController.GetAuction)
			auctions.GET("/:id/bids", disposalController.GetBids)
			auctions.POST("/:id/bids", disposalController.PlaceBid)
			auctions.POST("/:id/activate", manageFleet, disposalController.ActivateAuction)
			auctions.POST("/:id/close", manageFleet, disposalController.CloseAuction)
			auctions.POST("/:id/cancel", manageFleet, disposalController.CancelAuction)
			auctions.POST("/:id/recount", manageFleet, disposalController.RecountAuction)
		}

		// Report routes
		reports := protected.Group("/reports")
		{
			reports.GET("/dashboard", reportController.GetDashboard)
			reports.GET("/cost-trends", reportController.GetCostTrends)
			reports.GET("/vehicle-costs", reportController.GetVehicleCosts)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetStats)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
		}
	}
}

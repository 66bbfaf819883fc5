package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

type TripController struct {
	db *gorm.DB
}

func NewTripController(db *gorm.DB) *TripController {
	return &TripController{db: db}
}

type TripRequest struct {
	VehicleID                string    `json:"vehicle_id" binding:"required"`
	DriverID                 string    `json:"driver_id" binding:"required"`
	Origin                   string    `json:"origin" binding:"required"`
	Destination              string    `json:"destination" binding:"required"`
	PlannedDeparture         time.Time `json:"planned_departure" binding:"required"`
	PlannedArrival           time.Time `json:"planned_arrival" binding:"required"`
	DistanceKm               float64   `json:"distance_km"`
	EstimatedFuelConsumption float64   `json:"estimated_fuel_consumption"`
	Notes                    string    `json:"notes"`
}

func (tc *TripController) GetTrips(c *gin.Context) {
	query := tc.db.Model(&models.Trip{}).Preload("Vehicle").Preload("Driver")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var trips []models.Trip
	if err := query.Order("planned_departure DESC").Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (tc *TripController) GetTrip(c *gin.Context) {
	var trip models.Trip
	if err := tc.db.Preload("Vehicle").Preload("Driver").First(&trip, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

func (tc *TripController) CreateTrip(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := tc.db.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	var driver models.Driver
	if err := tc.db.First(&driver, "id = ?", req.DriverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	if driver.Status != models.DriverStatusActive {
		c.JSON(http.StatusConflict, gin.H{"error": "Driver is suspended"})
		return
	}
	if !req.PlannedArrival.After(req.PlannedDeparture) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Planned arrival must be after planned departure"})
		return
	}

	var seq int64
	year := time.Now().Year()
	tc.db.Model(&models.Trip{}).Where("trip_number LIKE ?", models.NewTripNumber(year, 0)[:10]+"%").Count(&seq)

	trip := models.Trip{
		ID:                       uuid.New().String(),
		TripNumber:               models.NewTripNumber(year, seq+1),
		VehicleID:                req.VehicleID,
		DriverID:                 req.DriverID,
		Origin:                   req.Origin,
		Destination:              req.Destination,
		PlannedDeparture:         req.PlannedDeparture,
		PlannedArrival:           req.PlannedArrival,
		DistanceKm:               req.DistanceKm,
		EstimatedFuelConsumption: req.EstimatedFuelConsumption,
		Notes:                    req.Notes,
		Status:                   models.TripStatusPlanned,
	}

	if err := tc.db.Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (tc *TripController) UpdateTrip(c *gin.Context) {
	var trip models.Trip
	if err := tc.db.First(&trip, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	if trip.Status != models.TripStatusPlanned {
		c.JSON(http.StatusConflict, gin.H{"error": "Only planned trips can be edited"})
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"vehicle_id":                 req.VehicleID,
		"driver_id":                  req.DriverID,
		"origin":                     req.Origin,
		"destination":                req.Destination,
		"planned_departure":          req.PlannedDeparture,
		"planned_arrival":            req.PlannedArrival,
		"distance_km":                req.DistanceKm,
		"estimated_fuel_consumption": req.EstimatedFuelConsumption,
		"notes":                      req.Notes,
	}

	if err := tc.db.Model(&trip).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip updated successfully"})
}

// StartTrip records the actual departure.
func (tc *TripController) StartTrip(c *gin.Context) {
	tc.transitionTrip(c, models.TripStatusInProgress, "actual_departure")
}

// CompleteTrip records the actual arrival.
func (tc *TripController) CompleteTrip(c *gin.Context) {
	tc.transitionTrip(c, models.TripStatusCompleted, "actual_arrival")
}

func (tc *TripController) CancelTrip(c *gin.Context) {
	tc.transitionTrip(c, models.TripStatusCancelled, "")
}

func (tc *TripController) transitionTrip(c *gin.Context, to models.TripStatus, timestampColumn string) {
	var trip models.Trip
	if err := tc.db.First(&trip, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	if !trip.Status.CanTransitionTo(to) {
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid trip status transition"})
		return
	}

	updates := map[string]interface{}{"status": to}
	if timestampColumn != "" {
		updates[timestampColumn] = time.Now()
	}

	if err := tc.db.Model(&trip).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip status updated", "status": to})
}

func (tc *TripController) DeleteTrip(c *gin.Context) {
	var trip models.Trip
	if err := tc.db.First(&trip, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	if err := tc.db.Delete(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

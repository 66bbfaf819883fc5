package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/services"
)

type IncidentController struct {
	db            *gorm.DB
	notifications *services.NotificationService
}

func NewIncidentController(db *gorm.DB, notifications *services.NotificationService) *IncidentController {
	return &IncidentController{db: db, notifications: notifications}
}

type IncidentRequest struct {
	VehicleID          string                  `json:"vehicle_id" binding:"required"`
	DriverID           string                  `json:"driver_id" binding:"required"`
	IncidentDate       time.Time               `json:"incident_date" binding:"required"`
	Location           string                  `json:"location" binding:"required"`
	IncidentType       models.IncidentType     `json:"incident_type" binding:"required,oneof=collision theft vandalism mechanical_failure other"`
	Severity           models.IncidentSeverity `json:"severity" binding:"required,oneof=minor moderate severe critical"`
	WeatherConditions  string                  `json:"weather_conditions"`
	RoadConditions     string                  `json:"road_conditions"`
	PoliceReportNumber string                  `json:"police_report_number"`
	EstimatedCost      float64                 `json:"estimated_cost"`
	Description        string                  `json:"description" binding:"required"`
}

type ClaimRequest struct {
	InsuranceProvider string  `json:"insurance_provider" binding:"required"`
	ClaimAmount       float64 `json:"claim_amount" binding:"required,gt=0"`
}

func (ic *IncidentController) GetIncidents(c *gin.Context) {
	query := ic.db.Model(&models.Incident{}).Preload("Vehicle").Preload("Driver").Preload("Claims")

	if severity := c.Query("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var incidents []models.Incident
	if err := query.Order("incident_date DESC").Find(&incidents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incidents"})
		return
	}

	c.JSON(http.StatusOK, incidents)
}

func (ic *IncidentController) GetIncident(c *gin.Context) {
	var incident models.Incident
	if err := ic.db.Preload("Vehicle").Preload("Driver").Preload("Claims").First(&incident, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		return
	}

	c.JSON(http.StatusOK, incident)
}

func (ic *IncidentController) CreateIncident(c *gin.Context) {
	var req IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Description) < models.MinIncidentDescriptionLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Description must be at least %d characters", models.MinIncidentDescriptionLen),
		})
		return
	}

	var vehicle models.Vehicle
	if err := ic.db.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	var driver models.Driver
	if err := ic.db.First(&driver, "id = ?", req.DriverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	year := time.Now().Year()
	var seq int64
	ic.db.Model(&models.Incident{}).Where("incident_number LIKE ?", fmt.Sprintf("INC-%d-%%", year)).Count(&seq)

	incident := models.Incident{
		ID:                 uuid.New().String(),
		IncidentNumber:     models.NewIncidentNumber(year, seq+1),
		VehicleID:          req.VehicleID,
		DriverID:           req.DriverID,
		IncidentDate:       req.IncidentDate,
		Location:           req.Location,
		IncidentType:       req.IncidentType,
		Severity:           req.Severity,
		WeatherConditions:  req.WeatherConditions,
		RoadConditions:     req.RoadConditions,
		PoliceReportNumber: req.PoliceReportNumber,
		EstimatedCost:      req.EstimatedCost,
		Description:        req.Description,
		Status:             models.IncidentStatusReported,
	}

	if err := ic.db.Create(&incident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create incident"})
		return
	}

	if incident.Severity == models.SeveritySevere || incident.Severity == models.SeverityCritical {
		if err := ic.notifications.NotifyRole(
			models.NotificationIncidentReported,
			"Serious incident reported",
			fmt.Sprintf("%s incident %s for vehicle %s at %s", incident.Severity, incident.IncidentNumber, vehicle.PlateNumber, incident.Location),
			incident.ID,
			models.RoleAdmin, models.RoleFleetManager,
		); err != nil {
			fmt.Printf("Failed to create incident notification: %v\n", err)
		}
	}

	c.JSON(http.StatusCreated, incident)
}

type IncidentUpdateRequest struct {
	Status             models.IncidentStatus   `json:"status" binding:"omitempty,oneof=reported under_review resolved"`
	Severity           models.IncidentSeverity `json:"severity" binding:"omitempty,oneof=minor moderate severe critical"`
	PoliceReportNumber string                  `json:"police_report_number"`
	EstimatedCost      *float64                `json:"estimated_cost"`
}

func (ic *IncidentController) UpdateIncident(c *gin.Context) {
	var incident models.Incident
	if err := ic.db.First(&incident, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		return
	}

	var req IncidentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Severity != "" {
		updates["severity"] = req.Severity
	}
	if req.PoliceReportNumber != "" {
		updates["police_report_number"] = req.PoliceReportNumber
	}
	if req.EstimatedCost != nil {
		updates["estimated_cost"] = *req.EstimatedCost
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, incident)
		return
	}

	if err := ic.db.Model(&incident).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incident"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Incident updated successfully"})
}

// FileClaim attaches an insurance claim to an incident.
func (ic *IncidentController) FileClaim(c *gin.Context) {
	var incident models.Incident
	if err := ic.db.First(&incident, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	claim := models.InsuranceClaim{
		ID:                uuid.New().String(),
		IncidentID:        incident.ID,
		ClaimNumber:       fmt.Sprintf("CLM-%d", now.UnixMilli()),
		InsuranceProvider: req.InsuranceProvider,
		ClaimAmount:       req.ClaimAmount,
		FiledDate:         now,
		Status:            models.ClaimStatusFiled,
	}

	if err := ic.db.Create(&claim).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to file claim"})
		return
	}

	c.JSON(http.StatusCreated, claim)
}

// UpdateClaimStatus moves a claim through filed/approved/denied/paid.
func (ic *IncidentController) UpdateClaimStatus(c *gin.Context) {
	var claim models.InsuranceClaim
	if err := ic.db.First(&claim, "id = ?", c.Param("claimId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		return
	}

	var req struct {
		Status models.ClaimStatus `json:"status" binding:"required,oneof=filed approved denied paid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ic.db.Model(&claim).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update claim"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Claim status updated"})
}

func (ic *IncidentController) DeleteIncident(c *gin.Context) {
	var incident models.Incident
	if err := ic.db.First(&incident, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		return
	}

	if err := ic.db.Delete(&incident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete incident"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Incident deleted successfully"})
}

package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/services"
)

type MaintenanceController struct {
	db      *gorm.DB
	storage *services.StorageService
}

func NewMaintenanceController(db *gorm.DB, storage *services.StorageService) *MaintenanceController {
	return &MaintenanceController{db: db, storage: storage}
}

type MaintenanceRequest struct {
	VehicleID       string                 `json:"vehicle_id" binding:"required"`
	MaintenanceType models.MaintenanceType `json:"maintenance_type" binding:"required,oneof=preventive repair"`
	ScheduledDate   time.Time              `json:"scheduled_date" binding:"required"`
	Cost            *float64               `json:"cost"`
	Description     string                 `json:"description"`
}

func (mc *MaintenanceController) GetMaintenanceRecords(c *gin.Context) {
	query := mc.db.Model(&models.Maintenance{}).Preload("Vehicle")

	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var records []models.Maintenance
	if err := query.Order("scheduled_date DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenance records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (mc *MaintenanceController) GetMaintenanceRecord(c *gin.Context) {
	var record models.Maintenance
	if err := mc.db.Preload("Vehicle").First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (mc *MaintenanceController) CreateMaintenanceRecord(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := mc.db.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	if req.Cost != nil && *req.Cost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cost must not be negative"})
		return
	}

	record := models.Maintenance{
		ID:              uuid.New().String(),
		VehicleID:       req.VehicleID,
		MaintenanceType: req.MaintenanceType,
		ScheduledDate:   req.ScheduledDate,
		Status:          models.MaintenanceStatusPending,
		Cost:            req.Cost,
		Description:     req.Description,
	}

	if err := mc.db.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create maintenance record"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (mc *MaintenanceController) UpdateMaintenanceRecord(c *gin.Context) {
	var record models.Maintenance
	if err := mc.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance record not found"})
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"maintenance_type": req.MaintenanceType,
		"scheduled_date":   req.ScheduledDate,
		"cost":             req.Cost,
		"description":      req.Description,
	}

	if err := mc.db.Model(&record).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update maintenance record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance record updated successfully"})
}

// CompleteMaintenanceRecord marks the work done and records the final cost.
func (mc *MaintenanceController) CompleteMaintenanceRecord(c *gin.Context) {
	var record models.Maintenance
	if err := mc.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance record not found"})
		return
	}

	if record.Status == models.MaintenanceStatusCompleted {
		c.JSON(http.StatusOK, record)
		return
	}

	var req struct {
		Cost *float64 `json:"cost"`
	}
	_ = c.ShouldBindJSON(&req)

	updates := map[string]interface{}{"status": models.MaintenanceStatusCompleted}
	if req.Cost != nil {
		updates["cost"] = req.Cost
	}

	if err := mc.db.Model(&record).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete maintenance record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance record completed"})
}

func (mc *MaintenanceController) DeleteMaintenanceRecord(c *gin.Context) {
	var record models.Maintenance
	if err := mc.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance record not found"})
		return
	}

	if err := mc.db.Delete(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete maintenance record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance record deleted successfully"})
}

// UploadImage attaches a photo of the work to the record.
func (mc *MaintenanceController) UploadImage(c *gin.Context) {
	var record models.Maintenance
	if err := mc.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance record not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	url, err := mc.storage.Upload(c.Request.Context(), "maintenance", header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := mc.db.Model(&record).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

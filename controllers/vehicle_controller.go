package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/utils"
)

type VehicleController struct {
	db *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{db: db}
}

type VehicleRequest struct {
	PlateNumber        string               `json:"plate_number" binding:"required"`
	ConductionNumber   string               `json:"conduction_number"`
	Make               string               `json:"make" binding:"required"`
	Model              string               `json:"model" binding:"required"`
	Year               int                  `json:"year" binding:"required"`
	VIN                string               `json:"vin" binding:"required"`
	EngineNumber       string               `json:"engine_number"`
	OwnershipType      models.OwnershipType `json:"ownership_type" binding:"required,oneof=owned leased"`
	Status             models.VehicleStatus `json:"status" binding:"omitempty,oneof=active maintenance disposed"`
	InsuranceExpiry    time.Time            `json:"insurance_expiry" binding:"required"`
	RegistrationExpiry time.Time            `json:"registration_expiry" binding:"required"`
}

func (vc *VehicleController) GetVehicles(c *gin.Context) {
	query := vc.db.Model(&models.Vehicle{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("plate_number LIKE ? OR make LIKE ? OR model LIKE ?", like, like, like)
	}

	var vehicles []models.Vehicle
	if err := query.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (vc *VehicleController) GetVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := vc.db.Preload("ComplianceDocuments").First(&vehicle, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.PlateNumber = strings.ToUpper(strings.TrimSpace(req.PlateNumber))
	req.VIN = strings.ToUpper(strings.TrimSpace(req.VIN))

	if !utils.IsValidPlateNumber(req.PlateNumber) {
		utils.SendValidationError(c, "Invalid plate number format")
		return
	}
	if !utils.IsValidVIN(req.VIN) {
		utils.SendValidationError(c, "VIN must be 17 characters (I, O and Q are not allowed)")
		return
	}
	if !utils.IsValidYear(req.Year) {
		utils.SendValidationError(c, "Vehicle year is out of range")
		return
	}

	status := req.Status
	if status == "" {
		status = models.VehicleStatusActive
	}

	vehicle := models.Vehicle{
		ID:                 uuid.New().String(),
		PlateNumber:        req.PlateNumber,
		ConductionNumber:   req.ConductionNumber,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		VIN:                req.VIN,
		EngineNumber:       req.EngineNumber,
		OwnershipType:      req.OwnershipType,
		Status:             status,
		InsuranceExpiry:    req.InsuranceExpiry,
		RegistrationExpiry: req.RegistrationExpiry,
	}

	if err := vc.db.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"plate_number":        strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		"conduction_number":   req.ConductionNumber,
		"make":                req.Make,
		"model":               req.Model,
		"year":                req.Year,
		"vin":                 strings.ToUpper(strings.TrimSpace(req.VIN)),
		"engine_number":       req.EngineNumber,
		"ownership_type":      req.OwnershipType,
		"insurance_expiry":    req.InsuranceExpiry,
		"registration_expiry": req.RegistrationExpiry,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := vc.db.Model(&vehicle).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated successfully"})
}

func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	if err := vc.db.Delete(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

// GetStatistics backs the vehicle module's stats cards.
func (vc *VehicleController) GetStatistics(c *gin.Context) {
	var total, active, inMaintenance, disposed int64
	vc.db.Model(&models.Vehicle{}).Count(&total)
	vc.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusActive).Count(&active)
	vc.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusMaintenance).Count(&inMaintenance)
	vc.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusDisposed).Count(&disposed)

	c.JSON(http.StatusOK, gin.H{
		"total":          total,
		"active":         active,
		"in_maintenance": inMaintenance,
		"disposed":       disposed,
	})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

type DriverController struct {
	db *gorm.DB
}

func NewDriverController(db *gorm.DB) *DriverController {
	return &DriverController{db: db}
}

type DriverRequest struct {
	FullName      string              `json:"full_name" binding:"required"`
	LicenseNumber string              `json:"license_number" binding:"required"`
	LicenseExpiry time.Time           `json:"license_expiry" binding:"required"`
	Status        models.DriverStatus `json:"status" binding:"omitempty,oneof=active suspended"`
}

func (dc *DriverController) GetDrivers(c *gin.Context) {
	query := dc.db.Model(&models.Driver{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var drivers []models.Driver
	if err := query.Order("full_name ASC").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drivers"})
		return
	}

	c.JSON(http.StatusOK, drivers)
}

func (dc *DriverController) GetDriver(c *gin.Context) {
	var driver models.Driver
	if err := dc.db.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

func (dc *DriverController) CreateDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.DriverStatusActive
	}

	driver := models.Driver{
		ID:            uuid.New().String(),
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		Status:        status,
	}

	if err := dc.db.Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}

	c.JSON(http.StatusCreated, driver)
}

func (dc *DriverController) UpdateDriver(c *gin.Context) {
	var driver models.Driver
	if err := dc.db.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"full_name":      req.FullName,
		"license_number": req.LicenseNumber,
		"license_expiry": req.LicenseExpiry,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := dc.db.Model(&driver).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver updated successfully"})
}

func (dc *DriverController) DeleteDriver(c *gin.Context) {
	var driver models.Driver
	if err := dc.db.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	if err := dc.db.Delete(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted successfully"})
}

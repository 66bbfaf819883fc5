package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/services"
	"github.com/dediosardie/dns-maynilad-vmms/utils"
)

type FuelController struct {
	db       *gorm.DB
	storage  *services.StorageService
	analysis *services.AnalysisService
}

func NewFuelController(db *gorm.DB, storage *services.StorageService, analysis *services.AnalysisService) *FuelController {
	return &FuelController{db: db, storage: storage, analysis: analysis}
}

type FuelTransactionRequest struct {
	VehicleID       string          `json:"vehicle_id" binding:"required"`
	DriverID        string          `json:"driver_id" binding:"required"`
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	FuelType        models.FuelType `json:"fuel_type" binding:"required,oneof=diesel gasoline"`
	Liters          float64         `json:"liters" binding:"required,gt=0"`
	Cost            float64         `json:"cost" binding:"required,gt=0"`
	OdometerReading int             `json:"odometer_reading" binding:"required,gte=0"`
	ReceiptImageURL string          `json:"receipt_image_url"`
}

func (fc *FuelController) GetTransactions(c *gin.Context) {
	query := fc.db.Model(&models.FuelTransaction{}).Preload("Vehicle").Preload("Driver")

	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}

	var transactions []models.FuelTransaction
	if err := query.Order("transaction_date DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fuel transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (fc *FuelController) GetTransaction(c *gin.Context) {
	var transaction models.FuelTransaction
	if err := fc.db.Preload("Vehicle").Preload("Driver").First(&transaction, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fuel transaction not found"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

func (fc *FuelController) CreateTransaction(c *gin.Context) {
	var req FuelTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := fc.db.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	var driver models.Driver
	if err := fc.db.First(&driver, "id = ?", req.DriverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	transaction := models.FuelTransaction{
		ID:              uuid.New().String(),
		VehicleID:       req.VehicleID,
		DriverID:        req.DriverID,
		TransactionDate: req.TransactionDate,
		FuelType:        req.FuelType,
		Liters:          req.Liters,
		Cost:            req.Cost,
		CostPerLiter:    req.Cost / req.Liters,
		OdometerReading: req.OdometerReading,
		ReceiptImageURL: req.ReceiptImageURL,
	}

	if err := fc.db.Create(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fuel transaction"})
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (fc *FuelController) UpdateTransaction(c *gin.Context) {
	var transaction models.FuelTransaction
	if err := fc.db.First(&transaction, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fuel transaction not found"})
		return
	}

	var req FuelTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"vehicle_id":       req.VehicleID,
		"driver_id":        req.DriverID,
		"transaction_date": req.TransactionDate,
		"fuel_type":        req.FuelType,
		"liters":           req.Liters,
		"cost":             req.Cost,
		"cost_per_liter":   req.Cost / req.Liters,
		"odometer_reading": req.OdometerReading,
	}

	if err := fc.db.Model(&transaction).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fuel transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fuel transaction updated successfully"})
}

func (fc *FuelController) DeleteTransaction(c *gin.Context) {
	var transaction models.FuelTransaction
	if err := fc.db.First(&transaction, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fuel transaction not found"})
		return
	}

	if err := fc.db.Delete(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fuel transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fuel transaction deleted successfully"})
}

// UploadReceipt stores a photo of the fuel receipt and attaches its URL.
func (fc *FuelController) UploadReceipt(c *gin.Context) {
	var transaction models.FuelTransaction
	if err := fc.db.First(&transaction, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fuel transaction not found"})
		return
	}

	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read receipt"})
		return
	}

	url, err := fc.storage.Upload(c.Request.Context(), "receipts", header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload receipt"})
		return
	}

	if err := fc.db.Model(&transaction).Update("receipt_image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt_image_url": url})
}

// GetEfficiencyReport runs the AI analysis over the full transaction log.
// Configuration and transport failures are surfaced to the caller, never
// swallowed.
func (fc *FuelController) GetEfficiencyReport(c *gin.Context) {
	var transactions []models.FuelTransaction
	if err := fc.db.Order("transaction_date DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fuel transactions"})
		return
	}
	var vehicles []models.Vehicle
	if err := fc.db.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	var drivers []models.Driver
	if err := fc.db.Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drivers"})
		return
	}

	analysis, err := fc.analysis.AnalyzeFuelEfficiency(c.Request.Context(), transactions, vehicles, drivers)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotConfigured) {
			utils.SendError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		utils.SendError(c, http.StatusBadGateway, err.Error())
		return
	}

	c.JSON(http.StatusOK, analysis)
}

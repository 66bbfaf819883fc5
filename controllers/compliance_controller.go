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

type ComplianceController struct {
	db      *gorm.DB
	storage *services.StorageService
}

func NewComplianceController(db *gorm.DB, storage *services.StorageService) *ComplianceController {
	return &ComplianceController{db: db, storage: storage}
}

type ComplianceDocumentRequest struct {
	VehicleID      string              `json:"vehicle_id" binding:"required"`
	DocumentType   models.DocumentType `json:"document_type" binding:"required,oneof=registration insurance permit license inspection other"`
	DocumentNumber string              `json:"document_number"`
	IssueDate      time.Time           `json:"issue_date"`
	ExpiryDate     *time.Time          `json:"expiry_date"`
	ReminderDays   int                 `json:"reminder_days"`
}

func (cc *ComplianceController) GetDocuments(c *gin.Context) {
	query := cc.db.Model(&models.ComplianceDocument{}).Preload("Vehicle")

	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if docType := c.Query("document_type"); docType != "" {
		query = query.Where("document_type = ?", docType)
	}

	var documents []models.ComplianceDocument
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	// Status is derived from the expiry date, never trusted from storage
	now := time.Now()
	for i := range documents {
		documents[i].Status = models.ExpiryStatus(documents[i].ExpiryDate, documents[i].ReminderDays, now)
	}

	c.JSON(http.StatusOK, documents)
}

func (cc *ComplianceController) GetDocument(c *gin.Context) {
	var document models.ComplianceDocument
	if err := cc.db.Preload("Vehicle").First(&document, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	document.Status = models.ExpiryStatus(document.ExpiryDate, document.ReminderDays, time.Now())
	c.JSON(http.StatusOK, document)
}

func (cc *ComplianceController) CreateDocument(c *gin.Context) {
	var req ComplianceDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := cc.db.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	if req.DocumentType.RequiresExpiry() && req.ExpiryDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry date is required for this document type"})
		return
	}

	reminderDays := req.ReminderDays
	if reminderDays <= 0 {
		reminderDays = models.DefaultReminderDays
	}

	document := models.ComplianceDocument{
		ID:             uuid.New().String(),
		VehicleID:      req.VehicleID,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		IssueDate:      req.IssueDate,
		ExpiryDate:     req.ExpiryDate,
		ReminderDays:   reminderDays,
		Status:         models.ExpiryStatus(req.ExpiryDate, reminderDays, time.Now()),
		UploadedBy:     c.GetString("user_id"),
	}

	if err := cc.db.Create(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document"})
		return
	}

	c.JSON(http.StatusCreated, document)
}

func (cc *ComplianceController) UpdateDocument(c *gin.Context) {
	var document models.ComplianceDocument
	if err := cc.db.First(&document, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	var req ComplianceDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminderDays := req.ReminderDays
	if reminderDays <= 0 {
		reminderDays = models.DefaultReminderDays
	}

	updates := map[string]interface{}{
		"document_type":   req.DocumentType,
		"document_number": req.DocumentNumber,
		"issue_date":      req.IssueDate,
		"expiry_date":     req.ExpiryDate,
		"reminder_days":   reminderDays,
		"status":          models.ExpiryStatus(req.ExpiryDate, reminderDays, time.Now()),
	}

	if err := cc.db.Model(&document).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document updated successfully"})
}

func (cc *ComplianceController) DeleteDocument(c *gin.Context) {
	var document models.ComplianceDocument
	if err := cc.db.First(&document, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if err := cc.db.Delete(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// UploadFile stores the scanned document and records its location and size.
func (cc *ComplianceController) UploadFile(c *gin.Context) {
	var document models.ComplianceDocument
	if err := cc.db.First(&document, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	url, err := cc.storage.Upload(c.Request.Context(), "compliance", header.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	updates := map[string]interface{}{
		"file_url":    url,
		"file_type":   contentType,
		"file_size":   header.Size,
		"uploaded_by": c.GetString("user_id"),
	}
	if err := cc.db.Model(&document).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"file_url": url})
}

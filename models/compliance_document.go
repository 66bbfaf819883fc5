package models

import (
	"time"
)

type DocumentType string

const (
	DocumentRegistration DocumentType = "registration"
	DocumentInsurance    DocumentType = "insurance"
	DocumentPermit       DocumentType = "permit"
	DocumentLicense      DocumentType = "license"
	DocumentInspection   DocumentType = "inspection"
	DocumentOther        DocumentType = "other"
)

// RequiresExpiry reports whether the document type must carry an expiry date.
func (t DocumentType) RequiresExpiry() bool {
	switch t {
	case DocumentRegistration, DocumentInsurance, DocumentPermit, DocumentLicense, DocumentInspection:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocumentStatusValid        DocumentStatus = "valid"
	DocumentStatusExpiringSoon DocumentStatus = "expiring_soon"
	DocumentStatusExpired      DocumentStatus = "expired"
)

const DefaultReminderDays = 30

type ComplianceDocument struct {
	ID             string         `json:"id" gorm:"primaryKey;size:191"`
	VehicleID      string         `json:"vehicle_id" gorm:"not null;size:191;index"`
	DocumentType   DocumentType   `json:"document_type" gorm:"not null;size:30"`
	DocumentNumber string         `json:"document_number" gorm:"size:100"`
	IssueDate      time.Time      `json:"issue_date"`
	ExpiryDate     *time.Time     `json:"expiry_date"`
	FileURL        string         `json:"file_url" gorm:"size:500"`
	FileType       string         `json:"file_type" gorm:"size:100"`
	FileSize       int64          `json:"file_size"`
	ReminderDays   int            `json:"reminder_days" gorm:"not null;default:30"`
	Status         DocumentStatus `json:"status" gorm:"not null;size:20;default:'valid'"`
	UploadedBy     string         `json:"uploaded_by" gorm:"size:191"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Vehicle Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

// ExpiryStatus derives the document status from its expiry date. Documents
// without an expiry date are always valid.
func ExpiryStatus(expiry *time.Time, reminderDays int, now time.Time) DocumentStatus {
	if expiry == nil {
		return DocumentStatusValid
	}
	if reminderDays <= 0 {
		reminderDays = DefaultReminderDays
	}
	if expiry.Before(now) {
		return DocumentStatusExpired
	}
	if !expiry.After(now.AddDate(0, 0, reminderDays)) {
		return DocumentStatusExpiringSoon
	}
	return DocumentStatusValid
}

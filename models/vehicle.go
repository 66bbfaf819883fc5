package models

import (
	"time"
)

type OwnershipType string

const (
	OwnershipOwned  OwnershipType = "owned"
	OwnershipLeased OwnershipType = "leased"
)

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusDisposed    VehicleStatus = "disposed"
)

type Vehicle struct {
	ID                 string        `json:"id" gorm:"primaryKey;size:191"`
	PlateNumber        string        `json:"plate_number" gorm:"uniqueIndex;not null;size:20"`
	ConductionNumber   string        `json:"conduction_number" gorm:"size:20"`
	Make               string        `json:"make" gorm:"not null;size:100"`
	Model              string        `json:"model" gorm:"not null;size:100"`
	Year               int           `json:"year" gorm:"not null"`
	VIN                string        `json:"vin" gorm:"uniqueIndex;not null;size:17"`
	EngineNumber       string        `json:"engine_number" gorm:"size:50"`
	OwnershipType      OwnershipType `json:"ownership_type" gorm:"not null;size:20"`
	Status             VehicleStatus `json:"status" gorm:"not null;size:20;default:'active'"`
	InsuranceExpiry    time.Time     `json:"insurance_expiry"`
	RegistrationExpiry time.Time     `json:"registration_expiry"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	// Relationships
	MaintenanceRecords  []Maintenance        `json:"maintenance_records,omitempty" gorm:"foreignKey:VehicleID"`
	ComplianceDocuments []ComplianceDocument `json:"compliance_documents,omitempty" gorm:"foreignKey:VehicleID"`
}

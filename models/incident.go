package models

import (
	"fmt"
	"time"
)

type IncidentType string

const (
	IncidentCollision         IncidentType = "collision"
	IncidentTheft             IncidentType = "theft"
	IncidentVandalism         IncidentType = "vandalism"
	IncidentMechanicalFailure IncidentType = "mechanical_failure"
	IncidentOther             IncidentType = "other"
)

type IncidentSeverity string

const (
	SeverityMinor    IncidentSeverity = "minor"
	SeverityModerate IncidentSeverity = "moderate"
	SeveritySevere   IncidentSeverity = "severe"
	SeverityCritical IncidentSeverity = "critical"
)

type IncidentStatus string

const (
	IncidentStatusReported    IncidentStatus = "reported"
	IncidentStatusUnderReview IncidentStatus = "under_review"
	IncidentStatusResolved    IncidentStatus = "resolved"
)

type Incident struct {
	ID                 string           `json:"id" gorm:"primaryKey;size:191"`
	IncidentNumber     string           `json:"incident_number" gorm:"uniqueIndex;not null;size:30"`
	VehicleID          string           `json:"vehicle_id" gorm:"not null;size:191;index"`
	DriverID           string           `json:"driver_id" gorm:"not null;size:191;index"`
	IncidentDate       time.Time        `json:"incident_date" gorm:"not null"`
	Location           string           `json:"location" gorm:"not null;size:255"`
	IncidentType       IncidentType     `json:"incident_type" gorm:"not null;size:30"`
	Severity           IncidentSeverity `json:"severity" gorm:"not null;size:20"`
	WeatherConditions  string           `json:"weather_conditions" gorm:"size:100"`
	RoadConditions     string           `json:"road_conditions" gorm:"size:100"`
	PoliceReportNumber string           `json:"police_report_number" gorm:"size:50"`
	EstimatedCost      float64          `json:"estimated_cost"`
	Description        string           `json:"description" gorm:"not null;size:2000"`
	Status             IncidentStatus   `json:"status" gorm:"not null;size:20;default:'reported'"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`

	Vehicle Vehicle          `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Driver  Driver           `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Claims  []InsuranceClaim `json:"claims,omitempty" gorm:"foreignKey:IncidentID"`
}

type ClaimStatus string

const (
	ClaimStatusFiled    ClaimStatus = "filed"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusDenied   ClaimStatus = "denied"
	ClaimStatusPaid     ClaimStatus = "paid"
)

type InsuranceClaim struct {
	ID                string      `json:"id" gorm:"primaryKey;size:191"`
	IncidentID        string      `json:"incident_id" gorm:"not null;size:191;index"`
	ClaimNumber       string      `json:"claim_number" gorm:"uniqueIndex;not null;size:50"`
	InsuranceProvider string      `json:"insurance_provider" gorm:"not null;size:255"`
	ClaimAmount       float64     `json:"claim_amount" gorm:"not null"`
	FiledDate         time.Time   `json:"filed_date" gorm:"not null"`
	Status            ClaimStatus `json:"status" gorm:"not null;size:20;default:'filed'"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	Incident Incident `json:"incident,omitempty" gorm:"foreignKey:IncidentID"`
}

// NewIncidentNumber builds a number like INC-2026-000031.
func NewIncidentNumber(year int, seq int64) string {
	return fmt.Sprintf("INC-%d-%06d", year, seq)
}

// MinIncidentDescriptionLen is enforced at intake so reports carry enough
// detail for insurance filings.
const MinIncidentDescriptionLen = 50

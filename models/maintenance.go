package models

import (
	"time"
)

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceRepair     MaintenanceType = "repair"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPending   MaintenanceStatus = "pending"
	MaintenanceStatusCompleted MaintenanceStatus = "completed"
)

type Maintenance struct {
	ID              string            `json:"id" gorm:"primaryKey;size:191"`
	VehicleID       string            `json:"vehicle_id" gorm:"not null;size:191;index"`
	MaintenanceType MaintenanceType   `json:"maintenance_type" gorm:"not null;size:20"`
	ScheduledDate   time.Time         `json:"scheduled_date" gorm:"not null"`
	Status          MaintenanceStatus `json:"status" gorm:"not null;size:20;default:'pending'"`
	Cost            *float64          `json:"cost"`
	Description     string            `json:"description" gorm:"size:1000"`
	ImageURL        string            `json:"image_url" gorm:"size:500"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Vehicle Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

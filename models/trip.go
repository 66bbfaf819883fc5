package models

import (
	"fmt"
	"time"
)

type TripStatus string

const (
	TripStatusPlanned    TripStatus = "planned"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// tripTransitions is the allowed status graph for trips. Completed and
// cancelled are terminal.
var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusPlanned:    {TripStatusInProgress, TripStatusCancelled},
	TripStatusInProgress: {TripStatusCompleted, TripStatusCancelled},
	TripStatusCompleted:  {},
	TripStatusCancelled:  {},
}

func (s TripStatus) CanTransitionTo(to TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Trip struct {
	ID                       string     `json:"id" gorm:"primaryKey;size:191"`
	TripNumber               string     `json:"trip_number" gorm:"uniqueIndex;not null;size:30"`
	VehicleID                string     `json:"vehicle_id" gorm:"not null;size:191;index"`
	DriverID                 string     `json:"driver_id" gorm:"not null;size:191;index"`
	Origin                   string     `json:"origin" gorm:"not null;size:255"`
	Destination              string     `json:"destination" gorm:"not null;size:255"`
	PlannedDeparture         time.Time  `json:"planned_departure" gorm:"not null"`
	PlannedArrival           time.Time  `json:"planned_arrival" gorm:"not null"`
	ActualDeparture          *time.Time `json:"actual_departure"`
	ActualArrival            *time.Time `json:"actual_arrival"`
	DistanceKm               float64    `json:"distance_km"`
	EstimatedFuelConsumption float64    `json:"estimated_fuel_consumption"`
	Notes                    string     `json:"notes" gorm:"size:1000"`
	Status                   TripStatus `json:"status" gorm:"not null;size:20;default:'planned'"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`

	Vehicle Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Driver  Driver  `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

// NewTripNumber builds a human-readable trip number like TRIP-2026-000042.
func NewTripNumber(year int, seq int64) string {
	return fmt.Sprintf("TRIP-%d-%06d", year, seq)
}

package models

import (
	"time"
)

type FuelType string

const (
	FuelDiesel   FuelType = "diesel"
	FuelGasoline FuelType = "gasoline"
)

type FuelTransaction struct {
	ID              string    `json:"id" gorm:"primaryKey;size:191"`
	VehicleID       string    `json:"vehicle_id" gorm:"not null;size:191;index"`
	DriverID        string    `json:"driver_id" gorm:"not null;size:191;index"`
	TransactionDate time.Time `json:"transaction_date" gorm:"not null"`
	FuelType        FuelType  `json:"fuel_type" gorm:"not null;size:20"`
	Liters          float64   `json:"liters" gorm:"not null"`
	Cost            float64   `json:"cost" gorm:"not null"`
	CostPerLiter    float64   `json:"cost_per_liter" gorm:"not null"`
	OdometerReading int       `json:"odometer_reading" gorm:"not null"`
	ReceiptImageURL string    `json:"receipt_image_url" gorm:"size:500"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Vehicle Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Driver  Driver  `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

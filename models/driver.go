package models

import (
	"time"
)

type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusSuspended DriverStatus = "suspended"
)

type Driver struct {
	ID            string       `json:"id" gorm:"primaryKey;size:191"`
	FullName      string       `json:"full_name" gorm:"not null;size:255"`
	LicenseNumber string       `json:"license_number" gorm:"uniqueIndex;not null;size:50"`
	LicenseExpiry time.Time    `json:"license_expiry" gorm:"not null"`
	Status        DriverStatus `json:"status" gorm:"not null;size:20;default:'active'"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// LicenseExpiresWithin reports whether the driver's license expires within
// the given number of days from now.
func (d *Driver) LicenseExpiresWithin(days int, now time.Time) bool {
	return !d.LicenseExpiry.After(now.AddDate(0, 0, days))
}

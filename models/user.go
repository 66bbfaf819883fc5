package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleFleetManager UserRole = "fleet_manager"
	RoleViewer       UserRole = "viewer"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	FullName  string    `json:"full_name" gorm:"not null;size:255"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Role      UserRole  `json:"role" gorm:"not null;size:50;default:'viewer'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanApproveDisposals reports whether the user may approve disposal requests
// above the automatic-approval threshold.
func (u *User) CanApproveDisposals() bool {
	return u.Role == RoleAdmin || u.Role == RoleFleetManager
}

// CanManageFleet reports whether the user may create or modify fleet records.
func (u *User) CanManageFleet() bool {
	return u.Role == RoleAdmin || u.Role == RoleFleetManager
}

package models

import (
	"time"
)

type AdminRole string

const (
	AdminRoleAdmin  AdminRole = "ADMIN"
	AdminRoleEditor AdminRole = "EDITOR"
)

type AdminStatus string

const (
	AdminStatusActive   AdminStatus = "ACTIVE"
	AdminStatusInactive AdminStatus = "INACTIVE"
)

type Admin struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         AdminRole   `gorm:"type:varchar(16);not null;default:EDITOR" json:"role"`
	Status       AdminStatus `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	LastLoginAt  *time.Time  `json:"lastLoginAt"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// IsActive reports whether the admin may sign in.
func (a *Admin) IsActive() bool {
	return a.Status == AdminStatusActive
}

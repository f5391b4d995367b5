package dtos

import (
	"time"

	"deals-backend/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminSummary is the admin shape returned alongside a fresh token.
type AdminSummary struct {
	ID    uint             `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  models.AdminRole `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminSummary `json:"admin"`
}

type AdminProfile struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        models.AdminRole   `json:"role"`
	Status      models.AdminStatus `json:"status"`
	LastLoginAt *time.Time         `json:"lastLoginAt"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func NewAdminProfile(a *models.Admin) AdminProfile {
	return AdminProfile{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Status:      a.Status,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
